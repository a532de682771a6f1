// Package themecolor resolves abstract color tokens to concrete
// colors per slide. The same token means different colors depending
// on which master the slide inherits from, so scheme maps are scoped
// per slide, never global.
package themecolor

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ThisIsMyPseudonym/jsonprez/deck"
	"github.com/ThisIsMyPseudonym/jsonprez/geom"
	"github.com/ThisIsMyPseudonym/jsonprez/observability"
)

// Options configures a Resolver.
type Options struct {
	// Raw disables the static-theme and builtin-palette tiers and the
	// placeholder inheritance walk, preserving exactly what was
	// explicit in the source and inventing nothing beyond the
	// hardcoded defaults.
	Raw    bool
	Logger observability.Logger
}

// Resolver resolves color tokens and inherited placeholder styles
// for one presentation. All state is built at construction and owned
// by a single extraction or generation invocation; a Resolver is
// never reused across documents.
type Resolver struct {
	pres   *deck.Presentation
	raw    bool
	logger observability.Logger

	layoutByID map[string]*deck.Layout
	masterByID map[string]*deck.Master

	// slideSchemes[i] is slide i's merged master+layout scheme.
	slideSchemes []deck.ColorScheme

	// placeholder index: page ID -> placeholder key -> element.
	placeholders map[string]map[placeholderKey]*deck.PageElement

	cache map[cacheKey]string
}

type placeholderKey struct {
	Type  string
	Index int
}

type cacheKey struct {
	token string
	slide int
}

var titleCaser = cases.Upper(language.English)

// NewResolver builds the per-slide scheme maps and the placeholder
// index for one presentation.
func NewResolver(p *deck.Presentation, opts Options) *Resolver {
	if opts.Logger == nil {
		opts.Logger = observability.NopLogger{}
	}
	r := &Resolver{
		pres:         p,
		raw:          opts.Raw,
		logger:       opts.Logger,
		layoutByID:   make(map[string]*deck.Layout),
		masterByID:   make(map[string]*deck.Master),
		placeholders: make(map[string]map[placeholderKey]*deck.PageElement),
		cache:        make(map[cacheKey]string),
	}
	for _, m := range p.Masters {
		r.masterByID[m.ID] = m
		r.indexPlaceholders(m.ID, m.Elements)
	}
	for _, l := range p.Layouts {
		r.layoutByID[l.ID] = l
		r.indexPlaceholders(l.ID, l.Elements)
	}

	r.slideSchemes = make([]deck.ColorScheme, len(p.Slides))
	for i, s := range p.Slides {
		r.slideSchemes[i] = r.buildScheme(s)
	}
	return r
}

func (r *Resolver) indexPlaceholders(pageID string, elements []*deck.PageElement) {
	idx := make(map[placeholderKey]*deck.PageElement)
	for _, el := range elements {
		if el.Placeholder == nil {
			continue
		}
		key := placeholderKey{Type: el.Placeholder.Type, Index: el.Placeholder.Index}
		if _, ok := idx[key]; !ok {
			idx[key] = el
		}
	}
	r.placeholders[pageID] = idx
}

// buildScheme merges the slide's master scheme with its layout's
// overrides. Slides on different masters get different maps for the
// same token.
func (r *Resolver) buildScheme(s *deck.Slide) deck.ColorScheme {
	scheme := make(deck.ColorScheme)
	layout := r.layoutByID[s.LayoutID]
	if layout != nil {
		if master := r.masterByID[layout.MasterID]; master != nil {
			for k, v := range master.ColorScheme {
				scheme[normalizeToken(k)] = v
			}
		}
		for k, v := range layout.ColorScheme {
			scheme[normalizeToken(k)] = v
		}
	}
	return scheme
}

// Resolve maps a color token to a concrete hex color for the given
// slide. Literal hex values and the transparent/none sentinels pass
// through. Unresolvable tokens degrade to the hardcoded default
// palette; resolution is never fatal.
func (r *Resolver) Resolve(token string, slide int) string {
	if token == "" {
		return ""
	}
	if strings.HasPrefix(token, "#") || token == Transparent || token == None {
		return token
	}
	key := cacheKey{token: token, slide: slide}
	if hex, ok := r.cache[key]; ok {
		return hex
	}
	hex := r.resolve(normalizeToken(token), slide)
	r.cache[key] = hex
	return hex
}

func (r *Resolver) resolve(token string, slide int) string {
	if slide >= 0 && slide < len(r.slideSchemes) {
		if hex := r.slideSchemes[slide][token]; hex != "" {
			return hex
		}
	}
	if !r.raw {
		if hex := r.pres.Theme[token]; hex != "" {
			return hex
		}
		if palette, ok := builtinPalettes[normalizeThemeName(r.pres.ThemeName)]; ok {
			if hex := palette[token]; hex != "" {
				return hex
			}
		}
	}
	if hex := defaultPalette[token]; hex != "" {
		return hex
	}
	r.logger.Warn("unresolvable color token",
		observability.String("token", token),
		observability.Int("slide", slide))
	return defaultPalette[TokenDark1]
}

// SlideScheme returns a copy of the fully resolved scheme for one
// slide, with the fallback tiers applied token by token.
func (r *Resolver) SlideScheme(slide int) map[string]string {
	out := make(map[string]string, len(defaultPalette))
	for token := range defaultPalette {
		out[token] = r.Resolve(token, slide)
	}
	return out
}

// PresentationScheme resolves every known token at presentation
// scope, skipping the per-slide tier.
func (r *Resolver) PresentationScheme() map[string]string {
	out := make(map[string]string, len(defaultPalette))
	for token := range defaultPalette {
		out[token] = r.resolve(token, -1)
	}
	return out
}

// Background resolves the effective background of a slide. When the
// slide has no explicit page fill, a full-bleed shape (area at least
// 90% of the page, within 10% of the origin) acts as the background;
// failing that, the layout and master fills apply. The returned
// element ID identifies a consumed background shape, if any.
func (r *Resolver) Background(slide int) (fill *deck.Fill, consumedID string) {
	if slide < 0 || slide >= len(r.pres.Slides) {
		return nil, ""
	}
	s := r.pres.Slides[slide]
	if s.Background != nil {
		return s.Background, ""
	}
	if el := r.backgroundShape(s); el != nil {
		if shape, ok := el.Content.(*deck.Shape); ok && shape.Fill != nil {
			return shape.Fill, el.ID
		}
	}
	if layout := r.layoutByID[s.LayoutID]; layout != nil {
		if layout.Background != nil {
			return layout.Background, ""
		}
		if master := r.masterByID[layout.MasterID]; master != nil && master.Background != nil {
			return master.Background, ""
		}
	}
	return nil, ""
}

// backgroundShape scans slide elements for a full-bleed filled shape.
func (r *Resolver) backgroundShape(s *deck.Slide) *deck.PageElement {
	pageW, pageH := r.pres.PageSize.Points()
	if pageW <= 0 || pageH <= 0 {
		return nil
	}
	for _, el := range s.Elements {
		shape, ok := el.Content.(*deck.Shape)
		if !ok || shape.Fill == nil || shape.Fill.Color == "" {
			continue
		}
		baseW, baseH := el.Size.Points()
		g := geom.Decompose(geom.FromRaw(el.Transform), baseW, baseH)
		if g.W*g.H < 0.9*pageW*pageH {
			continue
		}
		if absf(g.X) > 0.1*pageW || absf(g.Y) > 0.1*pageH {
			continue
		}
		return el
	}
	return nil
}

// ResolvedStyle is a fully concrete run style after placeholder
// inheritance.
type ResolvedStyle struct {
	Color      string
	FontSize   float64
	FontFamily string
	Bold       bool
}

// RunStyle resolves the inheritable properties (color, font size,
// font family, weight) of a run style through the placeholder chain:
// explicit value on the run, then the layout placeholder, then the
// master placeholder, then the hardcoded default. Each property
// short-circuits at its first explicit value. In raw mode only the
// explicit-or-default tiers apply.
func (r *Resolver) RunStyle(style deck.TextStyle, el *deck.PageElement, slide int) ResolvedStyle {
	chain := []deck.TextStyle{style}
	if !r.raw && el != nil && el.Placeholder != nil && slide >= 0 && slide < len(r.pres.Slides) {
		key := placeholderKey{Type: el.Placeholder.Type, Index: el.Placeholder.Index}
		s := r.pres.Slides[slide]
		if layout := r.layoutByID[s.LayoutID]; layout != nil {
			if ps := r.placeholderStyle(layout.ID, key); ps != nil {
				chain = append(chain, *ps)
			}
			if ps := r.placeholderStyle(layout.MasterID, key); ps != nil {
				chain = append(chain, *ps)
			}
		}
	}

	out := ResolvedStyle{
		Color:      DefaultTextColor,
		FontSize:   DefaultFontSize,
		FontFamily: DefaultFontFamily,
	}
	for i := len(chain) - 1; i >= 0; i-- {
		st := chain[i]
		if st.Color != "" {
			out.Color = r.Resolve(st.Color, slide)
		}
		if st.FontSize != nil {
			out.FontSize = *st.FontSize
		}
		if st.FontFamily != "" {
			out.FontFamily = st.FontFamily
		}
		if st.Bold != nil {
			out.Bold = *st.Bold
		}
	}
	return out
}

// placeholderStyle returns the first run style of the placeholder
// element registered for key on the given page.
func (r *Resolver) placeholderStyle(pageID string, key placeholderKey) *deck.TextStyle {
	idx := r.placeholders[pageID]
	el, ok := idx[key]
	if !ok {
		// Fall back to the same placeholder type at index 0.
		el, ok = idx[placeholderKey{Type: key.Type}]
		if !ok {
			return nil
		}
	}
	shape, ok := el.Content.(*deck.Shape)
	if !ok || shape.Text == nil {
		return nil
	}
	for _, te := range shape.Text.Elements {
		if te.Run != nil {
			st := te.Run.Style
			return &st
		}
	}
	return nil
}

func normalizeToken(token string) string {
	return strings.ToUpper(strings.TrimSpace(token))
}

// normalizeThemeName turns a display name ("Simple Light") into the
// palette key form ("SIMPLE_LIGHT").
func normalizeThemeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.ReplaceAll(titleCaser.String(name), " ", "_")
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
