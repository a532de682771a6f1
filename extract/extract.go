// Package extract walks a presentation tree and produces the
// canonical JSON document, invoking the transform, text and color
// codecs bottom-up.
package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThisIsMyPseudonym/jsonprez/deck"
	"github.com/ThisIsMyPseudonym/jsonprez/doc"
	"github.com/ThisIsMyPseudonym/jsonprez/geom"
	"github.com/ThisIsMyPseudonym/jsonprez/observability"
	"github.com/ThisIsMyPseudonym/jsonprez/raster"
	"github.com/ThisIsMyPseudonym/jsonprez/recovery"
	"github.com/ThisIsMyPseudonym/jsonprez/textcodec"
	"github.com/ThisIsMyPseudonym/jsonprez/themecolor"
)

// Config configures an extraction pipeline.
type Config struct {
	Logger   observability.Logger
	Recovery recovery.Strategy
	// RawColors preserves exactly what was explicit in the source:
	// the static-theme and builtin-palette tiers and placeholder
	// inheritance are disabled.
	RawColors bool
}

// Pipeline extracts canonical documents from presentation trees. A
// Pipeline is stateless; all caches live in the per-invocation
// extraction context.
type Pipeline struct {
	cfg Config
}

// New creates an extraction pipeline. The zero Config is usable:
// logging is silent and element failures are skipped, not fatal.
func New(cfg Config) *Pipeline {
	if cfg.Logger == nil {
		cfg.Logger = observability.NopLogger{}
	}
	if cfg.Recovery == nil {
		cfg.Recovery = recovery.NewLenientStrategy()
	}
	return &Pipeline{cfg: cfg}
}

// extraction is the per-invocation context. It owns every cache used
// during one call and is discarded afterwards.
type extraction struct {
	pres     *deck.Presentation
	resolver *themecolor.Resolver
	logger   observability.Logger
	strategy recovery.Strategy
}

// Extract converts one presentation tree into a canonical document.
func (p *Pipeline) Extract(ctx context.Context, pres *deck.Presentation) (*doc.Document, error) {
	if pres == nil {
		return nil, errors.New("extract: presentation is required")
	}
	e := &extraction{
		pres: pres,
		resolver: themecolor.NewResolver(pres, themecolor.Options{
			Raw:    p.cfg.RawColors,
			Logger: p.cfg.Logger,
		}),
		logger:   p.cfg.Logger,
		strategy: p.cfg.Recovery,
	}

	pageW, pageH := pres.PageSize.Points()
	out := &doc.Document{
		Config: doc.Config{
			Title:      pres.Title,
			PageWidth:  pageW,
			PageHeight: pageH,
			Theme: doc.Theme{
				Name:   pres.ThemeName,
				Colors: e.resolver.PresentationScheme(),
				Fonts:  e.themeFonts(),
			},
		},
	}

	for i, slide := range pres.Slides {
		s, err := e.extractSlide(ctx, slide, i)
		if err != nil {
			return nil, fmt.Errorf("extract: slide %d: %w", i, err)
		}
		out.Slides = append(out.Slides, s)
	}
	e.logger.Info("extraction complete",
		observability.Int(observability.MetricSlideCount, len(out.Slides)))
	return out, nil
}

func (e *extraction) extractSlide(ctx context.Context, slide *deck.Slide, idx int) (doc.Slide, error) {
	out := doc.Slide{Elements: []doc.Element{}}

	bg, consumedID := e.resolver.Background(idx)
	if bg != nil {
		out.Background = e.background(bg, idx)
	}
	if slide.Notes != nil {
		notes := textcodec.Decode(slide.Notes, nil)
		out.SpeakerNotes = textcodec.PlainText(notes)
	}

	for _, el := range slide.Elements {
		if el.ID == consumedID && consumedID != "" {
			continue
		}
		docEl, err := e.extractElement(el, geom.Identity(), idx)
		if err != nil {
			loc := recovery.Location{Slide: idx, ElementID: el.ID, Component: "extract"}
			if e.strategy.OnError(ctx, err, loc) == recovery.ActionFail {
				return doc.Slide{}, err
			}
			e.logger.Warn("skipping element",
				observability.Int("slide", idx),
				observability.String("element", el.ID),
				observability.Error("err", err))
			continue
		}
		out.Elements = append(out.Elements, docEl)
	}
	return out, nil
}

func (e *extraction) background(fill *deck.Fill, slide int) *doc.Background {
	switch {
	case fill.Type == "image" || fill.ImageURL != "":
		return &doc.Background{Type: "image", ImageURL: fill.ImageURL}
	case fill.Type == "none" || fill.Color == themecolor.None:
		return &doc.Background{Type: "none"}
	default:
		return &doc.Background{Type: "color", Color: e.resolver.Resolve(fill.Color, slide)}
	}
}

// extractElement converts one page element, carrying the composed
// parent transform as an explicit argument so nested groups flatten
// into world space before decomposition.
func (e *extraction) extractElement(el *deck.PageElement, parent geom.Affine, slide int) (doc.Element, error) {
	world := geom.Compose(parent, geom.FromRaw(el.Transform))
	baseW, baseH := el.Size.Points()
	g := geom.Decompose(world, baseW, baseH)
	if world.Det() == 0 {
		e.logger.Warn("degenerate transform",
			observability.String("element", el.ID),
			observability.Int("slide", slide))
	}

	worldRaw := geom.ToRaw(world, geom.UnitPoint)
	out := doc.Element{
		ID:        el.ID,
		X:         g.X,
		Y:         g.Y,
		W:         g.W,
		H:         g.H,
		Rotation:  g.RotationDeg,
		FlipH:     g.FlipH,
		FlipV:     g.FlipV,
		Transform: &worldRaw,
	}

	switch c := el.Content.(type) {
	case *deck.Shape:
		out.Type = doc.TypeShape
		out.ShapeType = c.ShapeType
		if c.Fill != nil {
			out.Fill = e.resolver.Resolve(c.Fill.Color, slide)
		}
		if c.Outline != nil {
			out.Outline = &doc.Outline{
				Color:     e.resolver.Resolve(c.Outline.Color, slide),
				Weight:    c.Outline.Weight,
				DashStyle: c.Outline.DashStyle,
			}
		}
		if c.Text != nil {
			out.Text = textcodec.Decode(c.Text, e.styleFunc(el, slide))
		}
	case *deck.Image:
		out.Type = doc.TypeImage
		out.ImageURL = c.SourceURL
	case *deck.Line:
		out.Type = doc.TypeLine
		out.Line = &doc.LineProps{
			Category:  c.Category,
			Weight:    c.Weight,
			DashStyle: c.DashStyle,
			Color:     e.resolver.Resolve(c.Color, slide),
		}
	case *deck.Table:
		out.Type = doc.TypeTable
		out.Rows = c.Rows
		out.Columns = c.Columns
	case *deck.Chart:
		out.Type = doc.TypeChart
		out.SpreadsheetID = c.SpreadsheetID
		out.ChartID = c.ChartID
	case *deck.Group:
		out.Type = doc.TypeGroup
		for _, child := range c.Children {
			childEl, err := e.extractElement(child, world, slide)
			if err != nil {
				return doc.Element{}, fmt.Errorf("group child %q: %w", child.ID, err)
			}
			out.Children = append(out.Children, childEl)
		}
	case *deck.Freeform:
		// No matrix representation of the outline exists; route to
		// the flattened raster fallback instead of attempting a
		// vector reconstruction.
		var fillHex string
		if c.Fill != nil {
			fillHex = e.resolver.Resolve(c.Fill.Color, slide)
		}
		uri, err := raster.Flatten(g.W, g.H, fillHex)
		if err != nil {
			return doc.Element{}, fmt.Errorf("flattening freeform %q: %w", el.ID, err)
		}
		e.logger.Warn("freeform flattened to raster",
			observability.String("element", el.ID),
			observability.Int("slide", slide))
		out.Type = doc.TypeImage
		out.ImageURL = uri
	case nil:
		return doc.Element{}, fmt.Errorf("element %q carries no payload", el.ID)
	default:
		return doc.Element{}, fmt.Errorf("element %q carries unknown payload %T", el.ID, c)
	}
	return out, nil
}

// styleFunc binds the color resolver and placeholder chain for one
// text-bearing element.
func (e *extraction) styleFunc(el *deck.PageElement, slide int) textcodec.StyleFunc {
	return func(st deck.TextStyle) doc.TextRun {
		resolved := e.resolver.RunStyle(st, el, slide)
		out := doc.TextRun{
			Color:      resolved.Color,
			FontSize:   resolved.FontSize,
			FontFamily: resolved.FontFamily,
			Bold:       resolved.Bold,
			Link:       st.Link,
		}
		if st.Italic != nil {
			out.Italic = *st.Italic
		}
		if st.Underline != nil {
			out.Underline = *st.Underline
		}
		if st.Strikethrough != nil {
			out.Strikethrough = *st.Strikethrough
		}
		if st.SmallCaps != nil {
			out.SmallCaps = *st.SmallCaps
		}
		return out
	}
}

// themeFonts picks the heading and body families from the first
// master's title and body placeholders.
func (e *extraction) themeFonts() doc.Fonts {
	fonts := doc.Fonts{
		Heading: themecolor.DefaultFontFamily,
		Body:    themecolor.DefaultFontFamily,
	}
	if len(e.pres.Masters) == 0 {
		return fonts
	}
	for _, el := range e.pres.Masters[0].Elements {
		if el.Placeholder == nil {
			continue
		}
		family := firstRunFamily(el)
		if family == "" {
			continue
		}
		switch el.Placeholder.Type {
		case "TITLE", "CENTERED_TITLE":
			fonts.Heading = family
		case "BODY", "SUBTITLE":
			fonts.Body = family
		}
	}
	return fonts
}

func firstRunFamily(el *deck.PageElement) string {
	shape, ok := el.Content.(*deck.Shape)
	if !ok || shape.Text == nil {
		return ""
	}
	for _, te := range shape.Text.Elements {
		if te.Run != nil && te.Run.Style.FontFamily != "" {
			return te.Run.Style.FontFamily
		}
	}
	return ""
}
