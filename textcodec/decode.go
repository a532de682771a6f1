// Package textcodec converts between the flat marker/run stream of a
// text-bearing element and structured paragraphs, and re-serializes
// paragraphs into index-exact mutation operations.
package textcodec

import (
	"strings"

	"github.com/ThisIsMyPseudonym/jsonprez/deck"
	"github.com/ThisIsMyPseudonym/jsonprez/doc"
)

// StyleFunc converts a run-level source style into a concrete
// document run (color resolved, placeholder inheritance applied).
// The returned run's Text, Paragraph and Bullet fields are ignored;
// Decode fills them.
type StyleFunc func(deck.TextStyle) doc.TextRun

// DefaultAlignment is assigned to paragraphs with no marker.
const DefaultAlignment = "left"

// paragraph is the intermediate grouping used during decoding.
type paragraph struct {
	marker *deck.ParagraphMarker
	runs   []deck.TextRun
}

// Decode reconstructs paragraph/run structure from the flat element
// stream and returns the denormalized run list, with paragraph
// metadata duplicated onto every run of its paragraph.
//
// A marker always describes the paragraph that follows it. The
// decoder therefore holds each marker pending until the next marker
// (or the end of the stream) flushes the runs collected in between;
// runs seen before the first marker get the default paragraph style.
func Decode(body *deck.TextBody, style StyleFunc) []doc.TextRun {
	if body == nil {
		return nil
	}
	if style == nil {
		style = func(deck.TextStyle) doc.TextRun { return doc.TextRun{} }
	}

	var (
		paragraphs []paragraph
		pending    *deck.ParagraphMarker
		collected  []deck.TextRun
		sawMarker  bool
	)
	flush := func() {
		if len(collected) == 0 && !sawMarker {
			return
		}
		paragraphs = append(paragraphs, paragraph{marker: pending, runs: collected})
		collected = nil
	}
	for _, te := range body.Elements {
		switch {
		case te.Marker != nil:
			flush()
			pending = te.Marker
			sawMarker = true
		case te.Run != nil:
			collected = append(collected, *te.Run)
		}
	}
	flush()

	paragraphs = stripTrailingNewline(paragraphs)
	inheritRunStyles(paragraphs)

	var out []doc.TextRun
	for _, p := range paragraphs {
		ps, bullet := paragraphMeta(p.marker)
		for _, r := range p.runs {
			run := style(r.Style)
			run.Text = r.Text
			run.Paragraph = ps
			run.Bullet = bullet
			out = append(out, run)
		}
	}
	return out
}

// stripTrailingNewline removes the structural newline that terminates
// the final run. A run emptied by the strip is dropped entirely when
// any other run exists.
func stripTrailingNewline(paragraphs []paragraph) []paragraph {
	total := 0
	for _, p := range paragraphs {
		total += len(p.runs)
	}
	if total == 0 {
		return paragraphs
	}
	lastP := len(paragraphs) - 1
	for lastP >= 0 && len(paragraphs[lastP].runs) == 0 {
		lastP--
	}
	if lastP < 0 {
		return paragraphs
	}
	runs := paragraphs[lastP].runs
	last := &runs[len(runs)-1]
	if !strings.HasSuffix(last.Text, "\n") {
		return paragraphs
	}
	last.Text = strings.TrimSuffix(last.Text, "\n")
	if last.Text == "" && total > 1 {
		paragraphs[lastP].runs = runs[:len(runs)-1]
	}
	return paragraphs
}

// inheritRunStyles fills missing font size and family from the
// nearest styled neighbor, forward then backward. Whitespace-only
// runs frequently lack explicit style in source data; without this
// they would fall all the way through to the hardcoded defaults.
func inheritRunStyles(paragraphs []paragraph) {
	var flat []*deck.TextRun
	for i := range paragraphs {
		for j := range paragraphs[i].runs {
			flat = append(flat, &paragraphs[i].runs[j])
		}
	}
	for i := 1; i < len(flat); i++ {
		if flat[i].Style.FontSize == nil {
			flat[i].Style.FontSize = flat[i-1].Style.FontSize
		}
		if flat[i].Style.FontFamily == "" {
			flat[i].Style.FontFamily = flat[i-1].Style.FontFamily
		}
	}
	for i := len(flat) - 2; i >= 0; i-- {
		if flat[i].Style.FontSize == nil {
			flat[i].Style.FontSize = flat[i+1].Style.FontSize
		}
		if flat[i].Style.FontFamily == "" {
			flat[i].Style.FontFamily = flat[i+1].Style.FontFamily
		}
	}
}

// paragraphMeta converts a marker into the denormalized paragraph
// style and bullet carried on each run.
func paragraphMeta(m *deck.ParagraphMarker) (*doc.ParagraphStyle, *doc.Bullet) {
	if m == nil {
		return &doc.ParagraphStyle{Alignment: DefaultAlignment}, nil
	}
	ps := &doc.ParagraphStyle{
		Alignment:       m.Alignment,
		IndentStart:     deref(m.IndentStart),
		IndentFirstLine: deref(m.IndentFirstLine),
		SpaceAbove:      deref(m.SpaceAbove),
		SpaceBelow:      deref(m.SpaceBelow),
		LineSpacing:     deref(m.LineSpacing),
	}
	if ps.Alignment == "" {
		ps.Alignment = DefaultAlignment
	}
	var bullet *doc.Bullet
	if m.Bullet != nil {
		bullet = &doc.Bullet{
			ListID:       m.Bullet.ListID,
			NestingLevel: m.Bullet.NestingLevel,
			Glyph:        m.Bullet.Glyph,
		}
	}
	return ps, bullet
}

// PlainText returns the concatenated text of a run list.
func PlainText(runs []doc.TextRun) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
