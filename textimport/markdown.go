// Package textimport converts markdown and HTML fragments into the
// denormalized run lists used by the canonical document, so imported
// text flows through the same encoding path as extracted text.
package textimport

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/ThisIsMyPseudonym/jsonprez/doc"
	"github.com/ThisIsMyPseudonym/jsonprez/themecolor"
)

// Heading sizes by level; deeper levels use the body size.
var headingSizes = []float64{28, 22, 18}

const (
	bodySize      = themecolor.DefaultFontSize
	monoFamily    = "Courier New"
	bulletGlyph   = "●"
	hyperlinkHex  = "#1155cc"
	spacingNormal = 6
)

// Markdown parses a markdown fragment and returns it as styled runs
// with paragraph metadata and bullets, ready for text encoding.
func Markdown(source string) []doc.TextRun {
	src := []byte(source)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	c := &converter{}
	c.walkMarkdown(root, src, 0)
	c.stripFinalNewline()
	return c.runs
}

type converter struct {
	runs []doc.TextRun
}

// runStyle is the inline styling state threaded through the walk.
type runStyle struct {
	Size   float64
	Family string
	Bold   bool
	Italic bool
	Link   string
	Color  string
}

func (c *converter) walkMarkdown(node ast.Node, src []byte, level int) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading:
			size := bodySize
			if n.Level-1 < len(headingSizes) {
				size = headingSizes[n.Level-1]
			}
			c.paragraph(n, src, runStyle{Size: size, Bold: true}, nil)
		case *ast.Paragraph:
			c.paragraph(n, src, runStyle{Size: bodySize}, nil)
		case *ast.List:
			c.list(n, src, level)
		}
	}
}

func (c *converter) list(n *ast.List, src []byte, level int) {
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		bullet := &doc.Bullet{Glyph: bulletGlyph, NestingLevel: level}
		for block := item.FirstChild(); block != nil; block = block.NextSibling() {
			switch b := block.(type) {
			case *ast.Paragraph:
				c.paragraph(b, src, runStyle{Size: bodySize}, bullet)
			case *ast.TextBlock:
				c.paragraph(b, src, runStyle{Size: bodySize}, bullet)
			case *ast.List:
				c.list(b, src, level+1)
			}
		}
	}
}

// paragraph emits the inline runs of one block, closed with the
// structural newline that separates paragraphs in run text.
func (c *converter) paragraph(block ast.Node, src []byte, base runStyle, bullet *doc.Bullet) {
	ps := &doc.ParagraphStyle{
		Alignment:  "left",
		SpaceBelow: spacingNormal,
	}
	if bullet != nil {
		ps.IndentStart = 18 * float64(bullet.NestingLevel+1)
	}
	runs := c.inline(block, src, base)
	if len(runs) == 0 {
		return
	}
	runs[len(runs)-1].Text += "\n"
	for i := range runs {
		runs[i].Paragraph = ps
		runs[i].Bullet = bullet
	}
	c.runs = append(c.runs, runs...)
}

func (c *converter) inline(parent ast.Node, src []byte, style runStyle) []doc.TextRun {
	var out []doc.TextRun
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			txt := string(n.Segment.Value(src))
			if n.SoftLineBreak() || n.HardLineBreak() {
				txt += " "
			}
			out = append(out, styledRun(txt, style))
		case *ast.Emphasis:
			st := style
			if n.Level >= 2 {
				st.Bold = true
			} else {
				st.Italic = true
			}
			out = append(out, c.inline(n, src, st)...)
		case *ast.Link:
			st := style
			st.Link = string(n.Destination)
			st.Color = hyperlinkHex
			out = append(out, c.inline(n, src, st)...)
		case *ast.AutoLink:
			st := style
			st.Link = string(n.URL(src))
			st.Color = hyperlinkHex
			out = append(out, styledRun(string(n.Label(src)), st))
		case *ast.CodeSpan:
			st := style
			st.Family = monoFamily
			out = append(out, styledRun(string(n.Text(src)), st))
		default:
			out = append(out, c.inline(n, src, style)...)
		}
	}
	return out
}

func styledRun(text string, st runStyle) doc.TextRun {
	family := st.Family
	if family == "" {
		family = themecolor.DefaultFontFamily
	}
	color := st.Color
	if color == "" {
		color = themecolor.DefaultTextColor
	}
	return doc.TextRun{
		Text:       text,
		Color:      color,
		FontSize:   st.Size,
		FontFamily: family,
		Bold:       st.Bold,
		Italic:     st.Italic,
		Link:       st.Link,
	}
}

// stripFinalNewline drops the structural newline on the last run,
// matching the trailing-newline rule of the text codec.
func (c *converter) stripFinalNewline() {
	if len(c.runs) == 0 {
		return
	}
	last := &c.runs[len(c.runs)-1]
	last.Text = strings.TrimSuffix(last.Text, "\n")
	if last.Text == "" && len(c.runs) > 1 {
		c.runs = c.runs[:len(c.runs)-1]
	}
}
