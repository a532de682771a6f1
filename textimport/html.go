package textimport

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ThisIsMyPseudonym/jsonprez/doc"
)

// HTML parses an HTML fragment and returns it as styled runs with
// paragraph metadata and bullets. Block structure is limited to
// headings, paragraphs and list items; everything else contributes
// inline text.
func HTML(source string) ([]doc.TextRun, error) {
	root, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return nil, err
	}
	c := &converter{}
	c.walkHTML(root, 0)
	c.stripFinalNewline()
	return c.runs, nil
}

func (c *converter) walkHTML(n *html.Node, level int) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			size := bodySize
			if lvl := int(n.Data[1] - '0'); lvl-1 < len(headingSizes) {
				size = headingSizes[lvl-1]
			}
			c.htmlParagraph(n, runStyle{Size: size, Bold: true}, nil)
			return
		case atom.P:
			c.htmlParagraph(n, runStyle{Size: bodySize}, nil)
			return
		case atom.Li:
			bullet := &doc.Bullet{Glyph: bulletGlyph, NestingLevel: level}
			c.htmlParagraph(n, runStyle{Size: bodySize}, bullet)
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				if child.DataAtom == atom.Ul || child.DataAtom == atom.Ol {
					c.walkHTML(child, level+1)
				}
			}
			return
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.walkHTML(child, level)
	}
}

func (c *converter) htmlParagraph(n *html.Node, base runStyle, bullet *doc.Bullet) {
	ps := &doc.ParagraphStyle{
		Alignment:  "left",
		SpaceBelow: spacingNormal,
	}
	if bullet != nil {
		ps.IndentStart = 18 * float64(bullet.NestingLevel+1)
	}
	runs := c.htmlInline(n, base)
	runs = trimParagraphEdges(runs)
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

func (c *converter) htmlInline(parent *html.Node, style runStyle) []doc.TextRun {
	var out []doc.TextRun
	for n := parent.FirstChild; n != nil; n = n.NextSibling {
		switch n.Type {
		case html.TextNode:
			txt := collapseSpace(n.Data)
			if txt == "" {
				continue
			}
			out = append(out, styledRun(txt, style))
		case html.ElementNode:
			st := style
			switch n.DataAtom {
			case atom.B, atom.Strong:
				st.Bold = true
			case atom.I, atom.Em:
				st.Italic = true
			case atom.Code, atom.Pre:
				st.Family = monoFamily
			case atom.A:
				for _, a := range n.Attr {
					if a.Key == "href" {
						st.Link = a.Val
						st.Color = hyperlinkHex
						break
					}
				}
			case atom.Ul, atom.Ol:
				// Nested list blocks are handled by the outer walk.
				continue
			case atom.Br:
				out = append(out, styledRun(" ", style))
				continue
			}
			out = append(out, c.htmlInline(n, st)...)
		}
	}
	return out
}

// collapseSpace folds whitespace runs to single spaces while keeping
// boundary spaces, so text split across inline elements rejoins with
// its original separation.
func collapseSpace(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	if collapsed == "" {
		if s == "" {
			return ""
		}
		return " "
	}
	if s[0] == ' ' || s[0] == '\n' || s[0] == '\t' || s[0] == '\r' {
		collapsed = " " + collapsed
	}
	last := s[len(s)-1]
	if last == ' ' || last == '\n' || last == '\t' || last == '\r' {
		collapsed += " "
	}
	return collapsed
}

// trimParagraphEdges removes the leading and trailing whitespace a
// block picks up from source formatting.
func trimParagraphEdges(runs []doc.TextRun) []doc.TextRun {
	for len(runs) > 0 {
		runs[0].Text = strings.TrimLeft(runs[0].Text, " ")
		if runs[0].Text != "" {
			break
		}
		runs = runs[1:]
	}
	for len(runs) > 0 {
		last := len(runs) - 1
		runs[last].Text = strings.TrimRight(runs[last].Text, " ")
		if runs[last].Text != "" {
			break
		}
		runs = runs[:last]
	}
	return runs
}
