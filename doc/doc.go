// Package doc defines the canonical JSON document produced by
// extraction and consumed by generation.
package doc

import "github.com/ThisIsMyPseudonym/jsonprez/geom"

// Document is the canonical representation of a deck. All lengths
// are in points; all colors are concrete hex strings or the
// sentinels "transparent" and "none".
type Document struct {
	Config Config  `json:"config"`
	Slides []Slide `json:"slides"`
}

// Config carries deck-level settings.
type Config struct {
	Title      string  `json:"title,omitempty"`
	PageWidth  float64 `json:"pageWidth,omitempty"`
	PageHeight float64 `json:"pageHeight,omitempty"`
	Theme      Theme   `json:"theme"`
}

// Theme is the resolved presentation-level theme.
type Theme struct {
	Name   string            `json:"name,omitempty"`
	Colors map[string]string `json:"colors,omitempty"`
	Fonts  Fonts             `json:"fonts"`
}

// Fonts names the heading and body font families.
type Fonts struct {
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body,omitempty"`
}

// Slide is one page of the canonical document.
type Slide struct {
	Background   *Background `json:"background,omitempty"`
	SpeakerNotes string      `json:"speakerNotes,omitempty"`
	Elements     []Element   `json:"elements"`
}

// Background describes the page fill.
type Background struct {
	Type     string `json:"type"` // color, image, none
	Color    string `json:"color,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Element types.
const (
	TypeShape = "shape"
	TypeImage = "image"
	TypeLine  = "line"
	TypeTable = "table"
	TypeGroup = "group"
	TypeChart = "chart"
)

// Element is one element of a slide, in top-left geometry.
//
// Transform, when present, is the source affine the geometry was
// decomposed from. Generation reuses it verbatim (re-unitizing only
// the translation) instead of recomposing from rotation and flips,
// which would accumulate floating error.
type Element struct {
	Type     string  `json:"type"`
	ID       string  `json:"id,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Rotation float64 `json:"rotation,omitempty"`
	FlipH    bool    `json:"flipH,omitempty"`
	FlipV    bool    `json:"flipV,omitempty"`

	Transform *geom.Raw `json:"transform,omitempty"`

	// shape
	ShapeType string    `json:"shapeType,omitempty"`
	Fill      string    `json:"fill,omitempty"`
	Outline   *Outline  `json:"outline,omitempty"`
	Text      []TextRun `json:"text,omitempty"`

	// image
	ImageURL string `json:"imageUrl,omitempty"`

	// line
	Line *LineProps `json:"line,omitempty"`

	// table
	Rows    int `json:"rows,omitempty"`
	Columns int `json:"columns,omitempty"`

	// group
	Children []Element `json:"children,omitempty"`

	// chart
	SpreadsheetID string `json:"spreadsheetId,omitempty"`
	ChartID       int64  `json:"chartId,omitempty"`
}

// Outline describes a shape border.
type Outline struct {
	Color     string  `json:"color,omitempty"`
	Weight    float64 `json:"weight,omitempty"`
	DashStyle string  `json:"dashStyle,omitempty"`
}

// LineProps describes a line element.
type LineProps struct {
	Category  string  `json:"category,omitempty"`
	Weight    float64 `json:"weight,omitempty"`
	DashStyle string  `json:"dashStyle,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// TextRun is one styled span of element text. Paragraph metadata is
// duplicated onto every run of the paragraph so each run can be
// emitted independently; a run starts a paragraph when it is the
// first run or the previous run's text ends with a newline.
type TextRun struct {
	Text          string          `json:"text"`
	Color         string          `json:"color,omitempty"`
	FontSize      float64         `json:"fontSize,omitempty"`
	FontFamily    string          `json:"fontFamily,omitempty"`
	Bold          bool            `json:"bold,omitempty"`
	Italic        bool            `json:"italic,omitempty"`
	Underline     bool            `json:"underline,omitempty"`
	Strikethrough bool            `json:"strikethrough,omitempty"`
	SmallCaps     bool            `json:"smallCaps,omitempty"`
	Link          string          `json:"link,omitempty"`
	Paragraph     *ParagraphStyle `json:"paragraph,omitempty"`
	Bullet        *Bullet         `json:"bullet,omitempty"`
}

// ParagraphStyle is the paragraph-level styling carried on each run.
type ParagraphStyle struct {
	Alignment       string  `json:"alignment,omitempty"`
	IndentStart     float64 `json:"indentStart,omitempty"`
	IndentFirstLine float64 `json:"indentFirstLine,omitempty"`
	SpaceAbove      float64 `json:"spaceAbove,omitempty"`
	SpaceBelow      float64 `json:"spaceBelow,omitempty"`
	LineSpacing     float64 `json:"lineSpacing,omitempty"`
}

// Bullet marks the run's paragraph as a list item.
type Bullet struct {
	ListID       string `json:"listId,omitempty"`
	NestingLevel int    `json:"nestingLevel,omitempty"`
	Glyph        string `json:"glyph,omitempty"`
}

// StartsParagraph reports whether run i of runs opens a paragraph.
func StartsParagraph(runs []TextRun, i int) bool {
	if i == 0 {
		return true
	}
	prev := runs[i-1].Text
	return len(prev) > 0 && prev[len(prev)-1] == '\n'
}
