// Package deck models the presentation tree consumed from the
// reading service: masters, layouts, slides and their page elements,
// with raw transforms and flat marker/run text streams.
package deck

import "github.com/ThisIsMyPseudonym/jsonprez/geom"

// Presentation is the root of the tree handed over by the reading
// service. Slides reference layouts by ID, layouts reference masters.
type Presentation struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	PageSize  Size   `json:"pageSize"`
	ThemeName string `json:"themeName,omitempty"`
	// Theme is the presentation-level static color map, when the
	// reading service supplies one.
	Theme   ColorScheme `json:"theme,omitempty"`
	Masters []*Master   `json:"masters,omitempty"`
	Layouts []*Layout   `json:"layouts,omitempty"`
	Slides  []*Slide    `json:"slides,omitempty"`
}

// Size is a width/height pair with its unit.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit,omitempty"`
}

// Points returns the size converted to points.
func (s Size) Points() (w, h float64) {
	if s.Unit == geom.UnitEMU {
		return geom.EMUToPoints(s.Width), geom.EMUToPoints(s.Height)
	}
	return s.Width, s.Height
}

// Master carries a color scheme and the outermost placeholder
// elements of the inheritance chain.
type Master struct {
	ID          string         `json:"id"`
	ColorScheme ColorScheme    `json:"colorScheme,omitempty"`
	Background  *Fill          `json:"background,omitempty"`
	Elements    []*PageElement `json:"elements,omitempty"`
}

// Layout sits between a master and its slides. A layout may override
// parts of the master's color scheme.
type Layout struct {
	ID          string         `json:"id"`
	MasterID    string         `json:"masterId"`
	Name        string         `json:"name,omitempty"`
	ColorScheme ColorScheme    `json:"colorScheme,omitempty"`
	Background  *Fill          `json:"background,omitempty"`
	Elements    []*PageElement `json:"elements,omitempty"`
}

// Slide is one page of the deck.
type Slide struct {
	ID         string         `json:"id"`
	LayoutID   string         `json:"layoutId,omitempty"`
	Background *Fill          `json:"background,omitempty"`
	Elements   []*PageElement `json:"elements,omitempty"`
	Notes      *TextBody      `json:"notes,omitempty"`
}

// ColorScheme maps theme tokens ("ACCENT1", "DARK2", ...) to concrete
// hex colors. The same token resolves differently under different
// schemes.
type ColorScheme map[string]string

// PageElement is one visual element on a page. Exactly one Content
// payload is set.
type PageElement struct {
	ID          string       `json:"id"`
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Transform   geom.Raw     `json:"transform,omitempty"`
	Size        Size         `json:"size"`
	Placeholder *Placeholder `json:"placeholder,omitempty"`
	Content     Content      `json:"-"`
}

// Placeholder links an element to the corresponding placeholder on
// its layout and master, which supply inherited styling.
type Placeholder struct {
	Type  string `json:"type"`
	Index int    `json:"index,omitempty"`
}

// Content is the closed set of element payloads. Switching on the
// concrete type must cover every member; there is no overlap.
type Content interface {
	isContent()
}

// Shape is a geometric shape, optionally carrying text.
type Shape struct {
	ShapeType string    `json:"shapeType"`
	Fill      *Fill     `json:"fill,omitempty"`
	Outline   *Outline  `json:"outline,omitempty"`
	Text      *TextBody `json:"text,omitempty"`
}

// Image is a placed raster image.
type Image struct {
	SourceURL string `json:"sourceUrl,omitempty"`
	ContentID string `json:"contentId,omitempty"`
}

// Line is a connector or straight line.
type Line struct {
	Category  string  `json:"category,omitempty"`
	Weight    float64 `json:"weight,omitempty"`
	DashStyle string  `json:"dashStyle,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// Table is an embedded table. Cell construction is handled by an
// external collaborator; only the grid dimensions travel through.
type Table struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// Group nests child elements under a shared transform.
type Group struct {
	Children []*PageElement `json:"children"`
}

// Chart is a linked chart embed.
type Chart struct {
	SpreadsheetID string `json:"spreadsheetId,omitempty"`
	ChartID       int64  `json:"chartId,omitempty"`
}

// Freeform is a curved or freeform outline with no matrix
// representation of its geometry. It cannot be reconstructed as a
// vector element and is routed to the raster fallback.
type Freeform struct {
	PathData []string `json:"pathData,omitempty"`
	Fill     *Fill    `json:"fill,omitempty"`
}

func (*Shape) isContent()    {}
func (*Image) isContent()    {}
func (*Line) isContent()     {}
func (*Table) isContent()    {}
func (*Group) isContent()    {}
func (*Chart) isContent()    {}
func (*Freeform) isContent() {}

// Fill is a page or shape fill. Color is a color token: a literal
// hex string, a theme reference, or the sentinels "transparent" and
// "none".
type Fill struct {
	Type     string   `json:"type,omitempty"` // solid, image, none
	Color    string   `json:"color,omitempty"`
	Alpha    *float64 `json:"alpha,omitempty"`
	ImageURL string   `json:"imageUrl,omitempty"`
}

// Outline is a shape border.
type Outline struct {
	Color     string  `json:"color,omitempty"`
	Weight    float64 `json:"weight,omitempty"`
	DashStyle string  `json:"dashStyle,omitempty"`
}

// TextBody is the flat marker/run stream of a text-bearing element.
type TextBody struct {
	Elements []TextElement `json:"elements"`
}

// TextElement is one entry of the flat stream: either a paragraph
// marker or a text run, never both. A marker describes the paragraph
// that follows it.
type TextElement struct {
	Marker *ParagraphMarker `json:"marker,omitempty"`
	Run    *TextRun         `json:"run,omitempty"`
}

// ParagraphMarker carries the style of the upcoming paragraph.
type ParagraphMarker struct {
	Alignment       string   `json:"alignment,omitempty"`
	IndentStart     *float64 `json:"indentStart,omitempty"`
	IndentFirstLine *float64 `json:"indentFirstLine,omitempty"`
	SpaceAbove      *float64 `json:"spaceAbove,omitempty"`
	SpaceBelow      *float64 `json:"spaceBelow,omitempty"`
	LineSpacing     *float64 `json:"lineSpacing,omitempty"`
	Bullet          *Bullet  `json:"bullet,omitempty"`
}

// Bullet marks a paragraph as a list item.
type Bullet struct {
	ListID       string `json:"listId,omitempty"`
	NestingLevel int    `json:"nestingLevel,omitempty"`
	Glyph        string `json:"glyph,omitempty"`
}

// TextRun is a contiguous span of text sharing one style.
type TextRun struct {
	Text  string    `json:"text"`
	Style TextStyle `json:"style,omitempty"`
}

// TextStyle holds the run-level character styling. Color is a color
// token. Nil pointers mean the property was not explicit in the
// source and is subject to inheritance.
type TextStyle struct {
	Color         string   `json:"color,omitempty"`
	FontSize      *float64 `json:"fontSize,omitempty"`
	FontFamily    string   `json:"fontFamily,omitempty"`
	Bold          *bool    `json:"bold,omitempty"`
	Italic        *bool    `json:"italic,omitempty"`
	Underline     *bool    `json:"underline,omitempty"`
	Strikethrough *bool    `json:"strikethrough,omitempty"`
	SmallCaps     *bool    `json:"smallCaps,omitempty"`
	Link          string   `json:"link,omitempty"`
}
