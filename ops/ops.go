// Package ops defines the atomic mutation operations handed to the
// external batch-apply service, and the narrow interface of that
// service. Request order is a correctness contract: element creation
// precedes property mutation, group children precede their group,
// and within text styling bullet creation precedes bullet deletion
// precedes paragraph styling.
package ops

import (
	"context"

	"github.com/ThisIsMyPseudonym/jsonprez/geom"
)

// Request is one atomic mutation.
type Request interface {
	Kind() string
}

// Applier submits an ordered batch of requests. Submission mechanics
// (transport, retries, batching limits) live behind this interface.
type Applier interface {
	Apply(ctx context.Context, requests []Request) error
}

// Range is a half-open [Start, End) index range over element text.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// CreateSlide appends a slide to the deck.
type CreateSlide struct {
	ObjectID string
	Index    int
}

func (CreateSlide) Kind() string { return "createSlide" }

// CreateElement creates a shape, image, line, table or chart element
// on a slide at its base size. Placement arrives in a following
// SetTransform; creation always precedes property mutation.
type CreateElement struct {
	ObjectID      string
	SlideID       string
	ElementType   string // doc element type
	ShapeType     string
	ImageURL      string
	Category      string // line category
	Rows, Columns int
	SpreadsheetID string
	ChartID       int64
	Width, Height float64 // points, base size
}

func (CreateElement) Kind() string { return "createElement" }

// CreateGroup groups previously created children. The children must
// already exist when the group request is applied.
type CreateGroup struct {
	ObjectID string
	SlideID  string
	Children []string
}

func (CreateGroup) Kind() string { return "createGroup" }

// SetTransform replaces an element's transform.
type SetTransform struct {
	ObjectID  string
	Transform geom.Raw
}

func (SetTransform) Kind() string { return "setTransform" }

// SetShapeFill sets the solid fill of a shape.
type SetShapeFill struct {
	ObjectID string
	Color    string
}

func (SetShapeFill) Kind() string { return "setShapeFill" }

// SetBackground sets the page fill of a slide.
type SetBackground struct {
	SlideID  string
	Color    string
	ImageURL string
}

func (SetBackground) Kind() string { return "setBackground" }

// InsertText inserts text into a shape's text container.
type InsertText struct {
	ObjectID       string
	Text           string
	InsertionIndex int
}

func (InsertText) Kind() string { return "insertText" }

// TextStyle is the character styling applied by SetTextStyle. All
// fields are written; absent source values arrive zeroed.
type TextStyle struct {
	Color         string
	FontSize      float64
	FontFamily    string
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	SmallCaps     bool
	Link          string
}

// SetTextStyle styles one index range of a text container.
type SetTextStyle struct {
	ObjectID string
	Range    Range
	Style    TextStyle
}

func (SetTextStyle) Kind() string { return "setTextStyle" }

// ParagraphStyle is the paragraph styling applied by
// SetParagraphStyle.
type ParagraphStyle struct {
	Alignment       string
	IndentStart     float64
	IndentFirstLine float64
	SpaceAbove      float64
	SpaceBelow      float64
	LineSpacing     float64
}

// SetParagraphStyle styles the paragraphs intersecting a range.
type SetParagraphStyle struct {
	ObjectID string
	Range    Range
	Style    ParagraphStyle
}

func (SetParagraphStyle) Kind() string { return "setParagraphStyle" }

// CreateBullet turns the paragraphs intersecting the range into list
// items. Creating a bullet can bleed list formatting into adjacent
// paragraphs, which later paragraph-style requests restore.
type CreateBullet struct {
	ObjectID     string
	Range        Range
	Glyph        string
	NestingLevel int
}

func (CreateBullet) Kind() string { return "createBullet" }

// DeleteBullet removes list formatting from the paragraphs
// intersecting the range. Deleting a bullet also resets indentation,
// which later paragraph-style requests restore.
type DeleteBullet struct {
	ObjectID string
	Range    Range
}

func (DeleteBullet) Kind() string { return "deleteBullet" }
