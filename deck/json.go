package deck

import (
	"encoding/json"
	"fmt"

	"github.com/ThisIsMyPseudonym/jsonprez/geom"
)

// pageElementWire is the JSON form of a page element. The payload
// arrives as mutually exclusive optional fields; it is converted to
// the Content union at the boundary so the rest of the code can
// switch exhaustively instead of probing pointers.
type pageElementWire struct {
	ID          string       `json:"id"`
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Transform   geom.Raw     `json:"transform,omitempty"`
	Size        Size         `json:"size"`
	Placeholder *Placeholder `json:"placeholder,omitempty"`

	Shape    *Shape    `json:"shape,omitempty"`
	Image    *Image    `json:"image,omitempty"`
	Line     *Line     `json:"line,omitempty"`
	Table    *Table    `json:"table,omitempty"`
	Group    *Group    `json:"group,omitempty"`
	Chart    *Chart    `json:"chart,omitempty"`
	Freeform *Freeform `json:"freeform,omitempty"`
}

func (e *PageElement) UnmarshalJSON(data []byte) error {
	var w pageElementWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.ID = w.ID
	e.Title = w.Title
	e.Description = w.Description
	e.Transform = w.Transform
	e.Size = w.Size
	e.Placeholder = w.Placeholder

	var payloads []Content
	for _, c := range []Content{w.Shape, w.Image, w.Line, w.Table, w.Group, w.Chart, w.Freeform} {
		if !isNilContent(c) {
			payloads = append(payloads, c)
		}
	}
	switch len(payloads) {
	case 0:
		return fmt.Errorf("element %q carries no payload", w.ID)
	case 1:
		e.Content = payloads[0]
		return nil
	default:
		return fmt.Errorf("element %q carries %d payloads, want exactly one", w.ID, len(payloads))
	}
}

func (e *PageElement) MarshalJSON() ([]byte, error) {
	w := pageElementWire{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Transform:   e.Transform,
		Size:        e.Size,
		Placeholder: e.Placeholder,
	}
	switch c := e.Content.(type) {
	case *Shape:
		w.Shape = c
	case *Image:
		w.Image = c
	case *Line:
		w.Line = c
	case *Table:
		w.Table = c
	case *Group:
		w.Group = c
	case *Chart:
		w.Chart = c
	case *Freeform:
		w.Freeform = c
	case nil:
		return nil, fmt.Errorf("element %q carries no payload", e.ID)
	default:
		return nil, fmt.Errorf("element %q carries unknown payload %T", e.ID, c)
	}
	return json.Marshal(w)
}

func isNilContent(c Content) bool {
	switch v := c.(type) {
	case *Shape:
		return v == nil
	case *Image:
		return v == nil
	case *Line:
		return v == nil
	case *Table:
		return v == nil
	case *Group:
		return v == nil
	case *Chart:
		return v == nil
	case *Freeform:
		return v == nil
	}
	return c == nil
}
