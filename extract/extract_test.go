package extract_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/ThisIsMyPseudonym/jsonprez/deck"
	"github.com/ThisIsMyPseudonym/jsonprez/doc"
	"github.com/ThisIsMyPseudonym/jsonprez/extract"
	"github.com/ThisIsMyPseudonym/jsonprez/geom"
	"github.com/ThisIsMyPseudonym/jsonprez/recovery"
)

func f(v float64) *float64 { return &v }

func basePresentation() *deck.Presentation {
	return &deck.Presentation{
		Title:    "Deck",
		PageSize: deck.Size{Width: 720, Height: 405, Unit: geom.UnitPoint},
		Masters: []*deck.Master{{
			ID:          "m1",
			ColorScheme: deck.ColorScheme{"ACCENT1": "#ff0000", "DARK1": "#111111"},
		}},
		Layouts: []*deck.Layout{{ID: "l1", MasterID: "m1"}},
		Slides:  []*deck.Slide{{ID: "s0", LayoutID: "l1"}},
	}
}

func TestExtractShapeWithText(t *testing.T) {
	p := basePresentation()
	size := 18.0
	p.Slides[0].Elements = []*deck.PageElement{{
		ID:        "sh1",
		Size:      deck.Size{Width: 200, Height: 100, Unit: geom.UnitPoint},
		Transform: geom.Raw{ScaleX: f(1), ScaleY: f(1), TranslateX: f(40), TranslateY: f(30), Unit: geom.UnitPoint},
		Content: &deck.Shape{
			ShapeType: "TEXT_BOX",
			Fill:      &deck.Fill{Type: "solid", Color: "ACCENT1"},
			Text: &deck.TextBody{Elements: []deck.TextElement{
				{Marker: &deck.ParagraphMarker{Alignment: "center"}},
				{Run: &deck.TextRun{Text: "Hello\n", Style: deck.TextStyle{FontSize: &size, Color: "DARK1"}}},
			}},
		},
	}}

	d, err := extract.New(extract.Config{}).Extract(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Slides) != 1 || len(d.Slides[0].Elements) != 1 {
		t.Fatalf("unexpected shape count: %+v", d.Slides)
	}
	el := d.Slides[0].Elements[0]
	if el.Type != doc.TypeShape || el.ShapeType != "TEXT_BOX" {
		t.Errorf("element = %+v", el)
	}
	if el.X != 40 || el.Y != 30 || el.W != 200 || el.H != 100 {
		t.Errorf("geometry = (%v, %v, %v, %v)", el.X, el.Y, el.W, el.H)
	}
	if el.Fill != "#ff0000" {
		t.Errorf("fill = %q, want resolved ACCENT1", el.Fill)
	}
	if el.Transform == nil {
		t.Error("source transform not preserved for fidelity")
	}
	if len(el.Text) != 1 {
		t.Fatalf("text runs = %+v", el.Text)
	}
	run := el.Text[0]
	if run.Text != "Hello" || run.Color != "#111111" || run.FontSize != 18 {
		t.Errorf("run = %+v", run)
	}
	if run.Paragraph == nil || run.Paragraph.Alignment != "center" {
		t.Errorf("paragraph style = %+v", run.Paragraph)
	}
}

func TestExtractGroupFlattensTransforms(t *testing.T) {
	p := basePresentation()
	p.Slides[0].Elements = []*deck.PageElement{{
		ID:        "g1",
		Size:      deck.Size{Width: 100, Height: 100, Unit: geom.UnitPoint},
		Transform: geom.Raw{ScaleX: f(2), ScaleY: f(2), TranslateX: f(100), TranslateY: f(100), Unit: geom.UnitPoint},
		Content: &deck.Group{Children: []*deck.PageElement{{
			ID:        "c1",
			Size:      deck.Size{Width: 10, Height: 10, Unit: geom.UnitPoint},
			Transform: geom.Raw{ScaleX: f(1), ScaleY: f(1), TranslateX: f(5), TranslateY: f(5), Unit: geom.UnitPoint},
			Content:   &deck.Shape{ShapeType: "RECTANGLE"},
		}}},
	}}

	d, err := extract.New(extract.Config{}).Extract(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	group := d.Slides[0].Elements[0]
	if group.Type != doc.TypeGroup || len(group.Children) != 1 {
		t.Fatalf("group = %+v", group)
	}
	child := group.Children[0]
	// World space: the parent scales by 2 and offsets by 100.
	if child.X != 110 || child.Y != 110 {
		t.Errorf("child position = (%v, %v), want (110, 110)", child.X, child.Y)
	}
	if child.W != 20 || child.H != 20 {
		t.Errorf("child size = (%v, %v), want (20, 20)", child.W, child.H)
	}
}

func TestExtractRotatedElementGeometry(t *testing.T) {
	p := basePresentation()
	src := geom.BuildMatrix(geom.Geometry{X: 50, Y: 60, W: 120, H: 80, RotationDeg: 270})
	raw := geom.ToRaw(src, geom.UnitPoint)
	p.Slides[0].Elements = []*deck.PageElement{{
		ID:        "rot",
		Size:      deck.Size{Width: 1, Height: 1, Unit: geom.UnitPoint},
		Transform: raw,
		Content:   &deck.Shape{ShapeType: "RECTANGLE"},
	}}
	d, err := extract.New(extract.Config{}).Extract(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	el := d.Slides[0].Elements[0]
	if el.Rotation != 270 {
		t.Errorf("rotation = %v, want 270", el.Rotation)
	}
	if math.Abs(el.X-50) > 1e-6 || math.Abs(el.Y-60) > 1e-6 {
		t.Errorf("position = (%v, %v), want (50, 60)", el.X, el.Y)
	}
}

func TestExtractFreeformFallsBackToRaster(t *testing.T) {
	p := basePresentation()
	p.Slides[0].Elements = []*deck.PageElement{{
		ID:   "ff",
		Size: deck.Size{Width: 50, Height: 40, Unit: geom.UnitPoint},
		Content: &deck.Freeform{
			PathData: []string{"M 0 0 C 10 10 20 0 30 10"},
			Fill:     &deck.Fill{Color: "ACCENT1"},
		},
	}}
	d, err := extract.New(extract.Config{}).Extract(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	el := d.Slides[0].Elements[0]
	if el.Type != doc.TypeImage {
		t.Fatalf("freeform degraded to %q, want image", el.Type)
	}
	if !strings.HasPrefix(el.ImageURL, "data:image/png;base64,") {
		t.Errorf("image URL %.40q is not a raster data URI", el.ImageURL)
	}
}

func TestExtractElementIsolation(t *testing.T) {
	p := basePresentation()
	p.Slides[0].Elements = []*deck.PageElement{
		{ID: "broken", Size: deck.Size{Width: 10, Height: 10}}, // no payload
		{ID: "ok", Size: deck.Size{Width: 10, Height: 10}, Content: &deck.Shape{ShapeType: "RECTANGLE"}},
	}

	t.Run("lenient skips and continues", func(t *testing.T) {
		strategy := recovery.NewLenientStrategy()
		d, err := extract.New(extract.Config{Recovery: strategy}).Extract(context.Background(), p)
		if err != nil {
			t.Fatal(err)
		}
		if len(d.Slides[0].Elements) != 1 || d.Slides[0].Elements[0].ID != "ok" {
			t.Errorf("elements = %+v", d.Slides[0].Elements)
		}
		if len(strategy.Errors) != 1 {
			t.Errorf("recorded %d errors, want 1", len(strategy.Errors))
		}
	})

	t.Run("strict aborts", func(t *testing.T) {
		_, err := extract.New(extract.Config{Recovery: recovery.NewStrictStrategy()}).Extract(context.Background(), p)
		if err == nil {
			t.Fatal("strict strategy did not abort")
		}
	})
}

func TestExtractBackgroundShapeConsumed(t *testing.T) {
	p := basePresentation()
	p.Slides[0].Elements = []*deck.PageElement{
		{
			ID:      "bg",
			Size:    deck.Size{Width: 720, Height: 405, Unit: geom.UnitPoint},
			Content: &deck.Shape{ShapeType: "RECTANGLE", Fill: &deck.Fill{Type: "solid", Color: "ACCENT1"}},
		},
		{
			ID:      "fg",
			Size:    deck.Size{Width: 100, Height: 100, Unit: geom.UnitPoint},
			Content: &deck.Shape{ShapeType: "RECTANGLE"},
		},
	}
	d, err := extract.New(extract.Config{}).Extract(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	s := d.Slides[0]
	if s.Background == nil || s.Background.Color != "#ff0000" {
		t.Fatalf("background = %+v", s.Background)
	}
	if len(s.Elements) != 1 || s.Elements[0].ID != "fg" {
		t.Errorf("background shape leaked into elements: %+v", s.Elements)
	}
}

func TestExtractSpeakerNotes(t *testing.T) {
	p := basePresentation()
	p.Slides[0].Notes = &deck.TextBody{Elements: []deck.TextElement{
		{Run: &deck.TextRun{Text: "remember the demo\n"}},
	}}
	d, err := extract.New(extract.Config{}).Extract(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if d.Slides[0].SpeakerNotes != "remember the demo" {
		t.Errorf("notes = %q", d.Slides[0].SpeakerNotes)
	}
}

func TestExtractEMUConversion(t *testing.T) {
	p := basePresentation()
	p.PageSize = deck.Size{Width: 9144000, Height: 5143500, Unit: geom.UnitEMU}
	p.Slides[0].Elements = []*deck.PageElement{{
		ID:        "sh1",
		Size:      deck.Size{Width: 1270000, Height: 635000, Unit: geom.UnitEMU},
		Transform: geom.Raw{ScaleX: f(1), ScaleY: f(1), TranslateX: f(127000), TranslateY: f(254000), Unit: geom.UnitEMU},
		Content:   &deck.Shape{ShapeType: "RECTANGLE"},
	}}
	d, err := extract.New(extract.Config{}).Extract(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if d.Config.PageWidth != 720 || d.Config.PageHeight != 405 {
		t.Errorf("page size = (%v, %v), want (720, 405)", d.Config.PageWidth, d.Config.PageHeight)
	}
	el := d.Slides[0].Elements[0]
	if el.X != 10 || el.Y != 20 || el.W != 100 || el.H != 50 {
		t.Errorf("geometry = (%v, %v, %v, %v), want points", el.X, el.Y, el.W, el.H)
	}
}
