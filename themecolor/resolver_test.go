package themecolor_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ThisIsMyPseudonym/jsonprez/deck"
	"github.com/ThisIsMyPseudonym/jsonprez/geom"
	"github.com/ThisIsMyPseudonym/jsonprez/themecolor"
)

func twoMasterPresentation() *deck.Presentation {
	return &deck.Presentation{
		PageSize: deck.Size{Width: 720, Height: 405, Unit: geom.UnitPoint},
		Masters: []*deck.Master{
			{ID: "m1", ColorScheme: deck.ColorScheme{"ACCENT1": "#ff0000", "DARK1": "#101010"}},
			{ID: "m2", ColorScheme: deck.ColorScheme{"ACCENT1": "#00ff00"}},
		},
		Layouts: []*deck.Layout{
			{ID: "l1", MasterID: "m1"},
			{ID: "l2", MasterID: "m2"},
			{ID: "l3", MasterID: "m1"},
		},
		Slides: []*deck.Slide{
			{ID: "s0", LayoutID: "l1"},
			{ID: "s1", LayoutID: "l2"},
			{ID: "s2", LayoutID: "l3"},
		},
	}
}

func TestResolvePerSlideSchemes(t *testing.T) {
	r := themecolor.NewResolver(twoMasterPresentation(), themecolor.Options{})

	a0 := r.Resolve("ACCENT1", 0)
	a1 := r.Resolve("ACCENT1", 1)
	a2 := r.Resolve("ACCENT1", 2)
	if a0 == a1 {
		t.Errorf("slides on different masters resolved ACCENT1 identically (%s)", a0)
	}
	if a0 != a2 {
		t.Errorf("slides sharing a master resolved ACCENT1 differently (%s vs %s)", a0, a2)
	}
	if a0 != "#ff0000" || a1 != "#00ff00" {
		t.Errorf("got %s, %s; want scheme colors", a0, a1)
	}
}

func TestResolveLayoutOverridesMaster(t *testing.T) {
	p := twoMasterPresentation()
	p.Layouts[0].ColorScheme = deck.ColorScheme{"ACCENT1": "#0000ff"}
	r := themecolor.NewResolver(p, themecolor.Options{})
	if got := r.Resolve("ACCENT1", 0); got != "#0000ff" {
		t.Errorf("Resolve = %s, want layout override #0000ff", got)
	}
}

func TestResolvePassThrough(t *testing.T) {
	r := themecolor.NewResolver(twoMasterPresentation(), themecolor.Options{})
	for _, tok := range []string{"#abcdef", "transparent", "none"} {
		if got := r.Resolve(tok, 0); got != tok {
			t.Errorf("Resolve(%q) = %q, want pass-through", tok, got)
		}
	}
}

func TestResolveFallbackTiers(t *testing.T) {
	p := twoMasterPresentation()
	p.Theme = deck.ColorScheme{"ACCENT3": "#123456"}
	p.ThemeName = "Simple Dark"
	r := themecolor.NewResolver(p, themecolor.Options{})

	t.Run("static theme map", func(t *testing.T) {
		if got := r.Resolve("ACCENT3", 0); got != "#123456" {
			t.Errorf("Resolve = %s, want presentation theme value", got)
		}
	})
	t.Run("builtin palette by theme name", func(t *testing.T) {
		if got := r.Resolve("ACCENT4", 0); got != "#ff5252" {
			t.Errorf("Resolve = %s, want SIMPLE_DARK palette value", got)
		}
	})
	t.Run("default palette", func(t *testing.T) {
		p2 := twoMasterPresentation()
		r2 := themecolor.NewResolver(p2, themecolor.Options{})
		if got := r2.Resolve("HYPERLINK", 0); got != "#1155cc" {
			t.Errorf("Resolve = %s, want default palette value", got)
		}
	})
	t.Run("unknown token never fatal", func(t *testing.T) {
		if got := r.Resolve("NOT_A_TOKEN", 0); got == "" {
			t.Error("unknown token resolved to empty string")
		}
	})
}

func TestResolveRawMode(t *testing.T) {
	p := twoMasterPresentation()
	p.Theme = deck.ColorScheme{"ACCENT3": "#123456"}
	p.ThemeName = "Simple Dark"
	r := themecolor.NewResolver(p, themecolor.Options{Raw: true})

	// Slide scheme still applies.
	if got := r.Resolve("ACCENT1", 0); got != "#ff0000" {
		t.Errorf("raw mode dropped the slide scheme: %s", got)
	}
	// Static theme and builtin tiers are disabled; defaults apply.
	if got := r.Resolve("ACCENT3", 0); got != "#34a853" {
		t.Errorf("raw mode used a disabled tier: %s", got)
	}
}

func TestBackgroundShapeDetection(t *testing.T) {
	p := twoMasterPresentation()
	full := &deck.PageElement{
		ID:   "bg",
		Size: deck.Size{Width: 720, Height: 405, Unit: geom.UnitPoint},
		Content: &deck.Shape{
			ShapeType: "RECTANGLE",
			Fill:      &deck.Fill{Type: "solid", Color: "ACCENT1"},
		},
	}
	small := &deck.PageElement{
		ID:   "tiny",
		Size: deck.Size{Width: 100, Height: 50, Unit: geom.UnitPoint},
		Content: &deck.Shape{
			ShapeType: "RECTANGLE",
			Fill:      &deck.Fill{Type: "solid", Color: "#ffffff"},
		},
	}
	p.Slides[0].Elements = []*deck.PageElement{small, full}

	r := themecolor.NewResolver(p, themecolor.Options{})
	fill, consumed := r.Background(0)
	if fill == nil {
		t.Fatal("full-bleed shape not detected as background")
	}
	if consumed != "bg" {
		t.Errorf("consumed element = %q, want bg", consumed)
	}
	if fill.Color != "ACCENT1" {
		t.Errorf("background color token = %q", fill.Color)
	}
}

func TestBackgroundExplicitFillWins(t *testing.T) {
	p := twoMasterPresentation()
	p.Slides[0].Background = &deck.Fill{Type: "solid", Color: "DARK1"}
	p.Slides[0].Elements = []*deck.PageElement{{
		ID:      "bg",
		Size:    deck.Size{Width: 720, Height: 405, Unit: geom.UnitPoint},
		Content: &deck.Shape{Fill: &deck.Fill{Type: "solid", Color: "#ffffff"}},
	}}
	r := themecolor.NewResolver(p, themecolor.Options{})
	fill, consumed := r.Background(0)
	if fill == nil || fill.Color != "DARK1" || consumed != "" {
		t.Fatalf("explicit page fill lost: fill=%+v consumed=%q", fill, consumed)
	}
}

func TestRunStyleInheritance(t *testing.T) {
	size := 28.0
	bold := true
	p := twoMasterPresentation()
	p.Layouts[0].Elements = []*deck.PageElement{{
		ID:          "ph-title",
		Placeholder: &deck.Placeholder{Type: "TITLE"},
		Content: &deck.Shape{Text: &deck.TextBody{Elements: []deck.TextElement{
			{Run: &deck.TextRun{Text: "Title", Style: deck.TextStyle{
				FontSize: &size, FontFamily: "Georgia", Bold: &bold, Color: "ACCENT1",
			}}},
		}}},
	}}
	el := &deck.PageElement{
		ID:          "t1",
		Placeholder: &deck.Placeholder{Type: "TITLE"},
		Content:     &deck.Shape{},
	}
	r := themecolor.NewResolver(p, themecolor.Options{})

	t.Run("inherits from layout placeholder", func(t *testing.T) {
		got := r.RunStyle(deck.TextStyle{}, el, 0)
		want := themecolor.ResolvedStyle{Color: "#ff0000", FontSize: 28, FontFamily: "Georgia", Bold: true}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("RunStyle mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("explicit run value short-circuits", func(t *testing.T) {
		own := 12.0
		got := r.RunStyle(deck.TextStyle{FontSize: &own, Color: "#222222"}, el, 0)
		if got.FontSize != 12 || got.Color != "#222222" {
			t.Errorf("explicit values lost: %+v", got)
		}
		if got.FontFamily != "Georgia" {
			t.Errorf("unset property did not inherit: %+v", got)
		}
	})

	t.Run("raw mode forces explicit-or-default", func(t *testing.T) {
		rr := themecolor.NewResolver(p, themecolor.Options{Raw: true})
		got := rr.RunStyle(deck.TextStyle{}, el, 0)
		want := themecolor.ResolvedStyle{
			Color:      themecolor.DefaultTextColor,
			FontSize:   themecolor.DefaultFontSize,
			FontFamily: themecolor.DefaultFontFamily,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("raw RunStyle mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestNoMatchingPlaceholderFallsThrough(t *testing.T) {
	p := twoMasterPresentation()
	el := &deck.PageElement{
		ID:          "b1",
		Placeholder: &deck.Placeholder{Type: "BODY", Index: 3},
		Content:     &deck.Shape{},
	}
	r := themecolor.NewResolver(p, themecolor.Options{})
	got := r.RunStyle(deck.TextStyle{}, el, 0)
	if got.FontFamily != themecolor.DefaultFontFamily || got.FontSize != themecolor.DefaultFontSize {
		t.Errorf("missing placeholder chain should default: %+v", got)
	}
}
