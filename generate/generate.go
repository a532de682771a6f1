// Package generate walks a canonical document and produces the
// ordered list of atomic mutation operations that rebuild it through
// the external batch-apply service.
package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ThisIsMyPseudonym/jsonprez/doc"
	"github.com/ThisIsMyPseudonym/jsonprez/geom"
	"github.com/ThisIsMyPseudonym/jsonprez/observability"
	"github.com/ThisIsMyPseudonym/jsonprez/ops"
	"github.com/ThisIsMyPseudonym/jsonprez/textcodec"
	"github.com/ThisIsMyPseudonym/jsonprez/themecolor"
)

// Config configures a generation pipeline.
type Config struct {
	Logger observability.Logger
	// NewID supplies object IDs for created elements and slides.
	// Defaults to random UUIDs; inject a deterministic generator in
	// tests.
	NewID func() string
}

// Pipeline turns canonical documents into mutation batches. All
// per-call state lives in the generation context; a Pipeline may be
// reused across documents.
type Pipeline struct {
	cfg Config
}

// New creates a generation pipeline. The zero Config is usable.
func New(cfg Config) *Pipeline {
	if cfg.Logger == nil {
		cfg.Logger = observability.NopLogger{}
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &Pipeline{cfg: cfg}
}

type generation struct {
	logger observability.Logger
	newID  func() string
	reqs   []ops.Request
}

// Generate produces the ordered mutation batch for one document.
// Order is a correctness contract: slides and elements are created
// before they are mutated, group children before their group, and
// text operations follow the bullet ordering of the text codec. An
// index mismatch inside any text encoding aborts the whole batch;
// emitting corrupt ranges would silently misstyle everything after
// the first divergence.
func (p *Pipeline) Generate(ctx context.Context, d *doc.Document) ([]ops.Request, error) {
	if d == nil {
		return nil, errors.New("generate: document is required")
	}
	g := &generation{logger: p.cfg.Logger, newID: p.cfg.NewID}

	for i, slide := range d.Slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := g.slide(slide, i); err != nil {
			return nil, fmt.Errorf("generate: slide %d: %w", i, err)
		}
	}
	g.logger.Info("generation complete",
		observability.Int(observability.MetricRequestCount, len(g.reqs)))
	return g.reqs, nil
}

func (g *generation) slide(slide doc.Slide, index int) error {
	slideID := g.newID()
	g.reqs = append(g.reqs, ops.CreateSlide{ObjectID: slideID, Index: index})

	if bg := slide.Background; bg != nil {
		switch bg.Type {
		case "image":
			g.reqs = append(g.reqs, ops.SetBackground{SlideID: slideID, ImageURL: bg.ImageURL})
		case "none":
			g.reqs = append(g.reqs, ops.SetBackground{SlideID: slideID, Color: themecolor.None})
		default:
			g.reqs = append(g.reqs, ops.SetBackground{SlideID: slideID, Color: bg.Color})
		}
	}

	for i := range slide.Elements {
		if _, err := g.element(&slide.Elements[i], slideID); err != nil {
			return err
		}
	}
	return nil
}

// element emits the creation and mutation requests for one element
// and returns its object ID. Group children are created before the
// group itself.
func (g *generation) element(el *doc.Element, slideID string) (string, error) {
	objectID := el.ID
	if objectID == "" {
		objectID = g.newID()
	}

	if el.Type == doc.TypeGroup {
		childIDs := make([]string, 0, len(el.Children))
		for i := range el.Children {
			id, err := g.element(&el.Children[i], slideID)
			if err != nil {
				return "", err
			}
			childIDs = append(childIDs, id)
		}
		g.reqs = append(g.reqs, ops.CreateGroup{
			ObjectID: objectID,
			SlideID:  slideID,
			Children: childIDs,
		})
		return objectID, nil
	}

	create := ops.CreateElement{
		ObjectID:    objectID,
		SlideID:     slideID,
		ElementType: el.Type,
	}
	switch el.Type {
	case doc.TypeShape:
		create.ShapeType = el.ShapeType
	case doc.TypeImage:
		create.ImageURL = el.ImageURL
	case doc.TypeLine:
		if el.Line != nil {
			create.Category = el.Line.Category
		}
	case doc.TypeTable:
		create.Rows = el.Rows
		create.Columns = el.Columns
	case doc.TypeChart:
		create.SpreadsheetID = el.SpreadsheetID
		create.ChartID = el.ChartID
	default:
		return "", fmt.Errorf("element %q has unknown type %q", objectID, el.Type)
	}

	transform, baseW, baseH := g.placement(el)
	create.Width = baseW
	create.Height = baseH
	g.reqs = append(g.reqs, create)
	g.reqs = append(g.reqs, ops.SetTransform{ObjectID: objectID, Transform: transform})

	if el.Type == doc.TypeShape && el.Fill != "" {
		g.reqs = append(g.reqs, ops.SetShapeFill{ObjectID: objectID, Color: el.Fill})
	}

	if len(el.Text) > 0 {
		textReqs, err := textcodec.Encode(objectID, el.Text)
		if err != nil {
			return "", fmt.Errorf("element %q: %w", objectID, err)
		}
		g.reqs = append(g.reqs, textReqs...)
	}
	return objectID, nil
}

// placement returns the element's transform in EMU translation along
// with its base size in points.
//
// When the source affine survived extraction it is reused directly,
// only the translation unit changes; recomposing from the decomposed
// rotation/scale/flip accumulates floating error and can visibly
// misplace rotated or sheared elements. The rebuilt path applies
// only when no source matrix is known.
func (g *generation) placement(el *doc.Element) (geom.Raw, float64, float64) {
	if el.Transform != nil {
		a := geom.FromRaw(*el.Transform)
		sw, sh := a.ScaleFactors()
		baseW, baseH := el.W, el.H
		if sw > 0 {
			baseW = el.W / sw
		}
		if sh > 0 {
			baseH = el.H / sh
		}
		return geom.ToRaw(a, geom.UnitEMU), baseW, baseH
	}
	a := geom.BuildPlacement(geom.Geometry{
		X: el.X, Y: el.Y, W: el.W, H: el.H,
		RotationDeg: el.Rotation,
		FlipH:       el.FlipH,
		FlipV:       el.FlipV,
	})
	return geom.ToRaw(a, geom.UnitEMU), el.W, el.H
}
