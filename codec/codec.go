// Package codec ties the extraction and generation pipelines
// together behind one entry point, including the JSON wire forms of
// both directions.
package codec

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThisIsMyPseudonym/jsonprez/deck"
	"github.com/ThisIsMyPseudonym/jsonprez/doc"
	"github.com/ThisIsMyPseudonym/jsonprez/extract"
	"github.com/ThisIsMyPseudonym/jsonprez/generate"
	"github.com/ThisIsMyPseudonym/jsonprez/observability"
	"github.com/ThisIsMyPseudonym/jsonprez/ops"
	"github.com/ThisIsMyPseudonym/jsonprez/recovery"
)

// Config configures both directions of the codec.
type Config struct {
	Logger    observability.Logger
	Recovery  recovery.Strategy
	RawColors bool
	NewID     func() string
}

// Codec converts presentation trees to canonical documents and
// canonical documents to mutation batches.
type Codec struct {
	extractor *extract.Pipeline
	generator *generate.Pipeline
	logger    observability.Logger
}

// New constructs a codec with basic components. The zero Config is
// usable.
func New(cfg Config) *Codec {
	if cfg.Logger == nil {
		cfg.Logger = observability.NopLogger{}
	}
	return &Codec{
		extractor: extract.New(extract.Config{
			Logger:    cfg.Logger,
			Recovery:  cfg.Recovery,
			RawColors: cfg.RawColors,
		}),
		generator: generate.New(generate.Config{
			Logger: cfg.Logger,
			NewID:  cfg.NewID,
		}),
		logger: cfg.Logger,
	}
}

// Extract converts a presentation tree into a canonical document.
func (c *Codec) Extract(ctx context.Context, pres *deck.Presentation) (*doc.Document, error) {
	return c.extractor.Extract(ctx, pres)
}

// ExtractJSON converts a presentation tree into the canonical JSON
// bytes.
func (c *Codec) ExtractJSON(ctx context.Context, pres *deck.Presentation) ([]byte, error) {
	d, err := c.Extract(ctx, pres)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(d, "", "  ")
}

// Generate converts a canonical document into an ordered mutation
// batch.
func (c *Codec) Generate(ctx context.Context, d *doc.Document) ([]ops.Request, error) {
	return c.generator.Generate(ctx, d)
}

// GenerateJSON parses canonical JSON bytes and converts them into an
// ordered mutation batch.
func (c *Codec) GenerateJSON(ctx context.Context, data []byte) ([]ops.Request, error) {
	var d doc.Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("codec: parsing document: %w", err)
	}
	return c.Generate(ctx, &d)
}

// Apply generates the mutation batch for a document and submits it
// through the given applier in one ordered call.
func (c *Codec) Apply(ctx context.Context, d *doc.Document, applier ops.Applier) error {
	if applier == nil {
		return fmt.Errorf("codec: applier is required")
	}
	reqs, err := c.Generate(ctx, d)
	if err != nil {
		return err
	}
	if err := applier.Apply(ctx, reqs); err != nil {
		return fmt.Errorf("codec: applying batch: %w", err)
	}
	return nil
}
