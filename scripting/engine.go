package scripting

import (
	"context"

	"github.com/ThisIsMyPseudonym/jsonprez/doc"
)

// Engine runs user scripts against a canonical document, typically
// between extraction and generation.
type Engine interface {
	// Transform executes a script with the document bound to the
	// global `deck` value and returns the (possibly mutated)
	// document.
	Transform(ctx context.Context, d *doc.Document, script string) (*doc.Document, error)
}
