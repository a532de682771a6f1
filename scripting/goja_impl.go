package scripting

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dop251/goja"

	"github.com/ThisIsMyPseudonym/jsonprez/doc"
)

// GojaEngine executes document transforms in a JavaScript runtime.
// Each Transform call uses a fresh runtime; scripts cannot leak
// state into later calls.
type GojaEngine struct{}

func NewEngine() *GojaEngine {
	return &GojaEngine{}
}

// Transform binds the document to the global `deck` value, runs the
// script, and reads `deck` back. The script sees plain objects and
// arrays mirroring the canonical JSON, so `deck.slides[0].elements`
// works as it would on the serialized document.
func (e *GojaEngine) Transform(ctx context.Context, d *doc.Document, script string) (*doc.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vm := goja.New()

	// Round-trip through JSON so scripts mutate plain data, not Go
	// structs.
	var value map[string]interface{}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("scripting: marshaling document: %w", err)
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("scripting: preparing document: %w", err)
	}
	if err := vm.Set("deck", value); err != nil {
		return nil, fmt.Errorf("scripting: binding document: %w", err)
	}

	done := make(chan struct{})
	defer close(done)
	defer vm.ClearInterrupt()

	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	if _, err := vm.RunString(script); err != nil {
		if interrupted, ok := err.(*goja.InterruptedError); ok {
			if cause := interrupted.Unwrap(); cause != nil {
				return nil, cause
			}
			return nil, context.Canceled
		}
		return nil, fmt.Errorf("scripting: %w", err)
	}

	exported := vm.Get("deck")
	if exported == nil || goja.IsUndefined(exported) || goja.IsNull(exported) {
		return nil, fmt.Errorf("scripting: script removed the deck binding")
	}
	back, err := json.Marshal(exported.Export())
	if err != nil {
		return nil, fmt.Errorf("scripting: reading result: %w", err)
	}
	var out doc.Document
	if err := json.Unmarshal(back, &out); err != nil {
		return nil, fmt.Errorf("scripting: result is not a valid document: %w", err)
	}
	return &out, nil
}
