package textcodec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ThisIsMyPseudonym/jsonprez/doc"
	"github.com/ThisIsMyPseudonym/jsonprez/ops"
)

// ErrIndexMismatch reports a divergence between the inserted text
// length and the cumulative run lengths. Every later operation is
// range-addressed against the inserted string, so a mismatch would
// silently corrupt all of them; encoding fails instead.
var ErrIndexMismatch = errors.New("textcodec: run lengths diverge from inserted text")

// Encode serializes a denormalized run list into the ordered
// mutation operations that rebuild it inside the text container
// identified by objectID.
//
// The operation order is a correctness contract. Bullet creation can
// bleed list formatting into adjacent paragraphs and bullet deletion
// resets indentation, so the sequence is: the single text insert,
// the per-run style ranges, all bullet creations, all bullet
// deletions, then all paragraph styles to restore what the bullet
// passes disturbed.
func Encode(objectID string, runs []doc.TextRun) ([]ops.Request, error) {
	kept := runs[:0:0]
	for _, r := range runs {
		if len(r.Text) == 0 {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) == 0 {
		return nil, nil
	}

	var b strings.Builder
	total := 0
	for _, r := range kept {
		b.WriteString(r.Text)
		total += len(r.Text)
	}
	full := b.String()
	if len(full) != total {
		return nil, fmt.Errorf("%w: text %d bytes, runs sum to %d", ErrIndexMismatch, len(full), total)
	}

	reqs := []ops.Request{ops.InsertText{
		ObjectID: objectID,
		Text:     full,
	}}

	// Per-run style ranges from cumulative lengths.
	starts := make([]int, len(kept))
	cursor := 0
	for i, r := range kept {
		starts[i] = cursor
		end := cursor + len(r.Text)
		if end > total {
			return nil, fmt.Errorf("%w: run %d ends at %d beyond %d", ErrIndexMismatch, i, end, total)
		}
		reqs = append(reqs, ops.SetTextStyle{
			ObjectID: objectID,
			Range:    ops.Range{Start: cursor, End: end},
			Style:    runStyle(r),
		})
		cursor = end
	}
	if cursor != total {
		return nil, fmt.Errorf("%w: runs cover %d of %d bytes", ErrIndexMismatch, cursor, total)
	}

	// A freshly created text container auto-inserts one structural
	// trailing character. With more than one run it would keep the
	// container's default style and show as a seam, so it gets the
	// last run's font explicitly.
	if len(kept) > 1 {
		reqs = append(reqs, ops.SetTextStyle{
			ObjectID: objectID,
			Range:    ops.Range{Start: total, End: total + 1},
			Style:    runStyle(kept[len(kept)-1]),
		})
	}

	var (
		creates []ops.Request
		deletes []ops.Request
		styles  []ops.Request
	)
	for i, r := range kept {
		if !doc.StartsParagraph(kept, i) {
			continue
		}
		end := paragraphEnd(kept, starts, i, total)
		rng := ops.Range{Start: starts[i], End: end}
		if r.Bullet != nil {
			creates = append(creates, ops.CreateBullet{
				ObjectID:     objectID,
				Range:        rng,
				Glyph:        r.Bullet.Glyph,
				NestingLevel: r.Bullet.NestingLevel,
			})
		} else {
			deletes = append(deletes, ops.DeleteBullet{
				ObjectID: objectID,
				Range:    rng,
			})
		}
		styles = append(styles, ops.SetParagraphStyle{
			ObjectID: objectID,
			Range:    rng,
			Style:    paragraphStyle(r.Paragraph),
		})
	}
	reqs = append(reqs, creates...)
	reqs = append(reqs, deletes...)
	reqs = append(reqs, styles...)
	return reqs, nil
}

// paragraphEnd returns the end index of the paragraph opened by run
// i: the start of the next paragraph, or the total length.
func paragraphEnd(runs []doc.TextRun, starts []int, i, total int) int {
	for j := i + 1; j < len(runs); j++ {
		if doc.StartsParagraph(runs, j) {
			return starts[j]
		}
	}
	return total
}

func runStyle(r doc.TextRun) ops.TextStyle {
	return ops.TextStyle{
		Color:         r.Color,
		FontSize:      r.FontSize,
		FontFamily:    r.FontFamily,
		Bold:          r.Bold,
		Italic:        r.Italic,
		Underline:     r.Underline,
		Strikethrough: r.Strikethrough,
		SmallCaps:     r.SmallCaps,
		Link:          r.Link,
	}
}

func paragraphStyle(ps *doc.ParagraphStyle) ops.ParagraphStyle {
	if ps == nil {
		return ops.ParagraphStyle{Alignment: DefaultAlignment}
	}
	out := ops.ParagraphStyle{
		Alignment:       ps.Alignment,
		IndentStart:     ps.IndentStart,
		IndentFirstLine: ps.IndentFirstLine,
		SpaceAbove:      ps.SpaceAbove,
		SpaceBelow:      ps.SpaceBelow,
		LineSpacing:     ps.LineSpacing,
	}
	if out.Alignment == "" {
		out.Alignment = DefaultAlignment
	}
	return out
}
