package diff

import "github.com/bkyoung/pr-differ/internal/domain"

// SurroundingContext is the default number of unchanged lines kept on each
// side of a change hunk when condensing.
const SurroundingContext = 5

// Condense collapses long unchanged runs in a patch, keeping at most
// window Equal lines immediately before and after each contiguous run of
// changes. Equal runs never adjacent to a change are dropped entirely; no
// ellipsis marker is emitted, callers infer omission from hunk
// non-contiguity. A patch that is entirely Equal condenses to no
// operations.
//
// Condensing is idempotent: condensing an already-condensed patch with the
// same window returns the same result.
func Condense(patch domain.Patch, window int) domain.Patch {
	if window < 0 {
		window = 0
	}

	out := make([]domain.Operation, 0, len(patch.Operations))
	var pending []domain.Operation
	trailing := 0

	for _, op := range patch.Operations {
		if op.Kind == domain.OpEqual {
			if trailing > 0 {
				out = append(out, op)
				trailing--
			} else {
				pending = append(pending, op)
			}
			continue
		}

		// Flush at most the last window buffered Equal lines as leading
		// context, then emit the change and arm the trailing counter.
		if len(pending) > window {
			pending = pending[len(pending)-window:]
		}
		out = append(out, pending...)
		pending = nil
		out = append(out, op)
		trailing = window
	}

	return domain.Patch{FilePath: patch.FilePath, Operations: out}
}
