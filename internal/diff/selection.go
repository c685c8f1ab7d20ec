package diff

import "github.com/bkyoung/pr-differ/internal/domain"

// MinContextLines is the default minimum width for a reviewer selection.
// Selections narrower than this are considered unreliable context and are
// widened to the whole file.
const MinContextLines = 5

// ExtractSelection narrows the two line sequences of a file to the region
// a reviewer highlighted in a comment thread, before they reach the patch
// builder.
//
// For a side with a defined range of at least minContextLines lines, the
// range is sliced out; a narrower range returns the side's full content
// instead. A side with no range is treated as empty, which models a pure
// insertion or deletion inside the comment region.
//
// A defined range that falls outside a non-empty side's line count yields
// a domain.ValidationError. Ranges against an empty side are ignored (the
// file is missing at that commit).
func ExtractSelection(sel domain.ThreadSelection, original, changed []string, minContextLines int) (left, right []string, err error) {
	left, err = sideSelection("left range", sel.Left, original, minContextLines)
	if err != nil {
		return nil, nil, err
	}
	right, err = sideSelection("right range", sel.Right, changed, minContextLines)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func sideSelection(field string, r *domain.LineRange, lines []string, minContextLines int) ([]string, error) {
	if r == nil || len(lines) == 0 {
		return nil, nil
	}

	switch {
	case r.Start < 1:
		return nil, domain.NewValidationError(field, "start %d is before line 1", r.Start)
	case r.End < 1:
		return nil, domain.NewValidationError(field, "end %d is before line 1", r.End)
	case r.End < r.Start:
		return nil, domain.NewValidationError(field, "start %d is after end %d", r.Start, r.End)
	case r.Start > len(lines) || r.End > len(lines):
		return nil, domain.NewValidationError(field, "range %d-%d exceeds %d lines", r.Start, r.End, len(lines))
	}

	if r.Width() < minContextLines {
		return lines, nil
	}
	return lines[r.Start-1 : r.End], nil
}
