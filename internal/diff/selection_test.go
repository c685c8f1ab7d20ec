package diff_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bkyoung/pr-differ/internal/diff"
	"github.com/bkyoung/pr-differ/internal/domain"
)

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return lines
}

func rangeOf(start, end int) *domain.LineRange {
	return &domain.LineRange{Start: start, End: end}
}

func TestExtractSelectionSlicesWideRange(t *testing.T) {
	original := numberedLines(20)
	changed := numberedLines(20)
	sel := domain.ThreadSelection{
		Left:  rangeOf(3, 9),
		Right: rangeOf(5, 12),
	}

	left, right, err := diff.ExtractSelection(sel, original, changed, diff.MinContextLines)
	if err != nil {
		t.Fatalf("ExtractSelection returned error: %v", err)
	}

	if len(left) != 7 || left[0] != "line 3" || left[6] != "line 9" {
		t.Errorf("left selection = %v", left)
	}
	if len(right) != 8 || right[0] != "line 5" || right[7] != "line 12" {
		t.Errorf("right selection = %v", right)
	}
}

func TestExtractSelectionWidensNarrowRange(t *testing.T) {
	original := numberedLines(20)
	sel := domain.ThreadSelection{
		Left:  rangeOf(4, 6), // 3 lines, below the minimum
		Right: rangeOf(1, 10),
	}

	left, right, err := diff.ExtractSelection(sel, original, numberedLines(20), diff.MinContextLines)
	if err != nil {
		t.Fatalf("ExtractSelection returned error: %v", err)
	}

	if len(left) != 20 {
		t.Errorf("narrow range should widen to full file, got %d lines", len(left))
	}
	if len(right) != 10 {
		t.Errorf("right selection = %d lines, want 10", len(right))
	}
}

func TestExtractSelectionUndefinedSideIsEmpty(t *testing.T) {
	changed := numberedLines(12)
	sel := domain.ThreadSelection{Right: rangeOf(2, 8)}

	left, right, err := diff.ExtractSelection(sel, numberedLines(12), changed, diff.MinContextLines)
	if err != nil {
		t.Fatalf("ExtractSelection returned error: %v", err)
	}

	// No left range: the thread covers a pure insertion.
	if len(left) != 0 {
		t.Errorf("expected empty left selection, got %v", left)
	}
	if len(right) != 7 {
		t.Errorf("right selection = %d lines, want 7", len(right))
	}
}

func TestExtractSelectionValidation(t *testing.T) {
	lines := numberedLines(10)

	cases := []struct {
		name string
		sel  domain.ThreadSelection
	}{
		{"start before 1", domain.ThreadSelection{Left: rangeOf(0, 5)}},
		{"end before 1", domain.ThreadSelection{Left: rangeOf(1, -2)}},
		{"start after end", domain.ThreadSelection{Left: rangeOf(8, 6)}},
		{"beyond line count", domain.ThreadSelection{Left: rangeOf(5, 15)}},
		{"right side out of bounds", domain.ThreadSelection{Right: rangeOf(11, 20)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := diff.ExtractSelection(tc.sel, lines, lines, diff.MinContextLines)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("expected *domain.ValidationError, got %T", err)
			}
		})
	}
}

func TestExtractSelectionIgnoresRangeOnMissingFile(t *testing.T) {
	// The file does not exist at the original commit; a stale range on the
	// empty side is not an error.
	sel := domain.ThreadSelection{
		Left:  rangeOf(3, 40),
		Right: rangeOf(1, 8),
	}

	left, right, err := diff.ExtractSelection(sel, nil, numberedLines(8), diff.MinContextLines)
	if err != nil {
		t.Fatalf("ExtractSelection returned error: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("expected empty left side, got %v", left)
	}
	if len(right) != 8 {
		t.Errorf("right selection = %d lines, want 8", len(right))
	}
}
