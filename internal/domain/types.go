package domain

import "strings"

// OpKind classifies a single line operation inside a patch.
type OpKind int

const (
	// OpEqual is a line present in both versions.
	OpEqual OpKind = iota
	// OpDelete is a line present only in the left (original) version.
	OpDelete
	// OpInsert is a line present only in the right (changed) version.
	OpInsert
)

// Operation is one tagged line of a patch.
type Operation struct {
	Kind OpKind
	Line string
}

// Equal constructs an unchanged-line operation.
func Equal(line string) Operation { return Operation{Kind: OpEqual, Line: line} }

// Delete constructs a deleted-line operation.
func Delete(line string) Operation { return Operation{Kind: OpDelete, Line: line} }

// Insert constructs an inserted-line operation.
func Insert(line string) Operation { return Operation{Kind: OpInsert, Line: line} }

// Patch is an ordered sequence of line operations for a single file.
type Patch struct {
	FilePath   string
	Operations []Operation
}

// FileVersion captures one side of a diff computation. Nil or empty Lines
// represents a missing file (newly added or deleted at the other commit).
// A FileVersion is owned by the caller for the duration of one diff and is
// never mutated after creation.
type FileVersion struct {
	Path     string
	Lines    []string
	CommitID string
}

// LineRange is a 1-indexed inclusive line interval.
type LineRange struct {
	Start int
	End   int
}

// Width returns the number of lines covered by the range.
func (r LineRange) Width() int { return r.End - r.Start + 1 }

// ThreadSelection is the region a reviewer highlighted when leaving a
// comment. Either side may be nil when the thread only covers one version
// of the file.
type ThreadSelection struct {
	Left  *LineRange
	Right *LineRange
}

// Render serializes the patch: the file path header line, then one line
// per operation. Equal lines are unprefixed, deletions are prefixed "- ",
// insertions are prefixed "+ ".
func (p Patch) Render() string {
	var b strings.Builder
	b.WriteString(p.FilePath)
	for _, op := range p.Operations {
		b.WriteByte('\n')
		switch op.Kind {
		case OpDelete:
			b.WriteString("- ")
		case OpInsert:
			b.WriteString("+ ")
		}
		b.WriteString(op.Line)
	}
	return b.String()
}

// LeftLines replays the patch against the original side: every Equal and
// Delete line, in order. For a patch built from (left, right) this
// reconstructs left exactly.
func (p Patch) LeftLines() []string {
	return p.replay(OpDelete)
}

// RightLines replays the patch against the changed side: every Equal and
// Insert line, in order. For a patch built from (left, right) this
// reconstructs right exactly.
func (p Patch) RightLines() []string {
	return p.replay(OpInsert)
}

func (p Patch) replay(keep OpKind) []string {
	lines := make([]string, 0, len(p.Operations))
	for _, op := range p.Operations {
		if op.Kind == OpEqual || op.Kind == keep {
			lines = append(lines, op.Line)
		}
	}
	return lines
}

// EditCount returns the number of non-Equal operations. For a freshly
// built patch this equals the minimal edit distance between the two sides.
func (p Patch) EditCount() int {
	count := 0
	for _, op := range p.Operations {
		if op.Kind != OpEqual {
			count++
		}
	}
	return count
}
