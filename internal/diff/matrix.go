package diff

// ComputeMatrix fills the dynamic-programming table of minimal edit
// operations between two line sequences. The result has dimensions
// (len(left)+1) x (len(right)+1); cell [i][j] holds the minimal number of
// single-line insertions and deletions needed to transform left[:i] into
// right[:j].
//
// Matching lines cost nothing. No substitution is modeled: a changed line
// costs one deletion plus one insertion, so row and column zero carry the
// cumulative cost of deleting or inserting the whole prefix. The terminal
// cell is the edit distance between the two sequences.
//
// Time and space are O(len(left) * len(right)). There is no internal size
// guard; callers must bound the line-count product before invoking (see
// changeset.Options.MaxMatrixCells).
func ComputeMatrix(left, right []string) [][]int {
	matrix := make([][]int, len(left)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(right)+1)
	}

	for i := 1; i <= len(left); i++ {
		matrix[i][0] = i
	}
	for j := 1; j <= len(right); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(left); i++ {
		for j := 1; j <= len(right); j++ {
			if left[i-1] == right[j-1] {
				matrix[i][j] = matrix[i-1][j-1]
			} else if matrix[i-1][j] < matrix[i][j-1] {
				matrix[i][j] = 1 + matrix[i-1][j]
			} else {
				matrix[i][j] = 1 + matrix[i][j-1]
			}
		}
	}

	return matrix
}
