package diff

import "github.com/bkyoung/pr-differ/internal/domain"

// Build backtraces an edit-distance matrix into an ordered operation
// sequence tagged Equal, Delete, or Insert. The matrix must have been
// computed from the same left and right sequences.
//
// The number of non-Equal operations equals matrix[len(left)][len(right)],
// the minimal edit distance. Replaying Equal+Delete reproduces left;
// replaying Equal+Insert reproduces right.
func Build(matrix [][]int, left, right []string, filePath string) domain.Patch {
	return domain.Patch{
		FilePath:   filePath,
		Operations: buildOperations(matrix, left, right),
	}
}

// BuildPatch is the one-shot form: matrix computation plus backtrace.
func BuildPatch(left, right []string, filePath string) domain.Patch {
	return Build(ComputeMatrix(left, right), left, right, filePath)
}

// buildOperations walks the matrix from (len(left), len(right)) toward the
// origin, accumulating operations end-to-start, then reverses them.
//
// On a mismatch the walk moves toward the strictly cheaper of deleting
// (up) and inserting (left); ties prefer insert. The tie-break is fixed:
// it does not change the operation count, but it keeps runs of deletions
// grouped ahead of the insertions that replace them, which determines the
// visual grouping of -/+ lines in the rendered patch.
func buildOperations(matrix [][]int, left, right []string) []domain.Operation {
	ops := make([]domain.Operation, 0, len(left)+len(right))

	i, j := len(left), len(right)
	for i > 0 && j > 0 {
		switch {
		case left[i-1] == right[j-1]:
			ops = append(ops, domain.Equal(left[i-1]))
			i--
			j--
		case matrix[i-1][j] < matrix[i][j-1]:
			ops = append(ops, domain.Delete(left[i-1]))
			i--
		default:
			ops = append(ops, domain.Insert(right[j-1]))
			j--
		}
	}

	// One side is exhausted; the remaining prefix of the other is all
	// deletions or all insertions.
	for ; i > 0; i-- {
		ops = append(ops, domain.Delete(left[i-1]))
	}
	for ; j > 0; j-- {
		ops = append(ops, domain.Insert(right[j-1]))
	}

	reverse(ops)
	return ops
}

func reverse(ops []domain.Operation) {
	for a, b := 0, len(ops)-1; a < b; a, b = a+1, b-1 {
		ops[a], ops[b] = ops[b], ops[a]
	}
}
