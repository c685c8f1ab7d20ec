// Package changeset drives the patch reconstruction engine across every
// file changed between two commits. Content and change-list access go
// through narrow provider ports so the engine itself stays free of I/O.
package changeset

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bkyoung/pr-differ/internal/diff"
	"github.com/bkyoung/pr-differ/internal/domain"
)

// ContentProvider reads one version of a file. Implementations return
// domain.ErrNotFound (possibly wrapped) when the path does not exist at
// the commit; the enumerator translates that to an empty line sequence so
// added and deleted files diff correctly. Any other error is surfaced.
type ContentProvider interface {
	ReadFileAtCommit(ctx context.Context, path, commitID string) (string, error)
}

// ChangedPath is one entry of the change list between two commits.
type ChangedPath struct {
	Path     string
	IsFolder bool
}

// ChangedPathsPage is one page of the change list. The enumerator keeps
// requesting pages with the returned token until Complete is true.
type ChangedPathsPage struct {
	Paths     []ChangedPath
	NextToken string
	Complete  bool
}

// ChangeListProvider lists the paths changed between two commits,
// paginated.
type ChangeListProvider interface {
	ListChangedPaths(ctx context.Context, baseCommit, targetCommit, pageToken string) (ChangedPathsPage, error)
}

// Logger is the optional structured logging collaborator.
type Logger interface {
	Info(ctx context.Context, message string, fields map[string]interface{})
	Warn(ctx context.Context, message string, fields map[string]interface{})
}

// ErrMatrixTooLarge reports a file pair whose edit-distance matrix would
// exceed the configured cell budget. The pair is skipped, not diffed.
var ErrMatrixTooLarge = errors.New("edit distance matrix exceeds cell budget")

// Options tune one enumerator instance. The zero value diffs serially,
// without condensing and without a matrix size guard.
type Options struct {
	// Condense collapses unchanged runs in every produced patch.
	Condense bool
	// Window is the context window used when Condense is set. Zero means
	// diff.SurroundingContext.
	Window int
	// Workers bounds the parallel per-path fetch-and-diff fan-out. Values
	// below 2 mean serial.
	Workers int
	// MaxMatrixCells caps (len(left)+1)*(len(right)+1) per file pair; the
	// engine itself has no guard, so this is the caller-side precondition
	// from the resource model. Zero disables the cap.
	MaxMatrixCells int
	// MinContextLines is the selection-widening threshold for
	// SelectionPatch. Zero means diff.MinContextLines.
	MinContextLines int
}

// PathError records a per-path failure that did not abort enumeration.
type PathError struct {
	Path string
	Err  error
}

func (e PathError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e PathError) Unwrap() error { return e.Err }

// Result is the outcome of one enumeration. Patches holds one entry per
// successfully diffed path, in change-list order; Failed holds the paths
// that could not be diffed.
type Result struct {
	Patches []domain.Patch
	Failed  []PathError
}

// Enumerator produces the full multi-file patch set between two commits.
type Enumerator struct {
	content ContentProvider
	changes ChangeListProvider
	opts    Options
	logger  Logger
}

// NewEnumerator constructs an Enumerator over the two provider ports.
func NewEnumerator(content ContentProvider, changes ChangeListProvider, opts Options) *Enumerator {
	return &Enumerator{content: content, changes: changes, opts: opts}
}

// WithLogger sets an optional structured logger.
func (e *Enumerator) WithLogger(logger Logger) *Enumerator {
	e.logger = logger
	return e
}

// Enumerate lists every path changed between baseCommit and targetCommit,
// fetches both versions of each file, and builds one patch per path.
//
// A path missing at one commit is not an error: the missing side diffs as
// empty, producing a pure-insert or pure-delete patch. Any other per-path
// read failure is recorded in Result.Failed and the remaining paths
// continue. An error from the change-list provider aborts the whole
// enumeration and is returned unchanged.
func (e *Enumerator) Enumerate(ctx context.Context, baseCommit, targetCommit string) (Result, error) {
	paths, err := e.collectChangedPaths(ctx, baseCommit, targetCommit)
	if err != nil {
		return Result{}, err
	}

	outcomes := make([]pathOutcome, len(paths))
	if e.opts.Workers > 1 {
		e.diffParallel(ctx, paths, baseCommit, targetCommit, outcomes)
	} else {
		for i, path := range paths {
			outcomes[i] = e.diffPath(ctx, path, baseCommit, targetCommit)
		}
	}

	var result Result
	result.Patches = make([]domain.Patch, 0, len(outcomes))
	for i, outcome := range outcomes {
		if outcome.err != nil {
			e.warn(ctx, "skipping path after read failure", map[string]interface{}{
				"path":  paths[i],
				"error": outcome.err.Error(),
			})
			result.Failed = append(result.Failed, PathError{Path: paths[i], Err: outcome.err})
			continue
		}
		result.Patches = append(result.Patches, outcome.patch)
	}
	return result, nil
}

// SelectionPatch builds the patch for the region a reviewer highlighted in
// a comment thread on a single file. Selection ranges narrower than the
// configured minimum widen to the whole file; malformed ranges yield a
// domain.ValidationError and abort only this request.
func (e *Enumerator) SelectionPatch(ctx context.Context, path string, sel domain.ThreadSelection, baseCommit, targetCommit string) (domain.Patch, error) {
	original, err := e.fetchVersion(ctx, path, baseCommit)
	if err != nil {
		return domain.Patch{}, fmt.Errorf("read %s at %s: %w", path, baseCommit, err)
	}
	changed, err := e.fetchVersion(ctx, path, targetCommit)
	if err != nil {
		return domain.Patch{}, fmt.Errorf("read %s at %s: %w", path, targetCommit, err)
	}

	minContext := e.opts.MinContextLines
	if minContext == 0 {
		minContext = diff.MinContextLines
	}
	left, right, err := diff.ExtractSelection(sel, original.Lines, changed.Lines, minContext)
	if err != nil {
		return domain.Patch{}, err
	}

	if err := e.checkMatrixBudget(left, right); err != nil {
		return domain.Patch{}, fmt.Errorf("%s: %w", path, err)
	}
	return e.finish(diff.BuildPatch(left, right, path)), nil
}

func (e *Enumerator) collectChangedPaths(ctx context.Context, baseCommit, targetCommit string) ([]string, error) {
	var paths []string
	token := ""
	for {
		page, err := e.changes.ListChangedPaths(ctx, baseCommit, targetCommit, token)
		if err != nil {
			return nil, fmt.Errorf("list changed paths: %w", err)
		}
		for _, change := range page.Paths {
			if change.IsFolder {
				continue
			}
			paths = append(paths, change.Path)
		}
		if page.Complete {
			break
		}
		token = page.NextToken
	}
	e.info(ctx, "collected change list", map[string]interface{}{
		"base":   baseCommit,
		"target": targetCommit,
		"paths":  len(paths),
	})
	return paths, nil
}

type pathOutcome struct {
	patch domain.Patch
	err   error
}

// diffParallel fans file fetches across a bounded worker pool. Each path's
// diff is side-effect-free and shares no mutable state, so workers only
// coordinate through the index channel; outcomes land in change-list order
// regardless of completion order.
func (e *Enumerator) diffParallel(ctx context.Context, paths []string, baseCommit, targetCommit string, outcomes []pathOutcome) {
	workers := e.opts.Workers
	if workers > len(paths) {
		workers = len(paths)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				outcomes[i] = e.diffPath(ctx, paths[i], baseCommit, targetCommit)
			}
		}()
	}

	for i := range paths {
		indexes <- i
	}
	close(indexes)
	wg.Wait()
}

func (e *Enumerator) diffPath(ctx context.Context, path, baseCommit, targetCommit string) pathOutcome {
	original, err := e.fetchVersion(ctx, path, baseCommit)
	if err != nil {
		return pathOutcome{err: fmt.Errorf("read at %s: %w", baseCommit, err)}
	}
	changed, err := e.fetchVersion(ctx, path, targetCommit)
	if err != nil {
		return pathOutcome{err: fmt.Errorf("read at %s: %w", targetCommit, err)}
	}
	if err := e.checkMatrixBudget(original.Lines, changed.Lines); err != nil {
		return pathOutcome{err: err}
	}
	return pathOutcome{patch: e.finish(diff.BuildPatch(original.Lines, changed.Lines, path))}
}

// fetchVersion reads one file version and splits it into lines. A
// not-found path becomes a version with empty lines: the file was added
// or deleted between the two commits.
func (e *Enumerator) fetchVersion(ctx context.Context, path, commitID string) (domain.FileVersion, error) {
	version := domain.FileVersion{Path: path, CommitID: commitID}
	content, err := e.content.ReadFileAtCommit(ctx, path, commitID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return version, nil
		}
		return domain.FileVersion{}, err
	}
	version.Lines = diff.SplitLines(content)
	return version, nil
}

func (e *Enumerator) checkMatrixBudget(left, right []string) error {
	if e.opts.MaxMatrixCells <= 0 {
		return nil
	}
	cells := (len(left) + 1) * (len(right) + 1)
	if cells > e.opts.MaxMatrixCells {
		return fmt.Errorf("%w: %d cells, budget %d", ErrMatrixTooLarge, cells, e.opts.MaxMatrixCells)
	}
	return nil
}

func (e *Enumerator) finish(patch domain.Patch) domain.Patch {
	if !e.opts.Condense {
		return patch
	}
	window := e.opts.Window
	if window == 0 {
		window = diff.SurroundingContext
	}
	return diff.Condense(patch, window)
}

func (e *Enumerator) info(ctx context.Context, message string, fields map[string]interface{}) {
	if e.logger != nil {
		e.logger.Info(ctx, message, fields)
	}
}

func (e *Enumerator) warn(ctx context.Context, message string, fields map[string]interface{}) {
	if e.logger != nil {
		e.logger.Warn(ctx, message, fields)
	}
}
