// Package git adapts a local git repository to the changeset provider
// ports. It is the on-disk counterpart of the hosted-repository clients
// the enumerator is normally wired to.
package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	goGit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/bkyoung/pr-differ/internal/domain"
	"github.com/bkyoung/pr-differ/internal/usecase/changeset"
)

// Provider implements changeset.ContentProvider and
// changeset.ChangeListProvider over a repository on disk.
type Provider struct {
	repoDir string
}

// NewProvider constructs a Provider for the given repository directory.
func NewProvider(repoDir string) *Provider {
	return &Provider{repoDir: repoDir}
}

// ReadFileAtCommit returns the content of path at the given commit.
// A path absent from the commit tree reports domain.ErrNotFound so the
// enumerator can diff added and deleted files against an empty sequence.
func (p *Provider) ReadFileAtCommit(_ context.Context, path, commitID string) (string, error) {
	repo, err := goGit.PlainOpenWithOptions(p.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repo: %w", err)
	}

	commit, err := resolveCommit(repo, commitID)
	if err != nil {
		return "", fmt.Errorf("resolve commit %s: %w", commitID, err)
	}

	file, err := commit.File(strings.TrimPrefix(path, "/"))
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return "", fmt.Errorf("%s at %s: %w", path, commitID, domain.ErrNotFound)
		}
		return "", fmt.Errorf("lookup %s at %s: %w", path, commitID, err)
	}

	content, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("read %s at %s: %w", path, commitID, err)
	}
	return content, nil
}

// ListChangedPaths diffs the trees of the two commits and returns every
// changed blob path in a single complete page, sorted for deterministic
// downstream ordering. The page token is ignored; local tree diffs are
// not paginated.
func (p *Provider) ListChangedPaths(ctx context.Context, baseCommit, targetCommit, _ string) (changeset.ChangedPathsPage, error) {
	repo, err := goGit.PlainOpenWithOptions(p.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return changeset.ChangedPathsPage{}, fmt.Errorf("open repo: %w", err)
	}

	base, err := resolveCommit(repo, baseCommit)
	if err != nil {
		return changeset.ChangedPathsPage{}, fmt.Errorf("resolve base %s: %w", baseCommit, err)
	}
	target, err := resolveCommit(repo, targetCommit)
	if err != nil {
		return changeset.ChangedPathsPage{}, fmt.Errorf("resolve target %s: %w", targetCommit, err)
	}

	baseTree, err := base.Tree()
	if err != nil {
		return changeset.ChangedPathsPage{}, fmt.Errorf("base tree: %w", err)
	}
	targetTree, err := target.Tree()
	if err != nil {
		return changeset.ChangedPathsPage{}, fmt.Errorf("target tree: %w", err)
	}

	changes, err := object.DiffTreeWithOptions(ctx, baseTree, targetTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return changeset.ChangedPathsPage{}, fmt.Errorf("diff trees: %w", err)
	}

	seen := make(map[string]struct{}, len(changes))
	paths := make([]string, 0, len(changes))
	for _, change := range changes {
		for _, name := range []string{change.From.Name, change.To.Name} {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			paths = append(paths, name)
		}
	}
	sort.Strings(paths)

	page := changeset.ChangedPathsPage{Complete: true}
	page.Paths = make([]changeset.ChangedPath, len(paths))
	for i, path := range paths {
		page.Paths[i] = changeset.ChangedPath{Path: path}
	}
	return page, nil
}

// resolveCommit accepts commit hashes as well as branch names, trying the
// ref as given before the usual head and remote prefixes.
func resolveCommit(repo *goGit.Repository, ref string) (*object.Commit, error) {
	candidates := []string{
		ref,
		fmt.Sprintf("refs/heads/%s", ref),
		fmt.Sprintf("refs/remotes/origin/%s", ref),
	}

	var lastErr error
	for _, candidate := range candidates {
		hash, err := repo.ResolveRevision(plumbing.Revision(candidate))
		if err != nil {
			lastErr = err
			continue
		}
		return repo.CommitObject(*hash)
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("unable to resolve ref %s", ref)
}
