package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/bkyoung/pr-differ/internal/adapter/cli"
	"github.com/bkyoung/pr-differ/internal/config"
	"github.com/bkyoung/pr-differ/internal/diff"
	"github.com/bkyoung/pr-differ/internal/domain"
	"github.com/bkyoung/pr-differ/internal/usecase/changeset"
)

type enumeratorStub struct {
	base   string
	target string
	opts   changeset.Options
	result changeset.Result
	err    error
}

func (e *enumeratorStub) Enumerate(ctx context.Context, baseCommit, targetCommit string) (changeset.Result, error) {
	e.base = baseCommit
	e.target = targetCommit
	return e.result, e.err
}

func testDefaults() config.Config {
	return config.Config{
		Diff: config.DiffConfig{
			SurroundingContext: diff.SurroundingContext,
			MinContextLines:    diff.MinContextLines,
			Condense:           true,
		},
		Enumerate: config.EnumerateConfig{Workers: 1, MaxMatrixCells: 4_000_000},
	}
}

func newRoot(stub *enumeratorStub, out, errOut io.Writer, isTerminal func() bool) *cli.Dependencies {
	deps := &cli.Dependencies{
		NewEnumerator: func(opts changeset.Options) cli.Enumerator {
			stub.opts = opts
			return stub
		},
		Args:       cli.Arguments{OutWriter: out, ErrWriter: errOut},
		Defaults:   testDefaults(),
		IsTerminal: isTerminal,
		Version:    "v1.2.3",
	}
	return deps
}

func TestDiffCommandRendersPatches(t *testing.T) {
	stub := &enumeratorStub{
		result: changeset.Result{
			Patches: []domain.Patch{
				{FilePath: "src/app.py", Operations: []domain.Operation{
					domain.Equal("one"),
					domain.Delete("two"),
					domain.Insert("TWO"),
				}},
			},
		},
	}
	buf := &bytes.Buffer{}
	root := cli.NewRootCommand(*newRoot(stub, buf, io.Discard, func() bool { return true }))

	root.SetArgs([]string{"diff", "base-sha", "target-sha"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if stub.base != "base-sha" || stub.target != "target-sha" {
		t.Fatalf("unexpected commits: %s %s", stub.base, stub.target)
	}
	want := "src/app.py\none\n- two\n+ TWO\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestDiffCommandUsesConfiguredDefaults(t *testing.T) {
	stub := &enumeratorStub{}
	root := cli.NewRootCommand(*newRoot(stub, io.Discard, io.Discard, func() bool { return true }))

	root.SetArgs([]string{"diff", "a", "b"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if !stub.opts.Condense {
		t.Fatalf("expected condensing enabled on a terminal")
	}
	if stub.opts.Window != diff.SurroundingContext {
		t.Fatalf("expected window %d, got %d", diff.SurroundingContext, stub.opts.Window)
	}
	if stub.opts.MaxMatrixCells != 4_000_000 {
		t.Fatalf("expected configured cell budget, got %d", stub.opts.MaxMatrixCells)
	}
}

func TestDiffCommandDisablesCondenseWhenPiped(t *testing.T) {
	stub := &enumeratorStub{}
	root := cli.NewRootCommand(*newRoot(stub, io.Discard, io.Discard, func() bool { return false }))

	root.SetArgs([]string{"diff", "a", "b"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if stub.opts.Condense {
		t.Fatalf("expected condensing disabled for piped output")
	}
}

func TestDiffCommandExplicitCondenseWinsOverPipe(t *testing.T) {
	stub := &enumeratorStub{}
	root := cli.NewRootCommand(*newRoot(stub, io.Discard, io.Discard, func() bool { return false }))

	root.SetArgs([]string{"diff", "a", "b", "--condense", "--window", "2", "--workers", "4"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if !stub.opts.Condense {
		t.Fatalf("expected explicit flag to force condensing")
	}
	if stub.opts.Window != 2 {
		t.Fatalf("expected window 2, got %d", stub.opts.Window)
	}
	if stub.opts.Workers != 4 {
		t.Fatalf("expected 4 workers, got %d", stub.opts.Workers)
	}
}

func TestDiffCommandReportsSkippedPaths(t *testing.T) {
	stub := &enumeratorStub{
		result: changeset.Result{
			Failed: []changeset.PathError{{Path: "big.bin", Err: changeset.ErrMatrixTooLarge}},
		},
	}
	errBuf := &bytes.Buffer{}
	root := cli.NewRootCommand(*newRoot(stub, io.Discard, errBuf, func() bool { return true }))

	root.SetArgs([]string{"diff", "a", "b"})
	if err := root.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if !strings.Contains(errBuf.String(), "big.bin") {
		t.Fatalf("expected skipped path warning, got %q", errBuf.String())
	}
}

func TestDiffCommandPropagatesEnumerationFailure(t *testing.T) {
	stub := &enumeratorStub{err: errors.New("change list unavailable")}
	root := cli.NewRootCommand(*newRoot(stub, io.Discard, io.Discard, func() bool { return true }))

	root.SetArgs([]string{"diff", "a", "b"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "change list unavailable") {
		t.Fatalf("expected enumeration failure, got %v", err)
	}
}

func TestVersionFlagEmitsVersion(t *testing.T) {
	stub := &enumeratorStub{}
	buf := &bytes.Buffer{}
	root := cli.NewRootCommand(*newRoot(stub, buf, io.Discard, func() bool { return true }))

	root.SetArgs([]string{"--version"})
	err := root.Execute()
	if !errors.Is(err, cli.ErrVersionRequested) {
		t.Fatalf("expected version sentinel, got %v", err)
	}
	if !strings.Contains(buf.String(), "v1.2.3") {
		t.Fatalf("expected version output, got %q", buf.String())
	}
}
