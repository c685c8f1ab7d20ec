// Package cli provides the thin cobra surface over the change-set
// enumerator. It carries no diff logic of its own.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bkyoung/pr-differ/internal/config"
	"github.com/bkyoung/pr-differ/internal/usecase/changeset"
)

// ErrVersionRequested indicates the user requested the CLI version and no
// further work should be done.
var ErrVersionRequested = errors.New("version requested")

// Enumerator is the dependency required to run the diff command.
type Enumerator interface {
	Enumerate(ctx context.Context, baseCommit, targetCommit string) (changeset.Result, error)
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	// NewEnumerator builds an enumerator for the resolved options; flags
	// refine the configured defaults before construction.
	NewEnumerator func(opts changeset.Options) Enumerator
	Args          Arguments
	Defaults      config.Config
	// IsTerminal reports whether stdout is a terminal. Piped output gets
	// full patches unless condensing is forced with --condense.
	IsTerminal func() bool
	Version    string
}

// NewRootCommand constructs the root cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "prd",
		Short: "PR patch reconstruction CLI",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(diffCommand(deps))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func diffCommand(deps Dependencies) *cobra.Command {
	defaults := deps.Defaults
	var condense bool
	var window int
	var workers int
	var maxCells int

	cmd := &cobra.Command{
		Use:   "diff <base-commit> <target-commit>",
		Short: "Reconstruct the patch set between two commits",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Piped output defaults to full patches; an explicit
			// --condense flag always wins.
			if !cmd.Flags().Changed("condense") && deps.IsTerminal != nil && !deps.IsTerminal() {
				condense = false
			}

			enum := deps.NewEnumerator(changeset.Options{
				Condense:        condense,
				Window:          window,
				Workers:         workers,
				MaxMatrixCells:  maxCells,
				MinContextLines: defaults.Diff.MinContextLines,
			})

			result, err := enum.Enumerate(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("enumerate changes: %w", err)
			}

			for i, patch := range result.Patches {
				if i > 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), patch.Render())
			}
			for _, failed := range result.Failed {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s skipped: %v\n", failed.Path, failed.Err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&condense, "condense", defaults.Diff.Condense, "Collapse long unchanged runs to a context window")
	cmd.Flags().IntVar(&window, "window", defaults.Diff.SurroundingContext, "Context lines kept around each change when condensing")
	cmd.Flags().IntVar(&workers, "workers", defaults.Enumerate.Workers, "Parallel per-file fetch workers")
	cmd.Flags().IntVar(&maxCells, "max-cells", defaults.Enumerate.MaxMatrixCells, "Skip files whose diff matrix would exceed this many cells (0 = unlimited)")

	return cmd
}
