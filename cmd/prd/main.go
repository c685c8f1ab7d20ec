package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bkyoung/pr-differ/internal/adapter/cli"
	"github.com/bkyoung/pr-differ/internal/adapter/git"
	"github.com/bkyoung/pr-differ/internal/adapter/observability"
	"github.com/bkyoung/pr-differ/internal/config"
	"github.com/bkyoung/pr-differ/internal/usecase/changeset"
	"github.com/bkyoung/pr-differ/internal/version"
)

func main() {
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	// Cancellable context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "prd",
		EnvPrefix:   "PRD",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	repoDir := cfg.Git.RepositoryDir
	if repoDir == "" {
		repoDir = "."
	}
	provider := git.NewProvider(repoDir)

	logger := buildLogger(cfg.Logging)

	root := cli.NewRootCommand(cli.Dependencies{
		NewEnumerator: func(opts changeset.Options) cli.Enumerator {
			enum := changeset.NewEnumerator(provider, provider, opts)
			if logger != nil {
				enum = enum.WithLogger(logger)
			}
			return enum
		},
		Args:       cli.Arguments{OutWriter: os.Stdout, ErrWriter: os.Stderr},
		Defaults:   cfg,
		IsTerminal: cli.IsOutputTerminal,
		Version:    version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

func buildLogger(cfg config.LoggingConfig) *observability.Logger {
	level := observability.ParseLevel(cfg.Level)
	format := observability.ParseFormat(cfg.Format)
	return observability.NewLogger(os.Stderr, level, format)
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "prd"))
	}
	return paths
}
