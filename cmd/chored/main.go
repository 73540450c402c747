// Package main is the entry point for the chored CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandeepkv93/chored/internal/calendar"
	"github.com/sandeepkv93/chored/internal/cli"
	"github.com/sandeepkv93/chored/internal/config"
	"github.com/sandeepkv93/chored/internal/importer"
	"github.com/sandeepkv93/chored/internal/logging"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chored failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := config.DefaultPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	level := logging.ParseLevel(cfg.LogLevel)
	logger := logging.NewWriter(os.Stderr, level)
	if cfg.LogFile != "" {
		fileLogger, closer, err := logging.OpenFile(cfg.LogFile, level)
		if err != nil {
			logger.Warn("log file unavailable, logging to stderr", "path", cfg.LogFile, "error", err)
		} else {
			defer func() { _ = closer.Close() }()
			logger = fileLogger
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.Deps{
		Config:     cfg,
		ConfigPath: cfgPath,
		Logger:     logger,
		Clock:      calendar.SystemClock{},
		IDs:        importer.UUIDGenerator{},
	}, version)
	return root.ExecuteContext(ctx)
}
