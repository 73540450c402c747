// Package cli provides the command-line interface for chored.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/chored/internal/app"
	"github.com/sandeepkv93/chored/internal/calendar"
	"github.com/sandeepkv93/chored/internal/config"
	"github.com/sandeepkv93/chored/internal/importer"
	"github.com/sandeepkv93/chored/internal/storage"
	"github.com/sandeepkv93/chored/internal/update"
)

// launchTUIFunc is swapped out in tests.
var launchTUIFunc = update.Run

// Deps carries everything a command needs to build a Service.
type Deps struct {
	Config     config.Config
	ConfigPath string
	Logger     *slog.Logger
	Clock      calendar.Clock
	IDs        importer.IDGenerator
	// OpenStore defaults to storage.Open with the configured backend.
	OpenStore func(cfg config.Config) (storage.Store, error)
}

func (d Deps) openService(ctx context.Context) (*app.Service, error) {
	open := d.OpenStore
	if open == nil {
		open = func(cfg config.Config) (storage.Store, error) {
			return storage.Open(cfg.Backend, cfg.StorePath())
		}
	}
	store, err := open(d.Config)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	svc := app.New(app.Options{
		Store:      store,
		Clock:      d.Clock,
		IDs:        d.IDs,
		Logger:     d.Logger,
		Budget:     d.Config.BudgetMinutes,
		ConfigPath: d.ConfigPath,
	})
	if err := svc.Load(ctx); err != nil {
		_ = svc.Close()
		return nil, err
	}
	return svc, nil
}

// withService opens the service for one command and closes it afterwards.
func (d Deps) withService(cmd *cobra.Command, fn func(*app.Service) error) error {
	svc, err := d.openService(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()
	return fn(svc)
}

// NewRootCommand builds the chored command tree. With no subcommand it
// starts the TUI.
func NewRootCommand(d Deps, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "chored",
		Short: "Plan recurring chores within a daily time budget",
		Long: `chored keeps a list of recurring chores, learns how long each one takes,
and picks a locked plan for today that fits your minute budget.

Run without a subcommand to open the interactive planner.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, d)
		},
	}

	root.AddCommand(
		newTUICommand(d),
		newPlanCommand(d),
		newListCommand(d),
		newDoneCommand(d),
		newAddCommand(d),
		newEditCommand(d),
		newDeleteCommand(d),
		newBudgetCommand(d),
		newImportCommand(d),
		newExportCommand(d),
		newRestoreCommand(d),
	)
	return root
}

func newTUICommand(d Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive planner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, d)
		},
	}
}

func runTUI(cmd *cobra.Command, d Deps) error {
	return d.withService(cmd, func(svc *app.Service) error {
		return launchTUIFunc(cmd.Context(), svc, d.Config)
	})
}
