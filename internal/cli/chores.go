package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/chored/internal/app"
)

func newPlanCommand(d Deps) *cobra.Command {
	var opts struct {
		Regen  bool
		Format string
	}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show today's plan, building it if needed",
		Long: `Show today's plan. The first call each day picks chores by urgency until
the budget is filled; later calls show the same locked plan.

Examples:
  chored plan
  chored plan --regen
  chored plan --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validFormat(opts.Format); err != nil {
				return err
			}
			return d.withService(cmd, func(svc *app.Service) error {
				if _, err := svc.Plan(cmd.Context(), opts.Regen); err != nil {
					return err
				}
				view := buildPlanView(svc)
				if opts.Format == formatText {
					return printPlanText(cmd.OutOrStdout(), view)
				}
				return encode(cmd.OutOrStdout(), opts.Format, view)
			})
		},
	}
	cmd.Flags().BoolVar(&opts.Regen, "regen", false, "Discard today's plan and pick again")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", formatText, "Output format: text, yaml or json")
	return cmd
}

func newListCommand(d Deps) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every chore ranked by urgency",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validFormat(format); err != nil {
				return err
			}
			return d.withService(cmd, func(svc *app.Service) error {
				items := buildList(svc)
				if format == formatText {
					return printListText(cmd.OutOrStdout(), items)
				}
				return encode(cmd.OutOrStdout(), format, items)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, yaml or json")
	return cmd
}

// paletteCommand runs a subcommand through the same grammar as the TUI
// command palette. Today's plan is ensured first so a completion counts
// toward it.
func paletteCommand(d Deps, use, short string, args cobra.PositionalArgs) *cobra.Command {
	head := strings.Fields(use)[0]
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			line := strings.Join(append([]string{head}, args...), " ")
			return d.withService(cmd, func(svc *app.Service) error {
				if _, err := svc.Plan(cmd.Context(), false); err != nil {
					return err
				}
				res, err := svc.Run(cmd.Context(), line)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Message)
				return err
			})
		},
	}
}

func newDoneCommand(d Deps) *cobra.Command {
	return paletteCommand(d, "done <task> [minutes]",
		"Mark a chore done, optionally with the minutes it took", cobra.MinimumNArgs(1))
}

func newAddCommand(d Deps) *cobra.Command {
	return paletteCommand(d, "add <name> <every-days> [minutes]",
		"Add a chore that recurs every N days", cobra.MinimumNArgs(2))
}

func newEditCommand(d Deps) *cobra.Command {
	return paletteCommand(d, "edit <task> field=value...",
		"Edit name, freq, last or est of a chore", cobra.MinimumNArgs(2))
}

func newDeleteCommand(d Deps) *cobra.Command {
	return paletteCommand(d, "delete <task>",
		"Delete a chore and drop it from today's plan", cobra.MinimumNArgs(1))
}

func newBudgetCommand(d Deps) *cobra.Command {
	return paletteCommand(d, "budget <minutes>",
		"Set the daily minute budget used for new plans", cobra.ExactArgs(1))
}

func newImportCommand(d Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all chores with rows from a CSV or TSV file",
		Long: `Replace all chores with rows from a file, or stdin when the file is "-".

Each row is: name, every-days, last-done (YYYY-MM-DD or M/D/YYYY), minutes.
Rows containing a tab are split on tabs, otherwise on commas. Rows without a
name or a readable date are skipped. Today's plan is discarded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			return d.withService(cmd, func(svc *app.Service) error {
				res, err := svc.Import(cmd.Context(), string(data))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d chores (%d rows skipped)\n", len(res.Tasks), res.Skipped)
				return err
			})
		},
	}
}

func newExportCommand(d Deps) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON backup of all chores and today's plan",
		Long: `Write a JSON backup. Without --out the file is named
chored-backup-YYYY-MM-DD.json in the current directory; --out - prints it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return d.withService(cmd, func(svc *app.Service) error {
				data, name, err := svc.Export()
				if err != nil {
					return err
				}
				if out == "-" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				path := out
				if path == "" {
					path = name
				}
				if dir := filepath.Dir(path); dir != "." {
					if err := os.MkdirAll(dir, 0o755); err != nil {
						return err
					}
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path, or - for stdout")
	return cmd
}

func newRestoreCommand(d Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace all data with a JSON backup",
		Long: `Replace all chores and today's plan with a backup written by export.
Older backups without a plan are accepted. Nothing changes if the file is
rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			return d.withService(cmd, func(svc *app.Service) error {
				if err := svc.Restore(cmd.Context(), data); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Restored %d chores\n", len(svc.State().Tasks))
				return err
			})
		},
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
