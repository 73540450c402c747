package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sandeepkv93/chored/internal/commands"
	"github.com/sandeepkv93/chored/internal/model"
)

// Handlers binds palette commands to the service. The CLI and the TUI share
// them so both surfaces accept the same grammar.
func (s *Service) Handlers(ctx context.Context) commands.Handlers {
	return commands.Handlers{
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			t, err := s.Resolve(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			updated, err := s.Complete(ctx, t.ID, a.Minutes)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("Done: %s (estimate now %d min)", updated.Name, updated.EstMin)}, nil
		},
		Budget: func(a commands.BudgetArgs) (commands.Result, error) {
			got, err := s.SetBudget(a.Minutes)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("Budget set to %d min; applies from the next plan", got)}, nil
		},
		Regen: func() (commands.Result, error) {
			if _, err := s.Plan(ctx, true); err != nil {
				return commands.Result{}, err
			}
			p := s.Progress()
			return commands.Result{Message: fmt.Sprintf("Plan rebuilt: %d chores, %d min", p.Picked, p.PlannedMin)}, nil
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			t, err := s.Resolve(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if err := s.Delete(ctx, t.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("Deleted: %s", t.Name)}, nil
		},
		Add: func(a commands.AddArgs) (commands.Result, error) {
			t, err := s.Add(ctx, NewChore{Name: a.Name, FreqDays: a.FreqDays, EstMin: a.EstMin})
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("Added: %s every %d days, ~%d min", t.Name, t.FreqDays, t.EstMin)}, nil
		},
		Edit: func(a commands.EditArgs) (commands.Result, error) {
			t, err := s.Resolve(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			edit, err := editFromFields(a.Fields)
			if err != nil {
				return commands.Result{}, err
			}
			updated, err := s.Edit(ctx, t.ID, edit)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("Updated: %s every %d days, ~%d min, last done %s",
				updated.Name, updated.FreqDays, updated.EstMin, updated.LastDone)}, nil
		},
	}
}

func editFromFields(fields map[string]string) (model.TaskEdit, error) {
	var edit model.TaskEdit
	for key, value := range fields {
		switch key {
		case "name":
			v := value
			edit.Name = &v
		case "last":
			v := value
			edit.LastDone = &v
		case "freq", "est":
			n, err := strconv.Atoi(value)
			if err != nil {
				return model.TaskEdit{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("%s must be a whole number, got %q", key, value),
				}
			}
			if key == "freq" {
				edit.FreqDays = &n
			} else {
				edit.EstMin = &n
			}
		}
	}
	return edit, nil
}

// Run parses and executes one palette line.
func (s *Service) Run(ctx context.Context, line string) (commands.Result, error) {
	cmd, err := commands.Parse(line)
	if err != nil {
		return commands.Result{}, err
	}
	return commands.Execute(cmd, s.Handlers(ctx))
}
