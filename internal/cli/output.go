package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/chored/internal/app"
	"github.com/sandeepkv93/chored/internal/dailyplan"
	"github.com/sandeepkv93/chored/internal/planner"
)

const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

type planItem struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	EstMin  int     `json:"estMin" yaml:"estMin"`
	Urgency float64 `json:"urgency" yaml:"urgency"`
	Overdue bool    `json:"overdue" yaml:"overdue"`
	Done    bool    `json:"done" yaml:"done"`
}

type planView struct {
	Date         string     `json:"date" yaml:"date"`
	Phase        string     `json:"phase" yaml:"phase"`
	Budget       int        `json:"budget" yaml:"budget"`
	PlannedMin   int        `json:"plannedMin" yaml:"plannedMin"`
	RemainingMin int        `json:"remainingMin" yaml:"remainingMin"`
	Items        []planItem `json:"items" yaml:"items"`
}

type listItem struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	FreqDays int     `json:"freqDays" yaml:"freqDays"`
	LastDone string  `json:"lastDoneISO" yaml:"lastDoneISO"`
	Due      string  `json:"dueISO" yaml:"dueISO"`
	EstMin   int     `json:"estMin" yaml:"estMin"`
	Urgency  float64 `json:"urgency" yaml:"urgency"`
	Overdue  bool    `json:"overdue" yaml:"overdue"`
}

func buildPlanView(svc *app.Service) planView {
	today := svc.Today()
	state := svc.State()
	progress := svc.Progress()
	view := planView{
		Date:         today.String(),
		Phase:        string(progress.Phase),
		Budget:       svc.Budget(),
		PlannedMin:   progress.PlannedMin,
		RemainingMin: progress.RemainingMin,
		Items:        []planItem{},
	}
	if progress.Phase == dailyplan.PhaseAbsent {
		return view
	}
	for _, id := range state.Plan.PickedIDs {
		t, ok := state.TaskByID(id)
		if !ok {
			continue
		}
		sc := planner.Score(t, today)
		view.Items = append(view.Items, planItem{
			ID:      t.ID,
			Name:    t.Name,
			EstMin:  t.EstMin,
			Urgency: sc.Urgency,
			Overdue: sc.Overdue,
			Done:    state.Plan.IsCompleted(id),
		})
	}
	return view
}

func buildList(svc *app.Service) []listItem {
	state := svc.State()
	out := []listItem{}
	for _, sc := range svc.Ranking() {
		t, ok := state.TaskByID(sc.TaskID)
		if !ok {
			continue
		}
		out = append(out, listItem{
			ID:       t.ID,
			Name:     t.Name,
			FreqDays: t.FreqDays,
			LastDone: t.LastDone.String(),
			Due:      sc.Due.String(),
			EstMin:   t.EstMin,
			Urgency:  sc.Urgency,
			Overdue:  sc.Overdue,
		})
	}
	return out
}

func validFormat(format string) error {
	switch format {
	case formatText, formatYAML, formatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (use text, yaml or json)", format)
	}
}

// encode writes v as YAML or JSON. Text output is handled by the caller.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func printPlanText(w io.Writer, view planView) error {
	if view.Phase == string(dailyplan.PhaseAbsent) {
		_, err := fmt.Fprintf(w, "No plan for %s. Run `chored plan` to build one.\n", view.Date)
		return err
	}
	if _, err := fmt.Fprintf(w, "Plan for %s (%s): %d of %d min planned, %d min left\n\n",
		view.Date, view.Phase, view.PlannedMin, view.Budget, view.RemainingMin); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "\tCHORE\tEST\tURGENCY")
	for _, it := range view.Items {
		mark := "[ ]"
		if it.Done {
			mark = "[x]"
		}
		flag := ""
		if it.Overdue {
			flag = " overdue"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%dm\t%.2f%s\n", mark, it.Name, it.EstMin, it.Urgency, flag)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if view.Phase == string(dailyplan.PhaseExhausted) {
		_, err := fmt.Fprintln(w, "\nAll done for today.")
		return err
	}
	return nil
}

func printListText(w io.Writer, items []listItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No chores yet. Add one with `chored add <name> <days> [minutes]`.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tEVERY\tLAST DONE\tDUE\tEST\tURGENCY")
	for _, it := range items {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%dd\t%s\t%s\t%dm\t%.2f\n",
			shortID(it.ID), it.Name, it.FreqDays, it.LastDone, it.Due, it.EstMin, it.Urgency)
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 && strings.Count(id, "-") == 4 {
		return id[:8]
	}
	return id
}
