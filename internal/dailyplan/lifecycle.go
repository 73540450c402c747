// Package dailyplan manages the once-per-day locked plan. Every function takes
// the current state by value and returns a new state; inputs are never
// mutated.
package dailyplan

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sandeepkv93/chored/internal/calendar"
	"github.com/sandeepkv93/chored/internal/estimate"
	"github.com/sandeepkv93/chored/internal/model"
	"github.com/sandeepkv93/chored/internal/planner"
)

var ErrTaskNotFound = errors.New("dailyplan: task not found")

type Phase string

const (
	PhaseAbsent    Phase = "Absent"
	PhaseActive    Phase = "Active"
	PhaseExhausted Phase = "Exhausted"
)

// Status reports the plan phase for today. A plan dated any other day is
// stale and reported as Absent.
func Status(state model.AppState, today calendar.Date) Phase {
	p := state.Plan
	if p == nil || !p.IsFor(today) {
		return PhaseAbsent
	}
	return planPhase(p)
}

// EnsurePlan builds today's plan when none exists for today, or always when
// force is set. The reported bool is true when a new plan was built.
func EnsurePlan(state model.AppState, today calendar.Date, budgetMin int, force bool) (model.AppState, bool) {
	out := state.Clone()
	pm := mustMachine(Status(state, today), func() int { return openPicks(out.Plan) })
	if force {
		pm.Fire(EventDiscard)
	}
	if !pm.Fire(EventEnsure) {
		return out, false
	}
	res := planner.Build(out.Tasks, today, budgetMin)
	out.Plan = &model.DailyPlan{
		Date:         today,
		PickedIDs:    res.PickedIDs,
		CompletedIDs: []string{},
	}
	pm.Fire(EventSettle)
	return out, true
}

// MarkComplete records a finished task. The task always learns from the
// observation; plan membership only changes when today's plan picked it.
// Picked ids never change, so freed time is never backfilled.
func MarkComplete(state model.AppState, today calendar.Date, taskID string, actualMinutes int) (model.AppState, error) {
	i := state.IndexOf(taskID)
	if i < 0 {
		return state, fmt.Errorf("%w: %q", ErrTaskNotFound, taskID)
	}
	out := state.Clone()
	out.Tasks[i] = estimate.Record(out.Tasks[i], today, actualMinutes)

	pm := mustMachine(Status(state, today), func() int { return openPicks(out.Plan) })
	p := out.Plan
	if pm.Phase() == PhaseActive && p.IsPicked(taskID) && !p.IsCompleted(taskID) {
		p.CompletedIDs = append(p.CompletedIDs, taskID)
		pm.Fire(EventComplete)
	}
	return out, nil
}

// RemoveTask deletes a task and purges it from the plan whatever its date.
func RemoveTask(state model.AppState, taskID string) model.AppState {
	out := state.Clone()
	out.Tasks = slices.DeleteFunc(out.Tasks, func(t model.Task) bool { return t.ID == taskID })
	if out.Plan != nil {
		pm := mustMachine(planPhase(out.Plan), func() int { return openPicks(out.Plan) })
		drop := func(id string) bool { return id == taskID }
		out.Plan.PickedIDs = slices.DeleteFunc(out.Plan.PickedIDs, drop)
		out.Plan.CompletedIDs = slices.DeleteFunc(out.Plan.CompletedIDs, drop)
		pm.Fire(EventRemove)
	}
	return out
}

// ReplaceTasks swaps the whole task collection and discards the plan.
func ReplaceTasks(state model.AppState, tasks []model.Task) model.AppState {
	out := model.AppState{Tasks: make([]model.Task, 0, len(tasks)), Plan: state.Plan}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, t.Clone())
	}
	pm := mustMachine(planPhase(state.Plan), nil)
	pm.Fire(EventReplace)
	if pm.Phase() == PhaseAbsent {
		out.Plan = nil
	}
	return out
}

// EditTask applies form input to one task. Plan membership is untouched
// until the next regeneration.
func EditTask(state model.AppState, taskID string, edit model.TaskEdit) (model.AppState, error) {
	i := state.IndexOf(taskID)
	if i < 0 {
		return state, fmt.Errorf("%w: %q", ErrTaskNotFound, taskID)
	}
	updated, err := model.ApplyEdit(state.Tasks[i], edit)
	if err != nil {
		return state, err
	}
	out := state.Clone()
	out.Tasks[i] = updated
	return out, nil
}

func AddTask(state model.AppState, task model.Task) (model.AppState, error) {
	if err := task.Validate(); err != nil {
		return state, err
	}
	if state.IndexOf(task.ID) >= 0 {
		return state, fmt.Errorf("%w: %q", model.ErrDuplicateTaskID, task.ID)
	}
	out := state.Clone()
	out.Tasks = append(out.Tasks, task.Clone())
	return out, nil
}

// Remaining lists today's picked tasks not yet completed, in pick order.
// Ids whose task no longer exists are skipped.
func Remaining(state model.AppState, today calendar.Date) []model.Task {
	p := state.Plan
	if p == nil || !p.IsFor(today) {
		return nil
	}
	out := make([]model.Task, 0, len(p.PickedIDs))
	for _, id := range p.PickedIDs {
		if p.IsCompleted(id) {
			continue
		}
		if t, ok := state.TaskByID(id); ok {
			out = append(out, t.Clone())
		}
	}
	return out
}

type Progress struct {
	Phase        Phase
	Picked       int
	Completed    int
	PlannedMin   int
	RemainingMin int
}

func ProgressFor(state model.AppState, today calendar.Date) Progress {
	pr := Progress{Phase: Status(state, today)}
	if pr.Phase == PhaseAbsent {
		return pr
	}
	p := state.Plan
	for _, id := range p.PickedIDs {
		t, ok := state.TaskByID(id)
		if !ok {
			continue
		}
		pr.Picked++
		pr.PlannedMin += max(1, t.EstMin)
		if p.IsCompleted(id) {
			pr.Completed++
			continue
		}
		pr.RemainingMin += max(1, t.EstMin)
	}
	return pr
}
