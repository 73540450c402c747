package model

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sandeepkv93/chored/internal/calendar"
)

var (
	ErrPlanMissingDate   = errors.New("model: daily plan date is required")
	ErrPlanDuplicatePick = errors.New("model: daily plan picks a task twice")
	ErrPlanNotSubset     = errors.New("model: completed task is not in the daily plan")
	ErrDuplicateTaskID   = errors.New("model: duplicate task id")
)

// DailyPlan is the locked work queue for one calendar day. PickedIDs keeps
// selection order; CompletedIDs is always a subset of PickedIDs.
type DailyPlan struct {
	Date         calendar.Date `json:"dateISO" yaml:"dateISO"`
	PickedIDs    []string      `json:"pickedIds" yaml:"pickedIds"`
	CompletedIDs []string      `json:"completedIds" yaml:"completedIds"`
}

func (p DailyPlan) Validate() error {
	if p.Date.IsZero() {
		return ErrPlanMissingDate
	}
	seen := make(map[string]bool, len(p.PickedIDs))
	for _, id := range p.PickedIDs {
		if seen[id] {
			return fmt.Errorf("%w: %q", ErrPlanDuplicatePick, id)
		}
		seen[id] = true
	}
	for _, id := range p.CompletedIDs {
		if !seen[id] {
			return fmt.Errorf("%w: %q", ErrPlanNotSubset, id)
		}
	}
	return nil
}

func (p DailyPlan) IsFor(day calendar.Date) bool {
	return p.Date.Equal(day)
}

func (p DailyPlan) IsPicked(id string) bool {
	return slices.Contains(p.PickedIDs, id)
}

func (p DailyPlan) IsCompleted(id string) bool {
	return slices.Contains(p.CompletedIDs, id)
}

func (p DailyPlan) Clone() DailyPlan {
	return DailyPlan{
		Date:         p.Date,
		PickedIDs:    append([]string{}, p.PickedIDs...),
		CompletedIDs: append([]string{}, p.CompletedIDs...),
	}
}

// AppState is the aggregate root: every task plus the current plan, if any.
type AppState struct {
	Tasks []Task     `json:"tasks" yaml:"tasks"`
	Plan  *DailyPlan `json:"dailyPlan" yaml:"dailyPlan"`
}

func (s AppState) Validate() error {
	seen := make(map[string]bool, len(s.Tasks))
	for _, t := range s.Tasks {
		if err := t.Validate(); err != nil {
			return err
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateTaskID, t.ID)
		}
		seen[t.ID] = true
	}
	if s.Plan != nil {
		return s.Plan.Validate()
	}
	return nil
}

func (s AppState) Clone() AppState {
	out := AppState{Tasks: make([]Task, 0, len(s.Tasks))}
	for _, t := range s.Tasks {
		out.Tasks = append(out.Tasks, t.Clone())
	}
	if s.Plan != nil {
		p := s.Plan.Clone()
		out.Plan = &p
	}
	return out
}

func (s AppState) IndexOf(id string) int {
	return slices.IndexFunc(s.Tasks, func(t Task) bool { return t.ID == id })
}

func (s AppState) TaskByID(id string) (Task, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.Tasks[i], true
}
