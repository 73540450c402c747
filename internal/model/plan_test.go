package model

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/chored/internal/calendar"
)

func TestDailyPlanValidate(t *testing.T) {
	day := calendar.New(2026, 2, 9)
	ok := DailyPlan{Date: day, PickedIDs: []string{"a", "b"}, CompletedIDs: []string{"b"}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid plan, got %v", err)
	}

	if err := (DailyPlan{PickedIDs: []string{"a"}}).Validate(); !errors.Is(err, ErrPlanMissingDate) {
		t.Fatalf("expected ErrPlanMissingDate, got %v", err)
	}
	dup := DailyPlan{Date: day, PickedIDs: []string{"a", "a"}}
	if err := dup.Validate(); !errors.Is(err, ErrPlanDuplicatePick) {
		t.Fatalf("expected ErrPlanDuplicatePick, got %v", err)
	}
	notSubset := DailyPlan{Date: day, PickedIDs: []string{"a"}, CompletedIDs: []string{"z"}}
	if err := notSubset.Validate(); !errors.Is(err, ErrPlanNotSubset) {
		t.Fatalf("expected ErrPlanNotSubset, got %v", err)
	}
}

func TestAppStateValidateRejectsDuplicateIDs(t *testing.T) {
	task := validTask()
	state := AppState{Tasks: []Task{task, task}}
	if err := state.Validate(); !errors.Is(err, ErrDuplicateTaskID) {
		t.Fatalf("expected ErrDuplicateTaskID, got %v", err)
	}
}

func TestAppStateCloneIsDeep(t *testing.T) {
	state := AppState{
		Tasks: []Task{validTask()},
		Plan:  &DailyPlan{Date: calendar.New(2026, 2, 9), PickedIDs: []string{"task-1"}},
	}
	clone := state.Clone()
	clone.Tasks[0].Name = "changed"
	clone.Plan.PickedIDs[0] = "other"
	clone.Plan.CompletedIDs = append(clone.Plan.CompletedIDs, "other")

	if state.Tasks[0].Name != "Mop kitchen" {
		t.Fatal("clone aliased tasks")
	}
	if state.Plan.PickedIDs[0] != "task-1" || len(state.Plan.CompletedIDs) != 0 {
		t.Fatal("clone aliased plan")
	}
}

func TestAppStateLookup(t *testing.T) {
	state := AppState{Tasks: []Task{validTask()}}
	if i := state.IndexOf("task-1"); i != 0 {
		t.Fatalf("IndexOf = %d", i)
	}
	if _, ok := state.TaskByID("missing"); ok {
		t.Fatal("expected missing task")
	}
	plan := DailyPlan{Date: calendar.New(2026, 2, 9), PickedIDs: []string{"task-1"}, CompletedIDs: []string{"task-1"}}
	if !plan.IsPicked("task-1") || !plan.IsCompleted("task-1") || plan.IsPicked("x") {
		t.Fatal("unexpected plan membership")
	}
	if !plan.IsFor(calendar.New(2026, 2, 9)) || plan.IsFor(calendar.New(2026, 2, 10)) {
		t.Fatal("unexpected IsFor result")
	}
}
