package model

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/chored/internal/calendar"
)

func validTask() Task {
	return NewTask("task-1", "Mop kitchen", 7, calendar.New(2024, time.January, 5), 20)
}

func TestTaskValidateSuccess(t *testing.T) {
	if err := validTask().Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsBrokenFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Task)
		want   error
	}{
		{"missing id", func(t *Task) { t.ID = " " }, ErrMissingID},
		{"blank name", func(t *Task) { t.Name = "" }, ErrEmptyName},
		{"zero frequency", func(t *Task) { t.FreqDays = 0 }, ErrInvalidFrequency},
		{"zero estimate", func(t *Task) { t.EstMin = 0 }, ErrInvalidEstimate},
		{"no last done", func(t *Task) { t.LastDone = calendar.Date{} }, ErrInvalidLastDone},
		{"history too long", func(t *Task) { t.History = make([]Completion, HistoryLimit+1) }, ErrHistoryTooLong},
	}
	for _, tc := range cases {
		task := validTask()
		tc.mutate(&task)
		if err := task.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestNewTaskClampsNumerics(t *testing.T) {
	task := NewTask("t", "  Vacuum  ", 0, calendar.New(2024, 1, 1), 999)
	if task.Name != "Vacuum" || task.FreqDays != MinFreqDays || task.EstMin != MaxEstMin {
		t.Fatalf("unexpected clamped task: %+v", task)
	}
	task = NewTask("t", "Vacuum", 99999, calendar.New(2024, 1, 1), -4)
	if task.FreqDays != MaxFreqDays || task.EstMin != MinEstMin {
		t.Fatalf("unexpected clamped task: %+v", task)
	}
}

func TestTaskCloneDoesNotAliasHistory(t *testing.T) {
	task := validTask()
	task.History = []Completion{{Date: calendar.New(2024, 1, 5), ActualMinutes: 10}}
	clone := task.Clone()
	clone.History[0].ActualMinutes = 99
	if task.History[0].ActualMinutes != 10 {
		t.Fatal("clone mutated original history")
	}
}

func TestApplyEdit(t *testing.T) {
	task := validTask()
	name := "Mop floors"
	freq := 5000
	est := 0
	last := "2/1/2024"
	out, err := ApplyEdit(task, TaskEdit{Name: &name, FreqDays: &freq, EstMin: &est, LastDone: &last})
	if err != nil {
		t.Fatalf("apply edit: %v", err)
	}
	if out.Name != "Mop floors" || out.FreqDays != MaxFreqDays || out.EstMin != MinEstMin {
		t.Fatalf("unexpected edited task: %+v", out)
	}
	if out.LastDone.String() != "2024-02-01" {
		t.Fatalf("unexpected last done: %s", out.LastDone)
	}
	if task.Name != "Mop kitchen" {
		t.Fatal("edit mutated original task")
	}
}

func TestApplyEditRejectsBadDate(t *testing.T) {
	task := validTask()
	bad := "next tuesday"
	freq := 3
	out, err := ApplyEdit(task, TaskEdit{FreqDays: &freq, LastDone: &bad})
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if out.FreqDays != task.FreqDays || !out.LastDone.Equal(task.LastDone) {
		t.Fatalf("rejected edit leaked changes: %+v", out)
	}
}

func TestApplyEditRejectsBlankName(t *testing.T) {
	blank := "   "
	if _, err := ApplyEdit(validTask(), TaskEdit{Name: &blank}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}
