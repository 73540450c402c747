package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/chored/internal/calendar"
)

var (
	ErrMissingID        = errors.New("model: task id is required")
	ErrEmptyName        = errors.New("model: task name is required")
	ErrInvalidFrequency = errors.New("model: invalid task frequency")
	ErrInvalidEstimate  = errors.New("model: invalid task estimate")
	ErrInvalidLastDone  = errors.New("model: task last done date is required")
	ErrHistoryTooLong   = errors.New("model: task history exceeds limit")
	ErrInvalidDate      = errors.New("model: invalid date")
)

const (
	MinFreqDays   = 1
	MaxFreqDays   = 3650
	MinEstMin     = 1
	MaxEstMin     = 240
	DefaultEstMin = 15
	HistoryLimit  = 20
)

// Completion is one observed run of a task, newest first in Task.History.
type Completion struct {
	Date          calendar.Date `json:"date" yaml:"date"`
	ActualMinutes int           `json:"actualMinutes" yaml:"actualMinutes"`
}

// Task is a recurring chore.
type Task struct {
	ID       string        `json:"id" yaml:"id"`
	Name     string        `json:"name" yaml:"name"`
	FreqDays int           `json:"freqDays" yaml:"freqDays"`
	LastDone calendar.Date `json:"lastDoneISO" yaml:"lastDoneISO"`
	EstMin   int           `json:"estMin" yaml:"estMin"`
	History  []Completion  `json:"history" yaml:"history,omitempty"`
}

// NewTask builds a task with numerics clamped into range.
func NewTask(id, name string, freqDays int, lastDone calendar.Date, estMin int) Task {
	return Task{
		ID:       id,
		Name:     strings.TrimSpace(name),
		FreqDays: ClampFreqDays(freqDays),
		LastDone: lastDone,
		EstMin:   ClampEstMin(estMin),
		History:  []Completion{},
	}
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: id %q", ErrEmptyName, t.ID)
	}
	if t.FreqDays < MinFreqDays {
		return fmt.Errorf("%w: %d", ErrInvalidFrequency, t.FreqDays)
	}
	if t.EstMin < MinEstMin {
		return fmt.Errorf("%w: %d", ErrInvalidEstimate, t.EstMin)
	}
	if t.LastDone.IsZero() {
		return fmt.Errorf("%w: id %q", ErrInvalidLastDone, t.ID)
	}
	if len(t.History) > HistoryLimit {
		return fmt.Errorf("%w: %d entries", ErrHistoryTooLong, len(t.History))
	}
	return nil
}

func (t Task) Clone() Task {
	out := t
	out.History = append([]Completion{}, t.History...)
	return out
}

func ClampFreqDays(v int) int {
	return clamp(v, MinFreqDays, MaxFreqDays)
}

func ClampEstMin(v int) int {
	return clamp(v, MinEstMin, MaxEstMin)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
