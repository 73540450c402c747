package model

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/chored/internal/calendar"
)

// TaskEdit carries raw form input. Nil fields are left unchanged.
type TaskEdit struct {
	Name     *string
	FreqDays *int
	LastDone *string
	EstMin   *int
}

// ApplyEdit validates edit at the input boundary and returns the updated task.
// Numbers are clamped; an unparseable date or blank name rejects the whole
// edit and the original task is returned untouched.
func ApplyEdit(t Task, edit TaskEdit) (Task, error) {
	out := t.Clone()
	if edit.Name != nil {
		name := strings.TrimSpace(*edit.Name)
		if name == "" {
			return t, fmt.Errorf("%w: name cannot be blank", ErrEmptyName)
		}
		out.Name = name
	}
	if edit.FreqDays != nil {
		out.FreqDays = ClampFreqDays(*edit.FreqDays)
	}
	if edit.EstMin != nil {
		out.EstMin = ClampEstMin(*edit.EstMin)
	}
	if edit.LastDone != nil {
		d, ok := calendar.ParseFlexible(*edit.LastDone)
		if !ok {
			return t, fmt.Errorf("%w: %q is not a date, use YYYY-MM-DD or M/D/YYYY", ErrInvalidDate, *edit.LastDone)
		}
		out.LastDone = d
	}
	return out, nil
}
