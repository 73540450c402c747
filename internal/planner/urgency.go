// Package planner scores chores by urgency and fills a daily minute budget.
package planner

import (
	"github.com/sandeepkv93/chored/internal/calendar"
	"github.com/sandeepkv93/chored/internal/model"
)

// Heuristic weights. Every due task scores at least OverdueLinearWeight, which
// is above the largest not-yet-due score.
const (
	NotDueWeight        = 0.02
	OverdueLinearWeight = 0.05
)

// Scored is one task evaluated against a given day.
type Scored struct {
	TaskID  string
	Urgency float64
	EstMin  int
	Overdue bool
	Due     calendar.Date
}

func DueDate(t model.Task) calendar.Date {
	return calendar.AddDays(t.LastDone, max(1, t.FreqDays))
}

func IsOverdue(t model.Task, today calendar.Date) bool {
	return calendar.DaysBetween(DueDate(t), today) > 0
}

// Ratio is elapsed days since last completion over the interval.
func Ratio(t model.Task, today calendar.Date) float64 {
	elapsed := max(0, calendar.DaysBetween(t.LastDone, today))
	return float64(elapsed) / float64(max(1, t.FreqDays))
}

func Urgency(t model.Task, today calendar.Date) float64 {
	ratio := Ratio(t, today)
	if ratio < 1 {
		return NotDueWeight * ratio
	}
	base := ratio - 1
	return base*base + OverdueLinearWeight*ratio
}

func Score(t model.Task, today calendar.Date) Scored {
	return Scored{
		TaskID:  t.ID,
		Urgency: Urgency(t, today),
		EstMin:  max(1, t.EstMin),
		Overdue: IsOverdue(t, today),
		Due:     DueDate(t),
	}
}
