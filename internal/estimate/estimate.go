// Package estimate learns task durations from observed completions.
package estimate

import (
	"math"

	"github.com/sandeepkv93/chored/internal/calendar"
	"github.com/sandeepkv93/chored/internal/model"
)

// Smoothing is the weight given to the newest observation.
const Smoothing = 0.3

// Update is a single exponential smoothing step from old toward actual.
// Both inputs are floored at one minute, as is the result.
func Update(old, actual int, smoothing float64) int {
	prev := float64(max(1, old))
	obs := float64(max(1, actual))
	// each product is rounded to float64 before the sum
	next := math.Round(float64(prev*(1-smoothing)) + float64(obs*smoothing))
	return max(1, int(next))
}

// Record applies a completion on day to t and returns the updated task.
// The observation is prepended to history, which is then cut to
// model.HistoryLimit entries.
func Record(t model.Task, day calendar.Date, actualMinutes int) model.Task {
	actual := model.ClampEstMin(actualMinutes)
	out := t.Clone()
	out.LastDone = day
	out.EstMin = model.ClampEstMin(Update(t.EstMin, actual, Smoothing))

	history := make([]model.Completion, 0, min(len(t.History)+1, model.HistoryLimit))
	history = append(history, model.Completion{Date: day, ActualMinutes: actual})
	for _, c := range t.History {
		if len(history) == model.HistoryLimit {
			break
		}
		history = append(history, c)
	}
	out.History = history
	return out
}

type Summary struct {
	Count   int
	MeanMin float64
	LastMin int
}

func Stats(history []model.Completion) Summary {
	if len(history) == 0 {
		return Summary{}
	}
	total := 0
	for _, c := range history {
		total += c.ActualMinutes
	}
	return Summary{
		Count:   len(history),
		MeanMin: float64(total) / float64(len(history)),
		LastMin: history[0].ActualMinutes,
	}
}
