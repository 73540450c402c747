package planner

import (
	"cmp"
	"slices"

	"github.com/sandeepkv93/chored/internal/calendar"
	"github.com/sandeepkv93/chored/internal/model"
)

// Result is the selection for one day, in priority order.
type Result struct {
	PickedIDs []string
	TotalMin  int
	// Forced is set when no task fit the budget and the top task was
	// included anyway.
	Forced bool
}

// Rank scores every task and orders them: overdue first, then urgency
// descending, then earlier due date. Remaining ties keep input order.
func Rank(tasks []model.Task, today calendar.Date) []Scored {
	out := make([]Scored, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, Score(t, today))
	}
	slices.SortStableFunc(out, compareScored)
	return out
}

func compareScored(a, b Scored) int {
	if a.Overdue != b.Overdue {
		if a.Overdue {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(b.Urgency, a.Urgency); c != 0 {
		return c
	}
	return calendar.DaysBetween(b.Due, a.Due)
}

// Build greedily fills budgetMin with the highest priority tasks. Tasks that
// would overflow the budget are skipped and scanning continues; scanning
// stops once the budget is reached. When nothing fits the single top task is
// returned regardless of budget.
func Build(tasks []model.Task, today calendar.Date, budgetMin int) Result {
	budget := max(1, budgetMin)
	ranked := Rank(tasks, today)

	res := Result{PickedIDs: make([]string, 0)}
	for _, s := range ranked {
		if res.TotalMin >= budget {
			break
		}
		if res.TotalMin+s.EstMin > budget {
			continue
		}
		res.PickedIDs = append(res.PickedIDs, s.TaskID)
		res.TotalMin += s.EstMin
	}

	if len(res.PickedIDs) == 0 && len(ranked) > 0 {
		top := ranked[0]
		res.PickedIDs = append(res.PickedIDs, top.TaskID)
		res.TotalMin = top.EstMin
		res.Forced = true
	}
	return res
}
