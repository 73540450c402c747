// Package backup exports and restores versioned state snapshots.
//
// Version 1 snapshots carry only a task list at the top level. Version 2
// nests the task list and the daily plan under "state". Restore accepts both
// and upgrades version 1 into the current shape.
package backup

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/sandeepkv93/chored/internal/calendar"
	"github.com/sandeepkv93/chored/internal/model"
)

const CurrentVersion = 2

var ErrInvalidSnapshot = errors.New("backup: invalid snapshot")

//go:embed snapshot.schema.json
var snapshotSchemaJSON string

var snapshotSchemaLoader = gojsonschema.NewStringLoader(snapshotSchemaJSON)

type currentSnapshot struct {
	Version    int            `json:"version"`
	ExportedAt string         `json:"exportedAt"`
	State      model.AppState `json:"state"`
}

// envelope is decoded first to pick the payload shape.
type envelope struct {
	Version    int             `json:"version"`
	ExportedAt string          `json:"exportedAt"`
	Tasks      json.RawMessage `json:"tasks"`
	State      *stateRecord    `json:"state"`
}

type stateRecord struct {
	Tasks     []taskRecord    `json:"tasks"`
	DailyPlan json.RawMessage `json:"dailyPlan"`
}

type taskRecord struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	FreqDays    float64            `json:"freqDays"`
	LastDoneISO string             `json:"lastDoneISO"`
	EstMin      *float64           `json:"estMin"`
	History     []completionRecord `json:"history"`
}

type completionRecord struct {
	Date          string  `json:"date"`
	ActualMinutes float64 `json:"actualMinutes"`
}

type planRecord struct {
	DateISO      string   `json:"dateISO"`
	PickedIDs    []string `json:"pickedIds"`
	CompletedIDs []string `json:"completedIds"`
}

// Filename is the suggested export file name for day.
func Filename(day calendar.Date) string {
	return fmt.Sprintf("chored-backup-%s.json", day)
}

// Export encodes state in the current snapshot shape.
func Export(state model.AppState, now time.Time) ([]byte, error) {
	snap := currentSnapshot{
		Version:    CurrentVersion,
		ExportedAt: now.UTC().Format(time.RFC3339),
		State:      normalizeForExport(state),
	}
	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return append(out, '\n'), nil
}

func normalizeForExport(state model.AppState) model.AppState {
	out := state.Clone()
	for i := range out.Tasks {
		if out.Tasks[i].History == nil {
			out.Tasks[i].History = []model.Completion{}
		}
	}
	return out
}

// Restore decodes a snapshot of either shape. It either returns a complete,
// valid state or an error wrapping ErrInvalidSnapshot; it never returns a
// partial result.
func Restore(data []byte) (model.AppState, error) {
	if strings.TrimSpace(string(data)) == "" {
		return model.AppState{}, fmt.Errorf("%w: empty document", ErrInvalidSnapshot)
	}
	if err := validateSchema(string(data)); err != nil {
		return model.AppState{}, err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return model.AppState{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	var (
		records []taskRecord
		rawPlan json.RawMessage
	)
	switch {
	case env.State != nil:
		records = env.State.Tasks
		rawPlan = env.State.DailyPlan
	case len(env.Tasks) > 0:
		if err := json.Unmarshal(env.Tasks, &records); err != nil {
			return model.AppState{}, fmt.Errorf("%w: tasks: %v", ErrInvalidSnapshot, err)
		}
	default:
		return model.AppState{}, fmt.Errorf("%w: no task list", ErrInvalidSnapshot)
	}

	state := model.AppState{Tasks: make([]model.Task, 0, len(records))}
	for i, rec := range records {
		task, err := rec.toTask()
		if err != nil {
			return model.AppState{}, fmt.Errorf("%w: task %d: %v", ErrInvalidSnapshot, i, err)
		}
		state.Tasks = append(state.Tasks, task)
	}
	if err := state.Validate(); err != nil {
		return model.AppState{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	state.Plan = upgradePlan(rawPlan, state)
	return state, nil
}

func validateSchema(doc string) error {
	result, err := gojsonschema.Validate(snapshotSchemaLoader, gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if result.Valid() {
		return nil
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidSnapshot, strings.Join(issues, "; "))
}

func (r taskRecord) toTask() (model.Task, error) {
	last, ok := calendar.ParseFlexible(r.LastDoneISO)
	if !ok {
		return model.Task{}, fmt.Errorf("bad lastDoneISO %q", r.LastDoneISO)
	}
	est := model.DefaultEstMin
	if r.EstMin != nil {
		est = roundInt(*r.EstMin)
	}
	task := model.NewTask(strings.TrimSpace(r.ID), r.Name, roundInt(r.FreqDays), last, est)
	for _, c := range r.History {
		if len(task.History) == model.HistoryLimit {
			break
		}
		day, ok := calendar.ParseFlexible(c.Date)
		if !ok {
			continue
		}
		task.History = append(task.History, model.Completion{
			Date:          day,
			ActualMinutes: model.ClampEstMin(roundInt(c.ActualMinutes)),
		})
	}
	return task, nil
}

// upgradePlan is lenient: the plan is optional, so anything unusable yields
// no plan instead of failing the restore.
func upgradePlan(raw json.RawMessage, state model.AppState) *model.DailyPlan {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	var rec planRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil
	}
	day, ok := calendar.ParseFlexible(rec.DateISO)
	if !ok {
		return nil
	}
	plan := model.DailyPlan{Date: day, PickedIDs: []string{}, CompletedIDs: []string{}}
	for _, id := range rec.PickedIDs {
		if state.IndexOf(id) >= 0 && !plan.IsPicked(id) {
			plan.PickedIDs = append(plan.PickedIDs, id)
		}
	}
	for _, id := range rec.CompletedIDs {
		if plan.IsPicked(id) && !plan.IsCompleted(id) {
			plan.CompletedIDs = append(plan.CompletedIDs, id)
		}
	}
	return &plan
}

func roundInt(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int(math.Round(v))
}
