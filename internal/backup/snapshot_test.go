package backup

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/chored/internal/calendar"
	"github.com/sandeepkv93/chored/internal/model"
)

func sampleState() model.AppState {
	day := calendar.New(2026, 2, 9)
	a := model.NewTask("a", "Dishes", 1, calendar.AddDays(day, -2), 20)
	a.History = []model.Completion{{Date: calendar.AddDays(day, -2), ActualMinutes: 18}}
	b := model.NewTask("b", "Laundry", 7, calendar.AddDays(day, -9), 45)
	return model.AppState{
		Tasks: []model.Task{a, b},
		Plan:  &model.DailyPlan{Date: day, PickedIDs: []string{"a", "b"}, CompletedIDs: []string{"a"}},
	}
}

func TestExportRestoreRoundTrip(t *testing.T) {
	state := sampleState()
	raw, err := Export(state, time.Date(2026, 2, 9, 20, 15, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("export is not json: %v", err)
	}
	if doc["version"] != float64(CurrentVersion) || doc["exportedAt"] != "2026-02-09T20:15:00Z" {
		t.Fatalf("unexpected envelope: %v", doc)
	}

	got, err := Restore(raw)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(got.Tasks) != len(state.Tasks) {
		t.Fatalf("task count = %d", len(got.Tasks))
	}
	for i := range state.Tasks {
		want, have := state.Tasks[i], got.Tasks[i]
		if want.ID != have.ID || want.Name != have.Name || want.FreqDays != have.FreqDays ||
			want.EstMin != have.EstMin || !want.LastDone.Equal(have.LastDone) || !slices.Equal(want.History, have.History) {
			t.Fatalf("task %d mismatch: want %+v got %+v", i, want, have)
		}
	}
	if got.Plan == nil || !got.Plan.Date.Equal(state.Plan.Date) ||
		!slices.Equal(got.Plan.PickedIDs, state.Plan.PickedIDs) ||
		!slices.Equal(got.Plan.CompletedIDs, state.Plan.CompletedIDs) {
		t.Fatalf("plan mismatch: %+v", got.Plan)
	}
}

func TestExportWithoutPlanOrTasks(t *testing.T) {
	raw, err := Export(model.AppState{}, time.Now())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	got, err := Restore(raw)
	if err != nil {
		t.Fatalf("restore empty export: %v", err)
	}
	if len(got.Tasks) != 0 || got.Plan != nil {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestRestoreLegacyShape(t *testing.T) {
	doc := `{
		"version": 1,
		"exportedAt": "2024-01-05T10:00:00Z",
		"tasks": [
			{"id": "x", "name": "Mop kitchen", "freqDays": 7, "lastDoneISO": "1/5/2024", "estMin": 20},
			{"id": "y", "name": "Water plants", "freqDays": 0, "lastDoneISO": "2024-01-03"}
		]
	}`
	got, err := Restore([]byte(doc))
	if err != nil {
		t.Fatalf("restore legacy: %v", err)
	}
	if got.Plan != nil {
		t.Fatal("legacy restore must reset the plan")
	}
	if got.Tasks[0].LastDone.String() != "2024-01-05" || got.Tasks[0].EstMin != 20 {
		t.Fatalf("unexpected first task: %+v", got.Tasks[0])
	}
	if got.Tasks[1].FreqDays != 1 || got.Tasks[1].EstMin != model.DefaultEstMin {
		t.Fatalf("expected clamped defaults: %+v", got.Tasks[1])
	}
}

func TestRestoreCurrentShapeWithoutPlan(t *testing.T) {
	doc := `{"version": 2, "exportedAt": "x", "state": {"tasks": [
		{"id": "a", "name": "Dishes", "freqDays": 1, "lastDoneISO": "2026-02-01", "estMin": 15, "history": null}
	]}}`
	got, err := Restore([]byte(doc))
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got.Plan != nil || len(got.Tasks) != 1 {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestRestoreDropsUnusablePlan(t *testing.T) {
	base := `{"version": 2, "state": {"tasks": [
		{"id": "a", "name": "Dishes", "freqDays": 1, "lastDoneISO": "2026-02-01"}
	], "dailyPlan": %s}}`
	for _, plan := range []string{`null`, `"garbage"`, `{"dateISO": "soon", "pickedIds": ["a"]}`} {
		got, err := Restore([]byte(strings.Replace(base, "%s", plan, 1)))
		if err != nil {
			t.Fatalf("restore with plan %s: %v", plan, err)
		}
		if got.Plan != nil {
			t.Fatalf("plan %s should be dropped, got %+v", plan, got.Plan)
		}
	}
}

func TestRestoreSanitizesPlanMembership(t *testing.T) {
	doc := `{"version": 2, "state": {"tasks": [
		{"id": "a", "name": "Dishes", "freqDays": 1, "lastDoneISO": "2026-02-01"}
	], "dailyPlan": {"dateISO": "2026-02-09", "pickedIds": ["a", "ghost", "a"], "completedIds": ["ghost", "a"]}}}`
	got, err := Restore([]byte(doc))
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !slices.Equal(got.Plan.PickedIDs, []string{"a"}) || !slices.Equal(got.Plan.CompletedIDs, []string{"a"}) {
		t.Fatalf("unexpected plan: %+v", got.Plan)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("restored state invalid: %v", err)
	}
}

func TestRestoreTruncatesHistory(t *testing.T) {
	entries := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		entries = append(entries, `{"date": "2026-01-01", "actualMinutes": 10}`)
	}
	doc := `{"version": 2, "state": {"tasks": [{"id": "a", "name": "Dishes", "freqDays": 1, "lastDoneISO": "2026-02-01", "history": [` +
		strings.Join(entries, ",") + `]}]}}`
	got, err := Restore([]byte(doc))
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(got.Tasks[0].History) != model.HistoryLimit {
		t.Fatalf("history length = %d", len(got.Tasks[0].History))
	}
}

func TestRestoreRejectsBrokenSnapshots(t *testing.T) {
	cases := map[string]string{
		"empty":            ``,
		"not json":         `tasks: []`,
		"no task list":     `{"version": 2, "exportedAt": "x"}`,
		"tasks not array":  `{"version": 1, "tasks": {"id": "a"}}`,
		"state sans tasks": `{"version": 2, "state": {"dailyPlan": null}}`,
		"task missing id":  `{"tasks": [{"name": "Dishes", "freqDays": 1, "lastDoneISO": "2026-02-01"}]}`,
		"task bad date":    `{"tasks": [{"id": "a", "name": "Dishes", "freqDays": 1, "lastDoneISO": "someday"}]}`,
		"task blank name":  `{"tasks": [{"id": "a", "name": "  ", "freqDays": 1, "lastDoneISO": "2026-02-01"}]}`,
		"duplicate ids": `{"tasks": [
			{"id": "a", "name": "Dishes", "freqDays": 1, "lastDoneISO": "2026-02-01"},
			{"id": "a", "name": "Dishes", "freqDays": 1, "lastDoneISO": "2026-02-01"}]}`,
	}
	for name, doc := range cases {
		if _, err := Restore([]byte(doc)); !errors.Is(err, ErrInvalidSnapshot) {
			t.Fatalf("%s: expected ErrInvalidSnapshot, got %v", name, err)
		}
	}
}

func TestFilenameIncludesDate(t *testing.T) {
	if got := Filename(calendar.New(2026, 2, 9)); got != "chored-backup-2026-02-09.json" {
		t.Fatalf("Filename = %s", got)
	}
}
