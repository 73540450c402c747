package views

import (
	"strings"
	"testing"
)

func TestRenderTodayPanel(t *testing.T) {
	out := RenderTodayPanel(TodayPanelData{
		Day:          "2026-02-09",
		Phase:        "Active",
		Budget:       60,
		PlannedMin:   60,
		RemainingMin: 40,
		Items: []ChoreRowData{
			{ID: "a", Name: "Laundry", EstMin: 30, Urgency: 0.25, Overdue: true, Selected: true},
			{ID: "b", Name: "Water plants", EstMin: 10, Urgency: 0.06},
			{ID: "c", Name: "Windows", EstMin: 45, Urgency: 0.01},
		},
	})
	for _, want := range []string{
		"today 2026-02-09 (active)",
		"budget 60 min | planned 60 | left 40",
		"> [RED] Laundry ~30m",
		"  [YELLOW] Water plants ~10m",
		"  [GREEN] Windows ~45m",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestRenderTodayPanelExhausted(t *testing.T) {
	out := RenderTodayPanel(TodayPanelData{Phase: "Exhausted"})
	if !strings.HasSuffix(out, "All done for today.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	out = RenderTodayPanel(TodayPanelData{Phase: "Absent"})
	if !strings.HasSuffix(out, "(nothing planned)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRenderDetail(t *testing.T) {
	if got := RenderDetail(DetailData{}); got != "details:\n(no selection)" {
		t.Fatalf("unexpected empty detail: %q", got)
	}
	out := RenderDetail(DetailData{
		Name: "Dishes", FreqDays: 1, LastDone: "2026-02-06", Due: "2026-02-07",
		EstMin: 20, Urgency: 4.15, Overdue: true, Runs: 2, MeanMin: 25, LastRun: 30, PlannedIn: true,
	})
	for _, want := range []string{"due: 2026-02-07 (overdue)", "urgency: 4.150", "in today's plan", "history: 2 runs, mean 25.0 min, last 30 min"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestRenderMinutesPromptHiddenWhenInactive(t *testing.T) {
	if got := RenderMinutesPrompt(MinutesPromptData{TaskName: "Dishes"}); got != "" {
		t.Fatalf("expected nothing, got %q", got)
	}
	out := RenderMinutesPrompt(MinutesPromptData{Active: true, TaskName: "Dishes", EstMin: 20, ErrorText: "bad"})
	if !strings.Contains(out, "complete Dishes (estimate 20 min)") || !strings.Contains(out, "error: bad") {
		t.Fatalf("unexpected prompt:\n%s", out)
	}
}

func TestRenderMarkdownFallsBackOnBlank(t *testing.T) {
	if got := RenderMarkdown("   "); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := RenderMarkdown("# Help"); !strings.Contains(got, "Help") {
		t.Fatalf("expected heading text, got %q", got)
	}
}
