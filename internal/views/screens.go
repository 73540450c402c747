package views

import (
	"fmt"
	"strings"
)

type ChoreRowData struct {
	ID       string
	Name     string
	Due      string
	EstMin   int
	Urgency  float64
	Overdue  bool
	Done     bool
	Selected bool
}

type TodayPanelData struct {
	Day          string
	Phase        string
	Budget       int
	PlannedMin   int
	RemainingMin int
	ProgressView string
	Items        []ChoreRowData
}

type AllPanelData struct {
	TableView string
	Count     int
}

type DetailData struct {
	Name      string
	FreqDays  int
	LastDone  string
	Due       string
	EstMin    int
	Urgency   float64
	Overdue   bool
	Runs      int
	MeanMin   float64
	LastRun   int
	PlannedIn bool
}

type MinutesPromptData struct {
	Active    bool
	TaskName  string
	EstMin    int
	InputView string
	ErrorText string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
	Manual      string
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "today %s (%s)\n", data.Day, strings.ToLower(data.Phase))
	fmt.Fprintf(&b, "budget %d min | planned %d | left %d\n", data.Budget, data.PlannedMin, data.RemainingMin)
	if data.ProgressView != "" {
		b.WriteString(data.ProgressView + "\n")
	}
	b.WriteString("actions: [j/k]move [enter]done [x]delete [r]regen [+/-]budget\n\n")

	switch {
	case data.Phase == "Exhausted":
		b.WriteString("All done for today.")
		return b.String()
	case len(data.Items) == 0:
		b.WriteString("(nothing planned)")
		return b.String()
	}
	for _, item := range data.Items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		fmt.Fprintf(&b, "%s %s %s ~%dm\n", cursor, urgencyBadge(item), item.Name, item.EstMin)
	}
	return strings.TrimSpace(b.String())
}

func RenderAllPanel(data AllPanelData) string {
	if data.Count == 0 {
		return "all chores:\n(no chores yet, use /add or chored import)"
	}
	return fmt.Sprintf("all chores (%d):\n%s", data.Count, data.TableView)
}

func RenderDetail(data DetailData) string {
	if data.Name == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	fmt.Fprintf(&b, "name: %s\n", data.Name)
	fmt.Fprintf(&b, "every: %d days\n", data.FreqDays)
	fmt.Fprintf(&b, "last done: %s\n", data.LastDone)
	due := data.Due
	if data.Overdue {
		due += " (overdue)"
	}
	fmt.Fprintf(&b, "due: %s\n", due)
	fmt.Fprintf(&b, "estimate: %d min\n", data.EstMin)
	fmt.Fprintf(&b, "urgency: %.3f\n", data.Urgency)
	if data.PlannedIn {
		b.WriteString("in today's plan\n")
	}
	if data.Runs > 0 {
		fmt.Fprintf(&b, "history: %d runs, mean %.1f min, last %d min", data.Runs, data.MeanMin, data.LastRun)
	} else {
		b.WriteString("history: none")
	}
	return b.String()
}

func RenderMinutesPrompt(data MinutesPromptData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\ncomplete %s (estimate %d min)\n", data.TaskName, data.EstMin)
	b.WriteString("keys: [enter] record [esc] cancel\n")
	b.WriteString(data.InputView)
	if data.ErrorText != "" {
		b.WriteString("\nerror: " + data.ErrorText)
	}
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("\ncommand: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	out := fmt.Sprintf("\nhelp (%s):\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
	if data.Manual != "" {
		out += "\n" + data.Manual
	}
	return out
}

// dueScore is the lowest urgency of a chore that has reached its due date.
const dueScore = 0.05

func urgencyBadge(item ChoreRowData) string {
	switch {
	case item.Done:
		return "[DONE]"
	case item.Overdue:
		return "[RED]"
	case item.Urgency >= dueScore:
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}
