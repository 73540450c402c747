package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/chored/internal/model"
	"github.com/sandeepkv93/chored/internal/planner"
	"github.com/sandeepkv93/chored/internal/views"
)

func (m *Model) initBubbleComponents() {
	cols := []table.Column{
		{Title: "Chore", Width: 20},
		{Title: "Due", Width: 10},
		{Title: "Est", Width: 5},
		{Title: "Urg", Width: 6},
	}
	m.allTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(12))

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.minutesInput = textinput.New()
	m.minutesInput.Prompt = "minutes> "
	m.minutesInput.CharLimit = 4
	m.minutesInput.Width = 8

	m.planProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	m.helpModel = help.New()
	m.helpViewport = viewport.New(54, 16)
	m.helpViewport.SetContent(views.RenderMarkdown(helpMarkdown))
}

// reload rebuilds both panes from the service and keeps the selection on the
// same chore when it is still listed.
func (m *Model) reload() {
	svc := m.Service
	today := svc.Today()
	m.Day = today
	state := svc.State()

	progressInfo := svc.Progress()
	m.Today.Phase = string(progressInfo.Phase)
	m.Today.Budget = svc.Budget()
	m.Today.PlannedMin = progressInfo.PlannedMin
	m.Today.RemainingMin = progressInfo.RemainingMin
	remaining := svc.Remaining()
	m.Today.Items = make([]ChoreItem, 0, len(remaining))
	for _, t := range remaining {
		m.Today.Items = append(m.Today.Items, choreItem(t, planner.Score(t, today), false))
	}

	ranking := svc.Ranking()
	m.All.Items = make([]ChoreItem, 0, len(ranking))
	for _, sc := range ranking {
		t, ok := state.TaskByID(sc.TaskID)
		if !ok {
			continue
		}
		done := state.Plan != nil && state.Plan.IsFor(today) && state.Plan.IsCompleted(t.ID)
		m.All.Items = append(m.All.Items, choreItem(t, sc, done))
	}

	m.Today.Cursor = cursorFor(m.Today.Items, m.SelectedID, m.Today.Cursor)
	m.All.Cursor = cursorFor(m.All.Items, m.SelectedID, m.All.Cursor)
	m.syncSelectedToCursor()
	m.syncBubbleData()
}

func choreItem(t model.Task, sc planner.Scored, done bool) ChoreItem {
	return ChoreItem{
		ID:       t.ID,
		Name:     t.Name,
		FreqDays: t.FreqDays,
		LastDone: t.LastDone.String(),
		Due:      sc.Due.String(),
		EstMin:   t.EstMin,
		Urgency:  sc.Urgency,
		Overdue:  sc.Overdue,
		Done:     done,
	}
}

func cursorFor(items []ChoreItem, id string, fallback int) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return min(max(fallback, 0), max(len(items)-1, 0))
}

func (m *Model) syncBubbleData() {
	rows := make([]table.Row, 0, len(m.All.Items))
	for _, it := range m.All.Items {
		rows = append(rows, table.Row{it.Name, it.Due, fmt.Sprintf("%dm", it.EstMin), fmt.Sprintf("%.2f", it.Urgency)})
	}
	m.allTable.SetRows(rows)
	if len(rows) > 0 {
		m.allTable.SetCursor(m.All.Cursor)
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	cursor, n := &m.Today.Cursor, len(m.Today.Items)
	if m.CurrentView == ViewAll {
		cursor, n = &m.All.Cursor, len(m.All.Items)
	}
	switch msg.String() {
	case "up", "k":
		if *cursor > 0 {
			*cursor--
		}
		m.syncSelectedToCursor()
	case "down", "j":
		if *cursor < n-1 {
			*cursor++
		}
		m.syncSelectedToCursor()
	case "enter", "d":
		if sel, ok := m.currentItem(); ok {
			m.openMinutesPrompt(sel)
		}
	case "x":
		if sel, ok := m.currentItem(); ok {
			return m.deleteChore(sel)
		}
	}
	m.syncBubbleData()
	return m, nil
}

func (m Model) deleteChore(sel ChoreItem) (Model, tea.Cmd) {
	if err := m.Service.Delete(m.ctx, sel.ID); err != nil {
		m.setError(err)
		return m, nil
	}
	m.SelectedID = ""
	m.reload()
	m.setStatus(fmt.Sprintf("deleted %s", sel.Name))
	return m, nil
}

func (m *Model) syncSelectedToCursor() {
	if sel, ok := m.currentItem(); ok {
		m.SelectedID = sel.ID
	}
}

func (m Model) currentItem() (ChoreItem, bool) {
	items, cursor := m.Today.Items, m.Today.Cursor
	if m.CurrentView == ViewAll {
		items, cursor = m.All.Items, m.All.Cursor
	}
	if cursor < 0 || cursor >= len(items) {
		return ChoreItem{}, false
	}
	return items[cursor], true
}
