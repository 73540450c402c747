package update

import (
	"github.com/sandeepkv93/chored/internal/estimate"
	"github.com/sandeepkv93/chored/internal/views"
)

func (m Model) renderTodayView() string {
	rows := make([]views.ChoreRowData, 0, len(m.Today.Items))
	for i, it := range m.Today.Items {
		rows = append(rows, rowData(it, m.CurrentView == ViewToday && i == m.Today.Cursor))
	}
	progressView := ""
	if m.Today.PlannedMin > 0 {
		done := m.Today.PlannedMin - m.Today.RemainingMin
		progressView = m.planProgress.ViewAs(float64(done) / float64(m.Today.PlannedMin))
	}
	return views.RenderTodayPanel(views.TodayPanelData{
		Day:          m.Day.String(),
		Phase:        m.Today.Phase,
		Budget:       m.Today.Budget,
		PlannedMin:   m.Today.PlannedMin,
		RemainingMin: m.Today.RemainingMin,
		ProgressView: progressView,
		Items:        rows,
	})
}

func (m Model) renderAllView() string {
	return views.RenderAllPanel(views.AllPanelData{
		TableView: m.allTable.View(),
		Count:     len(m.All.Items),
	})
}

func (m Model) renderDetail() string {
	sel, ok := m.currentItem()
	if !ok {
		return views.RenderDetail(views.DetailData{})
	}
	data := views.DetailData{
		Name:     sel.Name,
		FreqDays: sel.FreqDays,
		LastDone: sel.LastDone,
		Due:      sel.Due,
		EstMin:   sel.EstMin,
		Urgency:  sel.Urgency,
		Overdue:  sel.Overdue,
	}
	state := m.Service.State()
	if t, found := state.TaskByID(sel.ID); found {
		stats := estimate.Stats(t.History)
		data.Runs = stats.Count
		data.MeanMin = stats.MeanMin
		data.LastRun = stats.LastMin
	}
	data.PlannedIn = state.Plan != nil && state.Plan.IsFor(m.Day) && state.Plan.IsPicked(sel.ID)
	return views.RenderDetail(data)
}

func (m Model) renderMinutesPrompt() string {
	return views.RenderMinutesPrompt(views.MinutesPromptData{
		Active:    m.Prompt.Active,
		TaskName:  m.Prompt.TaskName,
		EstMin:    m.Prompt.EstMin,
		InputView: m.minutesInput.View(),
		ErrorText: m.Prompt.Err,
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func rowData(it ChoreItem, selected bool) views.ChoreRowData {
	return views.ChoreRowData{
		ID:       it.ID,
		Name:     it.Name,
		Due:      it.Due,
		EstMin:   it.EstMin,
		Urgency:  it.Urgency,
		Overdue:  it.Overdue,
		Done:     it.Done,
		Selected: selected,
	}
}
