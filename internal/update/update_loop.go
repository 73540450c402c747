package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/chored/internal/scheduler"
	"github.com/sandeepkv93/chored/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForEventCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Prompt.Active {
			return m.handlePromptKey(typed)
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Today:
			m.CurrentView = ViewToday
			m.syncSelectedToCursor()
			return m, nil
		case m.Keys.All:
			m.CurrentView = ViewAll
			m.syncSelectedToCursor()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			m.helpViewport.GotoTop()
			return m, nil
		case "r":
			return m.regenerate()
		case "+", "=":
			return m.adjustBudget(budgetStep)
		case "-":
			return m.adjustBudget(-budgetStep)
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if m.HelpVisible {
			switch typed.String() {
			case "pgdown", "pgup":
				var cmd tea.Cmd
				m.helpViewport, cmd = m.helpViewport.Update(typed)
				return m, cmd
			}
		}
		return m.handleListKey(typed)
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			m.syncSelectedToCursor()
		}
		return m, nil
	case SetStatusMsg:
		if typed.IsError {
			m.Status = StatusBar{Text: typed.Text, IsError: true}
			return m, nil
		}
		m.setStatus(typed.Text)
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.setError(typed.Err)
		return m, nil
	case SchedulerEventMsg:
		return m.onSchedulerEvent(typed.Event)
	}

	return m, nil
}

func (m Model) onSchedulerEvent(ev scheduler.Event) (Model, tea.Cmd) {
	switch ev.Kind {
	case scheduler.KindRollover:
		built, err := m.Service.Plan(m.ctx, false)
		if err != nil {
			m.setError(err)
		} else if built {
			m.setStatus(fmt.Sprintf("new day: plan for %s", m.Service.Today()))
		}
		m.reload()
		if m.Scheduler != nil {
			if _, err := m.Scheduler.ScheduleRollover(m.now()); err != nil {
				m.setError(err)
			}
		}
	case scheduler.KindRefresh:
		// a newer status moves statusUntil past this event
		if !m.statusUntil.IsZero() && !ev.TriggerAt.Before(m.statusUntil) {
			m.Status = StatusBar{}
			m.statusUntil = time.Time{}
		}
	}
	if m.Scheduler == nil {
		return m, nil
	}
	return m, waitForEventCmd(m.Scheduler.C())
}

// ensurePlan builds today's plan if the rollover event has not done so yet,
// e.g. after the machine slept through midnight.
func (m *Model) ensurePlan() error {
	_, err := m.Service.Plan(m.ctx, false)
	return err
}

func (m Model) regenerate() (Model, tea.Cmd) {
	if _, err := m.Service.Plan(m.ctx, true); err != nil {
		m.setError(err)
		return m, nil
	}
	m.reload()
	p := m.Service.Progress()
	m.setStatus(fmt.Sprintf("plan rebuilt: %d chores, %d min", p.Picked, p.PlannedMin))
	return m, nil
}

func (m Model) adjustBudget(delta int) (Model, tea.Cmd) {
	got, err := m.Service.SetBudget(m.Service.Budget() + delta)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.Today.Budget = got
	m.setStatus(fmt.Sprintf("budget %d min, press r to rebuild", got))
	return m, nil
}

// setStatus shows text and asks the scheduler to clear it after statusTTL.
func (m *Model) setStatus(text string) {
	m.Status = StatusBar{Text: text}
	m.statusUntil = m.now().Add(statusTTL)
	if m.Scheduler != nil {
		if err := m.Scheduler.Schedule(scheduler.Event{
			Kind:      scheduler.KindRefresh,
			TriggerAt: m.statusUntil,
		}); err != nil {
			m.LastError = err
		}
	}
}

func (m *Model) setError(err error) {
	m.LastError = err
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.statusUntil = time.Time{}
	}
}

func waitForEventCmd(ch <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return SchedulerEventMsg{Event: ev}
	}
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		} else {
			status = "status: " + m.Status.Text
		}
	}

	leftPane := m.renderTodayView()
	if m.CurrentView == ViewAll {
		leftPane = m.renderAllView()
	}
	rightPane := m.renderDetail() + m.renderMinutesPrompt() + m.renderCommandPalette() + m.renderHelpIfVisible()

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("chored | %s | %s", m.CurrentView, m.Day),
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		Footer: fmt.Sprintf("keys: %s today | %s all | / cmd | %s help | %s quit",
			m.Keys.Today, m.Keys.All, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewToday, ViewAll:
		return true
	default:
		return false
	}
}
