package update

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/chored/internal/model"
)

var errMinutesNotNumber = errors.New("minutes must be a whole number")

func (m *Model) openMinutesPrompt(sel ChoreItem) {
	m.Prompt = MinutesPromptState{
		Active:   true,
		TaskID:   sel.ID,
		TaskName: sel.Name,
		EstMin:   sel.EstMin,
	}
	m.minutesInput.SetValue(strconv.Itoa(sel.EstMin))
	m.minutesInput.CursorEnd()
	m.minutesInput.Focus()
}

func (m *Model) closeMinutesPrompt() {
	m.Prompt = MinutesPromptState{}
	m.minutesInput.SetValue("")
	m.minutesInput.Blur()
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeMinutesPrompt()
		return m, nil
	case "enter":
		minutes, err := parseMinutes(m.minutesInput.Value())
		if err != nil {
			m.Prompt.Err = err.Error()
			return m, nil
		}
		if err := m.ensurePlan(); err != nil {
			m.Prompt.Err = err.Error()
			return m, nil
		}
		task, err := m.Service.Complete(m.ctx, m.Prompt.TaskID, minutes)
		if err != nil {
			m.Prompt.Err = err.Error()
			return m, nil
		}
		m.closeMinutesPrompt()
		m.reload()
		m.setStatus(fmt.Sprintf("done: %s, estimate now %d min", task.Name, task.EstMin))
		return m, nil
	}
	var cmd tea.Cmd
	m.minutesInput, cmd = m.minutesInput.Update(msg)
	m.Prompt.Err = ""
	return m, cmd
}

// parseMinutes accepts a positive whole number and clamps it into the
// estimate range.
func parseMinutes(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, errMinutesNotNumber
	}
	return model.ClampEstMin(n), nil
}
