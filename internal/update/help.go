package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/chored/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const helpMarkdown = `## Commands

Type ` + "`/`" + ` then one of:

| command | effect |
| --- | --- |
| ` + "`done <chore> [minutes]`" + ` | record a completion |
| ` + "`add <name> [every] [est]`" + ` | add a chore |
| ` + "`edit <chore> est=25 freq=7`" + ` | change fields |
| ` + "`delete <chore>`" + ` | remove a chore |
| ` + "`budget <minutes>`" + ` | set the daily budget |
| ` + "`regen`" + ` | rebuild today's plan |

Chores may be named by id, full name or a unique prefix.
`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
		Manual: m.helpViewport.View(),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Today, Action: "today"},
		{Key: m.Keys.All, Action: "all chores"},
		{Key: "/", Action: "command"},
		{Key: "r", Action: "rebuild plan"},
		{Key: "+/-", Action: "budget"},
		{Key: m.Keys.Help, Action: "help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewToday:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "enter/d", Action: "mark done"},
			{Key: "x", Action: "delete chore"},
		}
	case ViewAll:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "enter/d", Action: "mark done, even if not planned"},
			{Key: "x", Action: "delete chore"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
