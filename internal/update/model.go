package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/chored/internal/app"
	"github.com/sandeepkv93/chored/internal/calendar"
	"github.com/sandeepkv93/chored/internal/scheduler"
)

type View string

const (
	ViewToday View = "Today"
	ViewAll   View = "All chores"
)

// statusTTL is how long a status line stays before a refresh clears it.
const statusTTL = 6 * time.Second

// budgetStep is the change applied by the +/- keys.
const budgetStep = 5

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today string
	All   string
	Help  string
	Quit  string
}

type Model struct {
	CurrentView View
	SelectedID  string
	Day         calendar.Date
	Today       TodayState
	All         AllState
	Palette     CommandPaletteState
	Prompt      MinutesPromptState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error
	Service     *app.Service
	Scheduler   *scheduler.Engine

	ctx         context.Context
	now         func() time.Time
	statusUntil time.Time
	// Bubble components used for rich TUI controls
	allTable     table.Model
	commandInput textinput.Model
	minutesInput textinput.Model
	planProgress progress.Model
	helpModel    help.Model
	helpViewport viewport.Model
}

// ChoreItem is one row in either pane, scored for the current day.
type ChoreItem struct {
	ID       string
	Name     string
	FreqDays int
	LastDone string
	Due      string
	EstMin   int
	Urgency  float64
	Overdue  bool
	Done     bool
}

type TodayState struct {
	Items        []ChoreItem
	Cursor       int
	Phase        string
	Budget       int
	PlannedMin   int
	RemainingMin int
}

type AllState struct {
	Items  []ChoreItem
	Cursor int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// MinutesPromptState asks how long a chore took before recording it.
type MinutesPromptState struct {
	Active   bool
	TaskID   string
	TaskName string
	EstMin   int
	Err      string
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// SchedulerEventMsg wraps an event fired by the scheduler engine.
type SchedulerEventMsg struct {
	Event scheduler.Event
}

// NewModel builds the model and makes sure today's plan exists. engine may
// be nil, in which case no rollover is scheduled.
func NewModel(ctx context.Context, svc *app.Service, engine *scheduler.Engine) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		CurrentView: ViewToday,
		Service:     svc,
		Scheduler:   engine,
		ctx:         ctx,
		now:         time.Now,
		Keys: GlobalKeyMap{
			Today: "1",
			All:   "2",
			Help:  "?",
			Quit:  "q",
		},
	}
	m.initBubbleComponents()
	if _, err := svc.Plan(ctx, false); err != nil {
		m.setError(err)
	}
	m.reload()
	return m
}
