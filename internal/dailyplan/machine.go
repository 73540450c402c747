package dailyplan

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"

	"github.com/sandeepkv93/chored/internal/model"
)

// State ids for statekit. They match the Phase values.
const (
	stateAbsent    = "Absent"
	stateActive    = "Active"
	stateExhausted = "Exhausted"
)

type Event string

const (
	// EventEnsure builds a plan; only an Absent plan accepts it.
	EventEnsure Event = "ensure"
	// EventDiscard drops the current plan so the next ensure rebuilds it.
	EventDiscard Event = "discard"
	// EventSettle moves a freshly built plan with nothing picked to Exhausted.
	EventSettle   Event = "settle"
	EventComplete Event = "complete"
	EventRemove   Event = "remove"
	EventReplace  Event = "replace"
)

type machineContext struct {
	// left reports how many picked tasks are still open.
	left func() int
}

// Machine tracks the plan phase across one lifecycle operation. It is seeded
// from the stored plan, so a fresh one is built for every operation.
type Machine struct {
	interpreter *statekit.Interpreter[machineContext]
}

// NewMachine starts a machine in phase. left is consulted by the guards that
// decide whether the last open pick is gone; nil means nothing is left.
func NewMachine(phase Phase, left func() int) (*Machine, error) {
	if left == nil {
		left = func() int { return 0 }
	}
	builder := statekit.NewMachine[machineContext]("daily-plan").
		WithInitial(statekit.StateID(phase)).
		WithContext(machineContext{left: left}).
		WithGuard("drained", func(ctx machineContext, _ statekit.Event) bool {
			return ctx.left() == 0
		})

	builder.State(stateAbsent).
		On(statekit.EventType(EventEnsure)).Target(stateActive).
		Done()

	builder.State(stateActive).
		On(statekit.EventType(EventSettle)).Target(stateExhausted).Guard("drained").
		On(statekit.EventType(EventComplete)).Target(stateExhausted).Guard("drained").
		On(statekit.EventType(EventRemove)).Target(stateExhausted).Guard("drained").
		On(statekit.EventType(EventDiscard)).Target(stateAbsent).
		On(statekit.EventType(EventReplace)).Target(stateAbsent).
		Done()

	builder.State(stateExhausted).
		On(statekit.EventType(EventDiscard)).Target(stateAbsent).
		On(statekit.EventType(EventReplace)).Target(stateAbsent).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("dailyplan: build plan machine: %w", err)
	}
	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()
	return &Machine{interpreter: interpreter}, nil
}

// mustMachine is NewMachine for the fixed definition above, which only fails
// when the definition itself is broken.
func mustMachine(phase Phase, left func() int) *Machine {
	m, err := NewMachine(phase, left)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Machine) Phase() Phase {
	return Phase(m.interpreter.State().Value)
}

// Fire sends ev and reports whether the phase changed. Events the current
// phase does not accept, or whose guard fails, leave it unchanged.
func (m *Machine) Fire(ev Event) bool {
	before := m.Phase()
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(ev)})
	return m.Phase() != before
}

// planPhase is the phase of p ignoring its date.
func planPhase(p *model.DailyPlan) Phase {
	if p == nil {
		return PhaseAbsent
	}
	if openPicks(p) > 0 {
		return PhaseActive
	}
	return PhaseExhausted
}

func openPicks(p *model.DailyPlan) int {
	if p == nil {
		return 0
	}
	n := 0
	for _, id := range p.PickedIDs {
		if !p.IsCompleted(id) {
			n++
		}
	}
	return n
}
