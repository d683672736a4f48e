package typewriterx

import (
	"context"
	"errors"
	"fmt"
)

type EventID int

const (
	// EventStep is one timed character step (append while typing, remove while deleting).
	EventStep EventID = iota + 1
	// EventHoldElapsed fires once the hold period after a fully typed phrase is over.
	EventHoldElapsed
	// EventSettle drives immediate (eventless) transitions after a step.
	EventSettle
)

func (e EventID) String() string {
	switch e {
	case EventStep:
		return "step"
	case EventHoldElapsed:
		return "hold"
	case EventSettle:
		return "settle"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

type Event struct {
	ID      EventID
	Payload any
}

type Action func(ctx context.Context, evt *Event, from Mode, to Mode) error
type Guard func(ctx context.Context, evt *Event, from Mode, to Mode) (bool, error)

// ---

type State struct {
	ID          Mode
	Transitions []*Transition
	EntryAction Action
	ExitAction  Action
	Initial     bool
	Final       bool
}

type Transition struct {
	Event  EventID
	Label  string
	Source *State
	Target *State // nil --> internal transition
	Guard  Guard  // nil --> always
	Action Action // nil --> do nothing
}

// Machine is a flat mode chart: states keyed by Mode, guarded transitions
// picked in declaration order.
type Machine struct {
	states  map[Mode]*State
	order   []*State
	initial *State
	current *State
	started bool
}

// Edge is one transition of the chart, used for visualisation.
type Edge struct {
	From  Mode
	To    Mode
	Label string
}

//
// Public API
//

func (s *State) OnEntry(action Action) {
	s.EntryAction = action
}

func (s *State) OnExit(action Action) {
	s.ExitAction = action
}

func NewMachine(states ...*State) (*Machine, error) {
	if len(states) == 0 {
		return nil, errors.New("no states provided")
	}
	m := &Machine{
		states: map[Mode]*State{},
	}

	var initial *State
	for _, s := range states {
		if s == nil {
			return nil, errors.New("nil state")
		}
		if _, exists := m.states[s.ID]; exists {
			return nil, fmt.Errorf("duplicate state %s", s.ID)
		}
		m.states[s.ID] = s
		m.order = append(m.order, s)
		if s.Initial {
			if initial != nil {
				return nil, errors.New("more than one initial state")
			}
			initial = s
		}
	}

	if initial == nil {
		initial = states[0] // First state is assigned as initial.
	}
	m.initial = initial

	for _, s := range states {
		for _, t := range s.Transitions {
			if t == nil {
				continue
			}
			if t.Source == nil {
				t.Source = s
			}
			if t.Target != nil {
				if _, ok := m.states[t.Target.ID]; !ok {
					return nil, fmt.Errorf("transition %s -> %s: target not registered", s.ID, t.Target.ID)
				}
			}
		}
	}

	return m, nil
}

// Start enters the initial state. Calling Start again re-enters it.
func (m *Machine) Start(ctx context.Context) error {
	m.current = m.initial
	m.started = true
	return m.current.enterState(ctx, nil, m.current.ID, m.current.ID)
}

// Send dispatches evt to the current state. An event with no matching
// transition is ignored.
func (m *Machine) Send(ctx context.Context, evt Event) error {
	if !m.started {
		return errors.New("machine not started")
	}
	if m.current.Final {
		return nil
	}

	t, err := m.pickTransition(ctx, m.current, &evt)
	if err != nil {
		return err
	}
	if t == nil {
		return nil
	}

	next, err := t.doTransition(ctx, &evt)
	m.current = next
	return err
}

// Current returns the active mode.
func (m *Machine) Current() Mode {
	if m.current == nil {
		return m.initial.ID
	}
	return m.current.ID
}

// Edges lists every transition in declaration order. Internal transitions
// appear as self-loops.
func (m *Machine) Edges() []Edge {
	var edges []Edge
	for _, s := range m.order {
		for _, t := range s.Transitions {
			if t == nil {
				continue
			}
			to := s.ID
			if t.Target != nil {
				to = t.Target.ID
			}
			label := t.Label
			if label == "" {
				label = t.Event.String()
			}
			edges = append(edges, Edge{From: s.ID, To: to, Label: label})
		}
	}
	return edges
}

func (s *State) On(e EventID, target *State, guard Guard, action Action) *Transition {
	t := &Transition{
		Event:  e,
		Source: s,
		Target: target,
		Guard:  guard,
		Action: action,
	}
	s.Transitions = append(s.Transitions, t)
	return t
}

// Labeled sets the edge label used by Edges.
func (t *Transition) Labeled(label string) *Transition {
	t.Label = label
	return t
}

//
// Helper Functions (internal API)
//

func (s *State) enterState(ctx context.Context, evt *Event, from Mode, to Mode) error {
	if s.EntryAction != nil {
		return s.EntryAction(ctx, evt, from, to)
	}
	return nil
}

func (s *State) exitState(ctx context.Context, evt *Event, from Mode, to Mode) error {
	if s.ExitAction != nil {
		return s.ExitAction(ctx, evt, from, to)
	}
	return nil
}

// pickTransition grabs the first transition, in declaration order, whose
// event matches and whose guard passes.
func (m *Machine) pickTransition(ctx context.Context, s *State, evt *Event) (*Transition, error) {
	for _, t := range s.Transitions {
		if t == nil || t.Event != evt.ID {
			continue
		}
		ok, err := t.evaluateGuard(ctx, evt)
		if err != nil {
			return nil, fmt.Errorf("guard %s on %s: %w", t.Event, s.ID, err)
		}
		if ok {
			return t, nil
		}
	}
	return nil, nil
}

func (t *Transition) targetID() Mode {
	if t.Target == nil {
		return t.Source.ID
	}
	return t.Target.ID
}

func (t *Transition) evaluateGuard(ctx context.Context, evt *Event) (bool, error) {
	if t.Guard != nil {
		return t.Guard(ctx, evt, t.Source.ID, t.targetID())
	}
	return true, nil
}

func (t *Transition) evaluateAction(ctx context.Context, evt *Event) error {
	if t.Action != nil {
		return t.Action(ctx, evt, t.Source.ID, t.targetID())
	}
	return nil
}

// doTransition runs a picked transition and returns the resulting state.
func (t *Transition) doTransition(ctx context.Context, evt *Event) (*State, error) {
	// Internal transition: action only, no exit/entry.
	if t.Target == nil {
		return t.Source, t.evaluateAction(ctx, evt)
	}

	if err := t.Source.exitState(ctx, evt, t.Source.ID, t.Target.ID); err != nil {
		return t.Source, err
	}

	if err := t.evaluateAction(ctx, evt); err != nil {
		// Rewind to previous state.
		if rerr := t.Source.enterState(ctx, nil, t.Source.ID, t.Target.ID); rerr != nil {
			return t.Source, rerr
		}
		return t.Source, err
	}

	if err := t.Target.enterState(ctx, evt, t.Source.ID, t.Target.ID); err != nil {
		return t.Source, err
	}

	return t.Target, nil
}
