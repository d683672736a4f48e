package typewriterx_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/comalice/typewriterx"
)

// Test internal transition only execs action: no entry/exit, no mode change.
func TestInternalTransitionExecsActionOnly(t *testing.T) {
	var actionCalled, entryCalled, exitCalled int

	s := &State{ID: Typing}
	s.OnEntry(func(ctx context.Context, evt *Event, from, to Mode) error {
		if evt != nil {
			entryCalled++
		}
		return nil
	})
	s.OnExit(func(ctx context.Context, evt *Event, from, to Mode) error {
		exitCalled++
		return nil
	})
	s.On(EventStep, nil, nil, func(ctx context.Context, evt *Event, from, to Mode) error {
		actionCalled++
		return nil
	})

	m, err := NewMachine(s)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := m.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := m.Send(ctx, Event{ID: EventStep}); err != nil {
		t.Fatal(err)
	}

	if actionCalled != 1 {
		t.Errorf("expected action called 1 time, got %d", actionCalled)
	}
	if entryCalled != 0 || exitCalled != 0 {
		t.Errorf("expected no entry/exit, got entry=%d exit=%d", entryCalled, exitCalled)
	}
	if m.Current() != Typing {
		t.Errorf("expected mode unchanged, got %v", m.Current())
	}
}

// Test guards are evaluated in declaration order; first passing wins.
func TestGuardOrder(t *testing.T) {
	holding := &State{ID: Holding}
	stopped := &State{ID: Stopped, Final: true}
	deleting := &State{ID: Deleting}

	last := false
	holding.On(EventHoldElapsed, stopped, func(ctx context.Context, evt *Event, from, to Mode) (bool, error) {
		return last, nil
	}, nil)
	holding.On(EventHoldElapsed, deleting, nil, nil)

	for _, tc := range []struct {
		last bool
		want Mode
	}{
		{false, Deleting},
		{true, Stopped},
	} {
		m, err := NewMachine(holding, stopped, deleting)
		if err != nil {
			t.Fatal(err)
		}
		last = tc.last
		ctx := context.Background()
		if err := m.Start(ctx); err != nil {
			t.Fatal(err)
		}
		if err := m.Send(ctx, Event{ID: EventHoldElapsed}); err != nil {
			t.Fatal(err)
		}
		if m.Current() != tc.want {
			t.Errorf("last=%v: expected %v, got %v", tc.last, tc.want, m.Current())
		}
	}
}

// Test a failing action rewinds to the source state and re-enters it.
func TestActionErrorRewinds(t *testing.T) {
	var reentered bool
	a := &State{ID: Deleting}
	b := &State{ID: Advancing}
	a.OnEntry(func(ctx context.Context, evt *Event, from, to Mode) error {
		if evt == nil && from == Deleting && to == Advancing {
			reentered = true
		}
		return nil
	})
	boom := errors.New("boom")
	a.On(EventSettle, b, nil, func(ctx context.Context, evt *Event, from, to Mode) error {
		return boom
	})

	m, err := NewMachine(a, b)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := m.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := m.Send(ctx, Event{ID: EventSettle}); !errors.Is(err, boom) {
		t.Fatalf("expected action error, got %v", err)
	}
	if m.Current() != Deleting {
		t.Errorf("expected rewind to Deleting, got %v", m.Current())
	}
	if !reentered {
		t.Error("source state was not re-entered")
	}
}

// Test a final state ignores all events.
func TestFinalStateIgnoresEvents(t *testing.T) {
	stopped := &State{ID: Stopped, Final: true, Initial: true}
	typing := &State{ID: Typing}
	stopped.On(EventStep, typing, nil, nil)

	m, err := NewMachine(typing, stopped)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := m.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := m.Send(ctx, Event{ID: EventStep}); err != nil {
		t.Fatal(err)
	}
	if m.Current() != Stopped {
		t.Errorf("expected Stopped, got %v", m.Current())
	}
}

func TestNewMachineValidation(t *testing.T) {
	if _, err := NewMachine(); err == nil {
		t.Error("expected error for no states")
	}
	if _, err := NewMachine(&State{ID: Typing}, nil); err == nil {
		t.Error("expected error for nil state")
	}
	if _, err := NewMachine(&State{ID: Typing}, &State{ID: Typing}); err == nil {
		t.Error("expected error for duplicate state")
	}
	if _, err := NewMachine(&State{ID: Typing, Initial: true}, &State{ID: Holding, Initial: true}); err == nil {
		t.Error("expected error for two initial states")
	}

	orphan := &State{ID: Holding}
	s := &State{ID: Typing}
	s.On(EventSettle, orphan, nil, nil)
	if _, err := NewMachine(s); err == nil {
		t.Error("expected error for unregistered target")
	}
}

func TestSendBeforeStart(t *testing.T) {
	m, err := NewMachine(&State{ID: Typing})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Send(context.Background(), Event{ID: EventStep}); err == nil {
		t.Error("expected error sending to an unstarted machine")
	}
}

func TestModeGraph(t *testing.T) {
	edges := ModeGraph()
	if len(edges) != 7 {
		t.Fatalf("expected 7 edges, got %d: %v", len(edges), edges)
	}

	has := func(from, to Mode) bool {
		for _, e := range edges {
			if e.From == from && e.To == to {
				return true
			}
		}
		return false
	}
	for _, pair := range [][2]Mode{
		{Typing, Typing},
		{Typing, Holding},
		{Holding, Deleting},
		{Holding, Stopped},
		{Deleting, Deleting},
		{Deleting, Advancing},
		{Advancing, Typing},
	} {
		if !has(pair[0], pair[1]) {
			t.Errorf("missing edge %v -> %v", pair[0], pair[1])
		}
	}
	for _, e := range edges {
		if e.From == Stopped {
			t.Errorf("Stopped must have no outgoing edges, found %v", e)
		}
	}
}
