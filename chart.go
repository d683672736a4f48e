package typewriterx

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// settleLimit bounds the immediate transitions run after a single step.
// The longest chain is Deleting -> Advancing -> Typing -> Holding.
const settleLimit = 8

// newChart wires the engine's transition table onto a Machine. Guards and
// actions read and mutate e; callers hold e.mu.
func (e *Engine) newChart() (*Machine, error) {
	typing := &State{ID: Typing, Initial: true}
	holding := &State{ID: Holding}
	deleting := &State{ID: Deleting}
	advancing := &State{ID: Advancing}
	stopped := &State{ID: Stopped, Final: true}

	typing.On(EventStep, nil, e.canType, e.appendChar).Labeled("step [cursor < len] / append")
	typing.On(EventSettle, holding, e.fullyTyped, nil).Labeled("[cursor == len]")
	holding.On(EventHoldElapsed, stopped, e.finalPhrase, nil).Labeled("hold [last && !loop]")
	holding.On(EventHoldElapsed, deleting, nil, nil).Labeled("hold")
	deleting.On(EventStep, nil, e.canDelete, e.removeChar).Labeled("step [cursor > 0] / remove")
	deleting.On(EventSettle, advancing, e.fullyDeleted, nil).Labeled("[cursor == 0]")
	advancing.On(EventSettle, typing, nil, e.nextPhrase).Labeled("/ index = (index+1) mod n")

	for _, s := range []*State{typing, holding, deleting, advancing, stopped} {
		s.OnEntry(e.entered)
	}

	return NewMachine(typing, holding, deleting, advancing, stopped)
}

// ModeGraph returns the transition table every engine runs.
func ModeGraph() []Edge {
	e := &Engine{}
	m, err := e.newChart()
	if err != nil {
		return nil
	}
	return m.Edges()
}

func (e *Engine) canType(context.Context, *Event, Mode, Mode) (bool, error) {
	return e.cursor < e.phraseLen(), nil
}

func (e *Engine) fullyTyped(context.Context, *Event, Mode, Mode) (bool, error) {
	return e.cursor == e.phraseLen(), nil
}

func (e *Engine) finalPhrase(context.Context, *Event, Mode, Mode) (bool, error) {
	return !e.cfg.Loop && e.index == len(e.bounds)-1, nil
}

func (e *Engine) canDelete(context.Context, *Event, Mode, Mode) (bool, error) {
	return e.cursor > 0, nil
}

func (e *Engine) fullyDeleted(context.Context, *Event, Mode, Mode) (bool, error) {
	return e.cursor == 0, nil
}

func (e *Engine) appendChar(context.Context, *Event, Mode, Mode) error {
	if e.cursor >= e.phraseLen() {
		return errors.New("append past end of phrase")
	}
	e.cursor++
	return nil
}

func (e *Engine) removeChar(context.Context, *Event, Mode, Mode) error {
	if e.cursor <= 0 {
		return errors.New("remove from empty text")
	}
	e.cursor--
	return nil
}

func (e *Engine) nextPhrase(context.Context, *Event, Mode, Mode) error {
	e.index = (e.index + 1) % len(e.bounds)
	e.cursor = 0
	return nil
}

func (e *Engine) entered(_ context.Context, evt *Event, from, to Mode) error {
	if evt == nil {
		return nil // initial entry or rewind
	}
	e.metrics.Transition(from, to)
	e.log.Debug("transition",
		zap.String("engine", e.id),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Stringer("event", evt.ID),
		zap.Int("phrase", e.index))
	return nil
}

// settle runs eventless transitions until the mode stops changing.
func (e *Engine) settle(ctx context.Context) error {
	for i := 0; i < settleLimit; i++ {
		before := e.chart.Current()
		if err := e.chart.Send(ctx, Event{ID: EventSettle}); err != nil {
			return err
		}
		if e.chart.Current() == before {
			return nil
		}
	}
	return errors.New("mode chart did not settle")
}
