package realtime

import "go.uber.org/zap"

// processTick advances the clock by one step, recovering from panics in
// scheduled callbacks so one bad renderer cannot kill the loop.
func (rt *Runtime) processTick() {
	defer func() {
		if r := recover(); r != nil {
			rt.log.Error("tick panicked", zap.Uint64("tick", rt.Ticks()), zap.Any("panic", r))
		}
	}()

	fired := rt.clock.Advance(rt.step)

	rt.mu.Lock()
	rt.tickNum++
	rt.mu.Unlock()

	if fired > 0 {
		rt.log.Debug("tick", zap.Uint64("tick", rt.Ticks()), zap.Int("fired", fired), zap.Duration("now", rt.clock.Now()))
	}
}
