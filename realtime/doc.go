// Package realtime provides a deterministic virtual clock for typewriterx
// engines and a tick-based runtime that drives it.
//
// Clock implements typewriterx.Scheduler. Callbacks never run on their own:
// they fire synchronously inside Advance, ordered by due time and then by
// scheduling order, so the same sequence of AfterFunc and Advance calls
// always produces the same frames.
//
// # Example Usage
//
//	clock := realtime.NewClock()
//	e, _ := typewriterx.Start(cfg, typewriterx.WithScheduler(clock))
//	clock.Advance(250 * time.Millisecond)
//
// Runtime advances a Clock in fixed steps from a time.Ticker, which locks
// animation updates to a frame rate:
//
//	rt := realtime.NewRuntime(clock, realtime.Config{
//		TickRate: 16667 * time.Microsecond, // 60 FPS
//	})
//	rt.Start(ctx)
//	defer rt.Stop()
//
// # Ordering Guarantees
//
//  1. Earlier due time fires first
//  2. Equal due times fire in AfterFunc call order (sequence number)
//  3. A callback scheduled by another callback with zero delay fires in the
//     same Advance, after every callback already due at that instant
//
// # Use Cases
//
//   - Tests (exact frame sequences without sleeping)
//   - Replays and timeline dumps (`typewriter trace`)
//   - Frame-locked terminal previews (`typewriter play --fps`)
package realtime
