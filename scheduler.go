package typewriterx

import "time"

// Timer is a pending callback returned by a Scheduler.
type Timer interface {
	// Stop cancels the callback. It reports whether the call prevented it
	// from running.
	Stop() bool
}

// Scheduler is the host timer primitive. AfterFunc runs f once, d after the
// call, on a goroutine of the scheduler's choosing.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler schedules on the wall clock via time.AfterFunc.
type SystemScheduler struct{}

func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
