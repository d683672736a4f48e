package realtime

import "sort"

// sortTimers orders pending timers deterministically.
// Stable sort preserves insertion order for equal keys.
func sortTimers(timers []*timer) {
	sort.SliceStable(timers, func(i, j int) bool {
		// Primary: earlier due time first
		if timers[i].due != timers[j].due {
			return timers[i].due < timers[j].due
		}

		// Secondary: earlier sequence number first (FIFO)
		return timers[i].seq < timers[j].seq
	})
}
