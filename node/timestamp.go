package node

// Timestamps turns the 16-bit timestamps of the notifications into a
// monotonic 64-bit clock. A value more than half the range below the
// previous one counts as a rollover.
// The zero value is ready to use. Not safe for concurrent use.
type Timestamps struct {
	started   bool
	last      uint16
	rollovers uint64
}

// Next returns the unwrapped value of ts.
func (t *Timestamps) Next(ts uint16) uint64 {
	if t.started && ts < t.last && t.last-ts > 1<<15 {
		t.rollovers++
	}
	t.started = true
	t.last = ts
	return t.rollovers<<16 | uint64(ts)
}
