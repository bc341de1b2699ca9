package upgrade

import "sync"

// DefaultBlockPackets is the number of messages sent before waiting for
// their write completions.
const DefaultBlockPackets = 10

// AdaptiveWindow sizes the blocks of an upload. Every failed upload halves
// the block, down to a single message; a successful upload restores it.
// A window can be shared by the consoles of nodes on the same radio.
type AdaptiveWindow struct {
	mu       sync.Mutex
	base     int
	failures int
}

// NewAdaptiveWindow returns a window starting at base messages per block.
// A base below 1 selects DefaultBlockPackets.
func NewAdaptiveWindow(base int) *AdaptiveWindow {
	if base < 1 {
		base = DefaultBlockPackets
	}
	return &AdaptiveWindow{base: base}
}

// BlockSize returns max(1, base >> failures).
func (w *AdaptiveWindow) BlockSize() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.failures >= 31 {
		return 1
	}
	if n := w.base >> w.failures; n > 1 {
		return n
	}
	return 1
}

// Failure records a failed upload.
func (w *AdaptiveWindow) Failure() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.failures++
}

// Success records a completed upload and restores the full block.
func (w *AdaptiveWindow) Success() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.failures = 0
}

// Failures returns the number of failures since the last success.
func (w *AdaptiveWindow) Failures() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failures
}
