package console

import "sync"

// Mux is a set of listeners for implementations of Debug.
// The zero value is ready to use.
type Mux struct {
	mu        sync.Mutex
	listeners []Listener
}

// Add registers l once.
func (m *Mux) Add(l Listener) {
	if l == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, cur := range m.listeners {
		if cur == l {
			return
		}
	}
	m.listeners = append(m.listeners, l)
}

// Remove unregisters l.
func (m *Mux) Remove(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, cur := range m.listeners {
		if cur == l {
			m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered listeners.
func (m *Mux) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners)
}

func (m *Mux) snapshot() []Listener {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listeners
}

// StdOut notifies every listener of board output.
func (m *Mux) StdOut(d Debug, msg string) {
	for _, l := range m.snapshot() {
		l.OnStdOutReceived(d, msg)
	}
}

// StdErr notifies every listener of board error output.
func (m *Mux) StdErr(d Debug, msg string) {
	for _, l := range m.snapshot() {
		l.OnStdErrReceived(d, msg)
	}
}

// StdInSent notifies every listener of the outcome of a write.
func (m *Mux) StdInSent(d Debug, msg string, ok bool) {
	for _, l := range m.snapshot() {
		l.OnStdInSent(d, msg, ok)
	}
}
