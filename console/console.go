// Package console defines the debug console of a BlueST node: a duplex text
// and byte channel with asynchronous write completion.
//
// Writes return as soon as the data is queued for transmission; the outcome
// arrives later through Listener.OnStdInSent. Board output arrives through
// Listener.OnStdOutReceived (and OnStdErrReceived for the error stream).
// Messages are raw byte strings: every byte of the payload is one byte of
// the string, whatever its value.
package console

import "io"

// Debug is the debug console of a node.
type Debug interface {
	// Write queues p as one message. It returns the number of bytes
	// accepted; a short count or an error means nothing will be sent.
	io.Writer

	// WriteString queues s as one message, like Write.
	io.StringWriter

	// AddListener registers l. Adding a nil listener is a no-op.
	AddListener(l Listener)

	// RemoveListener unregisters l. Removing an unknown listener is a no-op.
	RemoveListener(l Listener)
}

// Listener receives the traffic of a Debug console.
// Callbacks of one console are delivered in order, one at a time.
type Listener interface {
	OnStdOutReceived(d Debug, msg string)
	OnStdErrReceived(d Debug, msg string)
	OnStdInSent(d Debug, msg string, ok bool)
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are ignored.
// Use a pointer so that the value can be removed again.
type ListenerFuncs struct {
	StdOut func(d Debug, msg string)
	StdErr func(d Debug, msg string)
	StdIn  func(d Debug, msg string, ok bool)
}

func (l *ListenerFuncs) OnStdOutReceived(d Debug, msg string) {
	if l.StdOut != nil {
		l.StdOut(d, msg)
	}
}

func (l *ListenerFuncs) OnStdErrReceived(d Debug, msg string) {
	if l.StdErr != nil {
		l.StdErr(d, msg)
	}
}

func (l *ListenerFuncs) OnStdInSent(d Debug, msg string, ok bool) {
	if l.StdIn != nil {
		l.StdIn(d, msg, ok)
	}
}
