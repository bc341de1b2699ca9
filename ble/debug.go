package ble

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/moffa90/go-bluest/console"
	"github.com/moffa90/go-bluest/dispatch"
)

// MaxWriteSize is the largest payload of one GATT write on the default MTU.
const MaxWriteSize = 20

// Characteristic is the part of bluetooth.DeviceCharacteristic the package
// uses.
type Characteristic interface {
	EnableNotifications(callback func(buf []byte)) error
	WriteWithoutResponse(p []byte) (n int, err error)
}

// DebugConsole is the debug service of a node as a console.Debug.
// A message longer than MaxWriteSize goes out in several writes; its
// completion is reported once, after the last one.
type DebugConsole struct {
	term   Characteristic
	stderr Characteristic
	events *dispatch.Queue
	mux    console.Mux

	writeMu sync.Mutex
	closed  atomic.Bool
}

// NewDebugConsole subscribes to the terminal characteristic and, when not
// nil, to the error characteristic.
func NewDebugConsole(term, stderr Characteristic) (*DebugConsole, error) {
	if term == nil {
		return nil, fmt.Errorf("debug terminal characteristic is required")
	}
	d := &DebugConsole{term: term, stderr: stderr, events: dispatch.NewQueue()}

	if err := term.EnableNotifications(func(buf []byte) {
		msg := string(buf)
		d.events.Post(func() { d.mux.StdOut(d, msg) })
	}); err != nil {
		d.events.Close()
		return nil, fmt.Errorf("failed to subscribe to the debug terminal: %w", err)
	}

	if stderr != nil {
		if err := stderr.EnableNotifications(func(buf []byte) {
			msg := string(buf)
			d.events.Post(func() { d.mux.StdErr(d, msg) })
		}); err != nil {
			_ = term.EnableNotifications(nil)
			d.events.Close()
			return nil, fmt.Errorf("failed to subscribe to the debug error stream: %w", err)
		}
	}
	return d, nil
}

// Write sends p to the terminal characteristic.
func (d *DebugConsole) Write(p []byte) (int, error) {
	if d.closed.Load() {
		return 0, io.ErrClosedPipe
	}

	d.writeMu.Lock()
	n, err := d.writeFrames(p)
	d.writeMu.Unlock()

	msg := string(p)
	ok := err == nil && n == len(p)
	d.events.Post(func() { d.mux.StdInSent(d, msg, ok) })
	return n, err
}

func (d *DebugConsole) writeFrames(p []byte) (int, error) {
	off := 0
	for off < len(p) {
		end := off + MaxWriteSize
		if end > len(p) {
			end = len(p)
		}
		frame := p[off:end]
		n, err := d.term.WriteWithoutResponse(frame)
		off += n
		if err != nil {
			return off, err
		}
		if n != len(frame) {
			return off, io.ErrShortWrite
		}
	}
	return off, nil
}

// WriteString sends s.
func (d *DebugConsole) WriteString(s string) (int, error) {
	return d.Write([]byte(s))
}

func (d *DebugConsole) AddListener(l console.Listener) { d.mux.Add(l) }

func (d *DebugConsole) RemoveListener(l console.Listener) { d.mux.Remove(l) }

// Close unsubscribes from the debug service and stops event delivery.
func (d *DebugConsole) Close() error {
	if d.closed.Swap(true) {
		return nil
	}
	err := d.term.EnableNotifications(nil)
	if d.stderr != nil {
		if serr := d.stderr.EnableNotifications(nil); err == nil {
			err = serr
		}
	}
	d.events.Close()
	return err
}

var _ console.Debug = (*DebugConsole)(nil)
