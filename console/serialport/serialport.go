// Package serialport provides a debug console over a UART, for boards wired
// to the host through an ST-LINK virtual COM port.
//
// A UART splits board answers at arbitrary points, so the console joins the
// bytes it reads into one message. A message ends at a "\r\n" terminator,
// when a read times out without data, or after coalesceDelay without new
// bytes. This keeps the 4 byte checksum echo of an upload in one message.
package serialport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/tarm/serial"

	"github.com/moffa90/go-bluest/console"
	"github.com/moffa90/go-bluest/dispatch"
)

const (
	// DefaultBaud is the rate of the ST-LINK virtual COM port
	DefaultBaud = 115200

	// readTimeout bounds each blocking read so that Close is noticed
	readTimeout = 100 * time.Millisecond

	// coalesceDelay is the silence that ends a message without terminator
	coalesceDelay = 20 * time.Millisecond

	readBufferSize = 256
)

var terminator = []byte("\r\n")

// Console is a console.Debug backed by a serial port.
type Console struct {
	port   io.ReadWriteCloser
	events *dispatch.Queue
	mux    console.Mux

	writeMu sync.Mutex

	pendingMu  sync.Mutex
	pending    []byte
	flushTimer *time.Timer

	closeOnce sync.Once
	closed    chan struct{}
	readDone  chan struct{}
}

// Open opens the named serial device. A zero baud selects DefaultBaud.
//
// Example:
//
//	c, err := serialport.Open("/dev/ttyACM0", 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
func Open(name string, baud int) (*Console, error) {
	if baud == 0 {
		baud = DefaultBaud
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: readTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return New(port), nil
}

// New wraps an already open port. The Console owns port and closes it.
func New(port io.ReadWriteCloser) *Console {
	c := &Console{
		port:     port,
		events:   dispatch.NewQueue(),
		closed:   make(chan struct{}),
		readDone: make(chan struct{}),
	}
	go c.readLoop()
	return c
}

func (c *Console) readLoop() {
	defer close(c.readDone)
	defer c.flush()
	buf := make([]byte, readBufferSize)
	for {
		n, err := c.port.Read(buf)
		if n > 0 {
			c.collect(buf[:n])
		}
		switch {
		case err == nil:
		case n == 0 && errors.Is(err, io.EOF):
			// read timeout without data
			c.flush()
			select {
			case <-c.closed:
				return
			default:
			}
		default:
			// the port is gone, either closed by us or unplugged
			return
		}
	}
}

// collect appends p to the pending message and delivers it once complete.
func (c *Console) collect(p []byte) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()

	c.pending = append(c.pending, p...)
	if bytes.HasSuffix(c.pending, terminator) {
		c.flushLocked()
		return
	}
	if c.flushTimer == nil {
		c.flushTimer = time.AfterFunc(coalesceDelay, c.flush)
	} else {
		c.flushTimer.Reset(coalesceDelay)
	}
}

func (c *Console) flush() {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	c.flushLocked()
}

func (c *Console) flushLocked() {
	if c.flushTimer != nil {
		c.flushTimer.Stop()
	}
	if len(c.pending) == 0 {
		return
	}
	msg := string(c.pending)
	c.pending = c.pending[:0]
	c.events.Post(func() { c.mux.StdOut(c, msg) })
}

// Write sends p and reports the outcome to the listeners.
func (c *Console) Write(p []byte) (int, error) {
	select {
	case <-c.closed:
		return 0, io.ErrClosedPipe
	default:
	}

	c.writeMu.Lock()
	n, err := c.port.Write(p)
	c.writeMu.Unlock()

	msg := string(p)
	ok := err == nil && n == len(p)
	c.events.Post(func() { c.mux.StdInSent(c, msg, ok) })
	return n, err
}

// WriteString sends s.
func (c *Console) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}

func (c *Console) AddListener(l console.Listener) { c.mux.Add(l) }

func (c *Console) RemoveListener(l console.Listener) { c.mux.Remove(l) }

// Close closes the port and stops event delivery.
func (c *Console) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.port.Close()
		<-c.readDone
		c.events.Close()
	})
	return err
}

var _ console.Debug = (*Console)(nil)
