package serialport

import (
	"io"
	"net"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-bluest/console"
)

type capture struct {
	mu   sync.Mutex
	out  []string
	sent []string
	ok   []bool
}

func (c *capture) listener() *console.ListenerFuncs {
	return &console.ListenerFuncs{
		StdOut: func(_ console.Debug, msg string) {
			c.mu.Lock()
			c.out = append(c.out, msg)
			c.mu.Unlock()
		},
		StdIn: func(_ console.Debug, msg string, ok bool) {
			c.mu.Lock()
			c.sent = append(c.sent, msg)
			c.ok = append(c.ok, ok)
			c.mu.Unlock()
		},
	}
}

func (c *capture) output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var s string
	for _, o := range c.out {
		s += o
	}
	return s
}

// scriptedPort behaves like a UART opened with a read timeout: Read returns
// (0, io.EOF) when no data arrives in time.
type scriptedPort struct {
	reads     chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func newScriptedPort() *scriptedPort {
	return &scriptedPort{reads: make(chan []byte, 16), closed: make(chan struct{})}
}

// send queues chunks to be returned by consecutive reads.
func (p *scriptedPort) send(chunks ...string) {
	for _, c := range chunks {
		p.reads <- []byte(c)
	}
}

func (p *scriptedPort) Read(b []byte) (int, error) {
	select {
	case <-p.closed:
		return 0, os.ErrClosed
	default:
	}
	select {
	case chunk := <-p.reads:
		return copy(b, chunk), nil
	case <-time.After(5 * time.Millisecond):
		return 0, io.EOF
	case <-p.closed:
		return 0, os.ErrClosed
	}
}

func (p *scriptedPort) Write(b []byte) (int, error) { return len(b), nil }

func (p *scriptedPort) Close() error {
	p.closeOnce.Do(func() { close(p.closed) })
	return nil
}

func (c *capture) messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.out...)
}

func TestConsoleWrite(t *testing.T) {
	host, board := net.Pipe()
	c := New(host)
	defer c.Close()

	capt := &capture{}
	c.AddListener(capt.listener())

	received := make(chan string, 1)
	go func() {
		buf := make([]byte, 64)
		n, _ := board.Read(buf)
		received <- string(buf[:n])
	}()

	n, err := c.WriteString("versionFw\n")
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, "versionFw\n", <-received)

	assert.Eventually(t, func() bool {
		capt.mu.Lock()
		defer capt.mu.Unlock()
		return len(capt.sent) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []bool{true}, capt.ok)
}

func TestConsoleRead(t *testing.T) {
	host, board := net.Pipe()
	c := New(host)
	defer c.Close()

	capt := &capture{}
	c.AddListener(capt.listener())

	_, err := board.Write([]byte("BLUEMICROSYSTEM2 2.0.1\r\n"))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return capt.output() == "BLUEMICROSYSTEM2 2.0.1\r\n"
	}, time.Second, 5*time.Millisecond)
}

func TestConsoleClose(t *testing.T) {
	host, _ := net.Pipe()
	c := New(host)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err := c.Write([]byte{1})
	assert.Error(t, err)
}

func TestConsoleReadAfterIdleTimeouts(t *testing.T) {
	port := newScriptedPort()
	c := New(port)
	defer c.Close()

	capt := &capture{}
	c.AddListener(capt.listener())

	// several read timeouts pass before the board answers
	time.Sleep(50 * time.Millisecond)
	port.send("BLUEMICROSYSTEM2 2.0.1\r\n")

	assert.Eventually(t, func() bool {
		return capt.output() == "BLUEMICROSYSTEM2 2.0.1\r\n"
	}, time.Second, 5*time.Millisecond)
}

func TestConsoleJoinsSplitReads(t *testing.T) {
	port := newScriptedPort()
	c := New(port)
	defer c.Close()

	capt := &capture{}
	c.AddListener(capt.listener())
	port.send("\x2B\x8A", "\x8A\xDF")

	assert.Eventually(t, func() bool {
		return len(capt.messages()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"\x2B\x8A\x8A\xDF"}, capt.messages())
}

func TestConsoleSplitsAtTerminator(t *testing.T) {
	port := newScriptedPort()
	c := New(port)
	defer c.Close()

	capt := &capture{}
	c.AddListener(capt.listener())
	port.send("L476_BLUE", "MICROSYSTEM2\r\n")

	assert.Eventually(t, func() bool {
		return len(capt.messages()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"L476_BLUEMICROSYSTEM2\r\n"}, capt.messages())
}

func TestConsoleStopsOnPortError(t *testing.T) {
	port := newScriptedPort()
	c := New(port)

	require.NoError(t, port.Close())
	select {
	case <-c.readDone:
	case <-time.After(time.Second):
		t.Fatal("read loop still running")
	}
	require.NoError(t, c.Close())
}
