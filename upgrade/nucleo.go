package upgrade

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moffa90/go-bluest/console"
	"github.com/moffa90/go-bluest/dispatch"
	"github.com/moffa90/go-bluest/firmware"
	"github.com/moffa90/go-bluest/protocol"
)

// session is one operation of a Nucleo console. Its methods run on the
// control queue of the console.
type session interface {
	start()
	stdOut(msg string)
	stdInSent(msg string, ok bool)
	timeout()
	release()
}

// Nucleo is the upgrade console of the boards running the BlueMS firmware
// (Nucleo expansion boards, SensorTile and BlueCoin).
//
// Board output, write completions and timeouts are handled one at a time on
// a control goroutine; callbacks are delivered in order on a second one.
//
// Nucleo is safe for concurrent use.
type Nucleo struct {
	debug  console.Debug
	config Config
	window *AdaptiveWindow

	control *dispatch.Queue
	notify  *dispatch.Queue

	mu       sync.Mutex
	active   session
	listener console.Listener
	callback Callback

	// owned by the control queue
	timer    *time.Timer
	timerGen uint64
}

// NewNucleo creates a console talking to the board through debug.
//
// Example:
//
//	c := upgrade.NewNucleo(debug,
//	    upgrade.WithCallback(cb),
//	    upgrade.WithUploadTimeout(8*time.Second),
//	)
//	defer c.Close()
func NewNucleo(debug console.Debug, opts ...Option) *Nucleo {
	if debug == nil {
		panic("debug console cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	window := cfg.Window
	if window == nil {
		window = NewAdaptiveWindow(cfg.BlockPackets)
	}

	return &Nucleo{
		debug:    debug,
		config:   cfg,
		window:   window,
		control:  dispatch.NewQueue(),
		notify:   dispatch.NewQueue(),
		callback: cfg.Callback,
	}
}

// Window returns the adaptive window sizing the uploads of the console.
func (n *Nucleo) Window() *AdaptiveWindow { return n.window }

func (n *Nucleo) IsWaitingAnswer() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active != nil
}

func (n *Nucleo) SetCallback(cb Callback) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.callback = cb
}

// ReadVersion sends the version query of t.
func (n *Nucleo) ReadVersion(t protocol.FirmwareType) bool {
	return n.begin(&versionQuery{n: n, fwType: t, id: uuid.NewString()})
}

// LoadFw uploads file as the firmware of type t.
func (n *Nucleo) LoadFw(t protocol.FirmwareType, file firmware.File) bool {
	if file == nil {
		return false
	}
	return n.begin(&uploadSession{n: n, fwType: t, file: file, id: uuid.NewString()})
}

// Cancel detaches the running operation.
func (n *Nucleo) Cancel() {
	n.mu.Lock()
	s := n.detachLocked()
	n.mu.Unlock()

	if s != nil {
		n.logInfo("operation cancelled")
		n.control.Post(s.release)
	}
}

// Close cancels the running operation and stops the console goroutines.
func (n *Nucleo) Close() error {
	n.mu.Lock()
	s := n.detachLocked()
	n.mu.Unlock()

	n.control.Sync(func() {
		n.stopTimer()
		if s != nil {
			s.release()
		}
	})
	n.control.Close()
	n.notify.Close()
	return nil
}

func (n *Nucleo) begin(s session) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.active != nil || n.control.Closed() {
		return false
	}

	l := &sessionListener{n: n, s: s}
	n.active = s
	n.listener = l
	n.debug.AddListener(l)

	started := n.control.Post(func() {
		if n.isActive(s) {
			s.start()
		}
	})
	if !started {
		n.detachLocked()
		return false
	}
	return true
}

// detachLocked clears the listener slot and returns the session that held
// it. Callers hold n.mu.
func (n *Nucleo) detachLocked() session {
	s := n.active
	if s == nil {
		return nil
	}
	n.debug.RemoveListener(n.listener)
	n.active = nil
	n.listener = nil
	return s
}

func (n *Nucleo) isActive(s session) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active == s
}

// finish ends s and delivers its terminal notification. The console is idle
// again before deliver runs, so the callback may start a new operation.
// It runs on the control queue.
func (n *Nucleo) finish(s session, deliver func(cb Callback)) {
	n.mu.Lock()
	if n.active != s {
		n.mu.Unlock()
		return
	}
	n.detachLocked()
	cb := n.callback
	n.mu.Unlock()

	n.stopTimer()
	s.release()

	if cb != nil {
		n.notify.Post(func() { deliver(cb) })
	}
}

// progress delivers a non terminal notification.
func (n *Nucleo) progress(deliver func(cb Callback)) {
	n.mu.Lock()
	cb := n.callback
	n.mu.Unlock()

	if cb != nil {
		n.notify.Post(func() { deliver(cb) })
	}
}

// arm restarts the timeout of s. It runs on the control queue.
func (n *Nucleo) arm(s session, d time.Duration) {
	n.stopTimer()
	gen := n.timerGen
	n.timer = time.AfterFunc(d, func() {
		n.control.Post(func() {
			if n.timerGen == gen && n.isActive(s) {
				s.timeout()
			}
		})
	})
}

// stopTimer cancels the pending timeout. It runs on the control queue.
func (n *Nucleo) stopTimer() {
	n.timerGen++
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

// logDebug logs a debug message if a logger is configured.
func (n *Nucleo) logDebug(msg string, keysAndValues ...interface{}) {
	if n.config.Logger != nil {
		n.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (n *Nucleo) logInfo(msg string, keysAndValues ...interface{}) {
	if n.config.Logger != nil {
		n.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (n *Nucleo) logError(msg string, keysAndValues ...interface{}) {
	if n.config.Logger != nil {
		n.config.Logger.Error(msg, keysAndValues...)
	}
}

// sessionListener moves the debug console events of one session onto the
// control queue. Events reaching a session that is no longer active are
// dropped.
type sessionListener struct {
	n *Nucleo
	s session
}

func (l *sessionListener) OnStdOutReceived(_ console.Debug, msg string) {
	l.n.control.Post(func() {
		if l.n.isActive(l.s) {
			l.s.stdOut(msg)
		}
	})
}

func (l *sessionListener) OnStdErrReceived(console.Debug, string) {}

func (l *sessionListener) OnStdInSent(_ console.Debug, msg string, ok bool) {
	l.n.control.Post(func() {
		if l.n.isActive(l.s) {
			l.s.stdInSent(msg, ok)
		}
	})
}

var _ Console = (*Nucleo)(nil)
