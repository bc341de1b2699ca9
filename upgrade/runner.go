package upgrade

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/moffa90/go-bluest/firmware"
	"github.com/moffa90/go-bluest/protocol"
)

// Runner turns the callbacks of a Console into blocking calls.
// The Runner becomes the callback of the console.
//
// Example:
//
//	r := upgrade.NewRunner(c)
//	elapsed, err := r.Upgrade(ctx, protocol.BoardFw, fw, nil)
type Runner struct {
	console Console
	compat  firmware.CompatibilityTable

	mu      sync.Mutex
	pending *pendingOp
}

type opResult struct {
	version *firmware.Version
	elapsed time.Duration
	err     error
}

type pendingOp struct {
	upload   bool
	fwType   protocol.FirmwareType
	file     firmware.File
	progress ProgressCallback
	started  time.Time
	done     chan opResult
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithCompatibility replaces the table checked before a board firmware
// upload. A nil table disables the check.
func WithCompatibility(table firmware.CompatibilityTable) RunnerOption {
	return func(r *Runner) {
		r.compat = table
	}
}

// NewRunner wraps c. The compatibility check uses
// firmware.DefaultCompatibility unless WithCompatibility is given.
func NewRunner(c Console, opts ...RunnerOption) *Runner {
	r := &Runner{
		console: c,
		compat:  firmware.DefaultCompatibility,
	}
	for _, opt := range opts {
		opt(r)
	}
	c.SetCallback(r)
	return r
}

// ReadVersion reads the firmware version of type t. It fails with
// ErrNoVersion when the board gives no valid answer.
func (r *Runner) ReadVersion(ctx context.Context, t protocol.FirmwareType) (*firmware.Version, error) {
	op := &pendingOp{fwType: t, done: make(chan opResult, 1)}
	res, err := r.run(ctx, op, func() bool { return r.console.ReadVersion(t) })
	if err != nil {
		return nil, err
	}
	if res.version == nil {
		return nil, ErrNoVersion
	}
	return res.version, nil
}

// Upgrade uploads file and returns the time the board took to receive it.
//
// A board firmware upload first reads the running version: a board that
// does not answer fails with ErrUnsupported, and a version older than the
// compatibility table allows fails with *firmware.NeedsUpdateError. Nothing
// is uploaded in both cases.
//
// The upload can be cancelled via context; no message is sent to the board,
// which gives up on its own.
func (r *Runner) Upgrade(ctx context.Context, t protocol.FirmwareType, file firmware.File, progress ProgressCallback) (time.Duration, error) {
	if file == nil {
		return 0, fmt.Errorf("file cannot be nil")
	}

	if t == protocol.BoardFw && r.compat != nil {
		v, err := r.ReadVersion(ctx, t)
		if errors.Is(err, ErrNoVersion) {
			return 0, fmt.Errorf("%w: cannot read the board version: %w", ErrUnsupported, err)
		}
		if err != nil {
			return 0, err
		}
		if err := r.compat.Check(*v); err != nil {
			return 0, err
		}
	}

	op := &pendingOp{
		upload:   true,
		fwType:   t,
		file:     file,
		progress: progress,
		done:     make(chan opResult, 1),
	}
	res, err := r.run(ctx, op, func() bool { return r.console.LoadFw(t, file) })
	if err != nil {
		return 0, err
	}
	return res.elapsed, res.err
}

func (r *Runner) run(ctx context.Context, op *pendingOp, start func() bool) (opResult, error) {
	if err := ctx.Err(); err != nil {
		return opResult{}, err
	}

	r.mu.Lock()
	if r.pending != nil {
		r.mu.Unlock()
		return opResult{}, ErrBusy
	}
	op.started = time.Now()
	r.pending = op
	r.mu.Unlock()

	if !start() {
		r.clear(op)
		return opResult{}, ErrBusy
	}

	select {
	case res := <-op.done:
		return res, nil
	case <-ctx.Done():
		r.console.Cancel()
		r.clear(op)
		return opResult{}, ctx.Err()
	}
}

func (r *Runner) clear(op *pendingOp) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == op {
		r.pending = nil
	}
}

// take removes the pending operation if it matches.
func (r *Runner) take(match func(op *pendingOp) bool) *pendingOp {
	r.mu.Lock()
	defer r.mu.Unlock()
	op := r.pending
	if op == nil || !match(op) {
		return nil
	}
	r.pending = nil
	return op
}

func (r *Runner) current(match func(op *pendingOp) bool) *pendingOp {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == nil || !match(r.pending) {
		return nil
	}
	return r.pending
}

func (r *Runner) OnVersionRead(_ Console, t protocol.FirmwareType, version *firmware.Version) {
	op := r.take(func(op *pendingOp) bool { return !op.upload && op.fwType == t })
	if op != nil {
		op.done <- opResult{version: version}
	}
}

func (r *Runner) OnLoadFwComplete(_ Console, file firmware.File, elapsed time.Duration) {
	op := r.take(func(op *pendingOp) bool { return op.upload && op.file == file })
	if op != nil {
		op.done <- opResult{elapsed: elapsed}
	}
}

func (r *Runner) OnLoadFwError(_ Console, file firmware.File, err error) {
	op := r.take(func(op *pendingOp) bool { return op.upload && op.file == file })
	if op != nil {
		op.done <- opResult{err: err}
	}
}

func (r *Runner) OnLoadFwProgressUpdate(_ Console, file firmware.File, sent, total int64) {
	op := r.current(func(op *pendingOp) bool { return op.upload && op.file == file })
	if op == nil || op.progress == nil {
		return
	}
	pct := 0.0
	if total > 0 {
		pct = float64(sent) * 100 / float64(total)
	}
	op.progress(Progress{
		BytesSent:   sent,
		TotalBytes:  total,
		Percentage:  pct,
		ElapsedTime: time.Since(op.started),
	})
}

var _ Callback = (*Runner)(nil)
