package upgrade

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-bluest/console/simboard"
	"github.com/moffa90/go-bluest/firmware"
	"github.com/moffa90/go-bluest/protocol"
)

type versionEvent struct {
	fwType  protocol.FirmwareType
	version *firmware.Version
}

type uploadEvent struct {
	file    firmware.File
	elapsed time.Duration
	err     error
}

// recorder collects the callbacks of a console.
type recorder struct {
	versions chan versionEvent
	uploads  chan uploadEvent

	mu       sync.Mutex
	progress [][2]int64
}

func newRecorder() *recorder {
	return &recorder{
		versions: make(chan versionEvent, 8),
		uploads:  make(chan uploadEvent, 8),
	}
}

func (r *recorder) OnVersionRead(_ Console, t protocol.FirmwareType, v *firmware.Version) {
	r.versions <- versionEvent{fwType: t, version: v}
}

func (r *recorder) OnLoadFwComplete(_ Console, file firmware.File, elapsed time.Duration) {
	r.uploads <- uploadEvent{file: file, elapsed: elapsed}
}

func (r *recorder) OnLoadFwError(_ Console, file firmware.File, err error) {
	r.uploads <- uploadEvent{file: file, err: err}
}

func (r *recorder) OnLoadFwProgressUpdate(_ Console, _ firmware.File, sent, total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, [2]int64{sent, total})
}

func (r *recorder) progressUpdates() [][2]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][2]int64(nil), r.progress...)
}

func (r *recorder) version(t *testing.T) versionEvent {
	t.Helper()
	select {
	case ev := <-r.versions:
		return ev
	case <-time.After(2 * time.Second):
		require.FailNow(t, "no version callback")
		return versionEvent{}
	}
}

func (r *recorder) upload(t *testing.T) uploadEvent {
	t.Helper()
	select {
	case ev := <-r.uploads:
		return ev
	case <-time.After(2 * time.Second):
		require.FailNow(t, "no upload callback")
		return uploadEvent{}
	}
}

// newConsole returns a console bound to a simulated board with short
// timeouts.
func newConsole(t *testing.T, board *simboard.Board, opts ...Option) (*Nucleo, *recorder) {
	t.Helper()
	rec := newRecorder()
	opts = append([]Option{
		WithCallback(rec),
		WithVersionTimeout(50 * time.Millisecond),
		WithUploadTimeout(100 * time.Millisecond),
	}, opts...)

	c := NewNucleo(board, opts...)
	t.Cleanup(func() {
		_ = c.Close()
		board.Close()
	})
	return c, rec
}

func image(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 3)
	}
	return b
}
