package upgrade

import (
	"time"

	"github.com/moffa90/go-bluest/firmware"
	"github.com/moffa90/go-bluest/protocol"
)

// Callback receives the outcome of the operations started on a Console.
// Every operation ends with exactly one call to OnVersionRead,
// OnLoadFwComplete or OnLoadFwError, unless it is cancelled.
// Callbacks of one console run in order on a goroutine owned by the
// console; starting a new operation from a callback is allowed.
type Callback interface {
	// OnVersionRead reports the answer to ReadVersion. version is nil when
	// the board did not answer or the answer could not be parsed.
	OnVersionRead(c Console, t protocol.FirmwareType, version *firmware.Version)

	// OnLoadFwComplete reports a successful upload. elapsed is measured from
	// the moment the board accepted the upload command.
	OnLoadFwComplete(c Console, file firmware.File, elapsed time.Duration)

	// OnLoadFwError reports a failed upload. err is an *UploadError.
	OnLoadFwError(c Console, file firmware.File, err error)

	// OnLoadFwProgressUpdate reports that sent of total bytes reached the
	// board.
	OnLoadFwProgressUpdate(c Console, file firmware.File, sent, total int64)
}

// CallbackFuncs adapts plain functions to a Callback. Nil fields are
// ignored.
type CallbackFuncs struct {
	VersionRead func(c Console, t protocol.FirmwareType, version *firmware.Version)
	Complete    func(c Console, file firmware.File, elapsed time.Duration)
	Error       func(c Console, file firmware.File, err error)
	Progress    func(c Console, file firmware.File, sent, total int64)
}

func (f *CallbackFuncs) OnVersionRead(c Console, t protocol.FirmwareType, version *firmware.Version) {
	if f.VersionRead != nil {
		f.VersionRead(c, t, version)
	}
}

func (f *CallbackFuncs) OnLoadFwComplete(c Console, file firmware.File, elapsed time.Duration) {
	if f.Complete != nil {
		f.Complete(c, file, elapsed)
	}
}

func (f *CallbackFuncs) OnLoadFwError(c Console, file firmware.File, err error) {
	if f.Error != nil {
		f.Error(c, file, err)
	}
}

func (f *CallbackFuncs) OnLoadFwProgressUpdate(c Console, file firmware.File, sent, total int64) {
	if f.Progress != nil {
		f.Progress(c, file, sent, total)
	}
}

// Progress contains information about a running upload.
// Passed to ProgressCallback by Runner.Upgrade.
type Progress struct {
	// BytesSent is the number of bytes acknowledged by the radio link
	BytesSent int64

	// TotalBytes is the size of the firmware image
	TotalBytes int64

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// ElapsedTime is the time elapsed since the upload started
	ElapsedTime time.Duration
}

// ProgressCallback is called periodically during an upload to report
// progress. Implementations should return quickly: the next notification of
// the console waits for it.
//
// Example:
//
//	_, err := runner.Upgrade(ctx, protocol.BoardFw, fw,
//	    func(p upgrade.Progress) {
//	        fmt.Printf("%.1f%% - %d/%d bytes\n", p.Percentage, p.BytesSent, p.TotalBytes)
//	    })
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the console.
// This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	c := upgrade.NewNucleo(debug, upgrade.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
