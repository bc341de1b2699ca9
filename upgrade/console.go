package upgrade

import (
	"github.com/moffa90/go-bluest/console"
	"github.com/moffa90/go-bluest/firmware"
	"github.com/moffa90/go-bluest/node"
	"github.com/moffa90/go-bluest/protocol"
)

// Console reads firmware versions from a node and uploads new firmware.
// Only one operation runs at a time.
type Console interface {
	// IsWaitingAnswer reports whether an operation is running.
	IsWaitingAnswer() bool

	// ReadVersion starts a version query. It returns false, without any
	// other effect, when an operation is already running.
	ReadVersion(t protocol.FirmwareType) bool

	// LoadFw starts an upload of file. It returns false, without any other
	// effect, when an operation is already running.
	LoadFw(t protocol.FirmwareType, file firmware.File) bool

	// SetCallback replaces the callback of the next notifications.
	SetCallback(cb Callback)

	// Cancel stops the running operation, if any. No callback is delivered
	// for it and nothing is sent to the board.
	Cancel()

	// Close cancels the running operation and releases the console.
	Close() error
}

// ConsoleFor returns the upgrade console matching the firmware of the
// model. ok is false when the model has no console or debug is nil.
//
// Example:
//
//	c, ok := upgrade.ConsoleFor(n.Model(), n.Debug())
//	if !ok {
//	    return upgrade.ErrUnsupported
//	}
//	defer c.Close()
func ConsoleFor(model node.Model, debug console.Debug, opts ...Option) (Console, bool) {
	if debug == nil {
		return nil, false
	}
	switch model {
	case node.Nucleo, node.SensorTile, node.BlueCoin:
		return NewNucleo(debug, opts...), true
	default:
		return nil, false
	}
}
