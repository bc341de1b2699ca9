package upgrade

import "time"

const (
	// DefaultVersionTimeout is the time the board has to answer a version
	// query, restarted on every fragment of the answer
	DefaultVersionTimeout = 1000 * time.Millisecond

	// DefaultUploadTimeout is the time allowed between two write
	// completions during an upload
	DefaultUploadTimeout = 4 * DefaultVersionTimeout
)

// Config holds the console configuration.
type Config struct {
	// Callback receives the outcome of the operations (optional)
	Callback Callback

	// Logger is used for logging operations (optional)
	Logger Logger

	// VersionTimeout bounds the wait for a version answer
	VersionTimeout time.Duration

	// UploadTimeout bounds the wait for each write completion of an upload
	UploadTimeout time.Duration

	// BlockPackets is the block size before any failure, used when Window
	// is nil
	BlockPackets int

	// Window sizes the upload blocks; a private window is created when nil
	Window *AdaptiveWindow
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		VersionTimeout: DefaultVersionTimeout,
		UploadTimeout:  DefaultUploadTimeout,
		BlockPackets:   DefaultBlockPackets,
	}
}

// Option is a functional option for configuring a console.
type Option func(*Config)

// WithCallback sets the callback receiving the operation outcomes.
//
// Example:
//
//	c := upgrade.NewNucleo(debug, upgrade.WithCallback(&upgrade.CallbackFuncs{
//	    VersionRead: func(_ upgrade.Console, _ protocol.FirmwareType, v *firmware.Version) {
//	        fmt.Println(v)
//	    },
//	}))
func WithCallback(cb Callback) Option {
	return func(c *Config) {
		c.Callback = cb
	}
}

// WithLogger sets a logger for the console operations.
//
// Example:
//
//	c := upgrade.NewNucleo(debug, upgrade.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithVersionTimeout sets the version query timeout.
//
// Example:
//
//	c := upgrade.NewNucleo(debug, upgrade.WithVersionTimeout(2*time.Second))
func WithVersionTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.VersionTimeout = timeout
		}
	}
}

// WithUploadTimeout sets the timeout between two write completions.
//
// Example:
//
//	c := upgrade.NewNucleo(debug, upgrade.WithUploadTimeout(8*time.Second))
func WithUploadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.UploadTimeout = timeout
		}
	}
}

// WithBlockPackets sets the number of messages per block before any failure.
// Default is 10.
//
// Example:
//
//	c := upgrade.NewNucleo(debug, upgrade.WithBlockPackets(4))
func WithBlockPackets(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.BlockPackets = n
		}
	}
}

// WithAdaptiveWindow shares w between consoles, so that the failures of
// one upload shrink the blocks of the next ones.
//
// Example:
//
//	w := upgrade.NewAdaptiveWindow(upgrade.DefaultBlockPackets)
//	a := upgrade.NewNucleo(debugA, upgrade.WithAdaptiveWindow(w))
//	b := upgrade.NewNucleo(debugB, upgrade.WithAdaptiveWindow(w))
func WithAdaptiveWindow(w *AdaptiveWindow) Option {
	return func(c *Config) {
		c.Window = w
	}
}
