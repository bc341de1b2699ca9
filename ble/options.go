package ble

import "github.com/moffa90/go-bluest/upgrade"

// Logger is the key-value logger shared with the upgrade package.
type Logger = upgrade.Logger

// Config holds the options of scanners and connections.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger
}

// Option is a functional option for configuring the package types.
type Option func(*Config)

// WithLogger sets a logger.
//
// Example:
//
//	dev, err := ble.Connect(adapter, found, ble.WithLogger(logging.NewAdapter(zl)))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

func applyOptions(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func logDebug(l Logger, msg string, keysAndValues ...interface{}) {
	if l != nil {
		l.Debug(msg, keysAndValues...)
	}
}

func logInfo(l Logger, msg string, keysAndValues ...interface{}) {
	if l != nil {
		l.Info(msg, keysAndValues...)
	}
}

func logError(l Logger, msg string, keysAndValues ...interface{}) {
	if l != nil {
		l.Error(msg, keysAndValues...)
	}
}
