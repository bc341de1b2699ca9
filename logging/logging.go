// Package logging builds the zerolog loggers of the bluest tools and adapts
// them to the key-value Logger interface of the upgrade and ble packages.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a zerolog logger writing to w.
// level is a zerolog level name ("debug", "info", ...); an empty level
// selects info. format is FormatConsole or FormatJSON; empty selects
// FormatConsole.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
		}
	}

	switch strings.ToLower(format) {
	case "", FormatConsole:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Adapter exposes a zerolog logger as a Debug/Info/Error key-value logger.
// Keys must be strings; a trailing key without value is logged with a nil
// value.
type Adapter struct {
	log zerolog.Logger
}

// NewAdapter wraps l.
//
// Example:
//
//	zl, _ := logging.New(os.Stderr, "debug", logging.FormatConsole)
//	c := upgrade.NewNucleo(debug, upgrade.WithLogger(logging.NewAdapter(zl)))
func NewAdapter(l zerolog.Logger) *Adapter {
	return &Adapter{log: l}
}

// With returns an adapter adding keysAndValues to every message.
func (a *Adapter) With(keysAndValues ...interface{}) *Adapter {
	return &Adapter{log: a.log.With().Fields(pairs(keysAndValues)).Logger()}
}

// Zerolog returns the wrapped logger.
func (a *Adapter) Zerolog() zerolog.Logger { return a.log }

func (a *Adapter) Debug(msg string, keysAndValues ...interface{}) {
	a.log.Debug().Fields(pairs(keysAndValues)).Msg(msg)
}

func (a *Adapter) Info(msg string, keysAndValues ...interface{}) {
	a.log.Info().Fields(pairs(keysAndValues)).Msg(msg)
}

func (a *Adapter) Error(msg string, keysAndValues ...interface{}) {
	a.log.Error().Fields(pairs(keysAndValues)).Msg(msg)
}

// pairs makes kv a valid zerolog field list.
func pairs(kv []interface{}) []interface{} {
	if len(kv)%2 == 0 {
		return kv
	}
	out := make([]interface{}, len(kv)+1)
	copy(out, kv)
	return out
}
