package firmware

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is matched by every *FormatError.
var ErrInvalidFormat = errors.New("invalid version format")

// FormatError indicates that a version answer could not be parsed.
type FormatError struct {
	Kind string
	Text string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s version format: %q", e.Kind, e.Text)
}

// Is reports whether target is ErrInvalidFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// NeedsUpdateError indicates that the firmware on the board is older than the
// minimum version that supports an upload over the debug console.
type NeedsUpdateError struct {
	Current Version
	Minimum Version
}

func (e *NeedsUpdateError) Error() string {
	return fmt.Sprintf("firmware %s is older than the minimum supported version %s: update it with a programmer first",
		e.Current, e.Minimum)
}
