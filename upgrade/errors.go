package upgrade

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFile indicates that the firmware image cannot be opened or read
	ErrInvalidFile = errors.New("invalid firmware file")

	// ErrTransmission indicates a lost message, a failed write or a wrong
	// checksum echo during an upload
	ErrTransmission = errors.New("transmission error")

	// ErrCorruptedFile indicates that the board rejected the received image
	ErrCorruptedFile = errors.New("corrupted file")

	// ErrUnsupported indicates that the node has no firmware upgrade console
	ErrUnsupported = errors.New("firmware upgrade not supported")

	// ErrBusy is returned by Runner when the console is already running an
	// operation
	ErrBusy = errors.New("console is busy")

	// ErrNoVersion is returned by Runner.ReadVersion when the board does not
	// answer with a valid version
	ErrNoVersion = errors.New("version not available")
)

// ErrorCode classifies an upload failure.
type ErrorCode int

const (
	CodeTransmission ErrorCode = iota
	CodeInvalidFile
	CodeCorruptedFile
)

func (c ErrorCode) String() string {
	switch c {
	case CodeTransmission:
		return "transmission"
	case CodeInvalidFile:
		return "invalid file"
	case CodeCorruptedFile:
		return "corrupted file"
	default:
		return "unknown"
	}
}

func (c ErrorCode) sentinel() error {
	switch c {
	case CodeInvalidFile:
		return ErrInvalidFile
	case CodeCorruptedFile:
		return ErrCorruptedFile
	default:
		return ErrTransmission
	}
}

// UploadError is delivered to Callback.OnLoadFwError.
type UploadError struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *UploadError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code.sentinel(), e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the sentinel of the error code.
func (e *UploadError) Is(target error) bool {
	return target == e.Code.sentinel()
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
