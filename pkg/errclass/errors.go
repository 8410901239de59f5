// Package errclass defines the stable, machine-readable error classes
// surfaced by targo.
package errclass

import "fmt"

// TargoError is a stable, machine-readable error class.
type TargoError struct {
	Code    string
	Message string
}

func (e *TargoError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *TargoError) Is(target error) bool {
	t, ok := target.(*TargoError)
	return ok && e.Code == t.Code
}

// WithMessage returns a new TargoError with the same Code but a specific message.
func (e *TargoError) WithMessage(msg string) *TargoError {
	return &TargoError{Code: e.Code, Message: msg}
}

// WithMessagef returns a new TargoError with a formatted message.
func (e *TargoError) WithMessagef(format string, args ...any) *TargoError {
	return &TargoError{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// All stable error classes.
var (
	ErrLockFailed      = &TargoError{Code: "E_LOCK_FAILED"}
	ErrVersionMismatch = &TargoError{Code: "E_VERSION_MISMATCH"}
	ErrMetadataCorrupt = &TargoError{Code: "E_METADATA_CORRUPT"}
	ErrMetadataWrite   = &TargoError{Code: "E_METADATA_WRITE"}
	ErrPathEncoding    = &TargoError{Code: "E_PATH_ENCODING"}
	ErrNotAbsolute     = &TargoError{Code: "E_NOT_ABSOLUTE"}
	ErrUnsupported     = &TargoError{Code: "E_UNSUPPORTED"}
)
