package grid

import (
	"errors"
	"fmt"
)

// Configuration errors returned by New, always wrapped in an *Error naming the offending part.
var (
	ErrNoDataSource       = errors.New("either data or a data source is required")
	ErrConflictingSources = errors.New("data and data source are mutually exclusive")
	ErrNoColumns          = errors.New("at least one column is required")
	ErrDuplicateColumn    = errors.New("duplicate column id")
)

// Error is a configuration error: one of the sentinels above plus what triggered it.
type Error struct {
	sentinel error
	detail   string
}

func (e *Error) Error() string {
	if e.detail == "" {
		return e.sentinel.Error()
	}
	return e.sentinel.Error() + ": " + e.detail
}

// Unwrap exposes the sentinel to errors.Is.
func (e *Error) Unwrap() error {
	return e.sentinel
}

func configError(sentinel error, format string, args ...any) *Error {
	return &Error{sentinel: sentinel, detail: fmt.Sprintf(format, args...)}
}
