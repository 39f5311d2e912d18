package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataSource is returned when the ledger source could not be reached or a query failed.
	ErrDataSource = errors.New("data source error")

	// ErrInvalidInput is returned for malformed representative ids or scope tokens.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedScope is returned by a ledger source that cannot interpret a scope token.
	ErrUnsupportedScope = errors.New("unsupported scope")
)

// Error is a failed operation. Error() is safe to show to callers; the underlying
// cause stays reachable through errors.Is/As for logging.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// DataSourceError wraps a source failure.
func DataSourceError(cause error, format string, args ...any) error {
	return &Error{Kind: ErrDataSource, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// InvalidInputError reports rejected input.
func InvalidInputError(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

// FromSource classifies an error returned by a ledger source. Domain errors pass
// through, unsupported scopes become invalid input, everything else is a data source error.
func FromSource(err error, format string, args ...any) error {
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, ErrUnsupportedScope) {
		return &Error{Kind: ErrInvalidInput, Msg: msg + ": unsupported scope", Err: err}
	}
	return &Error{Kind: ErrDataSource, Msg: msg + ": data source unavailable", Err: err}
}

// KindOf returns the sentinel kind of err, or nil when err is not a domain error.
func KindOf(err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return ErrInvalidInput
	case errors.Is(err, ErrDataSource):
		return ErrDataSource
	default:
		return nil
	}
}
