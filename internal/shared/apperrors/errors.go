package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping and retry decisions.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindForbidden
	KindConflictBooked
	KindConflictHeld
	KindConflictUnavailable
	KindConflictState
	KindExpired
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflictBooked:
		return "conflict_booked"
	case KindConflictHeld:
		return "conflict_held"
	case KindConflictUnavailable:
		return "conflict_unavailable"
	case KindConflictState:
		return "conflict_state"
	case KindExpired:
		return "expired"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Error is the application error type carried across service boundaries.
type Error struct {
	Kind    Kind
	Message string
	Seat    string // offending seat for seat-level conflicts
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithSeat creates a seat-level conflict error naming the offending seat.
func WithSeat(kind Kind, seat, message string) *Error {
	return &Error{Kind: kind, Message: message, Seat: seat}
}

// KindOf extracts the kind from an error chain.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Message returns the user-facing message for an error.
// Unclassified errors get a generic message so internals never leak to clients.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal Server Error"
}

// HTTPStatus maps an error to its HTTP status code.
func HTTPStatus(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch kind {
	case KindValidation, KindConflictUnavailable, KindExpired:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflictBooked, KindConflictHeld, KindConflictState:
		return http.StatusConflict
	case KindTransient:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
