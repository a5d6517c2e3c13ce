package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy surfaced to callers. Match with errors.Is against these
// sentinels, or errors.As against *Error for status and server detail.
var (
	ErrNetwork     = errors.New("network failure")        // Request never completed
	ErrTimeout     = errors.New("request timed out")      // No response within the deadline
	ErrCancelled   = errors.New("request cancelled")      // Caller aborted the request
	ErrAuthExpired = errors.New("authentication expired") // 401; credentials have been cleared
	ErrForbidden   = errors.New("forbidden")              // 403; credentials retained
	ErrNotFound    = errors.New("not found")              // 404
	ErrConflict    = errors.New("conflict")               // 409
	ErrValidation  = errors.New("validation failed")      // 422
	ErrServer      = errors.New("server error")           // 5xx
	ErrProtocol    = errors.New("protocol error")         // Undecodable 2xx body or non-standard status
)

// Error classifies a failed exchange. Kind is always one of the sentinel
// errors above, so errors.Is(err, transport.ErrTimeout) works through any
// amount of wrapping.
type Error struct {
	Kind    error  // Sentinel identifying the failure class
	Status  int    // HTTP status, 0 when the request never completed
	Message string // Server-provided detail when available
	cause   error
}

// NewError builds a classified transport error. Middleware that surfaces a
// replacement error (the 401 path) constructs it with this.
func NewError(kind error, status int, message string, cause error) *Error {
	return &Error{Kind: kind, Status: status, Message: message, cause: cause}
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s (status %d): %s", e.Kind.Error(), e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s (status %d)", e.Kind.Error(), e.Status)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

// classifyStatus maps a non-2xx response to its error class. The transport
// itself never recovers; classification is the whole of its error policy.
func classifyStatus(status int, message string) *Error {
	var kind error
	switch {
	case status == http.StatusUnauthorized:
		kind = ErrAuthExpired
	case status == http.StatusForbidden:
		kind = ErrForbidden
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status == http.StatusConflict:
		kind = ErrConflict
	case status == http.StatusUnprocessableEntity:
		kind = ErrValidation
	case status >= 500 && status <= 599:
		kind = ErrServer
	default:
		kind = ErrProtocol
	}
	return NewError(kind, status, message, nil)
}
