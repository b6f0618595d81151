// Package apperror classifies failures of the tracking service so that
// transports can map them onto status codes without string matching.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the category of an application error
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthorization
	KindNotFound
	KindTripState
	KindTransientStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindTripState:
		return "trip_state"
	case KindTransientStorage:
		return "transient_storage"
	default:
		return "internal"
	}
}

// Error is an application error with a kind and an optional cause
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so errors.Is(err, ErrNotFound) works for any message
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is checks
var (
	ErrValidation       = &Error{Kind: KindValidation}
	ErrAuthorization    = &Error{Kind: KindAuthorization}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrTripState        = &Error{Kind: KindTripState}
	ErrTransientStorage = &Error{Kind: KindTransientStorage}
)

// Validation reports malformed input; the caller must fix it before resubmitting
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Authorization reports a caller with no relationship to the requested resource
func Authorization(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing trip or driver
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// TripState reports a trip that does not accept samples in its current state
func TripState(format string, args ...interface{}) *Error {
	return &Error{Kind: KindTripState, Message: fmt.Sprintf(format, args...)}
}

// TransientStorage wraps a persistence failure the client may retry
func TransientStorage(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindTransientStorage, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error onto a response status code
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindTripState:
		return http.StatusConflict
	case KindTransientStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the message safe to show to the caller
func PublicMessage(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return "internal server error"
	}
	switch appErr.Kind {
	case KindAuthorization:
		// never leak whether the trip exists
		return "not permitted"
	case KindTransientStorage:
		return "storage temporarily unavailable, retry later"
	default:
		return appErr.Message
	}
}
