package pagelens

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meaningful to the caller: EINVALID and EFORBIDDEN map to bad
// requests, EUNAVAILABLE to upstream fetch failures, EINTERNAL to bugs.
const (
	EEMPTY       = "empty"       // collaborator returned no body
	EFORBIDDEN   = "forbidden"   // SSRF-guarded target host
	EINTERNAL    = "internal"    // internal error
	EINVALID     = "invalid"     // validation failed
	ENOTFOUND    = "not_found"   // entity does not exist
	EUNAVAILABLE = "unavailable" // fetch collaborator failed
	EUNSUPPORTED = "unsupported" // URL scheme other than http/https
)

// Error represents an application-specific error. Application errors carry a
// machine-readable code and a human-readable message.
type Error struct {
	// Code is one of the application error codes above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface. Not used by the application
// otherwise; prefer ErrorCode and ErrorMessage for introspection.
func (e *Error) Error() string {
	return fmt.Sprintf("pagelens error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
