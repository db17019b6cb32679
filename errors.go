package relnews

import (
	"errors"
	"fmt"
)

// Application error codes. These map the failure taxonomy of the service:
// codes describe the kind of failure, messages carry the detail.
const (
	ECONFIG      = "config"       // required configuration missing
	EEMPTY       = "empty_result" // external call succeeded but produced no decodable payload
	EINTERNAL    = "internal"     // unexpected internal fault
	EINVALID     = "invalid"      // validation failed
	ENOTFOUND    = "not_found"    // entity does not exist
	EUNAVAILABLE = "unavailable"  // external collaborator fault (network, auth, rate limit)
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("relnews error: code=%s message=%s", e.Code, e.Message)
}

// Errorf returns a new Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors report EINTERNAL.
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
// Non-application errors surface their description verbatim; the boundary
// contract is that the caller sees the fault's description, not a generic
// placeholder.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
