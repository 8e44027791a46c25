package rentwatch

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT          = "conflict"
	EINTERNAL          = "internal"
	EINVALID           = "invalid"
	ENOTFOUND          = "not_found"
	EUNKNOWNSOURCE     = "unknown_source"
	ECONTAINERNOTFOUND = "container_not_found"
	EFIELDNOTFOUND     = "field_not_found"
	EUPSTREAM          = "upstream"
)

// Error represents an application-specific error.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string

	// Source the error relates to, if any.
	Source Source

	// Field that could not be located, for EFIELDNOTFOUND.
	Field string

	// Err is the collaborator error carried by EUPSTREAM.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var prefix string
	if e.Source != "" {
		prefix = string(e.Source) + ": "
	}
	if e.Err != nil {
		return fmt.Sprintf("rentwatch error: %scode=%s message=%s: %v", prefix, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("rentwatch error: %scode=%s message=%s", prefix, e.Code, e.Message)
}

// Unwrap returns the underlying collaborator error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// UnknownSource returns an EUNKNOWNSOURCE error naming the unsupported source.
func UnknownSource(source Source) *Error {
	return &Error{
		Code:    EUNKNOWNSOURCE,
		Message: fmt.Sprintf("unsupported source %q", string(source)),
		Source:  source,
	}
}

// ContainerNotFound returns an ECONTAINERNOTFOUND error for source.
func ContainerNotFound(source Source) *Error {
	return &Error{
		Code:    ECONTAINERNOTFOUND,
		Message: "listing container not found",
		Source:  source,
	}
}

// FieldNotFound returns an EFIELDNOTFOUND error for the named field.
func FieldNotFound(source Source, field string) *Error {
	return &Error{
		Code:    EFIELDNOTFOUND,
		Message: fmt.Sprintf("%s not found", field),
		Source:  source,
		Field:   field,
	}
}

// Upstream tags a collaborator error (parse, transport) as EUPSTREAM.
// The original error is kept unmodified and reachable through errors.Is/As.
func Upstream(source Source, err error) *Error {
	return &Error{
		Code:    EUPSTREAM,
		Message: "upstream failure",
		Source:  source,
		Err:     err,
	}
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
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorSource returns the source attached to an application error, if any.
func ErrorSource(err error) Source {
	var e *Error
	if errors.As(err, &e) {
		return e.Source
	}
	return ""
}

// IsRetryable reports whether err is an expected, per-cycle condition:
// a missing container or field, or a collaborator failure.
// EUNKNOWNSOURCE and other programming errors are not retryable.
func IsRetryable(err error) bool {
	switch ErrorCode(err) {
	case ECONTAINERNOTFOUND, EFIELDNOTFOUND, EUPSTREAM:
		return true
	}
	return false
}
