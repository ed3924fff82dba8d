package errors

import (
	"errors"
	"fmt"
)

// Code categorizes an arsenal error
type Code string

const (
	// CodeUnknown indicates an error that carries no category
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates a malformed identifier, nil handle or empty key
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates an unregistered item, weapon or stored definition
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates a second registration under the same identifier
	CodeAlreadyExists Code = "already_exists"

	// CodeFailedPrecondition indicates an action attempted while the weapon is not ready
	CodeFailedPrecondition Code = "failed_precondition"

	// CodeInternal indicates a storage or encoding failure
	CodeInternal Code = "internal"
)

// Error is an arsenal error with a code and optional metadata
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta attaches a metadata entry and returns the same error
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates an error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps err, keeping its code when it is already an arsenal error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var qcErr *Error
	if errors.As(err, &qcErr) {
		return &Error{
			Code:    qcErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(qcErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps err with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err and forces the given code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Is reports whether err carries the given code
func Is(err error, code Code) bool {
	var qcErr *Error
	if errors.As(err, &qcErr) {
		return qcErr.Code == code
	}
	return false
}

func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

func IsAlreadyExists(err error) bool {
	return Is(err, CodeAlreadyExists)
}

func IsFailedPrecondition(err error) bool {
	return Is(err, CodeFailedPrecondition)
}

// GetCode returns the code of err, or CodeUnknown
func GetCode(err error) Code {
	var qcErr *Error
	if errors.As(err, &qcErr) {
		return qcErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the metadata of err, if any
func GetMeta(err error) map[string]any {
	var qcErr *Error
	if errors.As(err, &qcErr) {
		return qcErr.Meta
	}
	return nil
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
