package errors

import (
	stdErrors "errors"
	"fmt"
)

// Code classifies a failed console operation. The set mirrors how the admin
// backend's responses are consumed: validation failures never leave the
// client, application errors carry the backend's message verbatim, network
// errors are retryable by repeating the action, and a missing customer-service
// feature is terminal for the session.
type Code string

const (
	CodeValidation     Code = "VALIDATION_ERROR"
	CodeApplication    Code = "APPLICATION_ERROR"
	CodeNotFound       Code = "NOT_FOUND"
	CodeFeatureMissing Code = "FEATURE_MISSING"
	CodeNetwork        Code = "NETWORK_ERROR"
	CodeInternal       Code = "INTERNAL_ERROR"
)

type Metadata struct {
	Retryable     bool
	Terminal      bool
	PublicMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		Retryable:     false,
		PublicMessage: "validation failed",
	},
	CodeApplication: {
		Retryable:     false,
		PublicMessage: "request rejected",
	},
	CodeNotFound: {
		Retryable:     false,
		PublicMessage: "resource not found",
	},
	CodeFeatureMissing: {
		Retryable:     false,
		Terminal:      true,
		PublicMessage: "feature not deployed on this backend",
	},
	CodeNetwork: {
		Retryable:     true,
		PublicMessage: "network error, try again",
	},
	CodeInternal: {
		Retryable:     false,
		PublicMessage: "internal error",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf extracts the classification of err, defaulting to CodeInternal for
// untyped errors.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}

// IsRetryable reports whether repeating the failed action may succeed. The
// polling pipelines rely on this: a retryable failure is left to the next
// tick, anything else needs operator attention.
func IsRetryable(err error) bool {
	return MetadataFor(CodeOf(err)).Retryable
}

// IsTerminal reports whether the error permanently disables its originating
// pipeline for the session.
func IsTerminal(err error) bool {
	return MetadataFor(CodeOf(err)).Terminal
}

// UserMessage returns the text shown to the operator: the typed message when
// present, the code's public message otherwise.
func UserMessage(err error) string {
	typed := As(err)
	if typed == nil {
		return MetadataFor(CodeInternal).PublicMessage
	}
	if m := typed.Message(); m != "" {
		return m
	}
	return MetadataFor(typed.Code()).PublicMessage
}
