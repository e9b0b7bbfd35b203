package core

import (
	"errors"
	"net/http"
)

// ErrorKind classifies where and why an exchange failed.
type ErrorKind string

const (
	// KindMissingInput is raised before the pipeline runs if no credential was supplied.
	KindMissingInput ErrorKind = "missing_input"
	// KindValidation means the identity provider rejected the credential.
	// Code and message are taken verbatim from the provider.
	KindValidation ErrorKind = "validation"
	// KindTransport means the identity provider could not be reached or answered garbage.
	KindTransport ErrorKind = "transport"
	// KindDependency means the directory or the signing authority failed.
	KindDependency ErrorKind = "dependency"
)

const (
	// DefaultErrorCode is used for every failure that carries no code of its own.
	DefaultErrorCode = http.StatusInternalServerError
	// DefaultErrorMessage is the generic message for transport and dependency failures.
	DefaultErrorMessage = "Error!"
	// MissingInputMessage is returned when no credential was supplied.
	MissingInputMessage = "Forbidden!  No token sent."
)

// ExchangeError is the single error type surfaced by the exchange pipeline.
type ExchangeError struct {
	Kind    ErrorKind
	Code    int
	Message string

	// Err is the underlying cause, it is never shown to the caller.
	Err error
}

func (e *ExchangeError) Error() string {
	return e.Message
}

func (e *ExchangeError) Unwrap() error {
	return e.Err
}

// StatusCode returns the code to respond with, falling back to DefaultErrorCode
// if the code is unset or not a valid HTTP status.
func (e *ExchangeError) StatusCode() int {
	if e.Code < 100 || e.Code > 599 {
		return DefaultErrorCode
	}
	return e.Code
}

func MissingInput() *ExchangeError {
	return &ExchangeError{
		Kind:    KindMissingInput,
		Code:    http.StatusForbidden,
		Message: MissingInputMessage,
	}
}

func ValidationFailed(code int, message string) *ExchangeError {
	return &ExchangeError{
		Kind:    KindValidation,
		Code:    code,
		Message: message,
	}
}

func TransportFailed(err error) *ExchangeError {
	return &ExchangeError{
		Kind:    KindTransport,
		Code:    DefaultErrorCode,
		Message: DefaultErrorMessage,
		Err:     err,
	}
}

func DependencyFailed(err error) *ExchangeError {
	return &ExchangeError{
		Kind:    KindDependency,
		Code:    DefaultErrorCode,
		Message: DefaultErrorMessage,
		Err:     err,
	}
}

// AsExchangeError returns err as an *ExchangeError.
// Errors of any other type are wrapped as a failure of the given kind.
func AsExchangeError(err error, kind ErrorKind) *ExchangeError {
	if err == nil {
		return nil
	}
	var exErr *ExchangeError
	if errors.As(err, &exErr) {
		return exErr
	}
	return &ExchangeError{
		Kind:    kind,
		Code:    DefaultErrorCode,
		Message: DefaultErrorMessage,
		Err:     err,
	}
}
