package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

// NewValidationError flags a local pre-request validation failure.
// No network call may be issued for the failing action.
func NewValidationError(message string) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized)
}

func NewConflict(message string) error {
	return NewDomainError("CONFLICT", message, http.StatusBadRequest)
}

func NewRemoteError(err error) error {
	return &DomainError{
		Code:       "REMOTE_FAILED",
		Message:    "remote call failed",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// statusCoder is satisfied by gateway errors that carry an HTTP status.
type statusCoder interface {
	HTTPStatusCode() int
}

// ToDomainError converts generic errors to DomainError, mapping
// status-bearing gateway failures onto the client error taxonomy:
// 401 is unauthorized, 400 is a conflict, anything else is generic.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		switch sc.HTTPStatusCode() {
		case http.StatusUnauthorized:
			return &DomainError{
				Code:       "UNAUTHORIZED",
				Message:    "unauthorized",
				HTTPStatus: http.StatusUnauthorized,
				Err:        err,
			}
		case http.StatusBadRequest:
			return &DomainError{
				Code:       "CONFLICT",
				Message:    "request rejected",
				HTTPStatus: http.StatusBadRequest,
				Err:        err,
			}
		}
	}
	return &DomainError{
		Code:       "REMOTE_FAILED",
		Message:    "remote call failed",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	de := ToDomainError(err)
	return de != nil && de.Code == "VALIDATION_FAILED"
}

// IsUnauthorized reports whether err maps to an authentication failure.
func IsUnauthorized(err error) bool {
	de := ToDomainError(err)
	return de != nil && de.Code == "UNAUTHORIZED"
}

// IsConflict reports whether err maps to a conflicting request (HTTP 400).
func IsConflict(err error) bool {
	de := ToDomainError(err)
	return de != nil && de.Code == "CONFLICT"
}
