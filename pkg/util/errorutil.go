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
	Details    map[string]any
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
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewInvalidCredentials reports a failed login. The message is identical for
// unknown login keys and wrong secrets so callers cannot enumerate accounts.
func NewInvalidCredentials() error {
	return NewDomainError("INVALID_CREDENTIALS", "invalid credentials", http.StatusUnauthorized, nil)
}

func NewDuplicateIdentity(details map[string]any) error {
	return NewDomainError("DUPLICATE_IDENTITY", "login key already registered", http.StatusConflict, details)
}

func NewNoToken() error {
	return NewDomainError("NO_TOKEN", "missing bearer token", http.StatusUnauthorized, nil)
}

func NewTokenMalformed() error {
	return NewDomainError("TOKEN_MALFORMED", "invalid token", http.StatusUnauthorized, nil)
}

func NewTokenExpired() error {
	return NewDomainError("TOKEN_EXPIRED", "token expired", http.StatusUnauthorized, nil)
}

func NewInsufficientRole() error {
	return NewDomainError("INSUFFICIENT_ROLE", "insufficient role", http.StatusForbidden, nil)
}

func NewRateLimited() error {
	return NewDomainError("RATE_LIMITED", "too many login attempts", http.StatusTooManyRequests, nil)
}

func NewStoreUnavailable(err error) error {
	return &DomainError{
		Code:       "STORE_UNAVAILABLE",
		Message:    "credential store unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
