package errors

import (
	stderrors "errors"
	"fmt"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any AppError carrying the same code, so errors.Is(err, ErrNotFound)
// holds for every NotFound built with a specific message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

// WithDetails returns a copy of e carrying details; package-level errors stay untouched.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

func (e *AppError) withMessage(message string) *AppError {
	return New(e.Code, message, e.StatusCode)
}

// NotFound builds the error returned when a lookup by field (id, name) yields no record.
func NotFound(kind, field string, key interface{}) *AppError {
	if s, ok := key.(string); ok {
		key = fmt.Sprintf("%q", s)
	}
	return ErrNotFound.withMessage(fmt.Sprintf("%s with %s %v not found", kind, field, key))
}

// AlreadyExists builds the error returned when a write collides with a unique field (name).
func AlreadyExists(kind, field string, key interface{}) *AppError {
	if s, ok := key.(string); ok {
		key = fmt.Sprintf("%q", s)
	}
	return ErrConflict.withMessage(fmt.Sprintf("%s with %s %v already exists", kind, field, key))
}

// IsNotFound reports whether err is, or wraps, a NotFound AppError.
func IsNotFound(err error) bool {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	return appErr.Code == CodeNotFound
}
