package errors

import "net/http"

const (
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeDatabaseError  = "DATABASE_ERROR"
	CodeCacheError     = "CACHE_ERROR"
	CodeInternalServer = "INTERNAL_SERVER_ERROR"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrConflict = New(
		CodeConflict,
		"Resource already exists",
		http.StatusConflict,
	)

	ErrInvalidRequest = New(
		CodeInvalidRequest,
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidID = New(
		CodeInvalidRequest,
		"Invalid identifier",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		CodeDatabaseError,
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		CodeCacheError,
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		CodeInternalServer,
		"Internal server error",
		http.StatusInternalServerError,
	)
)
