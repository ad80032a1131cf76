package game

import "errors"

// Errors returned by engine operations. Call sites wrap them with detail using %w
// so callers can classify with errors.Is.
var (
	ErrNotStarted           = errors.New("no character")
	ErrAlreadyStarted       = errors.New("character already exists")
	ErrNotFound             = errors.New("not found")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrInvalidChoice        = errors.New("invalid choice")
	ErrInsufficientResource = errors.New("insufficient resource")
	ErrTurnViolation        = errors.New("not your turn")
	ErrStateExpired         = errors.New("battle expired")
)
