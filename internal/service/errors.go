package service

import "errors"

// Domain error kinds. Callers wrap them with context via fmt.Errorf and %w;
// the HTTP layer translates with errors.Is.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("already booked")
	ErrUnavailable = errors.New("not available")
	ErrValidation  = errors.New("invalid request")
)
