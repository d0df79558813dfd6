package errors

import "errors"

// Domain errors
var (
	// Breach lookup errors
	ErrUnexpectedStatus    = errors.New("unexpected status from range endpoint")
	ErrBreachCheckDisabled = errors.New("breach check disabled")
	ErrInvalidDigest       = errors.New("invalid SHA-1 digest")

	// Input errors
	ErrEmptyInput  = errors.New("no password supplied")
	ErrInterrupted = errors.New("input interrupted")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)
