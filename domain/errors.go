package domain

import "errors"

var (
	// ErrInvalidInput marks malformed or out-of-domain numeric input.
	ErrInvalidInput = errors.New("invalid input")

	ErrPackageNotFound = errors.New("loan package not found")
)
