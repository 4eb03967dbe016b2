package services

import "errors"

// Errors returned by the BOM operations. Callers match them with errors.Is;
// every failure leaves the caller's BOM untouched.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrIndex      = errors.New("category index out of range")
	ErrInvalidBOM = errors.New("invalid BOM")
)
