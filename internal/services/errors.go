package services

import "errors"

var (
	// ErrDuplicateKey is returned when a create or update would violate a
	// uniqueness rule (book ISBN, user email).
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrValidation is returned for malformed input that the schema layer
	// did not reject (invalid email, unusable password).
	ErrValidation = errors.New("validation failed")
)
