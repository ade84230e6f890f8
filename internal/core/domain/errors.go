package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Returned when a descriptor is missing or its root element is not the
	// one a section expects.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entry is already present in its section.
	// It is a control signal: merges record it per entry and carry on.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown JDBC driver or setting key.
	ErrUnsupportedType = errors.New("unsupported type")

	// Document Errors.

	// ErrParse indicates a source document is missing, unreadable or not well-formed.
	ErrParse = errors.New("parse error")

	// ErrWrite indicates a destination could not be written.
	ErrWrite = errors.New("write error")

	// ErrQuery indicates a malformed path expression.
	// This is a programming error rather than a runtime condition.
	ErrQuery = errors.New("invalid path query")

	// ErrFragmentParse indicates a raw markup fragment is not well-formed.
	ErrFragmentParse = errors.New("fragment parse error")
)
