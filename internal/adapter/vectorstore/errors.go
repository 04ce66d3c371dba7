package vectorstore

import "errors"

var (
	// ErrDimensionMismatch reports an embedding whose length disagrees
	// with the collection's established dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrDuplicateID reports an add with an id that is already stored.
	ErrDuplicateID = errors.New("duplicate document id")

	// ErrNotFound reports a lookup for an unknown document id.
	ErrNotFound = errors.New("document not found")

	// ErrCorruptSnapshot reports persisted data that cannot be fully
	// parsed or is internally inconsistent.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")

	// ErrInvalidArgument reports a malformed search parameter.
	ErrInvalidArgument = errors.New("invalid argument")
)
