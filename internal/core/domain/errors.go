package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
//
// None of these are produced by the visibility or facet evaluators, which are
// total functions. They surface from stores, loaders and argument parsing.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSnapshot indicates a library snapshot failed validation
	// at the loading boundary.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrUnknownEntityKind indicates an entity kind outside the five
	// library collections.
	ErrUnknownEntityKind = errors.New("unknown entity kind")

	// ErrUnknownFacet indicates a facet name outside the five taxonomies.
	ErrUnknownFacet = errors.New("unknown facet")
)
