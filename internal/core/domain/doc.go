// Package domain defines the core business entities for Horizon.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - TaxonomyTerm / Catalog: The fixed facet vocabularies
//   - Document: A top-level research artifact with a visibility rule
//   - DerivedEntity: A driver, trend, signal or evidence item
//   - Library: The assembled, denormalised view of all entities
//   - RawSnapshot: Raw entities and tag associations from a loader
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
