// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The visibility and facet evaluators, the assembler and the query pipeline
// are pure functions over an assembled domain.Library. LibraryService is the
// only part that reaches a store, and it does so on every call.
package services
