// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - LibraryStore: Raw library record persistence (SQLite or memory)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - SnapshotSource: External snapshot file. Only needed for import and
//     watch mode.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
