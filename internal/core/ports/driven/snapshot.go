package driven

import (
	"context"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

// SnapshotSource reads a library snapshot from outside the store, such as a
// YAML or JSON export produced by an ingestion pipeline.
type SnapshotSource interface {
	// Load reads and validates the snapshot.
	Load(ctx context.Context) (*domain.RawSnapshot, error)

	// Path returns the snapshot location.
	Path() string
}
