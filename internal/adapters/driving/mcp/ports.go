package mcp

import (
	"github.com/custodia-labs/horizon/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Library answers visibility-scoped queries.
	Library driving.LibraryService

	// Catalog resolves facet names and serves the option lists. Optional:
	// without it facet values are used as raw term ids.
	Catalog driving.CatalogService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	return nil
}
