// Package mcp provides an MCP (Model Context Protocol) server adapter for Horizon.
// It lets AI assistants browse the research library on behalf of a viewer,
// subject to the same visibility rules as every other surface.
package mcp

import "errors"

// ErrMissingLibraryService is returned when the library service is not provided.
var ErrMissingLibraryService = errors.New("mcp: library service is required")
