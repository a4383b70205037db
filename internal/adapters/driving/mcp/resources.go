package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Horizon resources.
	uriScheme = "horizon://"

	catalogURI = uriScheme + "catalog"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         catalogURI,
		Name:        "catalog",
		Description: "Selectable terms for every facet: topics, categories, steep, regions, industries",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: catalogURI + "/{facet}",
		Name:        "catalog-facet",
		Description: "Selectable terms for one facet",
		MIMEType:    "application/json",
	}, s.handleFacetResource)
}

// handleCatalogResource returns every facet's option list.
func (s *Server) handleCatalogResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalog == nil {
		return jsonResult(req.Params.URI, map[string][]domain.TaxonomyTerm{})
	}

	catalog, err := s.ports.Catalog.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	options := make(map[string][]domain.TaxonomyTerm, len(domain.FacetKinds))
	for _, kind := range domain.FacetKinds {
		options[kind.String()] = nonNil(catalog.Options(kind))
	}
	return jsonResult(req.Params.URI, options)
}

// handleFacetResource returns the option list of one facet.
func (s *Server) handleFacetResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	kind, ok := domain.ParseFacetKind(extractFacet(req.Params.URI))
	if !ok || s.ports.Catalog == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	catalog, err := s.ports.Catalog.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return jsonResult(req.Params.URI, nonNil(catalog.Options(kind)))
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func nonNil(terms []domain.TaxonomyTerm) []domain.TaxonomyTerm {
	if terms == nil {
		return []domain.TaxonomyTerm{}
	}
	return terms
}

// extractFacet extracts the facet name from a URI like horizon://catalog/{facet}.
func extractFacet(uri string) string {
	const prefix = catalogURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}
