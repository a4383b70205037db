package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

// QueryInput is the input schema for the query_library tool.
type QueryInput struct {
	Viewer     string              `json:"viewer,omitempty" jsonschema:"user id to query as; empty queries anonymously"`
	Scope      string              `json:"scope,omitempty" jsonschema:"all, mine or shared_with_me"`
	Combinator string              `json:"combinator,omitempty" jsonschema:"any or all: how selected terms within one facet combine"`
	Facets     map[string][]string `json:"facets,omitempty" jsonschema:"term ids or names per facet: topics, categories, steep, regions, industries"`
	Limit      int                 `json:"limit,omitempty" jsonschema:"items per collection (default: configured page size)"`
}

// QueryOutput is the output schema for the query_library tool.
type QueryOutput struct {
	Collections []CollectionOutput `json:"collections"`
}

// CollectionOutput is one windowed collection.
type CollectionOutput struct {
	Kind    string         `json:"kind"`
	Total   int            `json:"total"`
	HasMore bool           `json:"has_more"`
	Items   []EntityOutput `json:"items"`
}

// EntityOutput is a document or derived entity in tool output.
type EntityOutput struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Text        string              `json:"text,omitempty"`
	DerivedFrom string              `json:"derived_from,omitempty"`
	Visibility  string              `json:"visibility,omitempty"`
	CreatedAt   string              `json:"created_at,omitempty"`
	Tags        map[string][]string `json:"tags,omitempty"`
}

// CanViewInput is the input schema for the can_view tool.
type CanViewInput struct {
	Viewer string `json:"viewer,omitempty" jsonschema:"user id to check for; empty checks anonymous access"`
	Kind   string `json:"kind" jsonschema:"document, driver, trend, signal or evidence"`
	ID     string `json:"id" jsonschema:"entity id"`
}

// CanViewOutput is the output schema for the can_view tool.
type CanViewOutput struct {
	Visible bool `json:"visible"`
}

// NeighborsInput is the input schema for the entity_neighbors tool.
type NeighborsInput struct {
	Viewer     string              `json:"viewer,omitempty" jsonschema:"user id to query as; empty queries anonymously"`
	Scope      string              `json:"scope,omitempty" jsonschema:"all, mine or shared_with_me"`
	Combinator string              `json:"combinator,omitempty" jsonschema:"any or all"`
	Facets     map[string][]string `json:"facets,omitempty" jsonschema:"term ids or names per facet"`
	Kind       string              `json:"kind" jsonschema:"document, driver, trend, signal or evidence"`
	ID         string              `json:"id" jsonschema:"entity id"`
}

// NeighborsOutput is the output schema for the entity_neighbors tool.
type NeighborsOutput struct {
	Previous string `json:"previous,omitempty"`
	Next     string `json:"next,omitempty"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_library",
		Description: "List the documents, drivers, trends, signals and evidence a viewer may see, filtered by scope and facets",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "can_view",
		Description: "Check whether a viewer may open a single library entity",
	}, s.handleCanView)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "entity_neighbors",
		Description: "Find the previous and next entity around one item in a filtered collection",
	}, s.handleNeighbors)
}

// handleQuery handles the query_library tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	filter, err := s.buildFilter(ctx, input.Scope, input.Combinator, input.Facets)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	var windows domain.PageWindows
	if input.Limit > 0 {
		windows = make(domain.PageWindows, len(domain.EntityKinds))
		for _, kind := range domain.EntityKinds {
			windows[kind] = input.Limit
		}
	}

	view, err := s.ports.Library.Query(ctx, viewerFor(input.Viewer), filter, windows)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	return nil, toQueryOutput(view), nil
}

// handleCanView handles the can_view tool invocation.
func (s *Server) handleCanView(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CanViewInput,
) (*mcp.CallToolResult, CanViewOutput, error) {
	kind, ok := domain.ParseEntityKind(input.Kind)
	if !ok {
		return nil, CanViewOutput{}, fmt.Errorf("%w: %q", domain.ErrUnknownEntityKind, input.Kind)
	}

	visible, err := s.ports.Library.CanView(ctx, viewerFor(input.Viewer), kind, input.ID)
	if err != nil {
		return nil, CanViewOutput{}, err
	}
	return nil, CanViewOutput{Visible: visible}, nil
}

// handleNeighbors handles the entity_neighbors tool invocation.
func (s *Server) handleNeighbors(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NeighborsInput,
) (*mcp.CallToolResult, NeighborsOutput, error) {
	kind, ok := domain.ParseEntityKind(input.Kind)
	if !ok {
		return nil, NeighborsOutput{}, fmt.Errorf("%w: %q", domain.ErrUnknownEntityKind, input.Kind)
	}
	filter, err := s.buildFilter(ctx, input.Scope, input.Combinator, input.Facets)
	if err != nil {
		return nil, NeighborsOutput{}, err
	}

	n, err := s.ports.Library.Neighbors(ctx, viewerFor(input.Viewer), filter, kind, input.ID)
	if err != nil {
		return nil, NeighborsOutput{}, err
	}
	return nil, NeighborsOutput{Previous: n.Previous, Next: n.Next, Position: n.Position, Total: n.Total}, nil
}

// buildFilter turns tool arguments into a filter. Empty scope and
// combinator are left for the service to default.
func (s *Server) buildFilter(
	ctx context.Context, scope, combinator string, facets map[string][]string,
) (domain.LibraryFilter, error) {
	var filter domain.LibraryFilter
	if scope != "" {
		filter.Scope = domain.ParseScope(scope)
	}
	if combinator != "" {
		filter.Combinator = domain.ParseCombinator(combinator)
	}
	filter.Facets = domain.NewFacetSelection(facets)
	if s.ports.Catalog != nil && !filter.Facets.IsEmpty() {
		resolved, err := s.ports.Catalog.ResolveSelection(ctx, filter.Facets)
		if err != nil {
			return domain.LibraryFilter{}, fmt.Errorf("resolving facets: %w", err)
		}
		filter.Facets = resolved
	}
	return filter, nil
}

// viewerFor maps a tool argument to a viewer. MCP clients run locally on
// behalf of the user, so a named viewer is treated as authenticated.
func viewerFor(id string) domain.Viewer {
	return domain.Member(strings.TrimSpace(id))
}

func toQueryOutput(view *domain.LibraryView) QueryOutput {
	out := QueryOutput{Collections: make([]CollectionOutput, 0, len(domain.EntityKinds))}

	docs := CollectionOutput{
		Kind:    domain.KindDocument.Plural(),
		Total:   view.Documents.Total,
		HasMore: view.Documents.HasMore,
		Items:   make([]EntityOutput, len(view.Documents.Items)),
	}
	for i := range view.Documents.Items {
		d := &view.Documents.Items[i]
		docs.Items[i] = EntityOutput{
			ID:         d.ID,
			Title:      d.Title,
			Text:       d.Summary,
			Visibility: d.Visibility.String(),
			CreatedAt:  formatTime(d.CreatedAt),
			Tags:       tagMap(d),
		}
	}
	out.Collections = append(out.Collections, docs)

	for _, kind := range domain.DerivedKinds {
		page := view.Derived(kind)
		col := CollectionOutput{
			Kind:    kind.Plural(),
			Total:   page.Total,
			HasMore: page.HasMore,
			Items:   make([]EntityOutput, len(page.Items)),
		}
		for i := range page.Items {
			e := &page.Items[i]
			col.Items[i] = EntityOutput{
				ID:          e.ID,
				Title:       e.Name,
				Text:        e.Text,
				DerivedFrom: e.DerivedFrom,
				CreatedAt:   formatTime(e.CreatedAt),
				Tags:        tagMap(e),
			}
		}
		out.Collections = append(out.Collections, col)
	}
	return out
}

func tagMap(entity domain.Taggable) map[string][]string {
	tags := make(map[string][]string)
	for _, kind := range domain.FacetKinds {
		for _, term := range entity.Terms(kind) {
			tags[kind.String()] = append(tags[kind.String()], term.ID)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
