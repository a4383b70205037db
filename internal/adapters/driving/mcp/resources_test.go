package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

func TestExtractFacet(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"valid facet URI", "horizon://catalog/topics", "topics"},
		{"catalog root", "horizon://catalog", ""},
		{"invalid prefix", "file://catalog/topics", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractFacet(tt.uri))
		})
	}
}

func TestServer_handleCatalogResource(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleCatalogResource(context.Background(), readRequest(catalogURI))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var options map[string][]domain.TaxonomyTerm
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &options))
	assert.Equal(t, []domain.TaxonomyTerm{{ID: "ai", DisplayName: "Artificial Intelligence"}}, options["topic"])
	assert.Len(t, options["steep"], 5)
	assert.Empty(t, options["industry"])
}

func TestServer_handleCatalogResource_NoCatalog(t *testing.T) {
	server, err := NewServer(&Ports{Library: failingLibrary{}})
	require.NoError(t, err)

	result, err := server.handleCatalogResource(context.Background(), readRequest(catalogURI))
	require.NoError(t, err)
	assert.JSONEq(t, "{}", result.Contents[0].Text)
}

func TestServer_handleFacetResource(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleFacetResource(context.Background(), readRequest(catalogURI+"/regions"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"eu","display_name":"Europe"}]`, result.Contents[0].Text)

	_, err = server.handleFacetResource(context.Background(), readRequest(catalogURI+"/colours"))
	assert.Error(t, err)
}
