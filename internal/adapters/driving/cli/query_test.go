package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

func TestQueryCmd_Use(t *testing.T) {
	assert.Equal(t, "query", queryCmd.Use)
}

func TestQueryCmd_NoService(t *testing.T) {
	_, err := run(t, "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "library service not configured")
}

func TestQueryCmd_Anonymous(t *testing.T) {
	withServices(t)

	out, err := run(t, "query")
	require.NoError(t, err)

	assert.Contains(t, out, "Documents (1 of 1)")
	assert.Contains(t, out, "[D2] Public report")
	assert.NotContains(t, out, "D1")
	assert.Contains(t, out, "Drivers (0 of 0)")
	assert.Contains(t, out, "Trends (2 of 2)")
	assert.NotContains(t, out, "\x1b[", "piped output must not be styled")
}

func TestQueryCmd_AsOwner(t *testing.T) {
	withServices(t)

	out, err := run(t, "query", "--as", "u1", "--scope", "mine")
	require.NoError(t, err)

	assert.Contains(t, out, "[D1] Private notes")
	assert.Contains(t, out, "[R1] Ageing society")
	assert.NotContains(t, out, "[T1]")
}

func TestQueryCmd_AnonymousOverridesAs(t *testing.T) {
	withServices(t)

	out, err := run(t, "query", "--as", "u1", "--anonymous")
	require.NoError(t, err)
	assert.NotContains(t, out, "[D1]")
}

func TestQueryCmd_FacetsJSON(t *testing.T) {
	withServices(t)

	out, err := run(t, "query", "-f", "topics=Artificial Intelligence", "--json")
	require.NoError(t, err)

	var view domain.LibraryView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 0, view.Documents.Total)
	require.Len(t, view.Trends.Items, 1)
	assert.Equal(t, "T1", view.Trends.Items[0].ID)
}

func TestQueryCmd_Limit(t *testing.T) {
	withServices(t)

	out, err := run(t, "query", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Trends (1 of 2) more available")
}

func TestQueryCmd_BadFacet(t *testing.T) {
	withServices(t)

	_, err := run(t, "query", "-f", "colours=red")
	assert.ErrorIs(t, err, domain.ErrUnknownFacet)

	_, err = run(t, "query", "-f", "topics")
	assert.Error(t, err)
}

func TestParseFacetArgs(t *testing.T) {
	raw, err := parseFacetArgs([]string{"topics=ai, climate", "steep=social", "topics=,"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"topics": {"ai", "climate"},
		"steep":  {"social"},
	}, raw)
}
