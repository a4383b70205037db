package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

func TestCatalogCmd_All(t *testing.T) {
	withServices(t)

	out, err := run(t, "catalog")
	require.NoError(t, err)

	assert.Contains(t, out, "Topics")
	assert.Contains(t, out, "Artificial Intelligence")
	assert.Contains(t, out, "STEEP")
	assert.Contains(t, out, "technological")
	assert.Contains(t, out, "Industries (0)\n  none")
}

func TestCatalogCmd_OneFacetJSON(t *testing.T) {
	withServices(t)

	out, err := run(t, "catalog", "regions", "--json")
	require.NoError(t, err)

	var terms map[string][]domain.TaxonomyTerm
	require.NoError(t, json.Unmarshal([]byte(out), &terms))
	assert.Equal(t, map[string][]domain.TaxonomyTerm{
		"region": {{ID: "eu", DisplayName: "Europe"}},
	}, terms)
}

func TestCatalogCmd_UnknownFacet(t *testing.T) {
	withServices(t)

	_, err := run(t, "catalog", "colours")
	assert.ErrorIs(t, err, domain.ErrUnknownFacet)
}
