package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, DefaultPageSize, s.Library.PageSize)
	assert.Equal(t, ScopeAll, s.Library.DefaultScope)
	assert.Equal(t, CombinatorAny, s.Library.DefaultCombinator)
	assert.Equal(t, DefaultHTTPAddr, s.Server.HTTPAddr)
	require.NoError(t, s.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
	}{
		{"zero page size", func(s *AppSettings) { s.Library.PageSize = 0 }},
		{"unknown scope", func(s *AppSettings) { s.Library.DefaultScope = Scope("team") }},
		{"unknown combinator", func(s *AppSettings) { s.Library.DefaultCombinator = Combinator("xor") }},
		{"zero rate", func(s *AppSettings) { s.Server.RateLimit = 0 }},
		{"zero burst", func(s *AppSettings) { s.Server.RateBurst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
		})
	}
}
