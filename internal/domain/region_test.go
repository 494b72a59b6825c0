package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegion(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		pattern string
		wantErr bool
	}{
		{name: "valid", label: "UK", pattern: "UK"},
		{name: "label differs from pattern", label: "ES", pattern: "PT"},
		{name: "missing label", label: "", pattern: "UK", wantErr: true},
		{name: "missing pattern", label: "UK", pattern: "", wantErr: true},
		{name: "bad pattern", label: "UK", pattern: "UK(", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegion(tt.label, tt.pattern)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRegion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.label, r.Label)
			assert.Equal(t, tt.pattern, r.Pattern)
		})
	}
}

func TestRegion_Matches(t *testing.T) {
	uk := Region{Label: "UK", Pattern: "UK"}

	assert.True(t, uk.Matches("UK-1"))
	assert.False(t, uk.Matches("DE-1"))
	assert.False(t, Region{Label: "X", Pattern: "("}.Matches("("))
}

func TestRegion_Key(t *testing.T) {
	assert.Equal(t, "UK", Region{Label: "UK", Pattern: "UK"}.Key())
	assert.Equal(t, "ES:PT", Region{Label: "ES", Pattern: "PT"}.Key())
	assert.Equal(t, "ES(PT)", Region{Label: "ES", Pattern: "PT"}.String())
}

func TestDefaultRegions(t *testing.T) {
	regions := DefaultRegions()

	require.Len(t, regions, 4)
	for _, r := range regions {
		assert.NoError(t, r.Validate())
	}
	assert.Equal(t, "PT", regions[1].Pattern)
	assert.Equal(t, "ES", regions[1].Label)
}
