package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-crm-sync/internal/domain"
)

func records(n int) []domain.Record {
	out := make([]domain.Record, n)
	for i := range out {
		out[i] = domain.Record{"n": i}
	}
	return out
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		limit   int
		offset  int
		count   int
		hasMore bool
	}{
		{"first page", 10, 3, 0, 3, true},
		{"last full page", 9, 3, 6, 3, false},
		{"partial tail", 10, 4, 8, 2, false},
		{"offset past end", 5, 3, 9, 0, false},
		{"zero limit", 5, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(records(tt.total), tt.limit, tt.offset)

			assert.Equal(t, tt.total, page.TotalResults)
			assert.Equal(t, tt.limit, page.Limit)
			assert.Equal(t, tt.offset, page.Offset)
			assert.Equal(t, tt.count, page.Count)
			assert.Len(t, page.Items, tt.count)
			assert.Equal(t, tt.hasMore, page.HasMore)
		})
	}
}

func TestNewPage_Empty(t *testing.T) {
	page := NewPage(nil, 20000, 40)

	body, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"totalResults":0,"limit":20000,"offset":0,"count":0,"has more":false}`, string(body))
}

func TestTriggerOutboundSyncRequest_Validate(t *testing.T) {
	assert.NoError(t, (&TriggerOutboundSyncRequest{}).Validate())
	assert.NoError(t, (&TriggerOutboundSyncRequest{Regions: domain.DefaultRegions()}).Validate())

	err := (&TriggerOutboundSyncRequest{Regions: []domain.Region{{Label: "ES", Pattern: "ES"}, {Label: ""}}}).Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidRegion)
	assert.Contains(t, err.Error(), "regions[1]")
}
