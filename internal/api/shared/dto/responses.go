package dto

import (
	"github.com/feral-file/ff-crm-sync/internal/domain"
)

// SuccessResponse is returned when an ingested batch was stored
type SuccessResponse struct {
	Success bool `json:"success"`
}

// PageResponse is one page of a record listing
type PageResponse struct {
	Items        []domain.Record `json:"items"`
	TotalResults int             `json:"totalResults"`
	Limit        int             `json:"limit"`
	Offset       int             `json:"offset"`
	Count        int             `json:"count"`
	HasMore      bool            `json:"has more"`
}

// NewPage slices records into a page. An empty result reports offset 0.
func NewPage(records []domain.Record, limit, offset int) PageResponse {
	if len(records) == 0 {
		return PageResponse{
			Items: []domain.Record{},
			Limit: limit,
		}
	}

	start := min(offset, len(records))
	end := min(start+limit, len(records))
	items := records[start:end]

	return PageResponse{
		Items:        items,
		TotalResults: len(records),
		Limit:        limit,
		Offset:       offset,
		Count:        len(items),
		HasMore:      offset+len(items) < len(records),
	}
}

// Failure describes one rejected query parameter
type Failure struct {
	Field      string `json:"field"`
	Value      string `json:"value"`
	Constraint string `json:"constraint"`
}

// FailuresResponse is the body of a 400 for invalid listing parameters
type FailuresResponse struct {
	Failures []Failure `json:"failures"`
}

// TriggerSyncResponse identifies the workflow started for a sync cycle
type TriggerSyncResponse struct {
	WorkflowID string `json:"workflow_id"`
	RunID      string `json:"run_id"`
}
