package dto

import (
	"fmt"

	"github.com/feral-file/ff-crm-sync/internal/domain"
)

// RecordQuery selects records for a listing. Empty bounds and label are not applied.
type RecordQuery struct {
	DateFrom string
	DateTo   string
	Label    string
}

// TriggerOutboundSyncRequest is the optional body of POST /sync/outbound.
// No regions means the configured regions.
type TriggerOutboundSyncRequest struct {
	Regions []domain.Region `json:"regions"`
}

// Validate checks every requested region
func (r *TriggerOutboundSyncRequest) Validate() error {
	for i, region := range r.Regions {
		if err := region.Validate(); err != nil {
			return fmt.Errorf("regions[%d]: %w", i, err)
		}
	}
	return nil
}

// TriggerInboundSyncRequest is the optional body of POST /sync/inbound
type TriggerInboundSyncRequest struct {
	FirstRun bool `json:"first_run"`
}
