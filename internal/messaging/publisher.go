package messaging

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-crm-sync/internal/domain"
)

// Publisher broadcasts sync reports to downstream consumers
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishSyncReport publishes the report of a finished sync cycle
	PublishSyncReport(ctx context.Context, report *domain.SyncReport) error
	// Close closes the connection
	Close()
}

// Subject is the routing key of a report: crm.sync.{direction}
func Subject(report *domain.SyncReport) string {
	return fmt.Sprintf("crm.sync.%s", report.Direction)
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every report
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishSyncReport(context.Context, *domain.SyncReport) error {
	return nil
}

func (noopPublisher) Close() {}
