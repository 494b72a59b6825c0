package messaging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/messaging"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "crm.sync.inbound", messaging.Subject(&domain.SyncReport{Direction: domain.DirectionInbound}))
	assert.Equal(t, "crm.sync.outbound", messaging.Subject(&domain.SyncReport{Direction: domain.DirectionOutbound}))
}

func TestNoopPublisher(t *testing.T) {
	p := messaging.NewNoopPublisher()
	assert.NoError(t, p.PublishSyncReport(context.Background(), &domain.SyncReport{}))
	p.Close()
}
