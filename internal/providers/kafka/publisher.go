package kafka

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/adapter"
	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	"github.com/feral-file/ff-crm-sync/internal/messaging"
)

type publisher struct {
	writer adapter.KafkaWriter
	json   adapter.JSON
}

// NewPublisher creates a Kafka report publisher over a topic writer
func NewPublisher(writer adapter.KafkaWriter, jsonAdapter adapter.JSON) messaging.Publisher {
	return &publisher{writer: writer, json: jsonAdapter}
}

// PublishSyncReport writes the report keyed by its subject so a direction stays on one partition
func (p *publisher) PublishSyncReport(ctx context.Context, report *domain.SyncReport) error {
	data, err := p.json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	subject := messaging.Subject(report)
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(subject),
		Value: data,
		Headers: []kafka.Header{
			{Key: "run_id", Value: []byte(report.RunID)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write report to kafka: %w", err)
	}

	logger.DebugCtx(ctx, "Published sync report", zap.String("subject", subject), zap.String("runID", report.RunID))
	return nil
}

func (p *publisher) Close() {
	if err := p.writer.Close(); err != nil {
		logger.Warn("Failed to close kafka writer", zap.Error(err))
	}
}
