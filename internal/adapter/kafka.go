package adapter

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines the Kafka producer operations the report publisher needs
//
//go:generate mockgen -source=kafka.go -destination=../mocks/kafka.go -package=mocks -mock_names=KafkaWriter=MockKafkaWriter
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter creates a producer for a single topic
func NewKafkaWriter(brokers []string, topic string, batchTimeout time.Duration) KafkaWriter {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           batchTimeout,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}
