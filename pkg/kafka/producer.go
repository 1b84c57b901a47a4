// Package kafka publishes directory change events for downstream consumers
// such as search indexers and cache invalidators.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"

	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Producer writes change events to a single topic.
type Producer struct {
	writer *kafka.Writer
	logger ectologger.Logger
	topic  string
}

// ProducerConfig holds Kafka producer configuration.
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
}

// NewProducer creates a producer. The writer batches internally; callers
// should Close it to flush on shutdown.
func NewProducer(cfg ProducerConfig, logger ectologger.Logger) *Producer {
	compression := kafka.Snappy
	switch cfg.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	case "none":
		compression = 0
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		Compression:            compression,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		topic:  cfg.Topic,
	}
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// ChangeEvent describes one entity-level change applied during an import run.
type ChangeEvent struct {
	Action     string    `json:"action"` // created, updated, deleted
	EntityID   string    `json:"entity_id"`
	EntityType string    `json:"entity_type"`
	Timestamp  time.Time `json:"timestamp"`
}

// PublishChangeEvent publishes a change event, keyed by entity id so changes
// to the same entity stay ordered within a partition.
func (p *Producer) PublishChangeEvent(ctx context.Context, event *ChangeEvent) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishChangeEvent")
	defer span.End()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.EntityID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(event.Action)},
			{Key: "entity_type", Value: []byte(event.EntityType)},
			{Key: "traceparent", Value: []byte(tracing.TraceParent(ctx))},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithContext(ctx).WithError(err).Error("Failed to publish change event")
		return err
	}

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"action":      event.Action,
		"entity_id":   event.EntityID,
		"entity_type": event.EntityType,
	}).Debug("Published change event")

	return nil
}
