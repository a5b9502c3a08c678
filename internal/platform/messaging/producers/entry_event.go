package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/config"
)

// EntryEventProducer publishes entry.posted events drained from the
// outbox. Report consumers subscribe to this topic to refresh derived
// views when the journal changes instead of polling it.
type EntryEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewEntryEventProducer creates the outbox event producer and ensures the events topic exists
func NewEntryEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*EntryEventProducer, error) {
	if cfg.EntryEventsTopic == "" {
		return nil, fmt.Errorf("kafka entry events topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for entry event producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.EntryEventsTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure entry events topic %s exists: %w", cfg.EntryEventsTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.EntryEventsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll, // Outbox events must not be dropped
		Async:        false,
		WriteTimeout: cfg.MaxWait,
	}

	return &EntryEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.EntryEventsTopic,
	}, nil
}

func (p *EntryEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal entry event value: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish entry event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish entry event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published entry event", "topic", p.topic, "key", key)
	return nil
}

func (p *EntryEventProducer) Close() error {
	p.logger.Info("Closing entry event Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close entry event kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
