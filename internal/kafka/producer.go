package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"Murmur/internal/core/events"

	kgo "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kgo.Message) error
	Close() error
}

// Publisher writes activity events as JSON messages keyed by subject id,
// so every event about the same post or user lands on the same partition.
type Publisher struct {
	w messageWriter
}

// NewPublisher creates a Kafka-backed events.Publisher.
// brokers is a comma separated list of host:port pairs. Writes are async:
// Publish returns once the message is queued and delivery failures are
// reported to logger.
func NewPublisher(brokers, topic string, logger *slog.Logger) (*Publisher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var addrs []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("kafka: topic is required")
	}

	return &Publisher{w: newWriter(addrs, topic, logger)}, nil
}

func newWriter(addrs []string, topic string, logger *slog.Logger) *kgo.Writer {
	return &kgo.Writer{
		Addr:         kgo.TCP(addrs...),
		Topic:        topic,
		Balancer:     &kgo.Hash{},
		RequiredAcks: kgo.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion:   logFailedDeliveries(logger),
	}
}

// logFailedDeliveries reports batches the writer gave up on
func logFailedDeliveries(logger *slog.Logger) func([]kgo.Message, error) {
	return func(msgs []kgo.Message, err error) {
		if err == nil {
			return
		}
		for _, m := range msgs {
			logger.Warn("activity event not delivered",
				"topic", m.Topic,
				"key", string(m.Key),
				"error", err,
			)
		}
	}
}

// Publish implements events.Publisher
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: marshal %s event: %w", event.Type, err)
	}

	msg := kgo.Message{
		Key:   []byte(event.SubjectID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kgo.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s event: %w", event.Type, err)
	}
	return nil
}

// Close flushes pending messages and releases the writer
func (p *Publisher) Close() error {
	return p.w.Close()
}
