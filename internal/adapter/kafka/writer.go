package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/quake-feed-analytics/internal/config"
	"github.com/couchcryptid/quake-feed-analytics/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes classified quake events to the sink topic.
// It implements pipeline.EventPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishBatch serializes and publishes classified events in a single
// WriteMessages call for efficiency.
func (w *Writer) PublishBatch(ctx context.Context, events []domain.ClassifiedQuake) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msg, err := serializeToMessage(events[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a classified event into a Kafka message keyed
// by the deterministic event ID.
func serializeToMessage(event domain.ClassifiedQuake) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize classified event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.EventID()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "tier", Value: []byte(event.Tier)},
			{Key: "observed_at", Value: []byte(event.Time.UTC().Format(time.RFC3339))},
		},
	}, nil
}
