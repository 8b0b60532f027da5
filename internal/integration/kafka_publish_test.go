//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	kafkaadapter "github.com/couchcryptid/quake-feed-analytics/internal/adapter/kafka"
	"github.com/couchcryptid/quake-feed-analytics/internal/config"
	"github.com/couchcryptid/quake-feed-analytics/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testSinkTopic = "test-classified-quakes"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("quake-feed-test"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrlConn, err := kafkago.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPublishClassifiedEvents verifies the writer round-trips classified
// events through a real broker with key, headers, and payload intact.
func TestPublishClassifiedEvents(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: testSinkTopic,
	}

	events := []domain.ClassifiedQuake{
		{
			QuakeRecord: domain.QuakeRecord{
				Time:      time.Date(2014, 3, 20, 15, 10, 5, 0, time.UTC),
				Latitude:  31.02,
				Longitude: -98.44,
				Depth:     10,
				Magnitude: 5.2,
			},
			Tier:         domain.TierShallow,
			MarkerWeight: domain.MarkerWeight(5.2),
		},
		{
			QuakeRecord: domain.QuakeRecord{
				Time:      time.Date(2014, 3, 21, 8, 0, 0, 0, time.UTC),
				Latitude:  -20.5,
				Longitude: -178.3,
				Depth:     540,
				Magnitude: 6.5,
			},
			Tier:         domain.TierDeep,
			MarkerWeight: domain.MarkerWeight(6.5),
		},
	}

	writer := kafkaadapter.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.PublishBatch(ctx, events))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		Topic:   testSinkTopic,
		GroupID: fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
	})
	t.Cleanup(func() { _ = consumer.Close() })

	for i, want := range events {
		readCtx, cancelRead := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		cancelRead()
		require.NoError(t, err, "read message %d from sink topic", i)

		assert.Equal(t, want.EventID(), string(msg.Key))

		var got domain.ClassifiedQuake
		require.NoError(t, json.Unmarshal(msg.Value, &got))
		assert.Equal(t, want.Tier, got.Tier)
		assert.Equal(t, want.Magnitude, got.Magnitude)
		assert.True(t, want.Time.Equal(got.Time))

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, string(want.Tier), headers["tier"])
		assert.Equal(t, want.Time.Format(time.RFC3339), headers["observed_at"])
	}
}
