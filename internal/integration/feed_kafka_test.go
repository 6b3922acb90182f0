//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/preparedness-planner-service/internal/adapter/feed"
	"github.com/couchcryptid/preparedness-planner-service/internal/config"
	"github.com/couchcryptid/preparedness-planner-service/internal/observability"
	"github.com/couchcryptid/preparedness-planner-service/internal/planner"
	"github.com/couchcryptid/preparedness-planner-service/internal/store"
)

const testFeedTopic = "test-preparedness-events"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-broker Kafka container and returns its
// bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("planner-test-cluster"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial kafka")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestFeedPublishesSessionEvents drives the session through its lifecycle with
// a real Kafka-backed feed and verifies the events arrive on the topic in
// order with their headers intact.
func TestFeedPublishesSessionEvents(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testFeedTopic)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		FeedTopic:    testFeedTopic,
	}

	writer := feed.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	kv, err := store.NewFileKV(t.TempDir())
	require.NoError(t, err)
	session := planner.NewSession(kv, discardLogger(), observability.NewMetricsForTesting(), planner.Options{
		Feed: writer,
	})
	session.Load(ctx)

	_, err = session.GenerateScenario(ctx, "hard")
	require.NoError(t, err)
	_, err = session.Escalate(ctx)
	require.NoError(t, err)
	contact, _, err := session.AddContact(ctx, "Jordan Reyes", "555-0142", "spouse", true)
	require.NoError(t, err)
	removed, _ := session.RemoveContact(ctx, contact.ID)
	require.True(t, removed)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		Topic:   testFeedTopic,
		GroupID: fmt.Sprintf("test-feed-%d", time.Now().UnixNano()),
	})
	t.Cleanup(func() { _ = consumer.Close() })

	expected := []string{"scenario.generated", "scenario.escalated", "contact.added", "contact.removed"}
	for _, eventType := range expected {
		readCtx, cancelRead := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		cancelRead()
		require.NoError(t, err, "read %s from feed topic", eventType)

		assert.Equal(t, eventType, string(msg.Key))

		var event planner.Event
		require.NoError(t, json.Unmarshal(msg.Value, &event))
		assert.Equal(t, eventType, event.Type)
		assert.False(t, event.OccurredAt.IsZero())

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, eventType, headers["event_type"])
		_, err = time.Parse(time.RFC3339, headers["occurred_at"])
		assert.NoError(t, err, "occurred_at header should be RFC3339")
	}
}
