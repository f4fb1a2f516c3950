package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPublisher(t *testing.T) (*kafkaPublisher, *mocks.SyncProducer) {
	t.Helper()

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	mock := mocks.NewSyncProducer(t, saramaConfig)

	config := DefaultKafkaProducerConfig()
	config.Topic = "booking-events-test"

	return newKafkaPublisherWithProducer(mock, config), mock
}

func TestPublishWrapsDataInEnvelope(t *testing.T) {
	publisher, mock := newMockPublisher(t)

	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var envelope Envelope
		if err := json.Unmarshal(val, &envelope); err != nil {
			return err
		}

		assert.Equal(t, EventHoldCreated, envelope.EventType)

		// Timestamp must be ISO-8601 UTC
		ts, err := time.Parse(time.RFC3339, envelope.Timestamp)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)

		data, ok := envelope.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "hold-1", data["hold_id"])
		assert.Equal(t, []interface{}{"A1", "A2"}, data["seat_ids"])
		return nil
	})

	err := publisher.Publish(context.Background(), EventHoldCreated, HoldCreatedData{
		HoldID:   "hold-1",
		ShowID:   "show-1",
		UserID:   "user-1",
		SeatIDs:  []string{"A1", "A2"},
		Quantity: 2,
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Close())
}

func TestPublishPropagatesProducerErrors(t *testing.T) {
	publisher, mock := newMockPublisher(t)

	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := publisher.Publish(context.Background(), EventOrderCreated, OrderCreatedData{OrderID: "order-1"})
	assert.Error(t, err)

	require.NoError(t, publisher.Close())
}

func TestNoopPublisher(t *testing.T) {
	publisher := &NoopPublisher{}
	assert.NoError(t, publisher.Publish(context.Background(), EventShowSoldOut, ShowSoldOutData{ShowID: "show-1"}))
	assert.NoError(t, publisher.Close())
}
