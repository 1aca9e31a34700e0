package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"beautify/pkg/kafka"
	"beautify/pkg/logger"
	"beautify/pkg/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProducer struct {
	publishFunc func(ctx context.Context, msg kafka.Message) error
	published   []kafka.Message
}

func (m *mockProducer) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, msg)
	}
	return nil
}

func TestKafkaPublisherBuildsMessage(t *testing.T) {
	producer := &mockProducer{}
	p := &KafkaPublisher{producer: producer, timeout: time.Second, log: logger.Discard()}

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	p.Publish(ctx, Event{
		Type:    TypeBookingCreated,
		Key:     "65a000000000000000000001",
		Payload: map[string]string{"treatment": "Haircut", "date": "2024-06-01"},
	})

	require.Len(t, producer.published, 1)
	msg := producer.published[0]
	assert.Equal(t, "65a000000000000000000001", msg.Key)
	assert.Equal(t, TypeBookingCreated, msg.GetEventType())
	assert.Equal(t, "req-1", msg.GetCorrelationID())
	assert.Equal(t, source, msg.Headers[kafka.HeaderSource])
	assert.JSONEq(t, `{"treatment":"Haircut","date":"2024-06-01"}`, string(msg.Value))
}

func TestKafkaPublisherSurvivesCancelledRequest(t *testing.T) {
	var deadlineErr error
	producer := &mockProducer{publishFunc: func(ctx context.Context, msg kafka.Message) error {
		deadlineErr = ctx.Err()
		return nil
	}}
	p := &KafkaPublisher{producer: producer, timeout: time.Second, log: logger.Discard()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Publish(ctx, Event{Type: TypeBookingPaid, Key: "k", Payload: map[string]bool{"paid": true}})

	require.Len(t, producer.published, 1)
	assert.NoError(t, deadlineErr)
}

func TestKafkaPublisherSwallowsErrors(t *testing.T) {
	producer := &mockProducer{publishFunc: func(ctx context.Context, msg kafka.Message) error {
		return errors.New("connection refused")
	}}
	p := &KafkaPublisher{producer: producer, timeout: time.Second, log: logger.Discard()}

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), Event{Type: TypePaymentRecorded, Key: "k", Payload: map[string]string{}})
	})
}

func TestKafkaPublisherDropsUnencodablePayload(t *testing.T) {
	producer := &mockProducer{}
	p := &KafkaPublisher{producer: producer, timeout: time.Second, log: logger.Discard()}

	p.Publish(context.Background(), Event{Type: TypeBookingReviewed, Key: "k", Payload: make(chan int)})

	assert.Empty(t, producer.published)
}
