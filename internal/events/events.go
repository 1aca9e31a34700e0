package events

import (
	"context"
	"time"

	"beautify/pkg/kafka"
	"beautify/pkg/logger"
	"beautify/pkg/middleware"
)

const (
	TypeBookingCreated  = "booking.created"
	TypeBookingPaid     = "booking.paid"
	TypeBookingReviewed = "booking.reviewed"
	TypePaymentRecorded = "payment.recorded"

	schemaVersion = "1"
	source        = "beautify-server"
)

// Event is a domain fact about a booking. Key is the partition key.
type Event struct {
	Type    string
	Key     string
	Payload any
}

// Publisher emits domain events. Publishing is fire-and-forget: failures are
// logged and never reach the request that produced the event.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) {}

type messageProducer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type KafkaPublisher struct {
	producer messageProducer
	timeout  time.Duration
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, timeout time.Duration, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, timeout: timeout, log: log}
}

// Publish writes synchronously under its own deadline, detached from the
// request's cancellation so a finished response does not abort the write.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	requestID := middleware.RequestIDFromContext(ctx)

	msg, err := kafka.NewMessage().
		WithKey(event.Key).
		WithEventType(event.Type).
		WithCorrelationID(requestID).
		WithSchemaVersion(schemaVersion).
		WithSource(source).
		WithValue(event.Payload).
		Build()
	if err != nil {
		p.log.Error("Failed to encode event",
			"event_type", event.Type,
			"key", event.Key,
			"request_id", requestID,
			"error", err,
		)
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.producer.Publish(pubCtx, msg); err != nil {
		p.log.Warn("Event not published",
			"event_type", event.Type,
			"key", event.Key,
			"event_id", msg.GetEventID(),
			"request_id", requestID,
			"error", err,
		)
	}
}
