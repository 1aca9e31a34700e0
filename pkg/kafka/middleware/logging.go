package kafka_middleware

import (
	"context"
	"time"

	"beautify/pkg/kafka"
	"beautify/pkg/logger"
)

// LoggingProducerMiddleware logs every publish with its outcome and latency.
func LoggingProducerMiddleware(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		args := []any{
			"topic", msg.Topic,
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"correlation_id", msg.GetCorrelationID(),
			"duration", time.Since(start),
		}
		if err != nil {
			args = append(args, "error", err, "transient", kafka.ClassifyError(err) == kafka.ErrorTypeTransient)
			log.Error("Failed to publish event", args...)
			return err
		}

		log.Debug("Published event", args...)
		return nil
	}
}
