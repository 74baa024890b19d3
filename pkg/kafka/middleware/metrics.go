package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"postaladdr/pkg/kafka"
	"postaladdr/pkg/logger"
)

// Metrics counts publish and consume outcomes. Safe for concurrent use.
type Metrics struct {
	MessagesPublished       atomic.Int64
	MessagesPublishedFailed atomic.Int64
	PublishDurationTotal    atomic.Int64 // nanoseconds

	MessagesConsumed       atomic.Int64
	MessagesConsumedFailed atomic.Int64
	ConsumeDurationTotal   atomic.Int64 // nanoseconds
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Reset() {
	m.MessagesPublished.Store(0)
	m.MessagesPublishedFailed.Store(0)
	m.PublishDurationTotal.Store(0)
	m.MessagesConsumed.Store(0)
	m.MessagesConsumedFailed.Store(0)
	m.ConsumeDurationTotal.Store(0)
}

func avg(total, n int64) time.Duration {
	if n == 0 {
		return 0
	}
	return time.Duration(total / n)
}

func (m *Metrics) AvgPublishDuration() time.Duration {
	return avg(m.PublishDurationTotal.Load(), m.MessagesPublished.Load()+m.MessagesPublishedFailed.Load())
}

func (m *Metrics) AvgConsumeDuration() time.Duration {
	return avg(m.ConsumeDurationTotal.Load(), m.MessagesConsumed.Load()+m.MessagesConsumedFailed.Load())
}

func (m *Metrics) ProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		m.PublishDurationTotal.Add(int64(time.Since(start)))

		if err != nil {
			m.MessagesPublishedFailed.Add(1)
		} else {
			m.MessagesPublished.Add(1)
		}
		return err
	}
}

func (m *Metrics) ConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		m.ConsumeDurationTotal.Add(int64(time.Since(start)))

		if err != nil {
			m.MessagesConsumedFailed.Add(1)
		} else {
			m.MessagesConsumed.Add(1)
		}
		return err
	}
}

func (m *Metrics) Log(log *logger.Logger) {
	log.Info("Kafka metrics",
		"published", m.MessagesPublished.Load(),
		"publish_failed", m.MessagesPublishedFailed.Load(),
		"avg_publish", m.AvgPublishDuration().String(),
		"consumed", m.MessagesConsumed.Load(),
		"consume_failed", m.MessagesConsumedFailed.Load(),
		"avg_consume", m.AvgConsumeDuration().String(),
	)
}

// Report logs the counters every interval until ctx is done.
func (m *Metrics) Report(ctx context.Context, log *logger.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Log(log)
		}
	}
}
