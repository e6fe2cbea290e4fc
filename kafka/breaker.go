package kafka

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tair/foodgram/pkg/logger"
	"github.com/tair/foodgram/pkg/metrics"
)

// Sender is the raw publishing call guarded by the breaker
type Sender interface {
	Send(ctx context.Context, event Event) error
}

// BreakerConfig configures the circuit breaker in front of Kafka
type BreakerConfig struct {
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// ResilientPublisher publishes through a circuit breaker; failures are logged, never returned
type ResilientPublisher struct {
	sender  Sender
	cb      *gobreaker.CircuitBreaker[struct{}]
	metrics *metrics.Metrics
}

func NewResilientPublisher(sender Sender, cfg BreakerConfig, m *metrics.Metrics) *ResilientPublisher {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	settings := gobreaker.Settings{
		Name:    "kafka-publisher",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	}
	return &ResilientPublisher{
		sender:  sender,
		cb:      gobreaker.NewCircuitBreaker[struct{}](settings),
		metrics: m,
	}
}

// Publish sends event; the caller's request never fails because of Kafka
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) {
	_, err := p.cb.Execute(func() (struct{}, error) {
		return struct{}{}, p.sender.Send(ctx, event)
	})

	result := "ok"
	if err != nil {
		result = "error"
		logger.Warn(ctx).
			Err(err).
			Str("event_type", event.EventType).
			Msg("Failed to publish event")
	}
	if p.metrics != nil {
		p.metrics.EventsPublished.WithLabelValues(event.EventType, result).Inc()
	}
}

// State reports the breaker state
func (p *ResilientPublisher) State() string {
	return p.cb.State().String()
}

// NopPublisher drops events; used when no brokers are configured
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
