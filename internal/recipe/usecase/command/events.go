package command

import (
	"context"

	"github.com/tair/foodgram/kafka"
)

// EventPublisher announces committed changes
type EventPublisher interface {
	Publish(ctx context.Context, event kafka.Event)
}
