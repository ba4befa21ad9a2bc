package ports

import (
	"context"

	"github.com/Gunvolt24/vetstock/internal/domain"
)

// EventPublisher — шина инвалидации кэшей между инстансами.
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.InvalidationEvent) error
	Close() error
}
