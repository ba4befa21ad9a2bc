package ports

import "context"

// MessageConsumer — фоновый потребитель шины; Run блокирует до отмены ctx.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
