package kafka

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Gunvolt24/vetstock/internal/domain"
	"github.com/Gunvolt24/vetstock/internal/ports"
	"github.com/Gunvolt24/vetstock/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var _ ports.MessageConsumer = (*Consumer)(nil)

const (
	defaultProcessTimeout = 5 * time.Second
	defaultRetryInitial   = time.Second
	defaultRetryMax       = 30 * time.Second

	// пауза после временной ошибки обработчика не длиннее этого
	maxRetryPause = 500 * time.Millisecond
)

// reader — минимальный контракт над kafka.Reader, чтобы подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// invalidationHandler — разбор события и сброс кэшей (usecase.InventoryService).
type invalidationHandler interface {
	InvalidateFromMessage(ctx context.Context, raw []byte) error
}

// outcome — судьба прочитанного сообщения.
type outcome uint8

const (
	outcomeApplied outcome = iota // кэши сброшены или событие своё → коммит
	outcomeSkipped                // битое событие → коммит, повтор бессмыслен
	outcomeRetry                  // временная ошибка → без коммита
)

// Consumer — читает события инвалидации других инстансов.
// Коммит ручной: оффсет двигается только после applied/skipped (at-least-once).
type Consumer struct {
	reader         reader
	handler        invalidationHandler
	log            ports.Logger
	processTimeout time.Duration
	fetchRetry     *backoff
	retryPause     time.Duration
	closeOnce      sync.Once
}

// NewConsumer — конструктор; reader настроен на ручной коммит (см. ReaderConfig).
func NewConsumer(cfg *ConsumerConfig, handler invalidationHandler, log ports.Logger) *Consumer {
	return newConsumer(kafka.NewReader(cfg.ReaderConfig()), cfg, handler, log)
}

func newConsumer(r reader, cfg *ConsumerConfig, handler invalidationHandler, log ports.Logger) *Consumer {
	pt := orDefault(cfg.ProcessTimeout, defaultProcessTimeout)
	initial := orDefault(cfg.RetryInitial, defaultRetryInitial)
	maxDelay := orDefault(cfg.RetryMax, defaultRetryMax)

	return &Consumer{
		reader:         r,
		handler:        handler,
		log:            log,
		processTimeout: pt,
		fetchRetry:     newBackoff(initial, maxDelay, time.Now().UnixNano()),
		retryPause:     min(initial, maxRetryPause),
	}
}

// Run — цикл до отмены ctx. Ошибки FetchMessage не фатальны: экспоненциальный
// backoff с equal-jitter, сброс после первого удачного чтения.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			wait := c.fetchRetry.next()
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", err, wait)
			if !sleepCtx(ctx, wait) {
				return ctx.Err()
			}
			continue
		}
		c.fetchRetry.reset()
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if c.apply(ctx, rc.Topic, msg) == outcomeRetry {
			_ = sleepCtx(ctx, c.fetchRetry.jitter(c.retryPause))
			continue
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, err)
		}
	}
}

// apply — одно событие под processTimeout. Ключ сообщения — инстанс-отправитель.
func (c *Consumer) apply(ctx context.Context, topic string, msg kafka.Message) outcome {
	pctx, cancel := context.WithTimeout(ctx, c.processTimeout)
	err := c.handler.InvalidateFromMessage(pctx, msg.Value)
	cancel()

	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return outcomeApplied
	case errors.Is(err, domain.ErrInvalidEvent):
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "invalid event offset=%d from=%s: %v (skipped)", msg.Offset, msg.Key, err)
		return outcomeSkipped
	default:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "process failed offset=%d from=%s: %v (will retry without commit)", msg.Offset, msg.Key, err)
		return outcomeRetry
	}
}

// Close — закрывает reader. Повторный вызов безопасен.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}

func orDefault(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}
