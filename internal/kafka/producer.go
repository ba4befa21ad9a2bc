package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Gunvolt24/vetstock/internal/domain"
	"github.com/Gunvolt24/vetstock/internal/ports"
	"github.com/Gunvolt24/vetstock/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var _ ports.EventPublisher = (*Producer)(nil)

// writer — минимальный контракт над kafka.Writer.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer — публикует события инвалидации после успешных мутаций.
type Producer struct {
	writer    writer
	topic     string
	log       ports.Logger
	closeOnce sync.Once
}

func NewProducer(cfg *ProducerConfig, log ports.Logger) *Producer {
	return newProducer(cfg.NewWriter(), cfg.Topic, log)
}

func newProducer(w writer, topic string, log ports.Logger) *Producer {
	return &Producer{writer: w, topic: topic, log: log}
}

// Publish — одно событие; ключ сообщения — инстанс-отправитель.
func (p *Producer) Publish(ctx context.Context, ev domain.InvalidationEvent) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "error").Inc()
		return fmt.Errorf("marshal invalidation event: %w", err)
	}

	msg := kafka.Message{Key: []byte(ev.Instance), Value: raw, Time: ev.At}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "error").Inc()
		return fmt.Errorf("write invalidation event: %w", err)
	}

	metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "ok").Inc()
	p.log.Infof(ctx, "invalidation published action=%s topic=%s", ev.Action, p.topic)
	return nil
}

// Close — сбрасывает буфер writer'а. Повторный вызов безопасен.
func (p *Producer) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}
