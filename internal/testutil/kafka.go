//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/vetstock/internal/domain"
)

var reTopicUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// BusTopic — уникальный топик шины инвалидации для теста.
// Пример: base="inventory-itc", name="TestX/sub" → "inventory-itc-TestX-sub-20261018T010203123456789".
func BusTopic(base, name string) string {
	stamp := strings.ReplaceAll(time.Now().UTC().Format("20060102T150405.000000000"), ".", "")
	return fmt.Sprintf("%s-%s-%s", base, reTopicUnsafe.ReplaceAllString(name, "-"), stamp)
}

// InstanceGroup — consumer group инстанса: у каждого своя, событие видят все.
func InstanceGroup(topic, instance string) string {
	return topic + "-" + instance
}

// EnsureTopic — создаёт топик на контроллере (существующий — не ошибка) и ждёт партиций.
// broker: "host:port", "PLAINTEXT://host:port" или список через запятую (берётся первый).
func EnsureTopic(ctx context.Context, broker, topic string) error {
	addr := bootstrapAddr(broker)

	conn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	ctrl, err := conn.Controller()
	_ = conn.Close()
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}

	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("create topic %q: %w", topic, err)
	}
	return waitPartitions(ctx, addr, topic, 5*time.Second)
}

// WriteRaw — произвольные байты в топик, минуя Producer (битые события и т.п.).
func WriteRaw(ctx context.Context, brokers []string, topic string, values ...[]byte) error {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()

	msgs := make([]kafka.Message, 0, len(values))
	for _, v := range values {
		msgs = append(msgs, kafka.Message{Value: v})
	}
	return w.WriteMessages(ctx, msgs...)
}

// ReadEvents — первые n событий топика с начала партиции 0; ключ сообщения — инстанс.
func ReadEvents(ctx context.Context, brokers []string, topic string, n int) ([]domain.InvalidationEvent, []string, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   brokers,
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  1 << 20,
	})
	defer r.Close()
	if err := r.SetOffset(kafka.FirstOffset); err != nil {
		return nil, nil, err
	}

	events := make([]domain.InvalidationEvent, 0, n)
	keys := make([]string, 0, n)
	for len(events) < n {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			return events, keys, fmt.Errorf("read event %d/%d: %w", len(events)+1, n, err)
		}
		var ev domain.InvalidationEvent
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			// чужие/битые сообщения в топике пропускаем
			continue
		}
		events = append(events, ev)
		keys = append(keys, string(m.Key))
	}
	return events, keys, nil
}

// bootstrapAddr — первый адрес bootstrap-строки без схемы.
func bootstrapAddr(raw string) string {
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if strings.Contains(first, "://") {
		if u, err := url.Parse(first); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return first
}

func waitPartitions(ctx context.Context, addr, topic string, within time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, within)
	defer cancel()

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	var lastErr error
	for {
		conn, err := kafka.DialContext(ctx, "tcp", addr)
		if err == nil {
			parts, perr := conn.ReadPartitions(topic)
			_ = conn.Close()
			if perr == nil && len(parts) > 0 {
				return nil
			}
			err = perr
		}
		lastErr = err

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("topic %q not ready: %w", topic, lastErr)
			}
			return fmt.Errorf("topic %q not ready: %w", topic, ctx.Err())
		case <-tick.C:
		}
	}
}
