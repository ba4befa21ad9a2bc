package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Диспетчер webhook.
var (
	WebhookAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_attempts_total",
			Help: "Webhook attempts by action, target and outcome",
		},
		[]string{"action", "target", "outcome"}, // target: primary|fallback; outcome: success|status|timeout|network
	)
	WebhookDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webhook_attempt_duration_seconds",
			Help:    "Duration of a single webhook attempt",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action", "target"},
	)
	WebhookFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_fallbacks_total",
			Help: "Number of submissions retried against the fallback target",
		},
		[]string{"action"},
	)
)

// Edge-прокси.
var (
	ProxyRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_requests_total",
			Help: "Requests relayed by the edge proxy",
		},
		[]string{"endpoint", "code"},
	)
	ProxyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "proxy_upstream_duration_seconds",
			Help:    "Upstream round-trip time seen by the edge proxy",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// Кэши.
var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"cache", "op"}, // hit|miss|refresh|stale|default|invalidated
	)
)

// Шина инвалидации.
var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
	KafkaMessagesPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_published_total",
			Help: "Number of invalidation events published",
		},
		[]string{"topic", "outcome"},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует все коллекторы в DefaultRegisterer; повторные вызовы игнорируются.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			WebhookAttempts, WebhookDuration, WebhookFallbacks,
			ProxyRequests, ProxyDuration,
			CacheOps,
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaMessagesPublished,
		)
	})
}
