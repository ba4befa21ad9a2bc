package metrics_test

import (
	"testing"

	"github.com/Gunvolt24/vetstock/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestWebhookCounters_Inc(t *testing.T) {
	metrics.MustRegister()

	attempt := metrics.WebhookAttempts.WithLabelValues("log-batch", "primary", "status")
	fallback := metrics.WebhookFallbacks.WithLabelValues("log-batch")

	beforeAttempt := testutil.ToFloat64(attempt)
	beforeFallback := testutil.ToFloat64(fallback)

	attempt.Inc()
	fallback.Inc()

	if got := testutil.ToFloat64(attempt); got != beforeAttempt+1 {
		t.Fatalf("WebhookAttempts: got=%v want=%v", got, beforeAttempt+1)
	}
	if got := testutil.ToFloat64(fallback); got != beforeFallback+1 {
		t.Fatalf("WebhookFallbacks: got=%v want=%v", got, beforeFallback+1)
	}
}

func TestCacheOps_CountersByLabel(t *testing.T) {
	metrics.MustRegister()

	hitBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("products", "hit"))
	missBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("products", "miss"))

	metrics.CacheOps.WithLabelValues("products", "hit").Inc()
	metrics.CacheOps.WithLabelValues("products", "hit").Inc()

	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("products", "hit")); got != hitBefore+2 {
		t.Fatalf("CacheOps(hit): got=%v want=%v", got, hitBefore+2)
	}
	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("products", "miss")); got != missBefore {
		t.Fatalf("CacheOps(miss): got=%v want=%v", got, missBefore)
	}
}

func TestProxyRequests_Labels(t *testing.T) {
	metrics.MustRegister()

	c := metrics.ProxyRequests.WithLabelValues("get-products", "504")
	before := testutil.ToFloat64(c)
	c.Inc()
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("ProxyRequests: got=%v want=%v", got, before+1)
	}
}

func TestKafkaCounters_Inc(t *testing.T) {
	metrics.MustRegister()

	consumed := metrics.KafkaMessagesConsumed.WithLabelValues("inventory-invalidation")
	published := metrics.KafkaMessagesPublished.WithLabelValues("inventory-invalidation", "ok")

	bc, bp := testutil.ToFloat64(consumed), testutil.ToFloat64(published)
	consumed.Inc()
	published.Inc()

	if got := testutil.ToFloat64(consumed); got != bc+1 {
		t.Fatalf("KafkaMessagesConsumed: got=%v want=%v", got, bc+1)
	}
	if got := testutil.ToFloat64(published); got != bp+1 {
		t.Fatalf("KafkaMessagesPublished: got=%v want=%v", got, bp+1)
	}
}
