package telemetry

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewTransport — пул соединений для исходящих вызовов к бэкенду автоматизации,
// обёрнутый otelhttp: span на каждый запрос и проброс traceparent.
// Без настроенного провайдера otelhttp работает как no-op.
func NewTransport() http.RoundTripper {
	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return otelhttp.NewTransport(base)
}

// NewHTTPClient — клиент без общего таймаута: сроки задаются контекстом каждого запроса.
func NewHTTPClient() *http.Client {
	return &http.Client{Transport: NewTransport()}
}
