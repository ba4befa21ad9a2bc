package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Gunvolt24/vetstock/internal/domain"
	"github.com/Gunvolt24/vetstock/internal/ports"
	"github.com/Gunvolt24/vetstock/pkg/ctxmeta"
	"github.com/Gunvolt24/vetstock/pkg/httpx"
	"github.com/Gunvolt24/vetstock/pkg/metrics"
)

const (
	// DefaultTimeout — срок одной попытки.
	DefaultTimeout = 30 * time.Second

	maxResponseBytes = 10 << 20
	maxErrorBody     = 512

	targetPrimary  = "primary"
	targetFallback = "fallback"
)

// Target — адрес бэкенда.
// Proxied: действие передаётся query-параметром endpoint (edge-прокси),
// иначе дописывается к пути.
type Target struct {
	BaseURL string
	Proxied bool
}

// URL — адрес для конкретного действия.
func (t Target) URL(action domain.Action) (string, error) {
	u, err := url.Parse(strings.TrimSpace(t.BaseURL))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q: scheme and host required", t.BaseURL)
	}

	if t.Proxied {
		q := u.Query()
		q.Set("endpoint", action.Path())
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
	return u.JoinPath(action.Path()).String(), nil
}

// Config — цели и таймаут диспетчера.
type Config struct {
	Primary  Target
	Fallback Target // пустой BaseURL — без резервной попытки
	Timeout  time.Duration
}

// Client — диспетчер webhook: одна попытка на primary, при неудаче ровно одна на fallback.
// Безопасен для конкурентного использования.
type Client struct {
	cfg  Config
	http *http.Client
	log  ports.Logger
}

var _ ports.Dispatcher = (*Client)(nil)

// NewClient — конструктор; httpClient == nil → http.DefaultClient.
// Таймаут берётся из конфигурации, а не из http.Client.
func NewClient(cfg Config, httpClient *http.Client, log ports.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, http: httpClient, log: log}
}

// request — подготовленный запрос, общий для обеих попыток.
type request struct {
	method      string
	body        []byte
	contentType string
}

// SubmitNamed — то же, что Submit, но по имени действия.
// Неизвестное имя → отказ без сетевых вызовов.
func (c *Client) SubmitNamed(ctx context.Context, name string, payload domain.Payload) domain.Result {
	action, err := domain.ParseAction(name)
	if err != nil {
		return domain.Failed(domain.KindUnknownAction, err.Error())
	}
	return c.Submit(ctx, action, payload)
}

// Submit — отправляет действие и возвращает нормализованный результат.
func (c *Client) Submit(ctx context.Context, action domain.Action, payload domain.Payload) domain.Result {
	if !action.Valid() {
		return domain.Failed(domain.KindUnknownAction, fmt.Sprintf("%v: %d", domain.ErrUnknownAction, uint8(action)))
	}
	ctx = ctxmeta.WithAction(ctx, action.String())

	req, err := prepare(action, payload)
	if err != nil {
		c.log.Errorf(ctx, "webhook %s: encode payload: %v", action, err)
		return domain.Failed(domain.KindEncode, fmt.Sprintf("webhook %s: encode payload: %v", action, err))
	}

	data, primaryErr := c.attempt(ctx, targetPrimary, c.cfg.Primary, action, req)
	if primaryErr == nil {
		return domain.Succeeded(data)
	}

	if strings.TrimSpace(c.cfg.Fallback.BaseURL) == "" || ctx.Err() != nil {
		c.log.Errorf(ctx, "webhook %s failed: %v", action, primaryErr)
		return domain.Failed(kindOf(primaryErr), fmt.Sprintf("webhook %s failed: %v", action, primaryErr))
	}

	c.log.Warnf(ctx, "webhook %s primary failed: %v, trying fallback", action, primaryErr)
	metrics.WebhookFallbacks.WithLabelValues(action.String()).Inc()

	data, fallbackErr := c.attempt(ctx, targetFallback, c.cfg.Fallback, action, req)
	if fallbackErr == nil {
		return domain.Succeeded(data)
	}

	c.log.Errorf(ctx, "webhook %s failed: primary: %v; fallback: %v", action, primaryErr, fallbackErr)
	return domain.Failed(
		kindOf(fallbackErr),
		fmt.Sprintf("webhook %s failed: primary: %v; fallback: %v", action, primaryErr, fallbackErr),
	)
}

// prepare — метод и тело по действию. Тело кодируется один раз.
func prepare(action domain.Action, payload domain.Payload) (request, error) {
	if action.ReadOnly() {
		return request{method: http.MethodGet}, nil
	}
	if payload == nil {
		return request{method: http.MethodPost, body: []byte("{}"), contentType: contentTypeJSON}, nil
	}
	body, ct, err := payload.Encode()
	if err != nil {
		return request{}, err
	}
	return request{method: http.MethodPost, body: body, contentType: ct}, nil
}

// attempt — одна попытка под собственным таймером.
// По срабатыванию таймера контекст запроса отменяется и соединение освобождается.
func (c *Client) attempt(ctx context.Context, label string, t Target, action domain.Action, req request) (json.RawMessage, error) {
	target, err := t.URL(action)
	if err != nil {
		metrics.WebhookAttempts.WithLabelValues(action.String(), label, "network").Inc()
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	actx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	hreq, err := http.NewRequestWithContext(actx, req.method, target, body)
	if err != nil {
		metrics.WebhookAttempts.WithLabelValues(action.String(), label, "network").Inc()
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if req.contentType != "" {
		hreq.Header.Set("Content-Type", req.contentType)
	}
	hreq.Header.Set("Accept", "application/json")
	if id, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		hreq.Header.Set(httpx.HeaderRequestID, id)
	}

	start := time.Now()
	data, err := c.do(actx, hreq)
	metrics.WebhookDuration.WithLabelValues(action.String(), label).Observe(time.Since(start).Seconds())
	metrics.WebhookAttempts.WithLabelValues(action.String(), label, outcomeOf(err)).Inc()
	return data, err
}

func (c *Client) do(actx context.Context, hreq *http.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(hreq)
	if err != nil {
		return nil, c.classify(actx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, c.classify(actx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Body: truncate(strings.TrimSpace(string(raw)), maxErrorBody)}
	}
	// обрезанный JSON ушёл бы наружу как {"raw": ...} с успехом
	if len(raw) > maxResponseBytes {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrNetwork, maxResponseBytes)
	}
	return Normalize(raw), nil
}

// classify — таймаут отличается от прочих сетевых ошибок.
func (c *Client) classify(actx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(actx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, c.cfg.Timeout)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

func kindOf(err error) domain.ErrorKind {
	var se *StatusError
	switch {
	case err == nil:
		return domain.KindNone
	case errors.Is(err, ErrTimeout):
		return domain.KindTimeout
	case errors.As(err, &se):
		return domain.KindUpstreamStatus
	default:
		return domain.KindNetwork
	}
}

func outcomeOf(err error) string {
	switch kindOf(err) {
	case domain.KindNone:
		return "success"
	case domain.KindTimeout:
		return "timeout"
	case domain.KindUpstreamStatus:
		return "status"
	default:
		return "network"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
