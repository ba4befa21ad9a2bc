package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/vetstock/internal/domain"
	"github.com/Gunvolt24/vetstock/internal/ports"
	"github.com/Gunvolt24/vetstock/pkg/metrics"
	"github.com/gin-gonic/gin"
)

const (
	// DefaultTimeout — срок ожидания ответа бэкенда.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxBodyBytes — предел входящего тела (multipart с фото этикетки).
	DefaultMaxBodyBytes int64 = 20 << 20

	msgMissingEndpoint = "Missing endpoint parameter"
	msgProxyFailed     = "Proxy request failed"
	msgTimeout         = "Request timeout - upstream took too long to respond"
)

// Config — адрес бэкенда автоматизации и ограничения прокси.
type Config struct {
	UpstreamBaseURL string
	Timeout         time.Duration
	MaxBodyBytes    int64
}

// Handler — edge-прокси: ANY /webhook-proxy?endpoint=<name> → POST <upstream>/<name>.
// Состояния между запросами не хранит.
type Handler struct {
	upstream *url.URL
	cfg      Config
	http     *http.Client
	log      ports.Logger
	now      func() time.Time
}

// errorBody — тело ошибки прокси.
type errorBody struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// NewHandler — конструктор; httpClient == nil → http.DefaultClient.
func NewHandler(cfg Config, httpClient *http.Client, log ports.Logger) (*Handler, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.UpstreamBaseURL))
	if err != nil {
		return nil, fmt.Errorf("proxy: parse upstream url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("proxy: upstream url %q: scheme and host required", cfg.UpstreamBaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Handler{upstream: u, cfg: cfg, http: httpClient, log: log, now: time.Now}, nil
}

// Handle — gin-обработчик. CORS и preflight обслуживает httpx.CORS перед ним.
func (h *Handler) Handle(c *gin.Context) {
	ctx := c.Request.Context()
	start := time.Now()

	endpoint := c.Query("endpoint")
	if endpoint == "" {
		h.log.Warnf(ctx, "proxy: missing endpoint parameter")
		h.fail(c, "", http.StatusBadRequest, errorBody{Error: msgMissingEndpoint})
		return
	}
	if _, err := domain.ParseAction(endpoint); err != nil {
		// бэкенд решает сам, прокси только предупреждает
		h.log.Warnf(ctx, "proxy: forwarding unknown endpoint %q", endpoint)
	}

	var body []byte
	if c.Request.Method != http.MethodGet && c.Request.Body != nil {
		b, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.log.Warnf(ctx, "proxy: body exceeds %d bytes endpoint=%s", h.cfg.MaxBodyBytes, endpoint)
				h.fail(c, endpoint, http.StatusRequestEntityTooLarge, errorBody{
					Error: msgProxyFailed, Details: fmt.Sprintf("request body exceeds %d bytes", h.cfg.MaxBodyBytes), Timestamp: h.timestamp(),
				})
				return
			}
			h.log.Errorf(ctx, "proxy: read body endpoint=%s: %v", endpoint, err)
			h.fail(c, endpoint, http.StatusInternalServerError, errorBody{
				Error: msgProxyFailed, Details: err.Error(), Timestamp: h.timestamp(),
			})
			return
		}
		body = b
	}

	uctx, cancel := context.WithTimeout(ctx, h.cfg.Timeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(uctx, http.MethodPost, h.upstreamURL(endpoint), reqBody)
	if err != nil {
		h.log.Errorf(ctx, "proxy: build request endpoint=%s: %v", endpoint, err)
		h.fail(c, endpoint, http.StatusInternalServerError, errorBody{
			Error: msgProxyFailed, Details: err.Error(), Timestamp: h.timestamp(),
		})
		return
	}
	req.Header = cleanHeaders(c.Request.Header)

	status, ct, respBody, err := h.roundTrip(req)
	metrics.ProxyDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(uctx.Err(), context.DeadlineExceeded) {
			h.log.Errorf(ctx, "proxy: upstream timeout endpoint=%s after %s", endpoint, time.Since(start))
			h.fail(c, endpoint, http.StatusGatewayTimeout, errorBody{
				Error: msgProxyFailed, Details: msgTimeout, Timestamp: h.timestamp(),
			})
			return
		}
		h.log.Errorf(ctx, "proxy: upstream request endpoint=%s: %v", endpoint, err)
		h.fail(c, endpoint, http.StatusInternalServerError, errorBody{
			Error: msgProxyFailed, Details: err.Error(), Timestamp: h.timestamp(),
		})
		return
	}

	if ct == "" {
		ct = "application/json"
	}
	h.log.Infof(ctx, "proxy: endpoint=%s upstream_status=%d bytes=%d duration=%s",
		endpoint, status, len(respBody), time.Since(start))
	metrics.ProxyRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	c.Data(status, ct, respBody)
}

// roundTrip — тело читается целиком, пока жив контекст с таймаутом.
func (h *Handler) roundTrip(req *http.Request) (int, string, []byte, error) {
	resp, err := h.http.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", nil, err
	}
	return resp.StatusCode, resp.Header.Get("Content-Type"), body, nil
}

// upstreamURL — <base>/<endpoint>, endpoint экранируется как сегмент пути.
func (h *Handler) upstreamURL(endpoint string) string {
	u := *h.upstream
	u.RawQuery = ""
	base := strings.TrimRight(u.String(), "/")
	return base + "/" + url.PathEscape(endpoint)
}

func (h *Handler) fail(c *gin.Context, endpoint string, status int, body errorBody) {
	metrics.ProxyRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	c.AbortWithStatusJSON(status, body)
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(time.RFC3339)
}
