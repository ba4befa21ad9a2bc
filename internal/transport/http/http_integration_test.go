//go:build integration

package rest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/vetstock/internal/domain"
	"github.com/Gunvolt24/vetstock/internal/proxy"
	rest "github.com/Gunvolt24/vetstock/internal/transport/http"
	"github.com/Gunvolt24/vetstock/internal/usecase"
	"github.com/Gunvolt24/vetstock/internal/webhook"
	"github.com/Gunvolt24/vetstock/pkg/logger"
)

// backend — бэкенд автоматизаций: помнит запросы и отвечает по endpoint.
type backend struct {
	mu       sync.Mutex
	requests []recorded
	down     atomic.Bool
}

type recorded struct {
	Method string
	Path   string
	Body   []byte
	Header http.Header
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := new(bytes.Buffer)
	_, _ = body.ReadFrom(r.Body)

	b.mu.Lock()
	b.requests = append(b.requests, recorded{Method: r.Method, Path: r.URL.Path, Body: body.Bytes(), Header: r.Header.Clone()})
	b.mu.Unlock()

	if b.down.Load() {
		http.Error(w, "workflow is inactive", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/get-products":
		_, _ = w.Write([]byte(`[{"products":[{"id":"p1","name":"Amoxicillin"},{"id":"p2","name":"Meloxicam"}]}]`))
	case "/get-batches":
		_, _ = w.Write([]byte(`{"batches":[{"id":"b1","productId":"p1","expiryDate":"2020-01-01"}]}`))
	case "/add-product":
		_, _ = w.Write([]byte(`{"id":"p3"}`))
	default:
		_, _ = w.Write([]byte(`{}`))
	}
}

func (b *backend) last() recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[len(b.requests)-1]
}

// newApp — приложение целиком: диспетчер ходит в бэкенд через собственный прокси.
func newApp(t *testing.T) (*backend, *httptest.Server) {
	t.Helper()

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	be := &backend{}
	upstream := httptest.NewServer(be)
	t.Cleanup(upstream.Close)

	var router http.Handler
	app := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { router.ServeHTTP(w, r) }))
	t.Cleanup(app.Close)

	ph, err := proxy.NewHandler(proxy.Config{UpstreamBaseURL: upstream.URL, Timeout: 5 * time.Second}, upstream.Client(), logg)
	require.NoError(t, err)

	client := webhook.NewClient(webhook.Config{
		Primary: webhook.Target{BaseURL: app.URL + rest.ProxyPath, Proxied: true},
		Timeout: 5 * time.Second,
	}, app.Client(), logg)

	svc := usecase.NewInventoryService(client, nil, logg, usecase.Config{})
	router = rest.NewRouter(rest.NewHandler(svc, logg, 10*time.Second), ph.Handle, "", "")
	return be, app
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

// 1) Чтение каталога через прокси: GET превращается в POST к бэкенду, ответ из кэша
func TestHTTP_ProductsThroughProxy_TC(t *testing.T) {
	be, app := newApp(t)

	var got struct {
		Products []domain.Product `json:"products"`
		Source   domain.Source    `json:"source"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, app.URL+"/api/products", &got))
	require.Len(t, got.Products, 2)
	require.Equal(t, domain.SourceUpstream, got.Source)

	req := be.last()
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/get-products", req.Path)
	require.Empty(t, req.Header.Get("Origin"))

	require.Equal(t, http.StatusOK, getJSON(t, app.URL+"/api/products", &got))
	require.Equal(t, domain.SourceCache, got.Source)
}

// 2) Мутация сбрасывает кэш: следующий список снова идёт в бэкенд
func TestHTTP_AddProductInvalidates_TC(t *testing.T) {
	be, app := newApp(t)

	var list struct {
		Source domain.Source `json:"source"`
	}
	getJSON(t, app.URL+"/api/products", &list)

	resp, err := http.Post(app.URL+"/api/products", "application/json", bytes.NewReader([]byte(`{"name":"Cefazolin"}`)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res domain.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.True(t, res.Success)
	require.JSONEq(t, `{"id":"p3"}`, string(res.Data))

	sent := be.last()
	require.Equal(t, "/add-product", sent.Path)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(sent.Body, &payload))
	require.Equal(t, "add-product", payload["action"])

	getJSON(t, app.URL+"/api/products", &list)
	require.Equal(t, domain.SourceUpstream, list.Source)
}

// 3) Бэкенд лежит: формы получают 502 с текстом ошибки, списки — последнее удачное значение
func TestHTTP_BackendDown_TC(t *testing.T) {
	be, app := newApp(t)

	var batches struct {
		Batches []domain.Batch `json:"batches"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, app.URL+"/api/batches", &batches))
	require.Len(t, batches.Batches, 1)

	be.down.Store(true)

	resp, err := http.Post(app.URL+"/api/stock", "application/json", bytes.NewReader([]byte(`{"productId":"p1","newStock":3}`)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var res domain.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.False(t, res.Success)
	require.Contains(t, res.Error, "503")

	var expired struct {
		Batches []domain.Batch `json:"batches"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, app.URL+"/api/batches?expired=1", &expired))
	require.Len(t, expired.Batches, 1)
}

// 4) Прокси без endpoint — 400 с JSON-ошибкой и CORS-заголовком
func TestHTTP_ProxyMissingEndpoint_TC(t *testing.T) {
	_, app := newApp(t)

	resp, err := http.Post(app.URL+rest.ProxyPath, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "Missing endpoint parameter", got["error"])
}
