package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/vetstock/internal/domain"
	"github.com/Gunvolt24/vetstock/internal/ports/mocks"
	rest "github.com/Gunvolt24/vetstock/internal/transport/http"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func newRouter(t *testing.T) (*mocks.MockInventoryService, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := mocks.NewMockInventoryService(gomock.NewController(t))
	h := rest.NewHandler(svc, noopLogger{}, time.Second)
	return svc, rest.NewRouter(h, nil, "", "")
}

func serve(r http.Handler, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
}

func TestPingAndRequestID(t *testing.T) {
	_, r := newRouter(t)

	w := serve(r, http.MethodGet, "/ping", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("ping: %d %q", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header must be set")
	}
}

func TestListProducts_RefreshAndSource(t *testing.T) {
	svc, r := newRouter(t)

	want := []domain.Product{{ID: "p1", Name: "Amoxicillin"}}
	svc.EXPECT().Products(gomock.Any(), true).Return(want, domain.SourceStale)

	w := serve(r, http.MethodGet, "/api/products?refresh=1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Products []domain.Product `json:"products"`
		Source   domain.Source    `json:"source"`
	}
	decode(t, w, &got)
	if len(got.Products) != 1 || got.Products[0].ID != "p1" || got.Source != domain.SourceStale {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestGetProduct(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().ProductByID(gomock.Any(), "p1").Return(&domain.Product{ID: "p1", Name: "X"}, true)
	svc.EXPECT().ProductByID(gomock.Any(), "missing").Return(nil, false)

	if w := serve(r, http.MethodGet, "/api/products/p1", "", nil); w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/api/products/missing", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}

func TestSearchProducts(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().ProductsByName(gomock.Any(), "amox").Return([]domain.Product{{ID: "p1"}})

	if w := serve(r, http.MethodGet, "/api/products/search?name=amox", "", nil); w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/api/products/search", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("empty name: want 400, got %d", w.Code)
	}
}

func TestListBatches_Filters(t *testing.T) {
	svc, r := newRouter(t)

	gomock.InOrder(
		svc.EXPECT().BatchesByProduct(gomock.Any(), "p1").Return([]domain.Batch{{ID: "b1"}}),
		svc.EXPECT().ExpiredBatches(gomock.Any()).Return(nil),
		svc.EXPECT().ExpiringBatches(gomock.Any(), 7).Return(nil),
		svc.EXPECT().Batches(gomock.Any(), false).Return([]domain.Batch{{ID: "b2"}}, domain.SourceCache),
	)

	for _, path := range []string{
		"/api/batches?product_id=p1&expired=1",
		"/api/batches?expired=true",
		"/api/batches?expiring_within=7",
		"/api/batches",
	} {
		if w := serve(r, http.MethodGet, path, "", nil); w.Code != http.StatusOK {
			t.Fatalf("%s: want 200, got %d", path, w.Code)
		}
	}
}

func TestStockLevels(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().LowStock(gomock.Any()).Return([]domain.StockLevel{{ProductID: "p1", CurrentStock: 1, MinimumStock: 5}}, nil)
	svc.EXPECT().OutOfStock(gomock.Any()).Return(nil, errors.New("webhook get-stock-levels failed"))

	if w := serve(r, http.MethodGet, "/api/stock-levels?filter=low", "", nil); w.Code != http.StatusOK {
		t.Fatalf("low: want 200, got %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/api/stock-levels?filter=out", "", nil); w.Code != http.StatusBadGateway {
		t.Fatalf("out: want 502, got %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/api/stock-levels?filter=zero", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad filter: want 400, got %d", w.Code)
	}
}

func TestDashboard(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().DashboardStats(gomock.Any(), false).Return(domain.DashboardStats{TotalProducts: 3}, domain.SourceDefault)

	w := serve(r, http.MethodGet, "/api/dashboard", "", nil)
	var got struct {
		Stats  domain.DashboardStats `json:"stats"`
		Source domain.Source         `json:"source"`
	}
	decode(t, w, &got)
	if got.Stats.TotalProducts != 3 || got.Source != domain.SourceDefault {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestAddProduct_Statuses(t *testing.T) {
	tests := []struct {
		name   string
		res    domain.Result
		status int
	}{
		{"success", domain.Succeeded(json.RawMessage(`{"id":"p9"}`)), http.StatusOK},
		{"upstream failure", domain.Failed(domain.KindUpstreamStatus, "webhook add-product failed"), http.StatusBadGateway},
		{"timeout", domain.Failed(domain.KindTimeout, "timeout after 30s"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, r := newRouter(t)
			svc.EXPECT().AddProduct(gomock.Any(), domain.NewProduct{Name: "Meloxicam", MinimumStock: 2}).Return(tt.res)

			w := serve(r, http.MethodPost, "/api/products", "application/json", []byte(`{"name":"Meloxicam","minimumStock":2}`))
			if w.Code != tt.status {
				t.Fatalf("want %d, got %d, body=%s", tt.status, w.Code, w.Body.String())
			}
			var got domain.Result
			decode(t, w, &got)
			if got.Success != tt.res.Success || got.Error != tt.res.Error {
				t.Fatalf("result mismatch: %+v", got)
			}
		})
	}
}

func TestAddProduct_BadInput(t *testing.T) {
	svc, r := newRouter(t)

	if w := serve(r, http.MethodPost, "/api/products", "application/json", []byte(`{`)); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed json: want 400, got %d", w.Code)
	}

	// содержимое полей проверяет бэкенд, пустое имя уходит как есть
	svc.EXPECT().AddProduct(gomock.Any(), domain.NewProduct{Name: "  "}).
		Return(domain.Failed(domain.KindUpstreamStatus, "status 422"))
	if w := serve(r, http.MethodPost, "/api/products", "application/json", []byte(`{"name":"  "}`)); w.Code != http.StatusBadGateway {
		t.Fatalf("blank name: want upstream verdict 502, got %d", w.Code)
	}
}

func TestSubmitRoutes_BodyTooLarge_413(t *testing.T) {
	_, r := newRouter(t)

	huge := []byte(`{"name":"` + strings.Repeat("x", int(rest.MaxBodyBytes)) + `"}`)
	for _, path := range []string{"/api/products", "/api/stock", "/api/actions/add-product"} {
		w := serve(r, http.MethodPost, path, "application/json", huge)
		if w.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("%s: want 413, got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), `"success":false`) {
			t.Fatalf("%s: body=%.120s", path, w.Body.String())
		}
	}
}

func TestLogBatch_JSON(t *testing.T) {
	svc, r := newRouter(t)

	want := domain.NewBatch{ProductID: "p1", BatchName: "B-7", Quantity: 10, ExpiryDate: "2027-01-01"}
	svc.EXPECT().LogBatch(gomock.Any(), want, gomock.Nil()).Return(domain.Succeeded(nil))

	body := `{"productId":"p1","batchName":"B-7","quantity":10,"expiryDate":"2027-01-01"}`
	if w := serve(r, http.MethodPost, "/api/batches", "application/json", []byte(body)); w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func multipartBody(t *testing.T, fields map[string]string, image []byte) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("field: %v", err)
		}
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "label.jpg")
		if err != nil {
			t.Fatalf("file: %v", err)
		}
		_, _ = fw.Write(image)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return buf.Bytes(), mw.FormDataContentType()
}

func TestLogBatch_MultipartWithImage(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().LogBatch(gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())).
		DoAndReturn(func(_ context.Context, b domain.NewBatch, img *domain.Attachment) domain.Result {
			if b.ProductID != "p1" || b.Quantity != 4 || b.Notes != "fridge" {
				t.Errorf("batch=%+v", b)
			}
			if img.FileName != "label.jpg" || string(img.Data) != "JPEG" {
				t.Errorf("image=%s %q", img.FileName, img.Data)
			}
			return domain.Succeeded(json.RawMessage(`{"id":"b1"}`))
		})

	body, ct := multipartBody(t, map[string]string{
		"productId": "p1", "batchName": "B-1", "quantity": "4", "notes": "fridge",
	}, []byte("JPEG"))
	if w := serve(r, http.MethodPost, "/api/batches", ct, body); w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestLogBatch_MultipartBadQuantity(t *testing.T) {
	_, r := newRouter(t)

	body, ct := multipartBody(t, map[string]string{"productId": "p1", "batchName": "B", "quantity": "ten"}, nil)
	if w := serve(r, http.MethodPost, "/api/batches", ct, body); w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestUpdateStock(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().UpdateStock(gomock.Any(), domain.StockUpdate{ProductID: "p1", NewStock: 12}).Return(domain.Succeeded(nil))

	if w := serve(r, http.MethodPost, "/api/stock", "application/json", []byte(`{"productId":"p1","newStock":12}`)); w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	svc.EXPECT().UpdateStock(gomock.Any(), domain.StockUpdate{NewStock: 1}).Return(domain.Succeeded(nil))
	if w := serve(r, http.MethodPost, "/api/stock", "application/json", []byte(`{"newStock":1}`)); w.Code != http.StatusOK {
		t.Fatalf("missing product is forwarded: want 200, got %d", w.Code)
	}
}

func TestViewReports_EmptyBodyMeansAll(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().ViewStock(gomock.Any(), "").Return(domain.Succeeded(json.RawMessage(`[]`)))
	svc.EXPECT().ViewExpiry(gomock.Any(), "p1").Return(domain.Succeeded(json.RawMessage(`[]`)))

	if w := serve(r, http.MethodPost, "/api/stock/view", "", nil); w.Code != http.StatusOK {
		t.Fatalf("stock view: want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if w := serve(r, http.MethodPost, "/api/expiry/view", "application/json", []byte(`{"product":"p1"}`)); w.Code != http.StatusOK {
		t.Fatalf("expiry view: want 200, got %d", w.Code)
	}
}

func TestProcessOCR(t *testing.T) {
	svc, r := newRouter(t)

	name := "Amoxicillin"
	svc.EXPECT().ProcessOCR(gomock.Any(), gomock.Any()).
		Return(&domain.OCRGuess{ProductName: &name}, domain.Succeeded(json.RawMessage(`{"productName":"Amoxicillin"}`)))

	body, ct := multipartBody(t, nil, []byte("PNG"))
	w := serve(r, http.MethodPost, "/api/ocr", ct, body)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"guess":{"productName":"Amoxicillin"}`) {
		t.Fatalf("guess missing: %s", w.Body.String())
	}

	if w := serve(r, http.MethodPost, "/api/ocr", "application/json", []byte(`{}`)); w.Code != http.StatusBadRequest {
		t.Fatalf("no image: want 400, got %d", w.Code)
	}
}

func TestSubmitAction(t *testing.T) {
	svc, r := newRouter(t)

	svc.EXPECT().Submit(gomock.Any(), "update-stock", json.RawMessage(`{"updates":[]}`)).Return(domain.Succeeded(nil))
	svc.EXPECT().Submit(gomock.Any(), "drop-table", gomock.Any()).
		Return(domain.Failed(domain.KindUnknownAction, "unknown action: \"drop-table\""))

	if w := serve(r, http.MethodPost, "/api/actions/update-stock", "application/json", []byte(`{"updates":[]}`)); w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if w := serve(r, http.MethodPost, "/api/actions/drop-table", "application/json", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown action: want 400, got %d", w.Code)
	}
}

func TestProxyRoute_RegisteredWithCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := mocks.NewMockInventoryService(gomock.NewController(t))
	proxy := func(c *gin.Context) { c.String(http.StatusTeapot, "proxied") }
	r := rest.NewRouter(rest.NewHandler(svc, noopLogger{}, 0), proxy, "", "")

	w := serve(r, http.MethodPost, rest.ProxyPath+"?endpoint=get-products", "", nil)
	if w.Code != http.StatusTeapot || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("proxy: %d %v", w.Code, w.Header())
	}
	w = serve(r, http.MethodOptions, rest.ProxyPath, "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("preflight: %d %q", w.Code, w.Body.String())
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	_, r := newRouter(t)

	if w := serve(r, http.MethodGet, "/api/nope", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
	w := serve(r, http.MethodDelete, "/api/products", "", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d", w.Code)
	}
	if allow := w.Header().Get("Allow"); !strings.Contains(allow, "GET") || !strings.Contains(allow, "POST") {
		t.Fatalf("Allow=%q", allow)
	}
}
