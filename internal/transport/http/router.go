package rest

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Gunvolt24/vetstock/internal/domain"
	"github.com/Gunvolt24/vetstock/internal/ports"
	"github.com/Gunvolt24/vetstock/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// ProxyPath — маршрут edge-прокси к бэкенду автоматизаций.
const ProxyPath = "/webhook-proxy"

// Handler — HTTP-слой поверх InventoryService.
type Handler struct {
	service ports.InventoryService
	log     ports.Logger
	timeout time.Duration // на один запрос к сервису; 0 — без ограничения
}

func NewHandler(service ports.InventoryService, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, log: log, timeout: timeout}
}

// NewRouter — gin-движок со всеми маршрутами.
// proxy может быть nil (маршрут не регистрируется), serviceName пустой — без otelgin.
func NewRouter(h *Handler, proxy gin.HandlerFunc, staticDir, serviceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"error": "not found"}) })
	r.NoMethod(func(c *gin.Context) { c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"}) })
	r.Use(gin.Recovery())
	if serviceName != "" {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if proxy != nil {
		r.Any(ProxyPath, httpx.CORS(), proxy)
	}

	api := r.Group("/api")
	{
		api.GET("/products", h.listProducts)
		api.GET("/products/search", h.searchProducts)
		api.GET("/products/:id", h.getProduct)
		api.GET("/batches", h.listBatches)
		api.GET("/stock-levels", h.stockLevels)
		api.GET("/dashboard", h.dashboard)
		api.GET("/live", h.liveData)

		submit := api.Group("", limitBody(MaxBodyBytes))
		submit.POST("/products", h.addProduct)
		submit.POST("/batches", h.logBatch)
		submit.POST("/stock", h.updateStock)
		submit.POST("/stock/view", h.viewStock)
		submit.POST("/expiry/view", h.viewExpiry)
		submit.POST("/ocr", h.processOCR)
		submit.POST("/actions/:action", h.submitAction)
	}

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}

// requestContext — контекст запроса с таймаутом обработчика.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout > 0 {
		return context.WithTimeout(c.Request.Context(), h.timeout)
	}
	return context.WithCancel(c.Request.Context())
}

func (h *Handler) listProducts(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	list, src := h.service.Products(ctx, httpx.QueryBool(c, "refresh"))
	c.JSON(http.StatusOK, gin.H{"products": list, "source": src})
}

func (h *Handler) searchProducts(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty name"})
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{"products": h.service.ProductsByName(ctx, name)})
}

func (h *Handler) getProduct(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := h.requestContext(c)
	defer cancel()

	p, ok := h.service.ProductByID(ctx, id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// listBatches — фильтры взаимоисключающие: product_id, затем expired, затем expiring_within.
func (h *Handler) listBatches(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var list []domain.Batch
	switch {
	case c.Query("product_id") != "":
		list = h.service.BatchesByProduct(ctx, c.Query("product_id"))
	case httpx.QueryBool(c, "expired"):
		list = h.service.ExpiredBatches(ctx)
	case c.Query("expiring_within") != "":
		days := httpx.QueryInt(c, "expiring_within", 30, 0, 3650)
		list = h.service.ExpiringBatches(ctx, days)
	default:
		var src domain.Source
		list, src = h.service.Batches(ctx, httpx.QueryBool(c, "refresh"))
		c.JSON(http.StatusOK, gin.H{"batches": list, "source": src})
		return
	}
	c.JSON(http.StatusOK, gin.H{"batches": list})
}

func (h *Handler) stockLevels(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var (
		levels []domain.StockLevel
		err    error
	)
	switch filter := c.Query("filter"); filter {
	case "":
		levels, err = h.service.StockLevels(ctx)
	case "low":
		levels, err = h.service.LowStock(ctx)
	case "out":
		levels, err = h.service.OutOfStock(ctx)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "filter must be low or out"})
		return
	}
	if err != nil {
		h.log.Errorf(ctx, "stock levels failed filter=%s err=%v", c.Query("filter"), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stockLevels": levels})
}

func (h *Handler) dashboard(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	stats, src := h.service.DashboardStats(ctx, httpx.QueryBool(c, "refresh"))
	c.JSON(http.StatusOK, gin.H{"stats": stats, "source": src})
}

func (h *Handler) liveData(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	data, src := h.service.LiveData(ctx, httpx.QueryBool(c, "refresh"))
	c.JSON(http.StatusOK, gin.H{"products": data.Products, "batches": data.Batches, "source": src})
}
