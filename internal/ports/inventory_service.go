package ports

import (
	"context"
	"encoding/json"

	"github.com/Gunvolt24/vetstock/internal/domain"
)

// InventoryService — всё, что нужно HTTP-слою.
type InventoryService interface {
	// чтение через кэши
	Products(ctx context.Context, force bool) ([]domain.Product, domain.Source)
	Batches(ctx context.Context, force bool) ([]domain.Batch, domain.Source)
	LiveData(ctx context.Context, force bool) (domain.LiveData, domain.Source)
	StockLevels(ctx context.Context) ([]domain.StockLevel, error)
	DashboardStats(ctx context.Context, force bool) (domain.DashboardStats, domain.Source)

	// выборки поверх кэша
	ProductByID(ctx context.Context, id string) (*domain.Product, bool)
	ProductsByName(ctx context.Context, name string) []domain.Product
	BatchesByProduct(ctx context.Context, productID string) []domain.Batch
	ExpiringBatches(ctx context.Context, days int) []domain.Batch
	ExpiredBatches(ctx context.Context) []domain.Batch
	LowStock(ctx context.Context) ([]domain.StockLevel, error)
	OutOfStock(ctx context.Context) ([]domain.StockLevel, error)

	// отправка форм; отказ всегда внутри domain.Result
	AddProduct(ctx context.Context, p domain.NewProduct) domain.Result
	LogBatch(ctx context.Context, b domain.NewBatch, image *domain.Attachment) domain.Result
	UpdateStock(ctx context.Context, u domain.StockUpdate) domain.Result
	ViewStock(ctx context.Context, productID string) domain.Result
	ViewExpiry(ctx context.Context, productID string) domain.Result
	ProcessOCR(ctx context.Context, image domain.Attachment) (*domain.OCRGuess, domain.Result)
	Submit(ctx context.Context, action string, body json.RawMessage) domain.Result
}
