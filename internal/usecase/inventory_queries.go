package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/Gunvolt24/vetstock/internal/domain"
)

// DefaultExpiringWithinDays — окно «скоро истекает» по умолчанию.
const DefaultExpiringWithinDays = 30

// ProductByID — товар из каталога (через кэш).
func (s *InventoryService) ProductByID(ctx context.Context, id string) (*domain.Product, bool) {
	products, _ := s.Products(ctx, false)
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, true
		}
	}
	return nil, false
}

// ProductsByName — поиск по подстроке без учёта регистра; пустой запрос → весь каталог.
func (s *InventoryService) ProductsByName(ctx context.Context, name string) []domain.Product {
	products, _ := s.Products(ctx, false)
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return products
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

// BatchesByProduct — партии одного товара.
func (s *InventoryService) BatchesByProduct(ctx context.Context, productID string) []domain.Batch {
	batches, _ := s.Batches(ctx, false)
	return filterBatches(batches, func(b *domain.Batch) bool { return b.ProductID == productID })
}

// ExpiringBatches — партии, срок которых истекает в ближайшие days дней (сегодня включительно).
// days <= 0 → DefaultExpiringWithinDays. Уже просроченные не входят.
func (s *InventoryService) ExpiringBatches(ctx context.Context, days int) []domain.Batch {
	if days <= 0 {
		days = DefaultExpiringWithinDays
	}
	today := truncateDay(s.now())
	limit := today.AddDate(0, 0, days)

	batches, _ := s.Batches(ctx, false)
	return filterBatches(batches, func(b *domain.Batch) bool {
		exp, ok := b.Expiry()
		if !ok {
			return false
		}
		exp = truncateDay(exp)
		return !exp.Before(today) && !exp.After(limit)
	})
}

// ExpiredBatches — партии с истёкшим сроком.
func (s *InventoryService) ExpiredBatches(ctx context.Context) []domain.Batch {
	today := truncateDay(s.now())
	batches, _ := s.Batches(ctx, false)
	return filterBatches(batches, func(b *domain.Batch) bool {
		exp, ok := b.Expiry()
		return ok && truncateDay(exp).Before(today)
	})
}

// LowStock — остаток на минимуме или ниже.
func (s *InventoryService) LowStock(ctx context.Context) ([]domain.StockLevel, error) {
	return s.filterStock(ctx, (*domain.StockLevel).Low)
}

// OutOfStock — остаток равен нулю.
func (s *InventoryService) OutOfStock(ctx context.Context) ([]domain.StockLevel, error) {
	return s.filterStock(ctx, (*domain.StockLevel).Out)
}

func (s *InventoryService) filterStock(ctx context.Context, keep func(*domain.StockLevel) bool) ([]domain.StockLevel, error) {
	levels, err := s.StockLevels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.StockLevel, 0, len(levels))
	for i := range levels {
		if keep(&levels[i]) {
			out = append(out, levels[i])
		}
	}
	return out, nil
}

func filterBatches(batches []domain.Batch, keep func(*domain.Batch) bool) []domain.Batch {
	out := make([]domain.Batch, 0, len(batches))
	for i := range batches {
		if keep(&batches[i]) {
			out = append(out, batches[i])
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
