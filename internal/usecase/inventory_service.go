package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"

	cachemem "github.com/Gunvolt24/vetstock/internal/cache/memory"
	"github.com/Gunvolt24/vetstock/internal/domain"
	"github.com/Gunvolt24/vetstock/internal/ports"
	"github.com/Gunvolt24/vetstock/internal/webhook"
)

const (
	DefaultListTTL  = 5 * time.Minute
	DefaultStatsTTL = time.Hour
)

// Config — параметры сервиса.
type Config struct {
	ListTTL  time.Duration    // товары и партии
	StatsTTL time.Duration    // счётчики главной панели
	Instance string           // идентификатор инстанса в событиях шины
	Now      func() time.Time // часы кэшей; nil — time.Now
	NewID    func() string    // id, которые генерирует клиент; nil — uuid
}

// InventoryService — прикладная логика склада поверх диспетчера webhook (без знаний о транспорте).
type InventoryService struct {
	dispatcher ports.Dispatcher     // отправка действий во внешний бэкенд
	publisher  ports.EventPublisher // шина инвалидации; nil — выключена
	log        ports.Logger

	products *cachemem.ReadThrough[[]domain.Product]
	batches  *cachemem.ReadThrough[[]domain.Batch]
	stats    *cachemem.ReadThrough[domain.DashboardStats]

	instance string
	now      func() time.Time
	newID    func() string
}

var _ ports.InventoryService = (*InventoryService)(nil)

// NewInventoryService — DI-конструктор. publisher может быть nil.
func NewInventoryService(
	dispatcher ports.Dispatcher,
	publisher ports.EventPublisher,
	log ports.Logger,
	cfg Config,
) *InventoryService {
	if cfg.ListTTL <= 0 {
		cfg.ListTTL = DefaultListTTL
	}
	if cfg.StatsTTL <= 0 {
		cfg.StatsTTL = DefaultStatsTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = func() string { return uuid.NewString() }
	}
	if cfg.Instance == "" {
		cfg.Instance = uuid.NewString()
	}

	s := &InventoryService{
		dispatcher: dispatcher,
		publisher:  publisher,
		log:        log,
		instance:   cfg.Instance,
		now:        cfg.Now,
		newID:      cfg.NewID,
	}

	s.products = cachemem.NewReadThrough(cachemem.Options[[]domain.Product]{
		Name:     "products",
		TTL:      cfg.ListTTL,
		Fetch:    s.fetchProducts,
		Fallback: domain.DefaultProducts,
		Clone:    slices.Clone[[]domain.Product, domain.Product],
		Now:      cfg.Now,
	})
	s.batches = cachemem.NewReadThrough(cachemem.Options[[]domain.Batch]{
		Name:     "batches",
		TTL:      cfg.ListTTL,
		Fetch:    s.fetchBatches,
		Fallback: domain.DefaultBatches,
		Clone:    slices.Clone[[]domain.Batch, domain.Batch],
		Now:      cfg.Now,
	})
	s.stats = cachemem.NewReadThrough(cachemem.Options[domain.DashboardStats]{
		Name:     "dashboard_stats",
		TTL:      cfg.StatsTTL,
		Fetch:    s.fetchStats,
		Fallback: domain.DefaultDashboardStats,
		Clone:    cloneStats,
		Now:      cfg.Now,
	})
	return s
}

// Products — каталог через кэш (TTL 5 минут по умолчанию).
func (s *InventoryService) Products(ctx context.Context, force bool) ([]domain.Product, domain.Source) {
	list, src, err := s.products.Get(ctx, force)
	s.logDegraded(ctx, "products", src, err)
	return list, src
}

// Batches — партии через кэш.
func (s *InventoryService) Batches(ctx context.Context, force bool) ([]domain.Batch, domain.Source) {
	list, src, err := s.batches.Get(ctx, force)
	s.logDegraded(ctx, "batches", src, err)
	return list, src
}

// LiveData — оба списка одним снимком; обновляются параллельно.
// Источник — худший из двух.
func (s *InventoryService) LiveData(ctx context.Context, force bool) (domain.LiveData, domain.Source) {
	var (
		products   []domain.Product
		productSrc domain.Source
		done       = make(chan struct{})
	)
	go func() {
		defer close(done)
		products, productSrc = s.Products(ctx, force)
	}()
	batches, batchSrc := s.Batches(ctx, force)
	<-done

	return domain.LiveData{Products: products, Batches: batches}, worstSource(productSrc, batchSrc)
}

// StockLevels — остатки без кэша; при отказе бэкенда ошибка.
func (s *InventoryService) StockLevels(ctx context.Context) ([]domain.StockLevel, error) {
	res := s.dispatcher.Submit(ctx, domain.ActionGetStockLevels, nil)
	if !res.Success {
		s.log.Warnf(ctx, "stock levels fetch failed: %s", res.Error)
		return nil, fmt.Errorf("get stock levels: %s", res.Error)
	}
	levels, err := webhook.DecodeList[domain.StockLevel](res.Data, "stockLevels")
	if err != nil {
		s.log.Warnf(ctx, "stock levels decode failed: %v", err)
		return nil, fmt.Errorf("get stock levels: %w", err)
	}
	return levels, nil
}

// DashboardStats — счётчики главной панели через кэш (TTL 1 час по умолчанию).
func (s *InventoryService) DashboardStats(ctx context.Context, force bool) (domain.DashboardStats, domain.Source) {
	stats, src, err := s.stats.Get(ctx, force)
	s.logDegraded(ctx, "dashboard stats", src, err)
	return stats, src
}

// Invalidate — все кэши устарели; значения остаются как последние удачные.
func (s *InventoryService) Invalidate() {
	s.products.Invalidate()
	s.batches.Invalidate()
	s.stats.Invalidate()
}

// InvalidateFromMessage — событие шины от другого инстанса (raw JSON).
// Неразбираемое сообщение → domain.ErrInvalidEvent, собственные события игнорируются.
func (s *InventoryService) InvalidateFromMessage(ctx context.Context, raw []byte) error {
	var ev domain.InvalidationEvent
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ev); err != nil {
		s.log.Warnf(ctx, "invalid invalidation event err=%v", err)
		return fmt.Errorf("%w: %v", domain.ErrInvalidEvent, err)
	}
	if err := dec.Decode(new(struct{})); !errors.Is(err, io.EOF) {
		s.log.Warnf(ctx, "invalid invalidation event: trailing data")
		return fmt.Errorf("%w: trailing data", domain.ErrInvalidEvent)
	}
	if !ev.Action.Mutating() {
		s.log.Warnf(ctx, "invalidation event for non-mutating action=%s", ev.Action)
		return fmt.Errorf("%w: action %s does not mutate", domain.ErrInvalidEvent, ev.Action)
	}

	if ev.Instance == s.instance {
		return nil
	}
	s.Invalidate()
	s.log.Infof(ctx, "caches invalidated by action=%s from instance=%s", ev.Action, ev.Instance)
	return nil
}

func (s *InventoryService) fetchProducts(ctx context.Context) ([]domain.Product, error) {
	res := s.dispatcher.Submit(ctx, domain.ActionGetProducts, nil)
	if !res.Success {
		return nil, errors.New(res.Error)
	}
	return webhook.DecodeList[domain.Product](res.Data, "products")
}

func (s *InventoryService) fetchBatches(ctx context.Context) ([]domain.Batch, error) {
	res := s.dispatcher.Submit(ctx, domain.ActionGetBatches, nil)
	if !res.Success {
		return nil, errors.New(res.Error)
	}
	return webhook.DecodeList[domain.Batch](res.Data, "batches")
}

func (s *InventoryService) fetchStats(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	res := s.dispatcher.Submit(ctx, domain.ActionDashboardStats, nil)
	if !res.Success {
		return stats, errors.New(res.Error)
	}
	obj := webhook.UnwrapObject(res.Data)
	if len(bytes.TrimSpace(obj)) == 0 {
		return stats, webhook.ErrEmptyData
	}
	if err := json.Unmarshal(obj, &stats); err != nil {
		return stats, fmt.Errorf("%w: %v", webhook.ErrUnexpectedShape, err)
	}
	return stats, nil
}

// afterMutation — сброс кэшей и объявление в шину после успешной мутации.
func (s *InventoryService) afterMutation(ctx context.Context, action domain.Action) {
	s.Invalidate()
	if s.publisher == nil {
		return
	}
	ev := domain.InvalidationEvent{Action: action, Instance: s.instance, At: s.now().UTC()}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		// локальные кэши уже сброшены, остальные инстансы догонят по TTL
		s.log.Warnf(ctx, "publish invalidation action=%s err=%v", action, err)
	}
}

func (s *InventoryService) logDegraded(ctx context.Context, what string, src domain.Source, err error) {
	switch src {
	case domain.SourceStale:
		s.log.Warnf(ctx, "using cached %s due to fetch failure: %v", what, err)
	case domain.SourceDefault:
		s.log.Warnf(ctx, "using default %s due to fetch failure: %v", what, err)
	}
}

func cloneStats(st domain.DashboardStats) domain.DashboardStats {
	if st.LowStockItems != nil {
		v := *st.LowStockItems
		st.LowStockItems = &v
	}
	if st.OutOfStockItems != nil {
		v := *st.OutOfStockItems
		st.OutOfStockItems = &v
	}
	return st
}

// worstSource — default хуже stale, stale хуже свежих данных.
func worstSource(a, b domain.Source) domain.Source {
	rank := func(s domain.Source) int {
		switch s {
		case domain.SourceDefault:
			return 3
		case domain.SourceStale:
			return 2
		case domain.SourceUpstream:
			return 1
		default:
			return 0
		}
	}
	if rank(b) > rank(a) {
		return b
	}
	return a
}
