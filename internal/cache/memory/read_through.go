package memory

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Gunvolt24/vetstock/internal/domain"
	"github.com/Gunvolt24/vetstock/pkg/metrics"
)

var errNoFetch = errors.New("cache: fetch func is not set")

// Options — параметры read-through кэша.
type Options[T any] struct {
	Name     string                               // метка в метриках
	TTL      time.Duration                        // <= 0 — каждое чтение идёт в бэкенд
	Fetch    func(ctx context.Context) (T, error) // источник
	Fallback func() T                             // набор по умолчанию, пока кэш ни разу не заполнялся
	Clone    func(T) T                            // копия наружу; nil — значение как есть
	Now      func() time.Time                     // часы; nil — time.Now
}

// ReadThrough — кэш одного значения с TTL.
// Свежее значение отдаётся без сети; иначе Fetch, при его ошибке последнее удачное
// значение, а если его нет — Fallback. Параллельные обновления схлопываются.
type ReadThrough[T any] struct {
	name     string
	ttl      time.Duration
	fetch    func(ctx context.Context) (T, error)
	fallback func() T
	clone    func(T) T
	now      func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	value     T
	fetchedAt time.Time // нулевое — устарело
	populated bool
	gen       uint64 // растёт на каждом Invalidate
	valueGen  uint64 // поколение, из которого взято value
}

func NewReadThrough[T any](opts Options[T]) *ReadThrough[T] {
	c := &ReadThrough[T]{
		name:     opts.Name,
		ttl:      opts.TTL,
		fetch:    opts.Fetch,
		fallback: opts.Fallback,
		clone:    opts.Clone,
		now:      opts.Now,
	}
	if c.fetch == nil {
		c.fetch = func(context.Context) (T, error) {
			var zero T
			return zero, errNoFetch
		}
	}
	if c.fallback == nil {
		c.fallback = func() T {
			var zero T
			return zero
		}
	}
	if c.clone == nil {
		c.clone = func(v T) T { return v }
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Get — значение и его источник. Ошибка не nil только для stale/default:
// значение при этом пригодно, ошибка объясняет, почему оно не свежее.
func (c *ReadThrough[T]) Get(ctx context.Context, force bool) (T, domain.Source, error) {
	c.mu.Lock()
	if !force && c.freshLocked(c.now()) {
		v := c.value
		c.mu.Unlock()
		metrics.CacheOps.WithLabelValues(c.name, "hit").Inc()
		return c.clone(v), domain.SourceCache, nil
	}
	gen := c.gen
	c.mu.Unlock()
	metrics.CacheOps.WithLabelValues(c.name, "miss").Inc()

	// обновление не должно обрываться из-за отмены чужого запроса;
	// после Invalidate читатели не присоединяются к fetch, начатому до него
	fetchCtx := context.WithoutCancel(ctx)
	key := c.name + "#" + strconv.FormatUint(gen, 10)
	ch := c.group.DoChan(key, func() (any, error) {
		return c.refresh(fetchCtx, gen)
	})

	var err error
	select {
	case r := <-ch:
		if r.Err == nil {
			metrics.CacheOps.WithLabelValues(c.name, "refresh").Inc()
			return c.clone(r.Val.(T)), domain.SourceUpstream, nil
		}
		err = r.Err
	case <-ctx.Done():
		err = ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.populated {
		metrics.CacheOps.WithLabelValues(c.name, "stale").Inc()
		return c.clone(c.value), domain.SourceStale, err
	}
	metrics.CacheOps.WithLabelValues(c.name, "default").Inc()
	return c.fallback(), domain.SourceDefault, err
}

// refresh — значение, полученное до Invalidate, свежим не считается: следующее
// чтение снова пойдёт в бэкенд. Более новое значение старым не затирается.
func (c *ReadThrough[T]) refresh(ctx context.Context, gen uint64) (T, error) {
	v, err := c.fetch(ctx)
	if err != nil {
		return v, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.populated && gen < c.valueGen {
		return v, nil
	}
	c.value = v
	c.valueGen = gen
	c.populated = true
	if gen == c.gen {
		c.fetchedAt = c.now()
	}
	return v, nil
}

// Invalidate — следующее чтение пойдёт в бэкенд; значение остаётся как последнее удачное.
func (c *ReadThrough[T]) Invalidate() {
	c.mu.Lock()
	c.fetchedAt = time.Time{}
	c.gen++
	c.mu.Unlock()
	metrics.CacheOps.WithLabelValues(c.name, "invalidated").Inc()
}

// FetchedAt — время последнего удачного обновления (нулевое после Invalidate).
func (c *ReadThrough[T]) FetchedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchedAt
}

func (c *ReadThrough[T]) freshLocked(now time.Time) bool {
	if !c.populated || c.fetchedAt.IsZero() || c.ttl <= 0 {
		return false
	}
	return now.Sub(c.fetchedAt) < c.ttl
}
