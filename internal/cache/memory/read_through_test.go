package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gunvolt24/vetstock/internal/domain"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type source struct {
	calls atomic.Int32
	mu    sync.Mutex
	val   []string
	err   error
}

func (s *source) set(val []string, err error) {
	s.mu.Lock()
	s.val, s.err = val, err
	s.mu.Unlock()
}

func (s *source) fetch(context.Context) ([]string, error) {
	s.calls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val, s.err
}

func newTestCache(src *source, clk *fakeClock, ttl time.Duration) *ReadThrough[[]string] {
	return NewReadThrough(Options[[]string]{
		Name:     "test",
		TTL:      ttl,
		Fetch:    src.fetch,
		Fallback: func() []string { return []string{"default"} },
		Clone:    func(v []string) []string { return append([]string(nil), v...) },
		Now:      clk.Now,
	})
}

func TestReadThrough_WithinTTL_SingleFetch(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	src := &source{val: []string{"p1"}}
	c := newTestCache(src, clk, 5*time.Minute)
	ctx := context.Background()

	v, s, err := c.Get(ctx, false)
	if err != nil || s != domain.SourceUpstream || len(v) != 1 {
		t.Fatalf("first get: v=%v s=%s err=%v", v, s, err)
	}
	clk.Advance(4 * time.Minute)
	v, s, _ = c.Get(ctx, false)
	if s != domain.SourceCache || v[0] != "p1" {
		t.Fatalf("second get: v=%v s=%s", v, s)
	}
	if n := src.calls.Load(); n != 1 {
		t.Fatalf("fetch calls=%d, want 1", n)
	}
}

func TestReadThrough_AfterTTL_Refetches(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	src := &source{val: []string{"p1"}}
	c := newTestCache(src, clk, 5*time.Minute)

	_, _, _ = c.Get(context.Background(), false)
	clk.Advance(5*time.Minute + time.Second)
	src.set([]string{"p1", "p2"}, nil)

	v, s, _ := c.Get(context.Background(), false)
	if s != domain.SourceUpstream || len(v) != 2 {
		t.Fatalf("v=%v s=%s", v, s)
	}
	if n := src.calls.Load(); n != 2 {
		t.Fatalf("fetch calls=%d, want 2", n)
	}
}

func TestReadThrough_Force_Refetches(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	src := &source{val: []string{"p1"}}
	c := newTestCache(src, clk, time.Hour)

	_, _, _ = c.Get(context.Background(), false)
	_, s, _ := c.Get(context.Background(), true)
	if s != domain.SourceUpstream {
		t.Fatalf("forced get must hit upstream, got %s", s)
	}
	if n := src.calls.Load(); n != 2 {
		t.Fatalf("fetch calls=%d, want 2", n)
	}
}

func TestReadThrough_FailureServesStale(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	src := &source{val: []string{"p1"}}
	c := newTestCache(src, clk, time.Minute)

	_, _, _ = c.Get(context.Background(), false)
	src.set(nil, errors.New("backend down"))

	v, s, err := c.Get(context.Background(), true)
	if s != domain.SourceStale || err == nil {
		t.Fatalf("s=%s err=%v", s, err)
	}
	if len(v) != 1 || v[0] != "p1" {
		t.Fatalf("stale value=%v", v)
	}
}

func TestReadThrough_NeverPopulated_ServesDefault(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	src := &source{err: errors.New("backend down")}
	c := newTestCache(src, clk, time.Minute)

	v, s, err := c.Get(context.Background(), false)
	if s != domain.SourceDefault || err == nil {
		t.Fatalf("s=%s err=%v", s, err)
	}
	if len(v) != 1 || v[0] != "default" {
		t.Fatalf("default value=%v", v)
	}

	// неудача не заполняет кэш
	_, _, _ = c.Get(context.Background(), false)
	if n := src.calls.Load(); n != 2 {
		t.Fatalf("fetch calls=%d, want 2", n)
	}
}

func TestReadThrough_Invalidate_KeepsValueAsLastGood(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	src := &source{val: []string{"p1"}}
	c := newTestCache(src, clk, time.Hour)

	_, _, _ = c.Get(context.Background(), false)
	c.Invalidate()
	if !c.FetchedAt().IsZero() {
		t.Fatalf("timestamp must be reset")
	}

	src.set(nil, errors.New("backend down"))
	v, s, _ := c.Get(context.Background(), false)
	if s != domain.SourceStale || v[0] != "p1" {
		t.Fatalf("after invalidate v=%v s=%s", v, s)
	}
	if n := src.calls.Load(); n != 2 {
		t.Fatalf("invalidated cache must refetch, calls=%d", n)
	}
}

func TestReadThrough_ReturnsClones(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	src := &source{val: []string{"p1"}}
	c := newTestCache(src, clk, time.Hour)

	v, _, _ := c.Get(context.Background(), false)
	v[0] = "changed"

	v2, _, _ := c.Get(context.Background(), false)
	if v2[0] != "p1" {
		t.Fatalf("cache should return clones, got %v", v2)
	}
}

func TestReadThrough_ZeroTTL_AlwaysFetches(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	src := &source{val: []string{"p1"}}
	c := newTestCache(src, clk, 0)

	_, _, _ = c.Get(context.Background(), false)
	_, _, _ = c.Get(context.Background(), false)
	if n := src.calls.Load(); n != 2 {
		t.Fatalf("fetch calls=%d, want 2", n)
	}
}

func TestReadThrough_ConcurrentRefreshCollapsed(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	c := NewReadThrough(Options[int]{
		Name: "concurrent",
		TTL:  time.Minute,
		Fetch: func(context.Context) (int, error) {
			calls.Add(1)
			<-release
			return 42, nil
		},
	})

	const n = 8
	var wg sync.WaitGroup
	results := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, _ := c.Get(context.Background(), false)
			results <- v
		}()
	}

	// даём горутинам встать в ожидание одного и того же обновления
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for v := range results {
		if v != 42 {
			t.Fatalf("got %d, want 42", v)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("fetch calls=%d, want 1", got)
	}
}

func TestReadThrough_CallerCancelled_ServesFallback(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	c := NewReadThrough(Options[string]{
		Name: "cancel",
		TTL:  time.Minute,
		Fetch: func(context.Context) (string, error) {
			<-release
			return "late", nil
		},
		Fallback: func() string { return "default" },
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, s, err := c.Get(ctx, false)
	if v != "default" || s != domain.SourceDefault || !errors.Is(err, context.Canceled) {
		t.Fatalf("v=%q s=%s err=%v", v, s, err)
	}
}

// mutationRace — первый fetch блокируется до release и отдаёт данные до мутации,
// все последующие сразу отдают данные после неё.
type mutationRace struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func newMutationRace() *mutationRace {
	return &mutationRace{started: make(chan struct{}), release: make(chan struct{})}
}

func (m *mutationRace) fetch(context.Context) (string, error) {
	if m.calls.Add(1) == 1 {
		close(m.started)
		<-m.release
		return "pre-mutation", nil
	}
	return "post-mutation", nil
}

func (m *mutationRace) cache() *ReadThrough[string] {
	return NewReadThrough(Options[string]{Name: "race", TTL: time.Hour, Fetch: m.fetch})
}

func TestReadThrough_InvalidateDuringRefresh_NextReadRefetches(t *testing.T) {
	m := newMutationRace()
	c := m.cache()
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = c.Get(ctx, false)
	}()
	<-m.started

	c.Invalidate() // мутация прошла, пока первый fetch ещё в полёте
	close(m.release)
	<-done

	if !c.FetchedAt().IsZero() {
		t.Fatalf("value fetched before Invalidate must not be stamped fresh")
	}
	v, s, err := c.Get(ctx, false)
	if err != nil || s != domain.SourceUpstream || v != "post-mutation" {
		t.Fatalf("after invalidate: v=%q s=%s err=%v", v, s, err)
	}
	if n := m.calls.Load(); n != 2 {
		t.Fatalf("fetch calls=%d, want 2", n)
	}
}

func TestReadThrough_ReaderAfterInvalidate_DoesNotJoinOldRefresh(t *testing.T) {
	m := newMutationRace()
	c := m.cache()
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = c.Get(ctx, false)
	}()
	<-m.started
	c.Invalidate()

	// новый читатель не ждёт старый fetch, а начинает свой
	v, s, _ := c.Get(ctx, false)
	if s != domain.SourceUpstream || v != "post-mutation" {
		t.Fatalf("reader after invalidate: v=%q s=%s", v, s)
	}

	close(m.release)
	<-done

	// запоздавший старый fetch не затирает более новое значение
	v, s, _ = c.Get(ctx, false)
	if s != domain.SourceCache || v != "post-mutation" {
		t.Fatalf("after late refresh: v=%q s=%s", v, s)
	}
	if n := m.calls.Load(); n != 2 {
		t.Fatalf("fetch calls=%d, want 2", n)
	}
}
