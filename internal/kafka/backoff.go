package kafka

import (
	"context"
	"math/rand"
	"time"
)

// backoff — экспоненциальная задержка с equal-jitter: половина интервала фиксирована,
// вторая половина случайна. Не потокобезопасен, принадлежит одному циклу Run.
type backoff struct {
	initial time.Duration
	max     time.Duration
	cur     time.Duration
	rnd     *rand.Rand
}

func newBackoff(initial, maxDelay time.Duration, seed int64) *backoff {
	return &backoff{
		initial: initial,
		max:     maxDelay,
		cur:     initial,
		rnd:     rand.New(rand.NewSource(seed)),
	}
}

// next — задержка перед очередным повтором; интервал удваивается до max.
func (b *backoff) next() time.Duration {
	d := b.jitter(b.cur)
	b.cur = min(b.cur*2, b.max)
	return d
}

func (b *backoff) reset() { b.cur = b.initial }

// jitter — d/2 + случайное [0, d-d/2].
func (b *backoff) jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(b.rnd.Int63n(int64(d-half)+1))
}

// sleepCtx — ждёт d; false, если контекст отменён раньше.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
