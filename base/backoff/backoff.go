package backoff

import (
	"context"
	"time"
)

type Strategy interface {
	Duration(attempt int, start time.Duration) time.Duration
}

// Backoff sleeps a growing amount of time between failed attempts
type Backoff struct {
	LastDuration time.Duration
	NextDuration time.Duration
	start        time.Duration
	limit        time.Duration
	attempt      int
	strategy     Strategy
}

func New(strategy Strategy, start, limit time.Duration) *Backoff {
	b := &Backoff{strategy: strategy, start: start, limit: limit}
	b.Reset()
	return b
}

func (b *Backoff) Reset() {
	b.attempt = 0
	b.LastDuration = 0
	b.NextDuration = b.next()
}

func (b *Backoff) Attempts() int {
	return b.attempt
}

// Backoff waits NextDuration, it returns early with the context's error once ctx is done
func (b *Backoff) Backoff(ctx context.Context) error {
	timer := time.NewTimer(b.NextDuration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	b.attempt++
	b.LastDuration = b.NextDuration
	b.NextDuration = b.next()
	return nil
}

func (b *Backoff) next() time.Duration {
	d := b.strategy.Duration(b.attempt, b.start)
	if b.limit > 0 && (d > b.limit || d <= 0) {
		d = b.limit
	}
	return d
}

type exponential struct{}

func (exponential) Duration(attempt int, start time.Duration) time.Duration {
	if attempt >= 62 {
		return -1
	}
	return start << uint(attempt)
}

func NewExponential(start, limit time.Duration) *Backoff {
	return New(exponential{}, start, limit)
}

type linear struct{}

func (linear) Duration(attempt int, start time.Duration) time.Duration {
	return time.Duration(attempt+1) * start
}

func NewLinear(start, limit time.Duration) *Backoff {
	return New(linear{}, start, limit)
}
