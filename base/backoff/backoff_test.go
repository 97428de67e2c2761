package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponential(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Millisecond, 4*time.Millisecond)

	expected := []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond, 4 * time.Millisecond}
	for i, d := range expected {
		req.Equal(d, b.NextDuration, "attempt %d", i)
		req.NoError(b.Backoff(context.Background()))
	}
	req.Equal(4, b.Attempts())

	b.Reset()
	req.Equal(0, b.Attempts())
	req.Equal(time.Millisecond, b.NextDuration)
}

func TestLinear(t *testing.T) {
	req := require.New(t)
	b := NewLinear(time.Millisecond, 0)
	req.Equal(time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(2*time.Millisecond, b.NextDuration)
	req.Equal(time.Millisecond, b.LastDuration)
}

func TestBackoffCancelled(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Hour, 0)
	c, cancel := context.WithCancel(context.Background())
	cancel()
	req.ErrorIs(b.Backoff(c), context.Canceled)
	req.Equal(0, b.Attempts())
}
