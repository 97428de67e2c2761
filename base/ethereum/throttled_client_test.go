package ethereum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThrottledClientGate(t *testing.T) {
	req := require.New(t)
	c := NewThrottledClient(nil, 1)

	req.NoError(c.before(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req.ErrorIs(c.before(ctx), context.Canceled)

	c.after()
	req.NoError(c.before(context.Background()))
	c.after()
}
