package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain/keys"
	mockRedis "github.com/x-xyz/auctionhouse/service/redis/mocks"
)

func recv(t *testing.T, ch <-chan uint64) uint64 {
	select {
	case seq := <-ch:
		return seq
	case <-time.After(5 * time.Second):
		require.FailNow(t, "no notification")
	}
	return 0
}

func TestSendKeepsNewest(t *testing.T) {
	req := require.New(t)
	ch := make(chan uint64, 1)
	send(ch, 3)
	send(ch, 5)
	send(ch, 4)
	req.Equal(uint64(5), <-ch)
	req.Len(ch, 0)
}

func TestMemoryNotifier(t *testing.T) {
	req := require.New(t)
	c, cancel := ctx.WithCancel(ctx.Background())

	n := NewMemoryNotifier()
	ch, err := n.Subscribe(c)
	req.NoError(err)

	req.NoError(n.Publish(c, 7))
	req.Equal(uint64(7), recv(t, ch))

	cancel()
	_, open := <-ch
	req.False(open)
	req.NoError(n.Publish(ctx.Background(), 8))
}

func TestRedisNotifier(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	r := &mockRedis.Service{}

	r.On("Publish", mock.Anything, keys.ChannelJournal, []byte("12")).Return(nil).Once()
	n := NewRedisNotifier(r)
	req.NoError(n.Publish(c, 12))

	msgs := make(chan []byte, 2)
	msgs <- []byte("garbage")
	msgs <- []byte("13")
	close(msgs)
	r.On("Subscribe", mock.Anything, keys.ChannelJournal).Return((<-chan []byte)(msgs), nil).Once()

	ch, err := n.Subscribe(c)
	req.NoError(err)
	req.Equal(uint64(13), recv(t, ch))
	_, open := <-ch
	req.False(open)
	r.AssertExpectations(t)
}
