package notifier

import (
	"strconv"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain/auction"
	"github.com/x-xyz/auctionhouse/domain/keys"
	"github.com/x-xyz/auctionhouse/service/redis"
)

type redisNotifier struct {
	redis   redis.Service
	channel string
}

// NewRedisNotifier announces committed seqs over redis pub/sub, so an indexer in another process wakes up at once
func NewRedisNotifier(r redis.Service) auction.Notifier {
	return &redisNotifier{redis: r, channel: keys.ChannelJournal}
}

func (n *redisNotifier) Publish(c ctx.Ctx, seq uint64) error {
	return n.redis.Publish(c, n.channel, []byte(strconv.FormatUint(seq, 10)))
}

func (n *redisNotifier) Subscribe(c ctx.Ctx) (<-chan uint64, error) {
	msgs, err := n.redis.Subscribe(c, n.channel)
	if err != nil {
		return nil, err
	}

	out := make(chan uint64, 1)
	go func() {
		defer close(out)
		for msg := range msgs {
			seq, err := strconv.ParseUint(string(msg), 10, 64)
			if err != nil {
				c.WithField("msg", string(msg)).Warn("malformed journal notification")
				continue
			}
			send(out, seq)
		}
	}()
	return out, nil
}

// send keeps only the newest seq when the reader is behind, it reads everything up to it anyway
func send(ch chan uint64, seq uint64) {
	for {
		select {
		case ch <- seq:
			return
		default:
		}
		select {
		case old := <-ch:
			if old > seq {
				seq = old
			}
		default:
		}
	}
}
