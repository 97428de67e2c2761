package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/auctionhouse/base/ctx"
)

// Forever is the expire value of keys without ttl
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: key not found")
	// ErrNoPool is returned when no pool serves the command
	ErrNoPool = errors.New("redis: no pool available")
)

// Service is the subset of redis the house and its indexer need
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(c ctx.Ctx, ks ...string) (int, error)
	// TTL returns the remaining seconds, -1 for keys without expire
	TTL(c ctx.Ctx, key string) (int, error)

	Publish(c ctx.Ctx, channel string, msg []byte) error
	// Subscribe delivers messages of channel until c is done, then closes the returned channel
	Subscribe(c ctx.Ctx, channel string) (<-chan []byte, error)
}
