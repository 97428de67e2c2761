package compound

import (
	"time"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/service/cache/provider"
)

type impl struct {
	layers []provider.Provider
}

// NewCompound stacks providers, fastest first. Reads return on the first hit
// and fill the layers in front of it; the last layer is the shared one.
func NewCompound(layers []provider.Provider) provider.Provider {
	return &impl{layers}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	var (
		val    []byte
		ttl    time.Duration
		err    error
		hitIdx = -1
	)

	for idx, lyr := range im.layers {
		if val, ttl, err = lyr.Get(c, key); err == provider.ErrNotFound {
			continue
		} else if err != nil {
			return nil, time.Duration(0), err
		}
		hitIdx = idx
		break
	}

	if hitIdx == -1 {
		return nil, time.Duration(0), provider.ErrNotFound
	}

	for idx := 0; idx < hitIdx; idx++ {
		if err := im.layers[idx].Set(c, key, val, ttl); err != nil {
			return nil, time.Duration(0), err
		}
	}
	return val, ttl, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	for _, lyr := range im.layers {
		if err := lyr.Set(c, key, value, ttl); err != nil {
			return err
		}
	}
	return nil
}

// Take is decided by the last layer, the front layers only drop their copy
func (im *impl) Take(c ctx.Ctx, key string) ([]byte, error) {
	last := len(im.layers) - 1
	for _, lyr := range im.layers[:last] {
		if err := lyr.Del(c, key); err != nil {
			return nil, err
		}
	}
	return im.layers[last].Take(c, key)
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	for _, lyr := range im.layers {
		if err := lyr.Del(c, key); err != nil {
			return err
		}
	}
	return nil
}
