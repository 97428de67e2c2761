package cache

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain/keys"
	"github.com/x-xyz/auctionhouse/service/cache/provider"
	"github.com/x-xyz/auctionhouse/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type value struct {
	Value string `json:"value"`
}

type testsuite struct {
	suite.Suite
	im    *impl
	cache provider.Provider
}

func (ts *testsuite) SetupTest() {
	ts.cache = primitive.NewPrimitive("test", 64)
	ts.im = New(ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "testing",
		Cache: ts.cache,
	}).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestGet() {
	var (
		k = "key"
		v = value{"value"}
		c = &value{}
	)

	ts.Equal(ErrNotFound, ts.im.Get(mockCtx, k, c))

	sv, err := json.Marshal(v)
	ts.NoError(err)
	ts.NoError(ts.cache.Set(mockCtx, keys.RedisKey(ts.im.pfx, k), sv, time.Minute))
	ts.NoError(ts.im.Get(mockCtx, k, c))
	ts.Equal(v, *c)
}

func (ts *testsuite) TestSet() {
	var (
		k = "key"
		v = value{"value"}
		c = &value{}
	)

	ts.NoError(ts.im.Set(mockCtx, k, v))

	sv, _, err := ts.cache.Get(mockCtx, keys.RedisKey(ts.im.pfx, k))
	ts.NoError(err)
	ts.NoError(json.Unmarshal(sv, c))
	ts.Equal(v, *c)
}

func (ts *testsuite) TestGetByFunc() {
	var (
		k     = "key"
		v     = value{"value"}
		c     = &value{}
		calls = 0
	)
	getter := func() (interface{}, error) {
		calls++
		return &v, nil
	}

	ts.NoError(ts.im.GetByFunc(mockCtx, k, c, getter))
	ts.Equal(v, *c)

	c = &value{}
	ts.NoError(ts.im.GetByFunc(mockCtx, k, c, getter))
	ts.Equal(v, *c)
	ts.Equal(1, calls)

	boom := errors.New("boom")
	ts.Equal(boom, ts.im.GetByFunc(mockCtx, "other", c, func() (interface{}, error) {
		return nil, boom
	}))
}

func (ts *testsuite) TestTake() {
	var (
		k = "nonce"
		v = value{"123"}
		c = &value{}
	)

	ts.NoError(ts.im.Set(mockCtx, k, v))
	ts.NoError(ts.im.Take(mockCtx, k, c))
	ts.Equal(v, *c)
	ts.Equal(ErrNotFound, ts.im.Take(mockCtx, k, c))
}

func (ts *testsuite) TestDel() {
	ts.NoError(ts.im.Set(mockCtx, "key", value{"v"}))
	ts.NoError(ts.im.Del(mockCtx, "key"))
	ts.Equal(ErrNotFound, ts.im.Get(mockCtx, "key", &value{}))
}
