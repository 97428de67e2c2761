package compound

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/service/cache/provider"
	"github.com/x-xyz/auctionhouse/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	lyr0 provider.Provider
	lyr1 provider.Provider
	im   *impl
}

func (ts *testsuite) SetupTest() {
	ts.lyr0 = primitive.NewPrimitive("layer 0", 64)
	ts.lyr1 = primitive.NewPrimitive("layer 1", 64)
	ts.im = NewCompound([]provider.Provider{ts.lyr0, ts.lyr1}).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSet() {
	k := "key"
	v := []byte("value")

	ts.NoError(ts.im.Set(mockCtx, k, v, time.Minute))
	r0, _, e := ts.lyr0.Get(mockCtx, k)
	ts.NoError(e)
	ts.Equal(v, r0)
	r1, _, e := ts.lyr1.Get(mockCtx, k)
	ts.NoError(e)
	ts.Equal(v, r1)
}

func (ts *testsuite) TestGetFillsFrontLayers() {
	k := "key"
	v := []byte("value")

	_, _, e := ts.im.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, e)

	ts.NoError(ts.lyr1.Set(mockCtx, k, v, time.Minute))
	r, _, e := ts.im.Get(mockCtx, k)
	ts.NoError(e)
	ts.Equal(v, r)

	r0, _, e := ts.lyr0.Get(mockCtx, k)
	ts.NoError(e)
	ts.Equal(v, r0)
}

func (ts *testsuite) TestTakeAndDel() {
	k := "key"
	v := []byte("value")

	ts.NoError(ts.im.Set(mockCtx, k, v, time.Minute))
	r, e := ts.im.Take(mockCtx, k)
	ts.NoError(e)
	ts.Equal(v, r)

	_, _, e = ts.lyr0.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, e)
	_, e = ts.im.Take(mockCtx, k)
	ts.Equal(provider.ErrNotFound, e)

	ts.NoError(ts.im.Set(mockCtx, k, v, time.Minute))
	ts.NoError(ts.im.Del(mockCtx, k))
	_, _, e = ts.im.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, e)
}
