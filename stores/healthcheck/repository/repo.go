package repository

import (
	"time"

	"github.com/viney-shih/goroutines"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/database/mongoclient"
	hcdomain "github.com/x-xyz/auctionhouse/domain/healthcheck"
	"github.com/x-xyz/auctionhouse/domain/keys"
	"github.com/x-xyz/auctionhouse/service/redis"
)

const pingTimeout = 2 * time.Second

type impl struct {
	mgoClient  *mongoclient.Client
	redisCache redis.Service
}

// New checks the stores given, a nil one is not configured and skipped
func New(
	mgoClient *mongoclient.Client,
	redisCache redis.Service,
) hcdomain.HealthCheckRepo {
	return &impl{
		mgoClient:  mgoClient,
		redisCache: redisCache,
	}
}

// PingDB pings every configured store in parallel and returns the first failure
func (im *impl) PingDB(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()

	pings := []func() (interface{}, error){}
	if im.mgoClient != nil {
		pings = append(pings, func() (interface{}, error) {
			if err := im.mgoClient.Ping(ctx, readpref.Primary()); err != nil {
				context.WithField("err", err).Error("ping mongo error")
				return nil, err
			}
			return nil, nil
		})
	}
	if im.redisCache != nil {
		pings = append(pings, func() (interface{}, error) {
			if err := im.redisCache.Set(ctx, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second); err != nil {
				context.WithField("err", err).Error("test redis set failed")
				return nil, err
			}
			return nil, nil
		})
	}
	if len(pings) == 0 {
		return nil
	}

	b := goroutines.NewBatch(len(pings), goroutines.WithBatchSize(len(pings)))
	defer b.Close()
	for _, ping := range pings {
		b.Queue(ping)
	}
	b.QueueComplete()

	var firstErr error
	for ret := range b.Results() {
		if ret.Error() != nil && firstErr == nil {
			firstErr = ret.Error()
		}
	}
	return firstErr
}
