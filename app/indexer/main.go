package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/database/mongoclient"
	"github.com/x-xyz/auctionhouse/base/database/redisclient"
	"github.com/x-xyz/auctionhouse/base/env"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/base/metrics"
	"github.com/x-xyz/auctionhouse/base/tracker"
	bValidator "github.com/x-xyz/auctionhouse/base/validator"
	"github.com/x-xyz/auctionhouse/domain/auction"
	mmiddleware "github.com/x-xyz/auctionhouse/middleware"
	"github.com/x-xyz/auctionhouse/service/cache"
	"github.com/x-xyz/auctionhouse/service/cache/provider"
	"github.com/x-xyz/auctionhouse/service/cache/provider/compound"
	"github.com/x-xyz/auctionhouse/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/auctionhouse/service/cache/provider/redis"
	"github.com/x-xyz/auctionhouse/service/notifier"
	"github.com/x-xyz/auctionhouse/service/query"
	"github.com/x-xyz/auctionhouse/service/redis"
	hc_delivery "github.com/x-xyz/auctionhouse/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/auctionhouse/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/auctionhouse/stores/healthcheck/usecase"
	journal_mongo "github.com/x-xyz/auctionhouse/stores/journal/repository/mongo"
	mirror_delivery "github.com/x-xyz/auctionhouse/stores/mirror/delivery/http"
	mirror_repository "github.com/x-xyz/auctionhouse/stores/mirror/repository/mongo"
	mirror_usecase "github.com/x-xyz/auctionhouse/stores/mirror/usecase"
	ts_repository "github.com/x-xyz/auctionhouse/stores/tracker_state/repository/mongo"
	ts_usecase "github.com/x-xyz/auctionhouse/stores/tracker_state/usecase"
)

func init() {
	if err := env.Load("indexer", os.Args[1:]); err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

//	@title			Auction Mirror API
//	@version		1.0
//	@description	Read model of the auction house, rebuilt from its journal.
func main() {
	defer log.Sync()
	c, cancel := ctx.WithCancel(ctx.Background())
	defer cancel()

	ctxTimeout := viper.GetDuration("context.timeout")
	indexerInfo := viper.Sub("indexer")
	c.WithFields(log.Fields{
		"tag":      indexerInfo.GetString("tag"),
		"batch":    indexerInfo.GetInt("batch"),
		"interval": indexerInfo.GetDuration("interval"),
	}).Info("config")

	// the mirror is a mongo store, there is nothing to index into without it
	c.Info("init mongo")
	mongoClient := mongoclient.MustConnectMongoClient(
		viper.GetString("mongo.uri"),
		viper.GetString("mongo.authDBName"),
		viper.GetString("mongo.dbName"),
		viper.GetBool("mongo.enableSSL"),
		true,
		2,
	)
	q := query.New(mongoClient, viper.GetBool("mongo.checkIndex"))

	layers := []provider.Provider{primitive.NewPrimitive("mirror", viper.GetInt("cache.localSizeMB"))}
	var redisCache redis.Service
	var journalNotifier auction.Notifier
	if uri := viper.GetString("redis.uri"); uri != "" {
		c.Info("init redis")
		name := viper.GetString("redis.name")
		pool := redisclient.MustConnectRedis(uri, viper.GetString("redis.password"), redisclient.RedisParam{
			PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
			Retry:          true,
		})
		redisCache = redis.New(name, metrics.New(name), &redis.Pools{Src: pool})
		journalNotifier = notifier.NewRedisNotifier(redisCache)
		layers = append(layers, redisProvider.NewRedis(redisCache))
	} else {
		c.Warn("no redis configured, the tracker polls only")
	}

	journal, err := journal_mongo.NewJournalMongoRepo(c, q)
	if err != nil {
		c.WithField("err", err).Panic("NewJournalMongoRepo failed")
	}
	tsRepo, err := ts_repository.NewTrackerStateMongoRepo(c, q)
	if err != nil {
		c.WithField("err", err).Panic("NewTrackerStateMongoRepo failed")
	}
	auctionRepo, err := mirror_repository.NewAuctionRepo(c, q)
	if err != nil {
		c.WithField("err", err).Panic("NewAuctionRepo failed")
	}
	bidRepo, err := mirror_repository.NewBidRepo(c, q)
	if err != nil {
		c.WithField("err", err).Panic("NewBidRepo failed")
	}
	accountRepo, err := mirror_repository.NewAccountRepo(c, q)
	if err != nil {
		c.WithField("err", err).Panic("NewAccountRepo failed")
	}

	mirror := mirror_usecase.NewMirrorUseCase(&mirror_usecase.MirrorUseCaseCfg{
		AuctionRepo: auctionRepo,
		BidRepo:     bidRepo,
		AccountRepo: accountRepo,
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   viper.GetDuration("cache.ttl"),
			Pfx:   "mirror",
			Cache: compound.NewCompound(layers),
		}),
	})

	errCh := make(chan error, 1)
	journalTracker, err := tracker.NewJournalTracker(&tracker.JournalTrackerCfg{
		Journal:             journal,
		Notifier:            journalNotifier,
		Transactor:          q,
		TrackerStateUseCase: ts_usecase.NewTrackerStateUseCase(tsRepo, ctxTimeout),
		EventHandl:          mirror,
		ErrorCh:             errCh,
		TrackerTag:          indexerInfo.GetString("tag"),
		BatchSize:           indexerInfo.GetInt("batch"),
		PollInterval:        indexerInfo.GetDuration("interval"),
	})
	if err != nil {
		c.WithField("err", err).Panic("NewJournalTracker failed")
	}
	journalTracker.Start(c)

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.AddContext())
	e.Use(middL.ResponseLogger())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	hc_delivery.New(e, hc_usecase.New(hc_repo.New(mongoClient, redisCache), nil))
	mirror_delivery.New(e, mirror)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(viper.GetString("server.indexerAddress")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case sig := <-quit:
		log.Log().WithField("signal", sig).Info("received signal")
	case err := <-errCh:
		log.Log().WithField("err", err).Error("journal tracker stopped")
	}

	cancel()
	journalTracker.Wait()

	sCtx, sCancel := ctx.WithTimeout(ctx.Background(), 10*time.Second)
	defer sCancel()
	if err := e.Shutdown(sCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
