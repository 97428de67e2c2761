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
	bValidator "github.com/x-xyz/auctionhouse/base/validator"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
	"github.com/x-xyz/auctionhouse/domain/ledger"
	mmiddleware "github.com/x-xyz/auctionhouse/middleware"
	"github.com/x-xyz/auctionhouse/service/cache"
	"github.com/x-xyz/auctionhouse/service/cache/provider"
	"github.com/x-xyz/auctionhouse/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/auctionhouse/service/cache/provider/redis"
	"github.com/x-xyz/auctionhouse/service/chain"
	"github.com/x-xyz/auctionhouse/service/chain/contract"
	"github.com/x-xyz/auctionhouse/service/notifier"
	"github.com/x-xyz/auctionhouse/service/query"
	"github.com/x-xyz/auctionhouse/service/redis"
	auth_delivery "github.com/x-xyz/auctionhouse/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/auctionhouse/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/auctionhouse/stores/auth/usecase"
	hc_delivery "github.com/x-xyz/auctionhouse/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/auctionhouse/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/auctionhouse/stores/healthcheck/usecase"
	house_delivery "github.com/x-xyz/auctionhouse/stores/house/delivery/http"
	house_usecase "github.com/x-xyz/auctionhouse/stores/house/usecase"
	journal_memory "github.com/x-xyz/auctionhouse/stores/journal/repository/memory"
	journal_mongo "github.com/x-xyz/auctionhouse/stores/journal/repository/mongo"
	ledger_delivery "github.com/x-xyz/auctionhouse/stores/ledger/delivery/http"
	ledger_usecase "github.com/x-xyz/auctionhouse/stores/ledger/usecase"
)

const (
	ledgerSandbox = "sandbox"
	ledgerChain   = "chain"
)

func init() {
	if err := env.Load("house", os.Args[1:]); err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

//	@title			Auction House API
//	@version		1.0
//	@description	Commands and queries of the sequential auction house.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				sign the nonce from /auth/nonce, post it to /auth/sign and apply the token with `bearer {token}`
func main() {
	defer log.Sync()

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.AddContext())
	e.Use(middL.ResponseLogger())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	context := ctx.Background()

	// mongo is optional in sandbox mode, the journal then lives in memory
	var mongoClient *mongoclient.Client
	var journal auction.Journal
	if uri := viper.GetString("mongo.uri"); uri != "" {
		context.Info("init mongo")
		mongoClient = mongoclient.MustConnectMongoClient(
			uri,
			viper.GetString("mongo.authDBName"),
			viper.GetString("mongo.dbName"),
			viper.GetBool("mongo.enableSSL"),
			true,
			2,
		)
		q := query.New(mongoClient, viper.GetBool("mongo.checkIndex"))
		j, err := journal_mongo.NewJournalMongoRepo(context, q)
		if err != nil {
			context.WithField("err", err).Panic("NewJournalMongoRepo failed")
		}
		journal = j
	} else {
		context.Warn("no mongo configured, journal is kept in memory")
		journal = journal_memory.NewJournal()
	}

	var redisCache redis.Service
	var houseNotifier auction.Notifier
	var nonceCache provider.Provider = primitive.NewPrimitive("nonce", viper.GetInt("cache.localSizeMB"))
	if uri := viper.GetString("redis.uri"); uri != "" {
		context.Info("init redis")
		name := viper.GetString("redis.name")
		pool := redisclient.MustConnectRedis(uri, viper.GetString("redis.password"), redisclient.RedisParam{
			PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
			Retry:          true,
		})
		redisCache = redis.New(name, metrics.New(name), &redis.Pools{Src: pool})
		houseNotifier = notifier.NewRedisNotifier(redisCache)
		// every instance serving /auth must see the same nonces
		nonceCache = redisProvider.NewRedis(redisCache)
	}

	houseCfg := auction.Config{
		Operator:                  domain.Address(viper.GetString("house.operator")),
		Custodian:                 domain.Address(viper.GetString("house.address")),
		Duration:                  viper.GetDuration("house.duration"),
		MinBidIncrementPercentage: uint8(viper.GetUint("house.minBidIncrementPercentage")),
		TimeBuffer:                viper.GetDuration("house.timeBuffer"),
	}

	var registry auction.AssetRegistry
	var sandboxRegistry ledger.Registry
	mode := viper.GetString("house.ledger")
	switch mode {
	case ledgerChain:
		context.Info("init chain client")
		chainClient, err := chain.NewClient(context, &chain.ClientCfg{
			ChainId:        domain.ChainId(viper.GetInt32("chain.chainId")),
			RpcUrl:         viper.GetString("chain.rpcUrl"),
			PrivateKey:     viper.GetString("chain.privateKey"),
			MaxConcurrency: viper.GetInt("chain.maxConcurrency"),
			MineTimeout:    viper.GetDuration("chain.mineTimeout"),
		})
		if err != nil {
			context.WithField("err", err).Panic("chain.NewClient failed")
		}
		if chainClient.Sender().IsEmpty() {
			context.Panic("chain mode needs chain.privateKey, the house signs the transfers")
		}
		// assets sit with the signer, so it is the custodian
		houseCfg.Custodian = chainClient.Sender()
		registry = contract.NewErc721(chainClient)
	case ledgerSandbox:
		sandboxRegistry = ledger_usecase.NewRegistry(houseCfg.Custodian)
		registry = sandboxRegistry
	default:
		context.WithField("ledger", mode).Panic("unknown house.ledger")
	}
	// native value stays on the in-process bank in both modes, Restore refills
	// what the journal says the house holds
	bank := ledger_usecase.NewBank(houseCfg.Custodian)
	if mode == ledgerSandbox {
		context.Warn("sandbox balances and unlisted tokens live in memory, a restart keeps only what the house holds")
	}

	house, err := house_usecase.NewHouseUseCase(&house_usecase.HouseUseCaseCfg{
		Config:   houseCfg,
		Registry: registry,
		Custody:  bank,
		Journal:  journal,
		Notifier: houseNotifier,
	})
	if err != nil {
		context.WithField("err", err).Panic("NewHouseUseCase failed")
	}
	if err := house.Restore(context); err != nil {
		context.WithField("err", err).Panic("house.Restore failed")
	}

	auth := auth_usecase.New(&auth_usecase.AuthUseCaseCfg{
		JwtSecret:    viper.GetString("auth.jwtSecret"),
		SignatureMsg: viper.GetString("auth.signatureMsg"),
		NonceCache: cache.New(cache.ServiceConfig{
			Ttl:   viper.GetDuration("auth.nonceTtl"),
			Pfx:   "auth",
			Cache: nonceCache,
		}),
	})
	authMiddleware := auth_middleware.New(auth, func(c ctx.Ctx) domain.Address {
		return house.Config(c).Operator
	})

	hc := hc_usecase.New(hc_repo.New(mongoClient, redisCache), func(c ctx.Ctx) error {
		if err := house.Halted(c); err != nil {
			return err
		}
		_, err := journal.LastSeq(c)
		return err
	})

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, viper.GetString("auth.signatureMsg"))
	house_delivery.New(e, house, authMiddleware)
	if mode == ledgerSandbox {
		ledger_delivery.New(e, sandboxRegistry, bank, houseCfg.Custodian, authMiddleware)
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	serve(context, e, viper.GetString("server.address"))
}

func serve(context ctx.Ctx, e *echo.Echo, address string) {
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
