package mongoclient

import (
	"context"
	"crypto/tls"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionhouse/base/log"
)

const (
	mgSocketTimeout = 60 * time.Second
	connectTimeout  = 30 * time.Second
)

// Client wraps mongo.Client with the database the house lives in
type Client struct {
	DbName string
	*mongo.Client
}

// Config mirrors the mongo.* keys of the config file
type Config struct {
	URI        string
	AuthDBName string
	DBName     string
	SSL        bool
	// SetSafe waits for a replica set majority on every write
	SetSafe bool
	// PoolSizeMultiplier sizes the total pool as NumCPU * multiplier
	PoolSizeMultiplier float64
}

// MustConnectMongoClient panics when the database can't be reached
func MustConnectMongoClient(uri, authDBName, dbName string, ssl, setSafe bool, poolSizeMultiplier float64) *Client {
	cli, err := Connect(Config{
		URI:                uri,
		AuthDBName:         authDBName,
		DBName:             dbName,
		SSL:                ssl,
		SetSafe:            setSafe,
		PoolSizeMultiplier: poolSizeMultiplier,
	})
	if err != nil {
		log.Log().WithFields(log.Fields{"mongoURI": uri, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// Connect dials mongo and checks the database is usable. Transactions need
// a replica set, a standalone server only serves read paths.
func Connect(cfg Config) (*Client, error) {
	connSetting, err := connstring.Parse(cfg.URI)
	if err != nil {
		return nil, xerrors.Errorf("parse mongo uri: %w", err)
	}
	logger := log.Log().WithFields(log.Fields{
		"mongoHosts": connSetting.Hosts,
		"db":         cfg.DBName,
	})

	clientOpts := options.Client().ApplyURI(cfg.URI).SetSocketTimeout(mgSocketTimeout).SetRetryWrites(true)

	if connSetting.Username != "" && connSetting.AuthSource == "" {
		clientOpts.SetAuth(options.Credential{
			AuthMechanism:           connSetting.AuthMechanism,
			AuthMechanismProperties: connSetting.AuthMechanismProperties,
			Username:                connSetting.Username,
			Password:                connSetting.Password,
			PasswordSet:             connSetting.PasswordSet,
			AuthSource:              cfg.AuthDBName,
		})
	}

	if cfg.PoolSizeMultiplier > 0 && len(connSetting.Hosts) > 0 {
		// every host keeps its own pool
		poolSize := int(float64(runtime.NumCPU()) * cfg.PoolSizeMultiplier)
		poolSize = (poolSize + len(connSetting.Hosts) - 1) / len(connSetting.Hosts)
		clientOpts.SetMinPoolSize(uint64(poolSize / 4)).SetMaxPoolSize(uint64(poolSize))
		logger.WithField("poolSize", poolSize).Info("mongo driver pool size")
	}

	if cfg.SSL {
		clientOpts.SetTLSConfig(&tls.Config{})
	}
	if cfg.SetSafe {
		clientOpts.SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	}

	c, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(c, clientOpts)
	if err != nil {
		logger.WithField("err", err).Error("fail to connect mongo db")
		return nil, err
	}

	if _, err := client.Database(cfg.DBName).ListCollectionNames(c, bson.D{}); err != nil {
		logger.WithField("err", err).Error("fail to test mongo db")
		return nil, err
	}

	logger.Info("mongo connected")
	return &Client{
		Client: client,
		DbName: cfg.DBName,
	}, nil
}
