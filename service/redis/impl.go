package redis

import (
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/base/metrics"
	"github.com/x-xyz/auctionhouse/domain/keys"
)

const (
	// retTTLNoKey is the return value of TTL when the key does not exist
	retTTLNoKey = -2

	delBatchSize      = 100
	subscribeBuffer   = 16
	healthCheckPeriod = time.Minute
	readGrace         = 5 * time.Second
)

type redImpl struct {
	name  string
	met   metrics.Service
	pools *Pools
}

// Pools represents different pool types
type Pools struct {
	Src *redis.Pool
}

// New redis pool
func New(name string, metrics metrics.Service, pools *Pools) Service {
	return &redImpl{
		name:  name,
		met:   metrics,
		pools: pools,
	}
}

func (r *redImpl) getConn(command string) (redis.Conn, error) {
	defer r.met.BumpTime("getconn.time", "cluster", r.name).End()

	pool := r.getPool(command)
	if pool == nil {
		return nil, ErrNoPool
	}

	conn := pool.Get()
	if err := conn.Err(); err != nil {
		r.met.BumpSum("getConn.err", 1, "cluster", r.name, "reason", err.Error())
		return nil, err
	}
	return conn, nil
}

func (r *redImpl) getPool(command string) *redis.Pool {
	if r.pools == nil {
		return nil
	}
	return r.pools.Src
}

func (r *redImpl) connDo(context ctx.Ctx, commandName string, args ...interface{}) (interface{}, error) {
	conn, err := r.getConn(commandName)
	if err != nil {
		return nil, err
	}

	reply, err := conn.Do(commandName, args...)

	// Closing conn explicitly asap improves redigo's performance,
	// bacause longer an connection is hold and not closed, the
	// pool need to handle more connections at the same time and
	// getConn time might burst.
	if err := conn.Close(); err != nil {
		r.met.BumpSum("conn.Close.err", 1, "cluster", r.name)
	}
	return reply, err
}

func (r *redImpl) Get(context ctx.Ctx, key string) ([]byte, error) {
	tags := []string{"func", "get", "cluster", r.name, "prefix", keys.GetPrefix(key)}
	defer r.met.BumpTime("time", tags...).End()

	val, err := redis.Bytes(r.connDo(context, "GET", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	} else if err != nil {
		context.WithField("err", err).Error("GET redis failed")
		return nil, err
	}
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)
	return val, nil
}

func (r *redImpl) Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error {
	tags := []string{"func", "set", "cluster", r.name, "prefix", keys.GetPrefix(key)}
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)

	var err error
	if expire == Forever {
		r.met.BumpSum("ttl.forever", 1, tags...)
		_, err = r.connDo(context, "SET", key, val)
	} else {
		r.met.BumpAvg("ttl", expire.Seconds(), tags...)
		_, err = r.connDo(context, "SET", key, val, "PX", int(expire/time.Millisecond))
	}
	if err != nil {
		context.WithField("err", err).Error("SET redis failed")
	}
	return err
}

func (r *redImpl) Del(context ctx.Ctx, ks ...string) (int, error) {
	if len(ks) == 0 {
		return 0, fmt.Errorf("length of keys is 0")
	}

	tags := []string{"func", "del", "cluster", r.name, "prefix", keys.GetPrefix(ks[0])}
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("elements", float64(len(ks)), tags...)

	affected := 0
	for i := 0; i < len(ks); i += delBatchSize {
		end := i + delBatchSize
		if end > len(ks) {
			end = len(ks)
		}
		res, err := redis.Int(r.connDo(context, "DEL", redis.Args{}.AddFlat(ks[i:end])...))
		if err != nil {
			context.WithField("err", err).Error("DEL redis failed")
			return 0, err
		}
		affected += res
	}
	return affected, nil
}

func (r *redImpl) TTL(context ctx.Ctx, key string) (int, error) {
	defer r.met.BumpTime("time", "func", "ttl", "cluster", r.name, "prefix", keys.GetPrefix(key)).End()
	res, err := redis.Int(r.connDo(context, "TTL", key))
	if err != nil {
		context.WithField("err", err).Error("TTL redis failed")
		return 0, err
	}
	if res == retTTLNoKey {
		return 0, ErrNotFound
	}
	return res, nil
}

func (r *redImpl) Publish(context ctx.Ctx, channel string, msg []byte) error {
	defer r.met.BumpTime("time", "func", "publish", "cluster", r.name, "prefix", keys.GetPrefix(channel)).End()
	if _, err := r.connDo(context, "PUBLISH", channel, msg); err != nil {
		context.WithFields(log.Fields{
			"err":     err,
			"channel": channel,
		}).Error("PUBLISH redis failed")
		return err
	}
	return nil
}

func (r *redImpl) Subscribe(context ctx.Ctx, channel string) (<-chan []byte, error) {
	conn, err := r.getConn("SUBSCRIBE")
	if err != nil {
		return nil, err
	}
	psc := redis.PubSubConn{Conn: conn}
	if err := psc.Subscribe(channel); err != nil {
		conn.Close()
		context.WithField("err", err).Error("SUBSCRIBE redis failed")
		return nil, err
	}

	out := make(chan []byte, subscribeBuffer)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(out)
		for {
			// the pool's read timeout is too short for a subscription, ping keeps it alive
			switch v := psc.ReceiveWithTimeout(healthCheckPeriod + readGrace).(type) {
			case redis.Message:
				select {
				case out <- v.Data:
				default:
					r.met.BumpSum("subscribe.dropped", 1, "cluster", r.name)
				}
			case redis.Subscription:
				if v.Count == 0 {
					return
				}
			case error:
				if context.Err() == nil {
					context.WithFields(log.Fields{
						"err":     v,
						"channel": channel,
					}).Warn("subscription closed")
				}
				return
			}
		}
	}()

	go func() {
		defer conn.Close()
		ticker := time.NewTicker(healthCheckPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-context.Done():
				psc.Unsubscribe()
				<-done
				return
			case <-done:
				return
			case <-ticker.C:
				if err := psc.Ping(""); err != nil {
					return
				}
			}
		}
	}()
	return out, nil
}
