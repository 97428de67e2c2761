package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
	"github.com/x-xyz/auctionhouse/domain/mirror"
	"github.com/x-xyz/auctionhouse/service/query"
)

type auctionRepo struct {
	q query.Mongo
}

func NewAuctionRepo(c ctx.Ctx, q query.Mongo) (mirror.AuctionRepo, error) {
	if err := q.EnsureIndexes(c, domain.TableAuctions,
		query.Index{Keys: []string{"auctionId"}, Unique: true},
		query.Index{Keys: []string{"started", "done", "cancelled"}},
	); err != nil {
		c.WithField("err", err).Error("failed to ensure auction indexes")
		return nil, err
	}
	return &auctionRepo{q: q}, nil
}

func stateQuery(s auction.State) bson.M {
	switch s {
	case auction.StateSettled:
		return bson.M{"done": true}
	case auction.StateCancelled:
		return bson.M{"cancelled": true}
	case auction.StateActive:
		return bson.M{"started": true, "done": false, "cancelled": false}
	default:
		return bson.M{"started": false, "cancelled": false}
	}
}

func (r *auctionRepo) FindOne(c ctx.Ctx, id auction.Id) (*mirror.Auction, error) {
	res := &mirror.Auction{}
	if err := r.q.FindOne(c, domain.TableAuctions, bson.M{"auctionId": id}, res); errors.Is(err, query.ErrNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": id}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (r *auctionRepo) FindAll(c ctx.Ctx, optFns ...mirror.AuctionFindAllOptionsFunc) ([]*mirror.Auction, error) {
	opts := mirror.GetAuctionFindAllOptions(optFns...)
	qry := bson.M{}
	if opts.State != nil {
		qry = stateQuery(*opts.State)
	}

	res := []*mirror.Auction{}
	if err := r.q.Search(c, domain.TableAuctions, opts.Offset, opts.Limit, "-auctionId", qry, &res); err != nil {
		c.WithFields(log.Fields{"err": err, "query": qry}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *auctionRepo) FindCurrent(c ctx.Ctx) (*mirror.Auction, error) {
	res := &mirror.Auction{}
	if err := r.q.FindOne(c, domain.TableAuctions, stateQuery(auction.StateActive), res); errors.Is(err, query.ErrNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (r *auctionRepo) Upsert(c ctx.Ctx, a *mirror.Auction) error {
	if err := r.q.Upsert(c, domain.TableAuctions, bson.M{"auctionId": a.AuctionId}, a); err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": a.AuctionId}).Error("q.Upsert failed")
		return err
	}
	return nil
}
