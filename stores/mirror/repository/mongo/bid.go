package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
	"github.com/x-xyz/auctionhouse/domain/mirror"
	"github.com/x-xyz/auctionhouse/service/query"
)

type bidRepo struct {
	q query.Mongo
}

func NewBidRepo(c ctx.Ctx, q query.Mongo) (mirror.BidRepo, error) {
	if err := q.EnsureIndexes(c, domain.TableBids,
		query.Index{Keys: []string{"auctionId", "seq"}, Unique: true},
		query.Index{Keys: []string{"auctionId", "-sortValue"}},
	); err != nil {
		c.WithField("err", err).Error("failed to ensure bid indexes")
		return nil, err
	}
	return &bidRepo{q: q}, nil
}

func (r *bidRepo) Upsert(c ctx.Ctx, b *mirror.Bid) error {
	selector := bson.M{"auctionId": b.AuctionId, "seq": b.Seq}
	if err := r.q.Upsert(c, domain.TableBids, selector, b); err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": b.AuctionId, "seq": b.Seq}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (r *bidRepo) FindAll(c ctx.Ctx, id auction.Id, limit int) ([]*mirror.Bid, error) {
	res := []*mirror.Bid{}
	sorts := []string{"-sortValue", "-seq"}
	if err := r.q.SearchNSorts(c, domain.TableBids, 0, limit, sorts, bson.M{"auctionId": id}, &res); err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": id}).Error("q.SearchNSorts failed")
		return nil, err
	}
	return res, nil
}

func (r *bidRepo) ClearLastBid(c ctx.Ctx, id auction.Id) error {
	err := r.q.Patch(c, domain.TableBids, bson.M{"auctionId": id, "lastBid": true}, bson.M{"lastBid": false}, query.WithPatchMany(true))
	if err != nil && err != query.ErrNotFound {
		c.WithFields(log.Fields{"err": err, "auctionId": id}).Error("q.Patch failed")
		return err
	}
	return nil
}

func (r *bidRepo) MarkWinner(c ctx.Ctx, id auction.Id, bidder domain.Address, value string) error {
	selector := bson.M{"auctionId": id, "bidder": bidder.ToLower(), "value": value}
	if err := r.q.Patch(c, domain.TableBids, selector, bson.M{"winner": true}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": id}).Error("q.Patch failed")
		return err
	}
	return nil
}
