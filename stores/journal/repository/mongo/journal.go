package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
	"github.com/x-xyz/auctionhouse/service/query"
)

type journalMongoRepo struct {
	m query.Mongo
}

// NewJournalMongoRepo stores the journal in the auction_events collection, one document per event
func NewJournalMongoRepo(c ctx.Ctx, m query.Mongo) (auction.Journal, error) {
	if err := m.EnsureIndexes(c, domain.TableAuctionEvents,
		query.Index{Keys: []string{"seq"}, Unique: true},
		query.Index{Keys: []string{"auctionId", "seq"}},
	); err != nil {
		return nil, err
	}
	return &journalMongoRepo{m: m}, nil
}

func (r *journalMongoRepo) Append(c ctx.Ctx, events []*auction.Event) error {
	docs := make([]interface{}, len(events))
	for i, e := range events {
		docs[i] = e
	}
	if err := r.m.InsertMany(c, domain.TableAuctionEvents, docs); err == query.ErrDuplicateKey {
		return xerrors.Errorf("journal seq taken: %w", domain.ErrConflict)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"events": len(events),
		}).Error("failed to append events")
		return err
	}
	return nil
}

func (r *journalMongoRepo) FindAfter(c ctx.Ctx, seq uint64, limit int) ([]*auction.Event, error) {
	res := []*auction.Event{}
	qry := bson.M{"seq": bson.M{"$gt": seq}}
	if err := r.m.Search(c, domain.TableAuctionEvents, 0, limit, "seq", qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"seq": seq,
		}).Error("failed to find events")
		return nil, err
	}
	return res, nil
}

func (r *journalMongoRepo) LastSeq(c ctx.Ctx) (uint64, error) {
	res := []*auction.Event{}
	if err := r.m.Search(c, domain.TableAuctionEvents, 0, 1, "-seq", bson.M{}, &res); err != nil {
		c.WithField("err", err).Error("failed to find last event")
		return 0, err
	}
	if len(res) == 0 {
		return 0, nil
	}
	return res[0].Seq, nil
}

func (r *journalMongoRepo) RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error {
	return r.m.RunWithTransaction(c, run)
}
