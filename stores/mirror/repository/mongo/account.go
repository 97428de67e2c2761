package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/mirror"
	"github.com/x-xyz/auctionhouse/service/query"
)

type accountRepo struct {
	q query.Mongo
}

func NewAccountRepo(c ctx.Ctx, q query.Mongo) (mirror.AccountRepo, error) {
	if err := q.EnsureIndexes(c, domain.TableAccounts, query.Index{Keys: []string{"address"}, Unique: true}); err != nil {
		c.WithField("err", err).Error("failed to ensure account indexes")
		return nil, err
	}
	return &accountRepo{q: q}, nil
}

func (r *accountRepo) Upsert(c ctx.Ctx, a *mirror.Account) error {
	a.Address = a.Address.ToLower()
	if err := r.q.Upsert(c, domain.TableAccounts, bson.M{"address": a.Address}, a); err != nil {
		c.WithFields(log.Fields{"err": err, "address": a.Address}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (r *accountRepo) FindOne(c ctx.Ctx, address domain.Address) (*mirror.Account, error) {
	res := &mirror.Account{}
	if err := r.q.FindOne(c, domain.TableAccounts, bson.M{"address": address.ToLower()}, res); errors.Is(err, query.ErrNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "address": address}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}
