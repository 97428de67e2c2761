package usecase

import (
	"errors"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/base/metrics"
	"github.com/x-xyz/auctionhouse/base/price"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
	"github.com/x-xyz/auctionhouse/domain/keys"
	"github.com/x-xyz/auctionhouse/domain/mirror"
	"github.com/x-xyz/auctionhouse/service/cache"
)

const (
	// MaxBids is the longest bid list served, shorter limits are cut from it
	MaxBids = 100
)

var met = metrics.New("mirror")

type MirrorUseCaseCfg struct {
	AuctionRepo mirror.AuctionRepo
	BidRepo     mirror.BidRepo
	AccountRepo mirror.AccountRepo
	Cache       cache.Service
}

type impl struct {
	auctions mirror.AuctionRepo
	bids     mirror.BidRepo
	accounts mirror.AccountRepo
	cache    cache.Service
}

func NewMirrorUseCase(cfg *MirrorUseCaseCfg) mirror.UseCase {
	return &impl{
		auctions: cfg.AuctionRepo,
		bids:     cfg.BidRepo,
		accounts: cfg.AccountRepo,
		cache:    cfg.Cache,
	}
}

func auctionKey(id auction.Id) string {
	return keys.RedisKey(keys.PfxAuction, strconv.FormatUint(uint64(id), 10))
}

func bidsKey(id auction.Id) string {
	return keys.RedisKey(keys.PfxBids, strconv.FormatUint(uint64(id), 10))
}

// ProcessEvents folds events into the read model. Events at or below an
// auction's LastSeq were folded already and are skipped, so a replayed batch
// changes nothing.
func (im *impl) ProcessEvents(c ctx.Ctx, events []*auction.Event) error {
	touched := map[auction.Id]bool{}
	for _, e := range events {
		if err := im.processEvent(c, e); err != nil {
			c.WithFields(log.Fields{
				"err":  err,
				"seq":  e.Seq,
				"type": e.Type,
			}).Error("processEvent failed")
			return err
		}
		touched[e.AuctionId] = true
		met.BumpSum("event.count", 1, "type", string(e.Type))
	}
	for id := range touched {
		im.invalidate(c, id)
	}
	return nil
}

func (im *impl) invalidate(c ctx.Ctx, id auction.Id) {
	if err := im.cache.Del(c, auctionKey(id)); err != nil {
		c.WithField("err", err).Warn("cache.Del auction failed")
	}
	if err := im.cache.Del(c, bidsKey(id)); err != nil {
		c.WithField("err", err).Warn("cache.Del bids failed")
	}
}

func (im *impl) processEvent(c ctx.Ctx, e *auction.Event) error {
	switch e.Type {
	case auction.EventAccountApproved:
		return im.accounts.Upsert(c, &mirror.Account{Address: e.Account, ApprovedAt: e.Timestamp, Seq: e.Seq})
	case auction.EventAuctionMinBidIncrementPercentageUpdated,
		auction.EventAuctionDurationUpdated,
		auction.EventAuctionTimeBufferUpdated:
		// captured per auction by AuctionStarted
		return nil
	}

	a, err := im.auctions.FindOne(c, e.AuctionId)
	if errors.Is(err, domain.ErrNotFound) {
		if e.Type != auction.EventAuctionAdded {
			return xerrors.Errorf("%s for unknown auction %d: %w", e.Type, e.AuctionId, domain.ErrNotFound)
		}
		a = &mirror.Auction{AuctionId: e.AuctionId, CreatedAt: e.Time()}
	} else if err != nil {
		return err
	}
	if a.LastSeq >= e.Seq {
		return nil
	}

	switch e.Type {
	case auction.EventAuctionAdded:
		a.ContractAddress = e.ContractAddress
		a.TokenId = e.TokenId
		a.Owner = e.Owner
		a.ReservePrice = e.ReservePrice
		if a.ReservePriceInEther, err = price.FormatWei(e.ReservePrice); err != nil {
			return err
		}
		a.CurrentBid = "0"
		a.CurrentBidInEther = "0"

	case auction.EventAuctionStarted:
		a.Started = true
		a.StartTime = e.StartTime
		a.EndTime = e.EndTime
		a.MinBidIncrementPercentage = e.Percentage
		a.TimeBuffer = e.Seconds

	case auction.EventAuctionBid:
		if err := im.addBid(c, a, e); err != nil {
			return err
		}

	case auction.EventAuctionExtended:
		a.EndTime = e.EndTime

	case auction.EventAuctionSettled:
		a.Done = true
		a.Winner = e.Winner
		a.Amount = e.Amount
		if !e.Winner.IsEmpty() {
			if err := im.bids.MarkWinner(c, a.AuctionId, e.Winner, e.Amount); err != nil {
				return err
			}
		}

	case auction.EventAuctionCancelled:
		a.Cancelled = true

	default:
		c.WithField("type", e.Type).Warn("unknown event type")
		return nil
	}

	a.LastSeq = e.Seq
	a.UpdatedAt = e.Time()
	return im.auctions.Upsert(c, a)
}

func (im *impl) addBid(c ctx.Ctx, a *mirror.Auction, e *auction.Event) error {
	sortValue, err := primitive.ParseDecimal128(e.Value)
	if err != nil {
		return xerrors.Errorf("bid value %q: %w", e.Value, domain.ErrInvalidNumberFormat)
	}
	ether, err := price.FormatWei(e.Value)
	if err != nil {
		return err
	}
	if err := im.bids.ClearLastBid(c, a.AuctionId); err != nil {
		return err
	}
	if err := im.bids.Upsert(c, &mirror.Bid{
		AuctionId:    a.AuctionId,
		Seq:          e.Seq,
		CallId:       e.CallId,
		Bidder:       e.Bidder.ToLower(),
		Value:        e.Value,
		ValueInEther: ether,
		SortValue:    sortValue,
		Timestamp:    e.Timestamp,
		LastBid:      true,
	}); err != nil {
		return err
	}
	a.CurrentBidder = e.Bidder.ToLower()
	a.CurrentBid = e.Value
	a.CurrentBidInEther = ether
	a.BidCount++
	return nil
}

func (im *impl) GetAuction(c ctx.Ctx, id auction.Id) (*mirror.Auction, error) {
	res := &mirror.Auction{}
	if err := im.cache.GetByFunc(c, auctionKey(id), res, func() (interface{}, error) {
		return im.auctions.FindOne(c, id)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) GetCurrent(c ctx.Ctx) (*mirror.Auction, error) {
	return im.auctions.FindCurrent(c)
}

func (im *impl) GetAuctions(c ctx.Ctx, opts ...mirror.AuctionFindAllOptionsFunc) ([]*mirror.Auction, error) {
	return im.auctions.FindAll(c, opts...)
}

// GetBids is the lastBids query, highest amount first
func (im *impl) GetBids(c ctx.Ctx, id auction.Id, limit int) ([]*mirror.Bid, error) {
	if limit <= 0 || limit > MaxBids {
		limit = MaxBids
	}
	res := []*mirror.Bid{}
	if err := im.cache.GetByFunc(c, bidsKey(id), &res, func() (interface{}, error) {
		bids, err := im.bids.FindAll(c, id, MaxBids)
		if err != nil {
			return nil, err
		}
		return &bids, nil
	}); err != nil {
		return nil, err
	}
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (im *impl) IsApproved(c ctx.Ctx, account domain.Address) (bool, error) {
	if _, err := im.accounts.FindOne(c, account); errors.Is(err, domain.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}
