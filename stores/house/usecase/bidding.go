package usecase

import (
	"math/big"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
)

func (h *house) CreateBid(c ctx.Ctx, caller domain.Address, id auction.Id, amount *big.Int) (*auction.Auction, error) {
	defer met.BumpTime("op.time", "op", "createBid").End()
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.checkHalted(c, "createBid"); err != nil {
		return nil, err
	}

	if caller.IsEmpty() {
		return nil, h.fail(c, "createBid", domain.ErrInvalidAddress)
	}
	if int(id) >= len(h.auctions) {
		return nil, h.fail(c, "createBid", domain.ErrAuctionNotUp)
	}
	a := h.auctions[id]
	now := h.now()
	switch {
	case a.Settled:
		return nil, h.fail(c, "createBid", domain.ErrAlreadySettled)
	case a.Cancelled:
		return nil, h.fail(c, "createBid", domain.ErrAlreadyCancelled)
	case id != h.currentId || !a.IsLive(now):
		return nil, h.fail(c, "createBid", domain.ErrAuctionNotUp)
	}

	if amount == nil || amount.Sign() <= 0 {
		return nil, h.fail(c, "createBid", domain.ErrBelowReserve)
	}
	if !a.HasBid() {
		if amount.Cmp(a.ReservePrice) < 0 {
			return nil, h.fail(c, "createBid", domain.ErrBelowReserve)
		}
	} else if amount.Cmp(a.MinNextBid()) < 0 {
		return nil, h.fail(c, "createBid", domain.ErrInsufficientIncrement)
	}

	amount = new(big.Int).Set(amount)
	prevBidder := a.CurrentBidder
	prevBid := new(big.Int).Set(a.CurrentBid)
	hadBid := a.HasBid()

	t := h.begin(c, caller)
	defer t.end()

	if err := t.emit(&auction.Event{
		Type:      auction.EventAuctionBid,
		AuctionId: id,
		Bidder:    caller.ToLower(),
		Value:     amount.String(),
	}); err != nil {
		return nil, h.fail(c, "createBid", err)
	}

	extended := false
	if a.EndTime-t.now < a.TimeBuffer {
		extended = true
		if err := t.emit(&auction.Event{
			Type:      auction.EventAuctionExtended,
			AuctionId: id,
			EndTime:   t.now + a.TimeBuffer,
		}); err != nil {
			return nil, h.fail(c, "createBid", err)
		}
	}

	t.effect("custody bid",
		func(c ctx.Ctx) error { return h.custody.Deposit(c, caller, amount) },
		func(c ctx.Ctx) error { return h.custody.Pay(c, caller, amount) },
	)
	if hadBid {
		t.effect("refund previous bidder",
			func(c ctx.Ctx) error { return h.custody.Pay(c, prevBidder, prevBid) },
			func(c ctx.Ctx) error { return h.custody.Deposit(c, prevBidder, prevBid) },
		)
	}

	if err := t.commit(c); err != nil {
		return nil, h.fail(c, "createBid", err)
	}

	met.BumpSum("bid.count", 1)
	logger := c.WithFields(log.Fields{
		"auctionId": id,
		"bidder":    caller,
		"value":     amount.String(),
		"endTime":   a.EndTime,
	})
	if hadBid {
		logger = logger.WithFields(log.Fields{"refunded": prevBidder, "refund": prevBid.String()})
	}
	if extended {
		logger.Info("bid accepted, auction extended")
	} else {
		logger.Info("bid accepted")
	}
	return a.Clone(), nil
}
