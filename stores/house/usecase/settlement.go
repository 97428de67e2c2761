package usecase

import (
	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
)

// SettleAuction resolves the running auction once it is over, then starts the next queued one
func (h *house) SettleAuction(c ctx.Ctx, caller domain.Address) (*auction.Auction, error) {
	defer met.BumpTime("op.time", "op", "settleAuction").End()
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.checkHalted(c, "settleAuction"); err != nil {
		return nil, err
	}

	a := h.active()
	if a == nil || h.now() < a.EndTime {
		return nil, h.fail(c, "settleAuction", domain.ErrAuctionNotOver)
	}

	t := h.begin(c, caller)
	defer t.end()

	id, owner, custodian := a.Id, a.Owner, h.cfg.Custodian
	contract, tokenId := a.ContractAddress, a.TokenId
	ev := &auction.Event{Type: auction.EventAuctionSettled, AuctionId: id}

	if a.HasBid() {
		winner, amount := a.CurrentBidder, a.CurrentBid
		ev.Winner = winner
		ev.Amount = amount.String()

		t.effect("pay owner",
			func(c ctx.Ctx) error { return h.custody.Pay(c, owner, amount) },
			func(c ctx.Ctx) error { return h.custody.Deposit(c, owner, amount) },
		)
		t.effect("deliver asset",
			func(c ctx.Ctx) error {
				return h.registry.TransferOwnership(c, contract, tokenId, custodian, winner)
			},
			func(c ctx.Ctx) error {
				return h.registry.TransferOwnership(c, contract, tokenId, winner, custodian)
			},
		)
	} else {
		t.effect("return asset",
			func(c ctx.Ctx) error {
				return h.registry.TransferOwnership(c, contract, tokenId, custodian, owner)
			},
			func(c ctx.Ctx) error {
				return h.registry.TransferOwnership(c, contract, tokenId, owner, custodian)
			},
		)
	}

	if err := t.emit(ev); err != nil {
		return nil, h.fail(c, "settleAuction", err)
	}
	if next, ok := h.nextQueued(h.currentId); ok {
		if err := h.start(t, next); err != nil {
			return nil, h.fail(c, "settleAuction", err)
		}
	}

	if err := t.commit(c); err != nil {
		return nil, h.fail(c, "settleAuction", err)
	}

	met.BumpSum("settle.count", 1)
	c.WithFields(log.Fields{
		"auctionId": id,
		"winner":    ev.Winner,
		"amount":    ev.Amount,
		"next":      h.currentId,
	}).Info("auction settled")
	return h.auctions[id].Clone(), nil
}
