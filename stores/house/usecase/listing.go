package usecase

import (
	"errors"
	"math/big"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
)

func (h *house) AddNFT(c ctx.Ctx, caller, contract domain.Address, tokenId domain.TokenId, reservePrice *big.Int) (*auction.Auction, error) {
	defer met.BumpTime("op.time", "op", "addNFT").End()
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.checkHalted(c, "addNFT"); err != nil {
		return nil, err
	}

	if !h.approved[caller.ToLower()] {
		return nil, h.fail(c, "addNFT", domain.ErrNotApproved)
	}
	owner, err := h.registry.OwnerOf(c, contract, tokenId)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, h.fail(c, "addNFT", domain.ErrNotAssetOwner)
	} else if err != nil {
		return nil, h.fail(c, "addNFT", xerrors.Errorf("ownerOf: %v: %w", err, domain.ErrTransferFailure))
	}
	if !owner.Equals(caller) {
		return nil, h.fail(c, "addNFT", domain.ErrNotAssetOwner)
	}
	if reservePrice == nil {
		reservePrice = new(big.Int)
	}
	if reservePrice.Sign() < 0 {
		return nil, h.fail(c, "addNFT", domain.ErrBadParamInput)
	}

	t := h.begin(c, caller)
	defer t.end()

	id := auction.Id(len(h.auctions))
	if err := t.emit(&auction.Event{
		Type:            auction.EventAuctionAdded,
		AuctionId:       id,
		ContractAddress: contract.ToLower(),
		TokenId:         tokenId,
		Owner:           caller.ToLower(),
		ReservePrice:    reservePrice.String(),
	}); err != nil {
		return nil, h.fail(c, "addNFT", err)
	}

	custodian := h.cfg.Custodian
	t.effect("custody asset",
		func(c ctx.Ctx) error {
			return h.registry.TransferOwnership(c, contract, tokenId, caller, custodian)
		},
		func(c ctx.Ctx) error {
			return h.registry.TransferOwnership(c, contract, tokenId, custodian, caller)
		},
	)

	if h.active() == nil {
		if next, ok := h.nextQueued(h.currentId); ok {
			if err := h.start(t, next); err != nil {
				return nil, h.fail(c, "addNFT", err)
			}
		}
	}

	if err := t.commit(c); err != nil {
		return nil, h.fail(c, "addNFT", err)
	}

	a := h.auctions[id]
	met.BumpSum("listing.count", 1)
	c.WithFields(log.Fields{
		"auctionId":    id,
		"caller":       caller,
		"contract":     contract,
		"tokenId":      tokenId,
		"reservePrice": reservePrice.String(),
		"state":        a.State(),
	}).Info("asset listed")
	return a.Clone(), nil
}

// start activates a queued record with the duration in force now
func (h *house) start(t *txn, id auction.Id) error {
	return t.emit(&auction.Event{
		Type:      auction.EventAuctionStarted,
		AuctionId: id,
		StartTime: t.now,
		EndTime:   t.now + int64(h.cfg.Duration/time.Second),
		// the increment basis and anti-snipe window the auction runs under
		Percentage: h.cfg.MinBidIncrementPercentage,
		Seconds:    int64(h.cfg.TimeBuffer / time.Second),
	})
}

func (h *house) CancelAuction(c ctx.Ctx, caller domain.Address, id auction.Id) (*auction.Auction, error) {
	defer met.BumpTime("op.time", "op", "cancelAuction").End()
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.checkHalted(c, "cancelAuction"); err != nil {
		return nil, err
	}

	if int(id) >= len(h.auctions) {
		return nil, h.fail(c, "cancelAuction", domain.ErrNotFound)
	}
	a := h.auctions[id]
	switch {
	case !caller.Equals(a.Owner):
		return nil, h.fail(c, "cancelAuction", domain.ErrUnauthorized)
	case a.Settled:
		return nil, h.fail(c, "cancelAuction", domain.ErrAlreadySettled)
	case a.Cancelled:
		return nil, h.fail(c, "cancelAuction", domain.ErrAlreadyCancelled)
	case a.State() != auction.StateQueued:
		return nil, h.fail(c, "cancelAuction", domain.ErrCannotCancelActive)
	}

	t := h.begin(c, caller)
	defer t.end()

	if err := t.emit(&auction.Event{Type: auction.EventAuctionCancelled, AuctionId: id}); err != nil {
		return nil, h.fail(c, "cancelAuction", err)
	}
	owner, custodian := a.Owner, h.cfg.Custodian
	t.effect("return asset",
		func(c ctx.Ctx) error {
			return h.registry.TransferOwnership(c, a.ContractAddress, a.TokenId, custodian, owner)
		},
		func(c ctx.Ctx) error {
			return h.registry.TransferOwnership(c, a.ContractAddress, a.TokenId, owner, custodian)
		},
	)
	if err := t.commit(c); err != nil {
		return nil, h.fail(c, "cancelAuction", err)
	}

	c.WithFields(log.Fields{"auctionId": id, "owner": owner}).Info("auction cancelled")
	return h.auctions[id].Clone(), nil
}
