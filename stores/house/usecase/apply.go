package usecase

import (
	"math/big"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
)

var errCorrupted = xerrors.New("event does not fit house state")

func (h *house) record(id auction.Id) (*auction.Auction, error) {
	if int(id) >= len(h.auctions) {
		return nil, xerrors.Errorf("unknown auction %d: %w", id, errCorrupted)
	}
	return h.auctions[id], nil
}

// apply folds one event into the house. Live calls and Restore share it, so
// a replayed journal reproduces the exact state.
func (h *house) apply(e *auction.Event) error {
	switch e.Type {
	case auction.EventAccountApproved:
		h.approved[e.Account.ToLower()] = true

	case auction.EventAuctionAdded:
		if int(e.AuctionId) != len(h.auctions) {
			return xerrors.Errorf("auction %d added as #%d: %w", e.AuctionId, len(h.auctions), errCorrupted)
		}
		reserve, err := domain.ParseAmount(e.ReservePrice)
		if err != nil {
			return err
		}
		h.auctions = append(h.auctions, &auction.Auction{
			Id:              e.AuctionId,
			ContractAddress: e.ContractAddress,
			TokenId:         e.TokenId,
			Owner:           e.Owner,
			ReservePrice:    reserve,
			CurrentBid:      new(big.Int),
		})

	case auction.EventAuctionStarted:
		a, err := h.record(e.AuctionId)
		if err != nil {
			return err
		}
		if a.State() != auction.StateQueued {
			return xerrors.Errorf("start auction %d in state %s: %w", a.Id, a.State(), errCorrupted)
		}
		a.StartTime = e.StartTime
		a.EndTime = e.EndTime
		a.MinBidIncrementPercentage = e.Percentage
		a.TimeBuffer = e.Seconds
		h.currentId = a.Id

	case auction.EventAuctionBid:
		a, err := h.record(e.AuctionId)
		if err != nil {
			return err
		}
		value, err := domain.ParseAmount(e.Value)
		if err != nil {
			return err
		}
		a.CurrentBidder = e.Bidder
		a.CurrentBid = value

	case auction.EventAuctionExtended:
		a, err := h.record(e.AuctionId)
		if err != nil {
			return err
		}
		a.EndTime = e.EndTime

	case auction.EventAuctionSettled:
		a, err := h.record(e.AuctionId)
		if err != nil {
			return err
		}
		a.Settled = true
		h.currentId = a.Id + 1
		h.skipTerminal()

	case auction.EventAuctionCancelled:
		a, err := h.record(e.AuctionId)
		if err != nil {
			return err
		}
		a.Cancelled = true
		if h.currentId == a.Id {
			h.skipTerminal()
		}

	case auction.EventAuctionMinBidIncrementPercentageUpdated:
		h.cfg.MinBidIncrementPercentage = e.Percentage

	case auction.EventAuctionDurationUpdated:
		h.cfg.Duration = time.Duration(e.Seconds) * time.Second

	case auction.EventAuctionTimeBufferUpdated:
		h.cfg.TimeBuffer = time.Duration(e.Seconds) * time.Second

	default:
		return xerrors.Errorf("unknown event type %q: %w", e.Type, errCorrupted)
	}
	return nil
}
