package auction

import (
	"math/big"

	"github.com/x-xyz/auctionhouse/domain"
)

type Id uint64

type State string

const (
	StateQueued    State = "queued"
	StateActive    State = "active"
	StateSettled   State = "settled"
	StateCancelled State = "cancelled"
)

// Auction is one listed asset. Times are unix seconds and stay zero until activation.
type Auction struct {
	Id              Id             `json:"id"`
	ContractAddress domain.Address `json:"contractAddress"`
	TokenId         domain.TokenId `json:"tokenId"`
	Owner           domain.Address `json:"owner"`
	ReservePrice    *big.Int       `json:"reservePrice"`
	StartTime       int64          `json:"startTime"`
	EndTime         int64          `json:"endTime"`
	CurrentBidder   domain.Address `json:"currentBidder"`
	CurrentBid      *big.Int       `json:"currentBid"`
	Settled         bool           `json:"settled"`
	Cancelled       bool           `json:"cancelled"`

	// captured at activation so operator changes never reach a running auction
	MinBidIncrementPercentage uint8 `json:"minBidIncrementPercentage"`
	TimeBuffer                int64 `json:"timeBuffer"`
}

func (a *Auction) State() State {
	switch {
	case a.Settled:
		return StateSettled
	case a.Cancelled:
		return StateCancelled
	case a.StartTime != 0:
		return StateActive
	default:
		return StateQueued
	}
}

func (a *Auction) IsTerminal() bool {
	return a.Settled || a.Cancelled
}

func (a *Auction) HasBid() bool {
	return a.CurrentBid != nil && a.CurrentBid.Sign() > 0
}

// IsLive reports whether the auction still accepts bids at now
func (a *Auction) IsLive(now int64) bool {
	return a.State() == StateActive && now < a.EndTime
}

// MinNextBid is the smallest amount the next bid may carry
func (a *Auction) MinNextBid() *big.Int {
	if !a.HasBid() {
		return new(big.Int).Set(a.ReservePrice)
	}
	inc := new(big.Int).Mul(a.CurrentBid, big.NewInt(int64(a.MinBidIncrementPercentage)))
	inc.Quo(inc, domain.Big100)
	threshold := inc.Add(inc, a.CurrentBid)
	if threshold.Cmp(a.CurrentBid) == 0 {
		// the new bid still has to beat the leader when the increment rounds to zero
		threshold.Add(threshold, big.NewInt(1))
	}
	return threshold
}

func (a *Auction) Clone() *Auction {
	c := *a
	if a.ReservePrice != nil {
		c.ReservePrice = new(big.Int).Set(a.ReservePrice)
	}
	if a.CurrentBid != nil {
		c.CurrentBid = new(big.Int).Set(a.CurrentBid)
	}
	return &c
}
