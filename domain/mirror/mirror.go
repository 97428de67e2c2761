package mirror

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
)

// Auction is the read model of one auction, rebuilt from the journal.
// LastSeq is the newest event folded in, older events are ignored.
type Auction struct {
	AuctionId       auction.Id     `json:"auctionId" bson:"auctionId"`
	ContractAddress domain.Address `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId `json:"tokenId" bson:"tokenId"`
	Owner           domain.Address `json:"owner" bson:"owner"`
	ReservePrice    string         `json:"reservePrice" bson:"reservePrice"`
	// display form, in ether
	ReservePriceInEther string `json:"reservePriceInEther" bson:"reservePriceInEther"`

	StartTime int64 `json:"startTime" bson:"startTime"`
	EndTime   int64 `json:"endTime" bson:"endTime"`

	CurrentBidder     domain.Address `json:"currentBidder" bson:"currentBidder"`
	CurrentBid        string         `json:"currentBid" bson:"currentBid"`
	CurrentBidInEther string         `json:"currentBidInEther" bson:"currentBidInEther"`
	BidCount          int            `json:"bidCount" bson:"bidCount"`

	Started   bool `json:"started" bson:"started"`
	Done      bool `json:"done" bson:"done"`
	Cancelled bool `json:"cancelled" bson:"cancelled"`

	Winner domain.Address `json:"winner,omitempty" bson:"winner,omitempty"`
	Amount string         `json:"amount,omitempty" bson:"amount,omitempty"`

	MinBidIncrementPercentage uint8 `json:"minBidIncrementPercentage" bson:"minBidIncrementPercentage"`
	TimeBuffer                int64 `json:"timeBuffer" bson:"timeBuffer"`

	LastSeq   uint64    `json:"lastSeq" bson:"lastSeq"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (a *Auction) State() auction.State {
	switch {
	case a.Done:
		return auction.StateSettled
	case a.Cancelled:
		return auction.StateCancelled
	case a.Started:
		return auction.StateActive
	default:
		return auction.StateQueued
	}
}

// Bid is one accepted bid. Seq is the journal seq of its AuctionBid event.
type Bid struct {
	AuctionId    auction.Id     `json:"auctionId" bson:"auctionId"`
	Seq          uint64         `json:"seq" bson:"seq"`
	CallId       string         `json:"callId" bson:"callId"`
	Bidder       domain.Address `json:"bidder" bson:"bidder"`
	Value        string         `json:"value" bson:"value"`
	ValueInEther string         `json:"valueInEther" bson:"valueInEther"`
	// SortValue orders bids by amount inside mongo
	SortValue primitive.Decimal128 `json:"-" bson:"sortValue"`
	Timestamp int64                `json:"timestamp" bson:"timestamp"`
	LastBid   bool                 `json:"lastBid" bson:"lastBid"`
	Winner    bool                 `json:"winner" bson:"winner"`
}

type AuctionFindAllOptions struct {
	Offset int
	Limit  int
	State  *auction.State
}

type AuctionFindAllOptionsFunc func(*AuctionFindAllOptions)

func WithPagination(offset, limit int) AuctionFindAllOptionsFunc {
	return func(o *AuctionFindAllOptions) {
		o.Offset = offset
		o.Limit = limit
	}
}

func WithState(s auction.State) AuctionFindAllOptionsFunc {
	return func(o *AuctionFindAllOptions) {
		o.State = &s
	}
}

func GetAuctionFindAllOptions(fns ...AuctionFindAllOptionsFunc) AuctionFindAllOptions {
	opts := AuctionFindAllOptions{}
	for _, fn := range fns {
		fn(&opts)
	}
	return opts
}

type AuctionRepo interface {
	FindOne(c ctx.Ctx, id auction.Id) (*Auction, error)
	FindAll(c ctx.Ctx, opts ...AuctionFindAllOptionsFunc) ([]*Auction, error)
	// FindCurrent returns the started auction that is neither settled nor cancelled
	FindCurrent(c ctx.Ctx) (*Auction, error)
	Upsert(c ctx.Ctx, a *Auction) error
}

type BidRepo interface {
	// Upsert is keyed by (auctionId, seq)
	Upsert(c ctx.Ctx, b *Bid) error
	// FindAll lists the bids of an auction, highest amount first
	FindAll(c ctx.Ctx, id auction.Id, limit int) ([]*Bid, error)
	ClearLastBid(c ctx.Ctx, id auction.Id) error
	MarkWinner(c ctx.Ctx, id auction.Id, bidder domain.Address, value string) error
}

// UseCase folds journal events into the read model and serves it
type UseCase interface {
	ProcessEvents(c ctx.Ctx, events []*auction.Event) error

	GetAuction(c ctx.Ctx, id auction.Id) (*Auction, error)
	GetCurrent(c ctx.Ctx) (*Auction, error)
	GetAuctions(c ctx.Ctx, opts ...AuctionFindAllOptionsFunc) ([]*Auction, error)
	GetBids(c ctx.Ctx, id auction.Id, limit int) ([]*Bid, error)
	IsApproved(c ctx.Ctx, account domain.Address) (bool, error)
}

// Account is an approved lister
type Account struct {
	Address    domain.Address `json:"address" bson:"address"`
	ApprovedAt int64          `json:"approvedAt" bson:"approvedAt"`
	Seq        uint64         `json:"seq" bson:"seq"`
}

type AccountRepo interface {
	Upsert(c ctx.Ctx, a *Account) error
	FindOne(c ctx.Ctx, address domain.Address) (*Account, error)
}
