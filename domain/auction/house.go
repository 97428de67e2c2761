package auction

import (
	"math/big"
	"time"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain"
)

const (
	DefaultDuration   = 24 * time.Hour
	DefaultTimeBuffer = 5 * time.Minute
)

// Config is the operator controlled part of the house
type Config struct {
	// Operator is the only account allowed to approve listers and change settings
	Operator domain.Address `json:"operator"`
	// Custodian is the house's own account, assets and funds are held there
	Custodian                 domain.Address `json:"custodian"`
	Duration                  time.Duration  `json:"duration"`
	MinBidIncrementPercentage uint8          `json:"minBidIncrementPercentage"`
	// TimeBuffer is the anti-snipe window, a bid landing inside it pushes the end out to now+TimeBuffer
	TimeBuffer time.Duration `json:"timeBuffer"`
}

func (c Config) Validate() error {
	if c.Operator.IsEmpty() || c.Custodian.IsEmpty() {
		return domain.ErrInvalidConfig
	}
	if c.Duration < time.Second || c.MinBidIncrementPercentage > 100 || c.TimeBuffer < 0 {
		return domain.ErrInvalidConfig
	}
	return nil
}

// AssetRegistry is the ownership record of the listed assets
type AssetRegistry interface {
	OwnerOf(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId) (domain.Address, error)
	TransferOwnership(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId, from, to domain.Address) error
}

// Custody moves native value between accounts and the house
type Custody interface {
	// Deposit takes amount from the account into house custody
	Deposit(c ctx.Ctx, from domain.Address, amount *big.Int) error
	// Pay releases amount from house custody to the account. It must fail rather than drop funds.
	Pay(c ctx.Ctx, to domain.Address, amount *big.Int) error
}

// AssetRestorer is a registry that does not outlive the process. Restore
// hands it the owner the journal gives each listed token; tokens it
// already knows are left alone.
type AssetRestorer interface {
	RestoreOwner(c ctx.Ctx, contract domain.Address, tokenId domain.TokenId, owner domain.Address) error
}

// CustodyRestorer is custody that does not outlive the process. Restore
// hands it the amount the journal says the house holds.
type CustodyRestorer interface {
	RestoreHeld(c ctx.Ctx, held *big.Int) error
}

// Journal is the append-only event log of the house
type Journal interface {
	Append(c ctx.Ctx, events []*Event) error
	FindAfter(c ctx.Ctx, seq uint64, limit int) ([]*Event, error)
	LastSeq(c ctx.Ctx) (uint64, error)
	// RunWithTransaction makes the appends done by run visible only if run
	// succeeds. run may be called more than once.
	RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error
}

// Notifier tells journal consumers that new events were committed
type Notifier interface {
	Publish(c ctx.Ctx, seq uint64) error
	Subscribe(c ctx.Ctx) (<-chan uint64, error)
}

type HouseUseCase interface {
	AddApprovedAccount(c ctx.Ctx, caller, account domain.Address) error
	IsApprovedAccount(c ctx.Ctx, account domain.Address) bool

	AddNFT(c ctx.Ctx, caller, contract domain.Address, tokenId domain.TokenId, reservePrice *big.Int) (*Auction, error)
	CreateBid(c ctx.Ctx, caller domain.Address, id Id, amount *big.Int) (*Auction, error)
	SettleAuction(c ctx.Ctx, caller domain.Address) (*Auction, error)
	CancelAuction(c ctx.Ctx, caller domain.Address, id Id) (*Auction, error)

	SetDuration(c ctx.Ctx, caller domain.Address, d time.Duration) error
	SetMinBidIncrementPercentage(c ctx.Ctx, caller domain.Address, pct uint8) error
	SetTimeBuffer(c ctx.Ctx, caller domain.Address, d time.Duration) error
	// UpdateConfig applies every set field of upd in one call, or none of them
	UpdateConfig(c ctx.Ctx, caller domain.Address, upd ConfigUpdate) (Config, error)

	CurrentAuctionId(c ctx.Ctx) Id
	Auction(c ctx.Ctx, id Id) (*Auction, error)
	Config(c ctx.Ctx) Config

	// Restore rebuilds the house from its journal, call it once before serving.
	// It fails when the registry or custody cannot back what the journal says the house holds.
	Restore(c ctx.Ctx) error
	// Halted is non-nil once an effect could not be undone, the house then rejects every change
	Halted(c ctx.Ctx) error
}

// ConfigUpdate holds the settings to change, nil fields keep their value
type ConfigUpdate struct {
	Duration                  *time.Duration
	MinBidIncrementPercentage *uint8
	TimeBuffer                *time.Duration
}
