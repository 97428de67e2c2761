package usecase

import (
	"errors"
	"math/big"
	"sync"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/base/metrics"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
)

const restoreBatch = 1000

var met = metrics.New("house")

type HouseUseCaseCfg struct {
	Config   auction.Config
	Registry auction.AssetRegistry
	Custody  auction.Custody
	Journal  auction.Journal
	// Notifier is optional, it wakes journal consumers after each commit
	Notifier auction.Notifier
	// Clock defaults to time.Now
	Clock func() time.Time
}

// house runs every call under one lock, which gives the total order the
// state machine relies on. All state changes go through apply.
type house struct {
	mu sync.Mutex

	cfg      auction.Config
	registry auction.AssetRegistry
	custody  auction.Custody
	journal  auction.Journal
	notifier auction.Notifier
	clock    func() time.Time

	auctions []*auction.Auction
	approved map[domain.Address]bool
	// currentId is the active auction, or where the next one is looked for
	currentId auction.Id
	lastSeq   uint64
	// halted is set when a failed call could not be undone
	halted error
}

func NewHouseUseCase(cfg *HouseUseCaseCfg) (auction.HouseUseCase, error) {
	if err := cfg.Config.Validate(); err != nil {
		return nil, err
	}
	if cfg.Registry == nil || cfg.Custody == nil || cfg.Journal == nil {
		return nil, xerrors.Errorf("registry, custody and journal are required: %w", domain.ErrInvalidConfig)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	houseCfg := cfg.Config
	houseCfg.Operator = houseCfg.Operator.ToLower()
	houseCfg.Custodian = houseCfg.Custodian.ToLower()
	return &house{
		cfg:      houseCfg,
		registry: cfg.Registry,
		custody:  cfg.Custody,
		journal:  cfg.Journal,
		notifier: cfg.Notifier,
		clock:    clock,
		approved: map[domain.Address]bool{},
	}, nil
}

func (h *house) now() int64 {
	return h.clock().Unix()
}

// active returns the running auction, nil when the house idles
func (h *house) active() *auction.Auction {
	if int(h.currentId) >= len(h.auctions) {
		return nil
	}
	if a := h.auctions[h.currentId]; a.State() == auction.StateActive {
		return a
	}
	return nil
}

// nextQueued finds the first queued record at or after from
func (h *house) nextQueued(from auction.Id) (auction.Id, bool) {
	for id := int(from); id < len(h.auctions); id++ {
		if h.auctions[id].State() == auction.StateQueued {
			return auction.Id(id), true
		}
	}
	return 0, false
}

func (h *house) skipTerminal() {
	for int(h.currentId) < len(h.auctions) && h.auctions[h.currentId].IsTerminal() {
		h.currentId++
	}
}

func (h *house) isOperator(caller domain.Address) bool {
	return !caller.IsEmpty() && caller.Equals(h.cfg.Operator)
}

var reasons = []struct {
	err    error
	reason string
}{
	{domain.ErrLedgerInconsistent, "ledgerInconsistent"},
	{domain.ErrUnauthorized, "unauthorized"},
	{domain.ErrNotApproved, "notApproved"},
	{domain.ErrNotAssetOwner, "notAssetOwner"},
	{domain.ErrAuctionNotUp, "auctionNotUp"},
	{domain.ErrBelowReserve, "belowReserve"},
	{domain.ErrInsufficientIncrement, "insufficientIncrement"},
	{domain.ErrAuctionNotOver, "auctionNotOver"},
	{domain.ErrAlreadySettled, "alreadySettled"},
	{domain.ErrAlreadyCancelled, "alreadyCancelled"},
	{domain.ErrCannotCancelActive, "cannotCancelActive"},
	{domain.ErrTransferFailure, "transferFailure"},
	{domain.ErrInvalidConfig, "invalidConfig"},
	{domain.ErrNotFound, "notFound"},
}

func reasonOf(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return "internal"
}

// fail records a rejected call and hands the error back
func (h *house) fail(c ctx.Ctx, op string, err error) error {
	reason := reasonOf(err)
	met.BumpSum("op.err", 1, "op", op, "reason", reason)
	logger := c.WithFields(log.Fields{"op": op, "err": err})
	switch reason {
	case "internal", "transferFailure", "ledgerInconsistent":
		logger.Error("call failed")
	default:
		logger.Warn("call rejected")
	}
	return err
}

// checkHalted rejects calls that would change a halted house
func (h *house) checkHalted(c ctx.Ctx, op string) error {
	if h.halted == nil {
		return nil
	}
	return h.fail(c, op, h.halted)
}

func (h *house) Halted(c ctx.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.halted
}

func (h *house) CurrentAuctionId(c ctx.Ctx) auction.Id {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.currentId
}

func (h *house) Auction(c ctx.Ctx, id auction.Id) (*auction.Auction, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if int(id) >= len(h.auctions) {
		return nil, domain.ErrNotFound
	}
	return h.auctions[id].Clone(), nil
}

func (h *house) Config(c ctx.Ctx) auction.Config {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cfg
}

func (h *house) Restore(c ctx.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.lastSeq != 0 {
		return xerrors.New("house already restored")
	}

	for {
		events, err := h.journal.FindAfter(c, h.lastSeq, restoreBatch)
		if err != nil {
			return xerrors.Errorf("read journal after %d: %w", h.lastSeq, err)
		}
		for _, e := range events {
			if e.Seq != h.lastSeq+1 {
				return xerrors.Errorf("journal gap, seq %d after %d", e.Seq, h.lastSeq)
			}
			if err := h.apply(e); err != nil {
				return xerrors.Errorf("replay seq %d: %w", e.Seq, err)
			}
			h.lastSeq = e.Seq
		}
		if len(events) < restoreBatch {
			break
		}
	}

	if err := h.reconcile(c); err != nil {
		return err
	}

	c.WithFields(log.Fields{
		"lastSeq":   h.lastSeq,
		"auctions":  len(h.auctions),
		"currentId": h.currentId,
		"approved":  len(h.approved),
	}).Info("house restored")
	return nil
}

// holderOf is who the journal says holds the listed token
func (h *house) holderOf(a *auction.Auction) domain.Address {
	switch {
	case a.Settled && a.HasBid():
		return a.CurrentBidder
	case a.IsTerminal():
		return a.Owner
	default:
		return h.cfg.Custodian
	}
}

// reconcile makes the registry and custody back what the journal says the
// house holds. Ones that forget their state on restart are refilled from the
// journal, the others are checked.
func (h *house) reconcile(c ctx.Ctx) error {
	assets, restoreAssets := h.registry.(auction.AssetRestorer)
	held := new(big.Int)
	for _, a := range h.auctions {
		if restoreAssets {
			if err := assets.RestoreOwner(c, a.ContractAddress, a.TokenId, h.holderOf(a)); err != nil {
				return xerrors.Errorf("restore owner of auction %d: %w", a.Id, err)
			}
		}
		if a.IsTerminal() {
			continue
		}
		if a.HasBid() {
			held.Add(held, a.CurrentBid)
		}
		owner, err := h.registry.OwnerOf(c, a.ContractAddress, a.TokenId)
		if err != nil {
			return xerrors.Errorf("owner of auction %d: %v: %w", a.Id, err, domain.ErrLedgerInconsistent)
		}
		if !owner.Equals(h.cfg.Custodian) {
			return xerrors.Errorf("auction %d token held by %s: %w", a.Id, owner, domain.ErrLedgerInconsistent)
		}
	}

	if custody, ok := h.custody.(auction.CustodyRestorer); ok {
		if err := custody.RestoreHeld(c, held); err != nil {
			return xerrors.Errorf("restore custody of %s: %w", held, err)
		}
	}
	return nil
}
