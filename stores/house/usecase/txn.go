package usecase

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
)

// effect is one call to the registry or custody, undo reverses it
type effect struct {
	name string
	do   func(c ctx.Ctx) error
	undo func(c ctx.Ctx) error
}

// txn is one call in flight. Events are applied to the house as they are
// emitted, before any effect runs. If the journal append or an effect fails,
// the effects already done are undone in reverse and the house goes back to
// the snapshot taken on begin.
type txn struct {
	h      *house
	callId string
	caller domain.Address
	now    int64

	events  []*auction.Event
	effects []effect

	numAuctions int
	currentId   auction.Id
	lastSeq     uint64
	cfg         auction.Config
	touched     map[auction.Id]*auction.Auction
	approvals   []domain.Address

	committed bool
}

func (h *house) begin(c ctx.Ctx, caller domain.Address) *txn {
	return &txn{
		h:           h,
		callId:      uuid.New().String(),
		caller:      caller.ToLower(),
		now:         h.now(),
		numAuctions: len(h.auctions),
		currentId:   h.currentId,
		lastSeq:     h.lastSeq,
		cfg:         h.cfg,
		touched:     map[auction.Id]*auction.Auction{},
	}
}

func (t *txn) emit(e *auction.Event) error {
	switch e.Type {
	case auction.EventAccountApproved:
		if !t.h.approved[e.Account.ToLower()] {
			t.approvals = append(t.approvals, e.Account.ToLower())
		}
	case auction.EventAuctionStarted, auction.EventAuctionBid, auction.EventAuctionExtended,
		auction.EventAuctionSettled, auction.EventAuctionCancelled:
		if _, ok := t.touched[e.AuctionId]; !ok && int(e.AuctionId) < t.numAuctions {
			t.touched[e.AuctionId] = t.h.auctions[e.AuctionId].Clone()
		}
	}

	e.Seq = t.h.lastSeq + 1
	e.CallId = t.callId
	e.Caller = string(t.caller)
	e.Timestamp = t.now
	if err := t.h.apply(e); err != nil {
		return err
	}
	t.h.lastSeq = e.Seq
	t.events = append(t.events, e)
	return nil
}

func (t *txn) effect(name string, do, undo func(c ctx.Ctx) error) {
	t.effects = append(t.effects, effect{name: name, do: do, undo: undo})
}

// commit appends the events and runs the effects inside one journal
// transaction, so the append is only kept when every effect went through.
// The journal may run the callback again on a transient error; effects
// already done are not repeated.
func (t *txn) commit(c ctx.Ctx) error {
	j := t.h.journal
	done := 0
	err := j.RunWithTransaction(c, func(tc ctx.Ctx) error {
		if err := j.Append(tc, t.events); err != nil {
			return xerrors.Errorf("append journal: %w", err)
		}
		for ; done < len(t.effects); done++ {
			eff := t.effects[done]
			if err := eff.do(c); err != nil {
				return xerrors.Errorf("%s: %v: %w", eff.name, err, domain.ErrTransferFailure)
			}
		}
		return nil
	})
	if err != nil {
		if cerr := t.compensate(c, done); cerr != nil {
			return xerrors.Errorf("%v, then %w", err, cerr)
		}
		return err
	}
	t.committed = true

	if t.h.notifier != nil {
		if err := t.h.notifier.Publish(c, t.h.lastSeq); err != nil {
			c.WithFields(log.Fields{"err": err, "seq": t.h.lastSeq}).Warn("failed to publish seq")
		}
	}
	return nil
}

// compensate undoes the first n effects, newest first. An effect that
// cannot be undone halts the house, the ledger no longer matches it.
func (t *txn) compensate(c ctx.Ctx, n int) error {
	var stuck []string
	for i := n - 1; i >= 0; i-- {
		eff := t.effects[i]
		if err := eff.undo(c); err != nil {
			met.BumpSum("compensation.err", 1, "effect", eff.name)
			c.WithFields(log.Fields{
				"err":    err,
				"effect": eff.name,
				"callId": t.callId,
			}).Error("failed to undo effect")
			stuck = append(stuck, eff.name)
		}
	}
	if len(stuck) == 0 {
		return nil
	}

	err := xerrors.Errorf("call %s could not undo %s: %w", t.callId, strings.Join(stuck, ", "), domain.ErrLedgerInconsistent)
	t.h.halted = err
	met.BumpSum("halted", 1)
	c.WithFields(log.Fields{"callId": t.callId, "effects": stuck}).Error("house halted")
	return err
}

// end puts the house back to the snapshot unless the call committed
func (t *txn) end() {
	if t.committed {
		return
	}
	h := t.h
	h.auctions = h.auctions[:t.numAuctions]
	for id, a := range t.touched {
		h.auctions[id] = a
	}
	for _, acc := range t.approvals {
		delete(h.approved, acc)
	}
	h.currentId = t.currentId
	h.lastSeq = t.lastSeq
	h.cfg = t.cfg
}
