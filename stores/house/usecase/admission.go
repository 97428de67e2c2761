package usecase

import (
	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
)

func (h *house) AddApprovedAccount(c ctx.Ctx, caller, account domain.Address) error {
	defer met.BumpTime("op.time", "op", "addApprovedAccount").End()
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.checkHalted(c, "addApprovedAccount"); err != nil {
		return err
	}

	if !h.isOperator(caller) {
		return h.fail(c, "addApprovedAccount", domain.ErrUnauthorized)
	}
	if account.IsEmpty() {
		return h.fail(c, "addApprovedAccount", domain.ErrInvalidAddress)
	}
	if h.approved[account.ToLower()] {
		return nil
	}

	t := h.begin(c, caller)
	defer t.end()
	if err := t.emit(&auction.Event{Type: auction.EventAccountApproved, Account: account.ToLower()}); err != nil {
		return h.fail(c, "addApprovedAccount", err)
	}
	if err := t.commit(c); err != nil {
		return h.fail(c, "addApprovedAccount", err)
	}

	c.WithField("account", account).Info("account approved")
	return nil
}

func (h *house) IsApprovedAccount(c ctx.Ctx, account domain.Address) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.approved[account.ToLower()]
}

