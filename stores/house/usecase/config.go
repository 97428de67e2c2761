package usecase

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
)

// Config changes only reach auctions activated afterwards. A running auction
// keeps the end time and increment it started with.

func (h *house) SetDuration(c ctx.Ctx, caller domain.Address, d time.Duration) error {
	_, err := h.updateConfig(c, "setDuration", caller, auction.ConfigUpdate{Duration: &d})
	return err
}

func (h *house) SetMinBidIncrementPercentage(c ctx.Ctx, caller domain.Address, pct uint8) error {
	_, err := h.updateConfig(c, "setMinBidIncrementPercentage", caller, auction.ConfigUpdate{MinBidIncrementPercentage: &pct})
	return err
}

func (h *house) SetTimeBuffer(c ctx.Ctx, caller domain.Address, d time.Duration) error {
	_, err := h.updateConfig(c, "setTimeBuffer", caller, auction.ConfigUpdate{TimeBuffer: &d})
	return err
}

func (h *house) UpdateConfig(c ctx.Ctx, caller domain.Address, upd auction.ConfigUpdate) (auction.Config, error) {
	return h.updateConfig(c, "updateConfig", caller, upd)
}

// configEvents checks every field before any event is built, one bad field rejects the lot
func configEvents(upd auction.ConfigUpdate) ([]*auction.Event, error) {
	var events []*auction.Event
	if d := upd.Duration; d != nil {
		if *d < time.Second {
			return nil, xerrors.Errorf("duration %s: %w", *d, domain.ErrInvalidConfig)
		}
		events = append(events, &auction.Event{
			Type:    auction.EventAuctionDurationUpdated,
			Seconds: int64(*d / time.Second),
		})
	}
	if pct := upd.MinBidIncrementPercentage; pct != nil {
		if *pct > 100 {
			return nil, xerrors.Errorf("percentage %d: %w", *pct, domain.ErrInvalidConfig)
		}
		events = append(events, &auction.Event{
			Type:       auction.EventAuctionMinBidIncrementPercentageUpdated,
			Percentage: *pct,
		})
	}
	if d := upd.TimeBuffer; d != nil {
		if *d < 0 {
			return nil, xerrors.Errorf("time buffer %s: %w", *d, domain.ErrInvalidConfig)
		}
		events = append(events, &auction.Event{
			Type:    auction.EventAuctionTimeBufferUpdated,
			Seconds: int64(*d / time.Second),
		})
	}
	return events, nil
}

func (h *house) updateConfig(c ctx.Ctx, op string, caller domain.Address, upd auction.ConfigUpdate) (auction.Config, error) {
	defer met.BumpTime("op.time", "op", op).End()

	events, err := configEvents(upd)
	if err != nil {
		return auction.Config{}, h.fail(c, op, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.checkHalted(c, op); err != nil {
		return auction.Config{}, err
	}
	if !h.isOperator(caller) {
		return auction.Config{}, h.fail(c, op, domain.ErrUnauthorized)
	}
	if len(events) == 0 {
		return h.cfg, nil
	}

	t := h.begin(c, caller)
	defer t.end()
	for _, ev := range events {
		if err := t.emit(ev); err != nil {
			return auction.Config{}, h.fail(c, op, err)
		}
	}
	if err := t.commit(c); err != nil {
		return auction.Config{}, h.fail(c, op, err)
	}

	c.WithFields(log.Fields{
		"op":                        op,
		"duration":                  h.cfg.Duration.String(),
		"minBidIncrementPercentage": h.cfg.MinBidIncrementPercentage,
		"timeBuffer":                h.cfg.TimeBuffer.String(),
	}).Info("config updated")
	return h.cfg, nil
}
