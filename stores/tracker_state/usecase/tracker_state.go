package usecase

import (
	"time"

	"golang.org/x/xerrors"

	bCtx "github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain"
)

// cursors keeps one journal cursor per consumer tag. A consumer reads the
// journal after its LastSeqProcessed and moves the cursor with Update once
// the events are applied, inside the same transaction as its own writes.
type cursors struct {
	repo    domain.TrackerStateRepo
	timeout time.Duration
}

// NewTrackerStateUseCase bounds every repo call by timeout
func NewTrackerStateUseCase(r domain.TrackerStateRepo, timeout time.Duration) domain.TrackerStateUseCase {
	return &cursors{
		repo:    r,
		timeout: timeout,
	}
}

func (u *cursors) do(c bCtx.Ctx, f func(bCtx.Ctx) error) error {
	tc, cancel := bCtx.WithTimeout(c, u.timeout)
	defer cancel()
	return f(tc)
}

func checkTag(tag string) error {
	if tag == "" {
		return xerrors.Errorf("empty tracker tag: %w", domain.ErrBadParamInput)
	}
	return nil
}

// Get returns the cursor of id.Tag, domain.ErrNotFound for a tag never stored
func (u *cursors) Get(c bCtx.Ctx, id *domain.TrackerStateId) (*domain.TrackerState, error) {
	if id == nil {
		return nil, domain.ErrBadParamInput
	}
	if err := checkTag(id.Tag); err != nil {
		return nil, err
	}
	var state *domain.TrackerState
	err := u.do(c, func(tc bCtx.Ctx) error {
		var err error
		state, err = u.repo.Get(tc, id)
		return err
	})
	return state, err
}

// Update moves the cursor of state.Tag
func (u *cursors) Update(c bCtx.Ctx, state *domain.TrackerState) error {
	if state == nil {
		return domain.ErrBadParamInput
	}
	if err := checkTag(state.Tag); err != nil {
		return err
	}
	return u.do(c, func(tc bCtx.Ctx) error {
		return u.repo.Update(tc, state)
	})
}

// Store creates the cursor of a tag seen for the first time
func (u *cursors) Store(c bCtx.Ctx, state *domain.TrackerState) error {
	if state == nil {
		return domain.ErrBadParamInput
	}
	if err := checkTag(state.Tag); err != nil {
		return err
	}
	return u.do(c, func(tc bCtx.Ctx) error {
		return u.repo.Store(tc, state)
	})
}
