package memory

import (
	"context"
	"sync"

	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
)

type txKey struct{}

type tx struct {
	pending []*auction.Event
}

type journal struct {
	mu     sync.RWMutex
	events []*auction.Event

	// one transaction at a time
	txMu sync.Mutex
}

// NewJournal returns a journal kept in memory, used by tests and the sandbox house
func NewJournal() auction.Journal {
	return &journal{}
}

func (j *journal) Append(c ctx.Ctx, events []*auction.Event) error {
	copied := make([]*auction.Event, len(events))
	for i, e := range events {
		ev := *e
		copied[i] = &ev
	}

	if t, ok := c.Value(txKey{}).(*tx); ok {
		t.pending = append(t.pending, copied...)
		return nil
	}
	return j.commit(copied)
}

func (j *journal) commit(events []*auction.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	last := j.lastSeq()
	for _, e := range events {
		if e.Seq != last+1 {
			return xerrors.Errorf("seq %d after %d: %w", e.Seq, last, domain.ErrConflict)
		}
		last = e.Seq
	}
	j.events = append(j.events, events...)
	return nil
}

func (j *journal) lastSeq() uint64 {
	if len(j.events) == 0 {
		return 0
	}
	return j.events[len(j.events)-1].Seq
}

func (j *journal) FindAfter(c ctx.Ctx, seq uint64, limit int) ([]*auction.Event, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	res := []*auction.Event{}
	for _, e := range j.events {
		if e.Seq <= seq {
			continue
		}
		if limit > 0 && len(res) >= limit {
			break
		}
		ev := *e
		res = append(res, &ev)
	}
	return res, nil
}

func (j *journal) LastSeq(c ctx.Ctx) (uint64, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.lastSeq(), nil
}

// RunWithTransaction buffers the appends done by run and commits them only when run succeeds
func (j *journal) RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error {
	if _, ok := c.Value(txKey{}).(*tx); ok {
		return run(c)
	}

	j.txMu.Lock()
	defer j.txMu.Unlock()

	t := &tx{}
	if err := run(ctx.From(c, context.WithValue(c.Context, txKey{}, t))); err != nil {
		return err
	}
	return j.commit(t.pending)
}
