package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
)

func events(from, to uint64) []*auction.Event {
	res := []*auction.Event{}
	for s := from; s <= to; s++ {
		res = append(res, &auction.Event{Seq: s, Type: auction.EventAuctionBid})
	}
	return res
}

func TestAppendAndFind(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	j := NewJournal()

	req.NoError(j.Append(c, events(1, 5)))
	last, err := j.LastSeq(c)
	req.NoError(err)
	req.Equal(uint64(5), last)

	res, err := j.FindAfter(c, 2, 2)
	req.NoError(err)
	req.Len(res, 2)
	req.Equal(uint64(3), res[0].Seq)
	req.Equal(uint64(4), res[1].Seq)

	res, err = j.FindAfter(c, 0, 0)
	req.NoError(err)
	req.Len(res, 5)

	// a gap or a replayed seq is refused
	req.ErrorIs(j.Append(c, events(7, 7)), domain.ErrConflict)
	req.ErrorIs(j.Append(c, events(5, 5)), domain.ErrConflict)
}

func TestFindAfterReturnsCopies(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	j := NewJournal()
	req.NoError(j.Append(c, events(1, 1)))

	res, err := j.FindAfter(c, 0, 0)
	req.NoError(err)
	res[0].Type = auction.EventAuctionSettled

	res, err = j.FindAfter(c, 0, 0)
	req.NoError(err)
	req.Equal(auction.EventAuctionBid, res[0].Type)
}

func TestRunWithTransaction(t *testing.T) {
	c := ctx.Background()

	t.Run("commit on success", func(t *testing.T) {
		req := require.New(t)
		j := NewJournal()
		err := j.RunWithTransaction(c, func(tc ctx.Ctx) error {
			req.NoError(j.Append(tc, events(1, 2)))

			// not visible before commit
			last, err := j.LastSeq(tc)
			req.NoError(err)
			req.Equal(uint64(0), last)
			return nil
		})
		req.NoError(err)
		last, err := j.LastSeq(c)
		req.NoError(err)
		req.Equal(uint64(2), last)
	})

	t.Run("discard on failure", func(t *testing.T) {
		req := require.New(t)
		j := NewJournal()
		boom := errors.New("boom")
		err := j.RunWithTransaction(c, func(tc ctx.Ctx) error {
			req.NoError(j.Append(tc, events(1, 2)))
			return boom
		})
		req.ErrorIs(err, boom)
		last, err := j.LastSeq(c)
		req.NoError(err)
		req.Equal(uint64(0), last)
	})
}
