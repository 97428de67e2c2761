package mongo

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/database/mongoclient"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
	"github.com/x-xyz/auctionhouse/service/query"
)

type journalSuite struct {
	suite.Suite
	c       ctx.Ctx
	client  *mongoclient.Client
	journal auction.Journal
}

func TestJournalSuite(t *testing.T) {
	if os.Getenv("MONGO_URI") == "" {
		t.Skip("MONGO_URI not set")
	}
	suite.Run(t, new(journalSuite))
}

func (s *journalSuite) SetupTest() {
	s.c = ctx.Background()
	s.client = mongoclient.MustConnectMongoClient(os.Getenv("MONGO_URI"), "admin", "journal_test", false, true, 1)
	s.Require().NoError(s.client.Database(s.client.DbName).Collection(string(domain.TableAuctionEvents)).Drop(s.c))

	j, err := NewJournalMongoRepo(s.c, query.New(s.client, false))
	s.Require().NoError(err)
	s.journal = j
}

func (s *journalSuite) TestAppendInTransaction() {
	evs := []*auction.Event{
		{Seq: 1, Type: auction.EventAuctionAdded, AuctionId: 0, ReservePrice: "100"},
		{Seq: 2, Type: auction.EventAuctionStarted, AuctionId: 0, StartTime: 10, EndTime: 20},
	}
	s.Require().NoError(s.journal.RunWithTransaction(s.c, func(tc ctx.Ctx) error {
		return s.journal.Append(tc, evs)
	}))

	last, err := s.journal.LastSeq(s.c)
	s.Require().NoError(err)
	s.Equal(uint64(2), last)

	res, err := s.journal.FindAfter(s.c, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(res, 1)
	s.Equal(int64(20), res[0].EndTime)

	s.ErrorIs(s.journal.Append(s.c, evs[1:]), domain.ErrConflict)
}

func (s *journalSuite) TestAbortedTransactionLeavesNothing() {
	boom := errors.New("boom")
	err := s.journal.RunWithTransaction(s.c, func(tc ctx.Ctx) error {
		if err := s.journal.Append(tc, []*auction.Event{{Seq: 1, Type: auction.EventAuctionAdded}}); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	last, err := s.journal.LastSeq(s.c)
	s.Require().NoError(err)
	s.Equal(uint64(0), last)
}
