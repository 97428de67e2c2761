package mongo

import (
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/database/mongoclient"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/service/query"
)

type trackerStateSuite struct {
	suite.Suite
	c    bCtx.Ctx
	q    query.Mongo
	repo domain.TrackerStateRepo
}

func TestTrackerStateSuite(t *testing.T) {
	if os.Getenv("MONGO_URI") == "" {
		t.Skip("MONGO_URI not set")
	}
	suite.Run(t, new(trackerStateSuite))
}

func (s *trackerStateSuite) SetupTest() {
	s.c = bCtx.Background()
	s.q = query.New(mongoclient.MustConnectMongoClient(os.Getenv("MONGO_URI"), "admin", "testdb", false, true, 1), false)
	_, err := s.q.RemoveAll(s.c, domain.TableTrackerStates, bson.M{})
	s.Require().NoError(err)
	repo, err := NewTrackerStateMongoRepo(s.c, s.q)
	s.Require().NoError(err)
	s.repo = repo
}

func (s *trackerStateSuite) TestLifecycle() {
	id := &domain.TrackerStateId{Tag: "mirror"}
	_, err := s.repo.Get(s.c, id)
	s.ErrorIs(err, domain.ErrNotFound)

	state := &domain.TrackerState{Tag: "mirror", Version: 1}
	s.Require().NoError(s.repo.Store(s.c, state))
	s.ErrorIs(s.repo.Store(s.c, state), domain.ErrConflict)

	state.LastSeqProcessed = 42
	s.Require().NoError(s.repo.Update(s.c, state))

	got, err := s.repo.Get(s.c, id)
	s.Require().NoError(err)
	s.Equal(uint64(42), got.LastSeqProcessed)
}
