package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
	"github.com/x-xyz/auctionhouse/domain/mocks"
	"github.com/x-xyz/auctionhouse/stores/journal/repository/memory"
)

type plainTransactor struct{}

func (plainTransactor) RunWithTransaction(c bCtx.Ctx, run func(bCtx.Ctx) error) error {
	return run(c)
}

type recordingHandler struct {
	seqs []uint64
	err  error
}

func (h *recordingHandler) ProcessEvents(c bCtx.Ctx, events []*auction.Event) error {
	if h.err != nil {
		return h.err
	}
	for _, e := range events {
		h.seqs = append(h.seqs, e.Seq)
	}
	return nil
}

func appendEvents(t *testing.T, j auction.Journal, from, to uint64) {
	evs := []*auction.Event{}
	for s := from; s <= to; s++ {
		evs = append(evs, &auction.Event{Seq: s, Type: auction.EventAuctionBid})
	}
	require.NoError(t, j.Append(bCtx.Background(), evs))
}

func TestJournalTracker_setupTrackerState(t *testing.T) {
	t.Run("exists in repo", func(t *testing.T) {
		req := require.New(t)
		ctx := bCtx.Background()
		uc := new(mocks.TrackerStateUseCase)
		f, err := NewJournalTracker(&JournalTrackerCfg{
			Journal:             memory.NewJournal(),
			Transactor:          plainTransactor{},
			TrackerStateUseCase: uc,
			EventHandl:          &recordingHandler{},
			TrackerTag:          "mirror",
		})
		req.NoError(err)

		state := &domain.TrackerState{Tag: "mirror", Version: Version, LastSeqProcessed: 20}
		uc.On("Get", mock.Anything, state.ToId()).Return(state, nil)

		got, err := f.setupTrackerState(ctx)
		req.NoError(err)
		req.Equal(state, got)
	})

	t.Run("start from zero", func(t *testing.T) {
		req := require.New(t)
		ctx := bCtx.Background()
		uc := new(mocks.TrackerStateUseCase)
		f, err := NewJournalTracker(&JournalTrackerCfg{
			Journal:             memory.NewJournal(),
			Transactor:          plainTransactor{},
			TrackerStateUseCase: uc,
			EventHandl:          &recordingHandler{},
		})
		req.NoError(err)

		state := &domain.TrackerState{Tag: domain.DefaultTag, Version: Version}
		uc.On("Get", mock.Anything, state.ToId()).Return(nil, domain.ErrNotFound)
		uc.On("Store", mock.Anything, state).Return(nil)

		got, err := f.setupTrackerState(ctx)
		req.NoError(err)
		req.Equal(state, got)
		uc.AssertExpectations(t)
	})

	t.Run("unknown version", func(t *testing.T) {
		req := require.New(t)
		uc := new(mocks.TrackerStateUseCase)
		f, err := NewJournalTracker(&JournalTrackerCfg{
			Journal:             memory.NewJournal(),
			Transactor:          plainTransactor{},
			TrackerStateUseCase: uc,
			EventHandl:          &recordingHandler{},
		})
		req.NoError(err)
		uc.On("Get", mock.Anything, mock.Anything).Return(&domain.TrackerState{Tag: domain.DefaultTag, Version: 9}, nil)

		_, err = f.setupTrackerState(bCtx.Background())
		req.Error(err)
	})
}

func TestJournalTracker_catchUp(t *testing.T) {
	t.Run("batches in order", func(t *testing.T) {
		req := require.New(t)
		ctx := bCtx.Background()
		j := memory.NewJournal()
		appendEvents(t, j, 1, 7)

		uc := new(mocks.TrackerStateUseCase)
		uc.On("Update", mock.Anything, mock.AnythingOfType("*domain.TrackerState")).Return(nil)
		h := &recordingHandler{}
		f, err := NewJournalTracker(&JournalTrackerCfg{
			Journal:             j,
			Transactor:          plainTransactor{},
			TrackerStateUseCase: uc,
			EventHandl:          h,
			BatchSize:           3,
		})
		req.NoError(err)
		f.trackerState = &domain.TrackerState{Tag: domain.DefaultTag, Version: Version, LastSeqProcessed: 2}

		req.NoError(f.catchUp(ctx))
		req.Equal([]uint64{3, 4, 5, 6, 7}, h.seqs)
		req.Equal(uint64(7), f.trackerState.LastSeqProcessed)
		uc.AssertNumberOfCalls(t, "Update", 2)
	})

	t.Run("failed batch keeps the state", func(t *testing.T) {
		req := require.New(t)
		ctx := bCtx.Background()
		j := memory.NewJournal()
		appendEvents(t, j, 1, 2)

		uc := new(mocks.TrackerStateUseCase)
		boom := errors.New("boom")
		f, err := NewJournalTracker(&JournalTrackerCfg{
			Journal:             j,
			Transactor:          plainTransactor{},
			TrackerStateUseCase: uc,
			EventHandl:          &recordingHandler{err: boom},
		})
		req.NoError(err)
		f.trackerState = &domain.TrackerState{Tag: domain.DefaultTag, Version: Version}

		req.ErrorIs(f.catchUp(ctx), boom)
		req.Equal(uint64(0), f.trackerState.LastSeqProcessed)
		uc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestJournalTracker_wakesOnNotify(t *testing.T) {
	req := require.New(t)
	ctx, cancel := bCtx.WithCancel(bCtx.Background())
	defer cancel()

	j := memory.NewJournal()
	uc := new(mocks.TrackerStateUseCase)
	uc.On("Get", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	uc.On("Store", mock.Anything, mock.Anything).Return(nil)
	uc.On("Update", mock.Anything, mock.Anything).Return(nil)

	wake := make(chan uint64, 1)
	notifier := &chanNotifier{ch: wake}
	processed := make(chan uint64, 10)
	f, err := NewJournalTracker(&JournalTrackerCfg{
		Journal:             j,
		Notifier:            notifier,
		Transactor:          plainTransactor{},
		TrackerStateUseCase: uc,
		EventHandl:          handlerFunc(func(events []*auction.Event) { processed <- events[len(events)-1].Seq }),
		PollInterval:        time.Hour,
	})
	req.NoError(err)
	f.Start(ctx)

	appendEvents(t, j, 1, 3)
	wake <- 3

	select {
	case seq := <-processed:
		req.Equal(uint64(3), seq)
	case <-time.After(5 * time.Second):
		req.Fail("tracker did not wake up")
	}

	cancel()
	f.Wait()
}

type chanNotifier struct {
	ch chan uint64
}

func (n *chanNotifier) Publish(c bCtx.Ctx, seq uint64) error {
	n.ch <- seq
	return nil
}

func (n *chanNotifier) Subscribe(c bCtx.Ctx) (<-chan uint64, error) {
	return n.ch, nil
}

type handlerFunc func([]*auction.Event)

func (h handlerFunc) ProcessEvents(c bCtx.Ctx, events []*auction.Event) error {
	h(events)
	return nil
}
