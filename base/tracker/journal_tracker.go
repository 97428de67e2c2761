package tracker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionhouse/base/backoff"
	bCtx "github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/goroutine"
	"github.com/x-xyz/auctionhouse/base/log"
	"github.com/x-xyz/auctionhouse/base/metrics"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
)

var metOnce sync.Once
var met metrics.Service

const (
	Version             = 1
	DefaultBatchSize    = 100
	DefaultPollInterval = 10 * time.Second
	maxRetries          = 8
)

type EventHandler interface {
	ProcessEvents(bCtx.Ctx, []*auction.Event) error
}

// Transactor runs the handler and the tracker state update together, query.Mongo is one
type Transactor interface {
	RunWithTransaction(bCtx.Ctx, func(bCtx.Ctx) error) error
}

type JournalTrackerCfg struct {
	Journal             auction.Journal
	Notifier            auction.Notifier
	Transactor          Transactor
	TrackerStateUseCase domain.TrackerStateUseCase
	EventHandl          EventHandler
	ErrorCh             chan<- error
	TrackerTag          string
	BatchSize           int
	PollInterval        time.Duration
}

// JournalTracker feeds journal events to its handler in seq order. The last
// seq handled is stored in the same transaction as the handler's writes, so
// a restart resumes without gaps or repeats.
type JournalTracker struct {
	journal             auction.Journal
	notifier            auction.Notifier
	q                   Transactor
	trackerStateUseCase domain.TrackerStateUseCase
	eventHandler        EventHandler
	errorCh             chan<- error
	trackerTag          string
	batchSize           int
	pollInterval        time.Duration
	trackerState        *domain.TrackerState
	stoppedCh           chan interface{}
}

func NewJournalTracker(cfg *JournalTrackerCfg) (*JournalTracker, error) {
	metOnce.Do(func() {
		met = metrics.New("tracker")
	})
	if cfg.Journal == nil || cfg.Transactor == nil || cfg.TrackerStateUseCase == nil || cfg.EventHandl == nil {
		return nil, errors.New("config error: journal, transactor, tracker state and handler are required")
	}
	tag := cfg.TrackerTag
	if tag == "" {
		tag = domain.DefaultTag
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &JournalTracker{
		journal:             cfg.Journal,
		notifier:            cfg.Notifier,
		q:                   cfg.Transactor,
		trackerStateUseCase: cfg.TrackerStateUseCase,
		eventHandler:        cfg.EventHandl,
		errorCh:             cfg.ErrorCh,
		trackerTag:          tag,
		batchSize:           batch,
		pollInterval:        poll,
		stoppedCh:           make(chan interface{}),
	}, nil
}

func (f *JournalTracker) Start(ctx bCtx.Ctx) {
	done := goroutine.RecoverableGo(func() {
		if err := f.loop(ctx); err != nil && f.errorCh != nil {
			f.errorCh <- err
		}
	}, goroutine.WithName("journalTracker:"+f.trackerTag))

	go func() {
		defer close(f.stoppedCh)
		if p, ok := <-done; ok && f.errorCh != nil {
			f.errorCh <- fmt.Errorf("journal tracker panic: %v", p.Panic)
		}
	}()
}

func (f *JournalTracker) Wait() {
	<-f.stoppedCh
}

func (f *JournalTracker) loop(ctx bCtx.Ctx) error {
	state, err := f.setupTrackerState(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("setupTrackerState failed")
		return err
	}
	f.trackerState = state

	if err := f.catchUpWithRetry(ctx); err != nil {
		return err
	}

	var wake <-chan uint64
	if f.notifier != nil {
		ch, err := f.notifier.Subscribe(ctx)
		if err != nil {
			// polling alone still gets there
			ctx.WithField("err", err).Warn("notifier.Subscribe failed")
		} else {
			wake = ch
		}
	}

	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case seq, ok := <-wake:
			if !ok {
				ctx.Warn("notifier closed, polling only")
				wake = nil
				continue
			}
			if seq <= f.trackerState.LastSeqProcessed {
				continue
			}
		case <-ticker.C:
		}
		if err := f.catchUpWithRetry(ctx); err != nil {
			return err
		}
	}
}

func (f *JournalTracker) catchUpWithRetry(ctx bCtx.Ctx) error {
	b := backoff.NewExponential(100*time.Millisecond, 10*time.Second)
	for {
		err := f.catchUp(ctx)
		if err == nil {
			return nil
		}
		met.BumpSum("catchUp.err", 1, "tag", f.trackerTag)
		ctx.WithFields(log.Fields{
			"err":     err,
			"tag":     f.trackerTag,
			"attempt": b.Attempts(),
			"lastSeq": f.trackerState.LastSeqProcessed,
		}).Error("catchUp failed")
		if b.Attempts() >= maxRetries {
			return err
		}
		if err := b.Backoff(ctx); err != nil {
			return nil
		}
	}
}

// catchUp handles every committed event after the tracker state
func (f *JournalTracker) catchUp(ctx bCtx.Ctx) error {
	for {
		events, err := f.journal.FindAfter(ctx, f.trackerState.LastSeqProcessed, f.batchSize)
		if err != nil {
			return xerrors.Errorf("failed to read journal: %w", err)
		}
		if len(events) == 0 {
			return nil
		}
		if err := f.processEvents(ctx, events); err != nil {
			return err
		}
		met.BumpAvg("lastSeq", float64(f.trackerState.LastSeqProcessed), "tag", f.trackerTag)
		ctx.WithFields(log.Fields{
			"tag":     f.trackerTag,
			"events":  len(events),
			"lastSeq": f.trackerState.LastSeqProcessed,
		}).Info("processed events")
		if len(events) < f.batchSize {
			return nil
		}
	}
}

func (f *JournalTracker) processEvents(ctx bCtx.Ctx, events []*auction.Event) error {
	next := *f.trackerState
	next.LastSeqProcessed = events[len(events)-1].Seq

	run := func(c bCtx.Ctx) error {
		if err := f.eventHandler.ProcessEvents(c, events); err != nil {
			return xerrors.Errorf("failed to process events: %w", err)
		}
		if err := f.trackerStateUseCase.Update(c, &next); err != nil {
			return xerrors.Errorf("failed to store tracker state: %w", err)
		}
		return nil
	}
	if err := f.q.RunWithTransaction(ctx, run); err != nil {
		return err
	}
	f.trackerState = &next
	return nil
}

func (f *JournalTracker) setupTrackerState(ctx bCtx.Ctx) (*domain.TrackerState, error) {
	id := &domain.TrackerStateId{Tag: f.trackerTag}
	state, err := f.trackerStateUseCase.Get(ctx, id)
	if err == nil {
		if state.Version != Version {
			return nil, fmt.Errorf("cannot migrate tracker state from %d to %d", state.Version, Version)
		}
		return state, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	state = &domain.TrackerState{
		Tag:              f.trackerTag,
		Version:          Version,
		LastSeqProcessed: 0,
	}
	if err := f.trackerStateUseCase.Store(ctx, state); err != nil {
		ctx.WithFields(log.Fields{
			"tag": f.trackerTag,
			"err": err,
		}).Error("failed to store tracker state")
		return nil, err
	}
	ctx.WithField("tag", f.trackerTag).Info("tracker starts from the beginning of the journal")
	return state, nil
}
