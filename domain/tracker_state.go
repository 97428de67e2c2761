package domain

import (
	"github.com/x-xyz/auctionhouse/base/ctx"
)

const DefaultTag = "default"

// TrackerState is how far a journal consumer has read
type TrackerState struct {
	Tag              string `bson:"tag"`
	Version          uint64 `bson:"version"`
	LastSeqProcessed uint64 `bson:"lastSeqProcessed"`
}

func (s *TrackerState) ToId() *TrackerStateId {
	return &TrackerStateId{
		Tag: s.Tag,
	}
}

type TrackerStateId struct {
	Tag string `bson:"tag"`
}

type TrackerStateRepo interface {
	Get(ctx.Ctx, *TrackerStateId) (*TrackerState, error)
	Update(ctx.Ctx, *TrackerState) error
	Store(ctx.Ctx, *TrackerState) error
}

type TrackerStateUseCase interface {
	Get(ctx.Ctx, *TrackerStateId) (*TrackerState, error)
	Update(ctx.Ctx, *TrackerState) error
	Store(ctx.Ctx, *TrackerState) error
}
