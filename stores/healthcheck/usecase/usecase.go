package usecase

import (
	"github.com/x-xyz/auctionhouse/base/ctx"
	hcdomain "github.com/x-xyz/auctionhouse/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
	// ready reports component state that has no store to ping, e.g. a restored house
	ready func(ctx.Ctx) error
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(repo hcdomain.HealthCheckRepo, ready func(ctx.Ctx) error) hcdomain.HealthCheckUsecase {
	return &impl{
		repo:  repo,
		ready: ready,
	}
}

func (im *impl) Check(context ctx.Ctx) error {
	if err := im.repo.PingDB(context); err != nil {
		return err
	}
	if im.ready != nil {
		return im.ready(context)
	}
	return nil
}
