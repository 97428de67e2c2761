package healthcheck

import "github.com/x-xyz/auctionhouse/base/ctx"

type HealthCheckRepo interface {
	// PingDB reaches every backing store the binary was started with
	PingDB(ctx ctx.Ctx) error
}

type HealthCheckUsecase interface {
	Check(ctx ctx.Ctx) error
}
