package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/delivery"
	hcdomain "github.com/x-xyz/auctionhouse/domain/healthcheck"
)

type healthView struct {
	Healthy bool `json:"healthy"`
	// Code is the error code of a known failure, e.g. LedgerInconsistent
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type handler struct {
	hc hcdomain.HealthCheckUsecase
}

// New mounts GET /health. It answers 503 while a store is unreachable or the binary is not ready to serve.
func New(e *echo.Echo, hc hcdomain.HealthCheckUsecase) {
	h := &handler{hc: hc}
	e.GET("/health", h.check)
}

func (h *handler) check(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	if err := h.hc.Check(ctx); err != nil {
		_, code := delivery.ErrorStatus(err)
		ctx.WithField("err", err).Warn("health check failed")
		return c.JSON(http.StatusServiceUnavailable, healthView{Code: code, Reason: err.Error()})
	}
	return c.JSON(http.StatusOK, healthView{Healthy: true})
}
