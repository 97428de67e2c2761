package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/delivery"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
	"github.com/x-xyz/auctionhouse/domain/mirror"
	"github.com/x-xyz/auctionhouse/middleware"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type handler struct {
	mirror mirror.UseCase
}

func New(e *echo.Echo, mirror mirror.UseCase) {
	h := &handler{mirror: mirror}

	g := e.Group("/auctions")
	g.GET("", h.getAuctions)
	g.GET("/current", h.getCurrent)
	g.GET("/:id", h.getAuction)
	g.GET("/:id/bids", h.getBids)

	e.GET("/accounts/:address/approved", h.isApproved, middleware.IsValidAddress("address"))
}

func parseId(c echo.Context) (auction.Id, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrBadParamInput
	}
	return auction.Id(id), nil
}

// getAuctions
//
//	@Summary		List auctions
//	@Tags			auctions
//	@Produce		json
//	@Param			state	query	string	false	"queued, active, settled or cancelled"
//	@Param			offset	query	int		false	"offset"
//	@Param			limit	query	int		false	"limit"
//	@Success		200		{array}	mirror.Auction
//	@Router			/auctions [get]
func (h *handler) getAuctions(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Offset int    `query:"offset" validate:"min=0"`
		Limit  int    `query:"limit" validate:"min=0,max=100"`
		State  string `query:"state" validate:"omitempty,oneof=queued active settled cancelled"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if p.Limit == 0 {
		p.Limit = defaultLimit
	}

	opts := []mirror.AuctionFindAllOptionsFunc{mirror.WithPagination(p.Offset, p.Limit)}
	if p.State != "" {
		opts = append(opts, mirror.WithState(auction.State(p.State)))
	}

	res, err := h.mirror.GetAuctions(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Error("mirror.GetAuctions failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getCurrent(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.mirror.GetCurrent(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	res, err := h.mirror.GetAuction(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getBids lists the bids of an auction, highest first
//
//	@Summary		List the bids of an auction
//	@Tags			auctions
//	@Produce		json
//	@Param			id		path	int	true	"auction id"	example(1)
//	@Param			limit	query	int	false	"at most 100"	example(20)
//	@Success		200		{array}	mirror.Bid
//	@Failure		404
//	@Router			/auctions/{id}/bids [get]
func (h *handler) getBids(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	limit := defaultLimit
	if s := c.QueryParam("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil || limit <= 0 || limit > maxLimit {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
		}
	}

	res, err := h.mirror.GetBids(ctx, id, limit)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) isApproved(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	ok, err := h.mirror.IsApproved(ctx, domain.Address(c.Param("address")).ToLower())
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, ok)
}
