package http

import (
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/delivery"
	"github.com/x-xyz/auctionhouse/base/price"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
	authMiddleware "github.com/x-xyz/auctionhouse/stores/auth/delivery/http/middleware"
)

type handler struct {
	house auction.HouseUseCase
}

func New(e *echo.Echo, house auction.HouseUseCase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{house: house}

	g := e.Group("/auctions")
	g.GET("/current", h.getCurrent)
	g.GET("/:id", h.getAuction)
	g.POST("", h.addNFT, authMiddleware.Auth())
	g.POST("/settle", h.settle, authMiddleware.Auth())
	g.POST("/:id/bids", h.createBid, authMiddleware.Auth())
	g.POST("/:id/cancel", h.cancel, authMiddleware.Auth())

	e.GET("/accounts/:address/approved", h.isApproved)
	e.GET("/config", h.getConfig)

	admin := e.Group("/admin", authMiddleware.Auth(), authMiddleware.IsOperator())
	admin.POST("/accounts", h.addApprovedAccount)
	admin.PUT("/config", h.updateConfig)
}

// auctionView renders amounts as wei strings plus their ether form
type auctionView struct {
	Id                        auction.Id     `json:"id"`
	State                     auction.State  `json:"state"`
	ContractAddress           domain.Address `json:"contractAddress"`
	TokenId                   domain.TokenId `json:"tokenId"`
	Owner                     domain.Address `json:"owner"`
	ReservePrice              string         `json:"reservePrice"`
	ReservePriceInEther       string         `json:"reservePriceInEther"`
	StartTime                 int64          `json:"startTime"`
	EndTime                   int64          `json:"endTime"`
	CurrentBidder             domain.Address `json:"currentBidder,omitempty"`
	CurrentBid                string         `json:"currentBid"`
	CurrentBidInEther         string         `json:"currentBidInEther"`
	MinNextBid                string         `json:"minNextBid,omitempty"`
	MinBidIncrementPercentage uint8          `json:"minBidIncrementPercentage"`
	TimeBuffer                int64          `json:"timeBuffer"`
}

func toView(a *auction.Auction) *auctionView {
	v := &auctionView{
		Id:                        a.Id,
		State:                     a.State(),
		ContractAddress:           a.ContractAddress,
		TokenId:                   a.TokenId,
		Owner:                     a.Owner,
		ReservePrice:              domain.AmountString(a.ReservePrice),
		StartTime:                 a.StartTime,
		EndTime:                   a.EndTime,
		CurrentBidder:             a.CurrentBidder,
		CurrentBid:                domain.AmountString(a.CurrentBid),
		MinBidIncrementPercentage: a.MinBidIncrementPercentage,
		TimeBuffer:                a.TimeBuffer,
	}
	// both strings come from big.Int so they always format
	v.ReservePriceInEther, _ = price.FormatWei(v.ReservePrice)
	v.CurrentBidInEther, _ = price.FormatWei(v.CurrentBid)
	if v.State == auction.StateActive {
		v.MinNextBid = a.MinNextBid().String()
	}
	return v
}

func parseId(c echo.Context) (auction.Id, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrBadParamInput
	}
	return auction.Id(id), nil
}

// parseValue takes wei, or ether when wei is empty
func parseValue(wei, ether string) (*big.Int, error) {
	if wei != "" {
		return domain.ParseAmount(wei)
	}
	if ether != "" {
		return price.ParseEther(ether)
	}
	return nil, domain.ErrBadParamInput
}

func (h *handler) bind(c echo.Context, p interface{}) error {
	if err := c.Bind(p); err != nil {
		return domain.ErrBadParamInput
	}
	if err := c.Validate(p); err != nil {
		return err
	}
	return nil
}

func (h *handler) getCurrent(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id := h.house.CurrentAuctionId(ctx)
	res := struct {
		AuctionId auction.Id   `json:"auctionId"`
		Auction   *auctionView `json:"auction,omitempty"`
	}{AuctionId: id}

	if a, err := h.house.Auction(ctx, id); err == nil && a.State() == auction.StateActive {
		res.Auction = toView(a)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	a, err := h.house.Auction(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, toView(a))
}

func (h *handler) isApproved(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	address := domain.Address(c.Param("address"))
	return delivery.MakeJsonResp(c, http.StatusOK, h.house.IsApprovedAccount(ctx, address))
}

type configView struct {
	Operator                  domain.Address `json:"operator"`
	Custodian                 domain.Address `json:"custodian"`
	Duration                  int64          `json:"duration"`
	MinBidIncrementPercentage uint8          `json:"minBidIncrementPercentage"`
	TimeBuffer                int64          `json:"timeBuffer"`
}

func (h *handler) getConfig(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, toConfigView(h.house.Config(ctx)))
}

func toConfigView(cfg auction.Config) configView {
	return configView{
		Operator:                  cfg.Operator,
		Custodian:                 cfg.Custodian,
		Duration:                  int64(cfg.Duration / time.Second),
		MinBidIncrementPercentage: cfg.MinBidIncrementPercentage,
		TimeBuffer:                int64(cfg.TimeBuffer / time.Second),
	}
}

// addNFT
//
//	@Summary		List an asset
//	@Description	Moves the asset into house custody and queues it, the first listing starts at once
//	@Tags			auctions
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		201	{object}	auctionView
//	@Failure		400
//	@Failure		403
//	@Router			/auctions [post]
func (h *handler) addNFT(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		ContractAddress domain.Address `json:"contractAddress" validate:"required,address"`
		TokenId         domain.TokenId `json:"tokenId" validate:"required,wei"`
		// ReservePrice is wei, ReservePriceInEther is read when it is empty
		ReservePrice        string `json:"reservePrice" validate:"omitempty,wei"`
		ReservePriceInEther string `json:"reservePriceInEther"`
	}

	p := &params{}
	if err := h.bind(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	reserve, err := parseValue(p.ReservePrice, p.ReservePriceInEther)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.house.AddNFT(ctx, caller, p.ContractAddress, p.TokenId, reserve)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, toView(a))
}

// createBid
//
//	@Summary		Bid on the running auction
//	@Description	Deposits the bid into house custody and refunds the previous leader
//	@Tags			auctions
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id	path		int	true	"auction id"	example(1)
//	@Success		201	{object}	auctionView
//	@Failure		400
//	@Failure		401
//	@Failure		409
//	@Router			/auctions/{id}/bids [post]
func (h *handler) createBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	type params struct {
		Value        string `json:"value" validate:"omitempty,wei"`
		ValueInEther string `json:"valueInEther"`
	}

	p := &params{}
	if err := h.bind(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	value, err := parseValue(p.Value, p.ValueInEther)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	a, err := h.house.CreateBid(ctx, caller, id, value)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, toView(a))
}

// settle
//
//	@Summary		Settle the running auction
//	@Tags			auctions
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Success		200	{object}	auctionView
//	@Failure		409
//	@Failure		502
//	@Router			/auctions/settle [post]
func (h *handler) settle(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	a, err := h.house.SettleAuction(ctx, caller)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, toView(a))
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := parseId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	a, err := h.house.CancelAuction(ctx, caller, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, toView(a))
}

func (h *handler) addApprovedAccount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		Account domain.Address `json:"account" validate:"required,address"`
	}

	p := &params{}
	if err := h.bind(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := h.house.AddApprovedAccount(ctx, caller, p.Account); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, p.Account.ToLower())
}

// updateConfig applies the fields present in one call, durations in seconds
// capped at a year for the auction and a day for the time buffer
func (h *handler) updateConfig(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		Duration                  *int64 `json:"duration" validate:"omitempty,min=1,max=31536000"`
		MinBidIncrementPercentage *uint8 `json:"minBidIncrementPercentage" validate:"omitempty,max=100"`
		TimeBuffer                *int64 `json:"timeBuffer" validate:"omitempty,min=0,max=86400"`
	}

	p := &params{}
	if err := h.bind(c, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	upd := auction.ConfigUpdate{MinBidIncrementPercentage: p.MinBidIncrementPercentage}
	if p.Duration != nil {
		d := time.Duration(*p.Duration) * time.Second
		upd.Duration = &d
	}
	if p.TimeBuffer != nil {
		d := time.Duration(*p.TimeBuffer) * time.Second
		upd.TimeBuffer = &d
	}
	cfg, err := h.house.UpdateConfig(ctx, caller, upd)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, toConfigView(cfg))
}
