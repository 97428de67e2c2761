package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/delivery"
	"github.com/x-xyz/auctionhouse/base/price"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/ledger"
	"github.com/x-xyz/auctionhouse/middleware"
	authMiddleware "github.com/x-xyz/auctionhouse/stores/auth/delivery/http/middleware"
)

type handler struct {
	registry ledger.Registry
	bank     ledger.Bank
	// custodian is the operator every approval is granted to
	custodian domain.Address
}

// New serves the sandbox ledger, only mounted when the house runs without a chain
func New(e *echo.Echo, registry ledger.Registry, bank ledger.Bank, custodian domain.Address, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{
		registry:  registry,
		bank:      bank,
		custodian: custodian,
	}

	g := e.Group("/sandbox")
	g.POST("/faucet", h.faucet)
	g.GET("/balances/:address", h.getBalance, middleware.IsValidAddress("address"))
	g.POST("/tokens", h.mint)
	g.GET("/tokens/:contract/:tokenId/owner", h.getOwner, middleware.IsValidAddress("contract"))
	g.PUT("/approval", h.setApproval, authMiddleware.Auth())
}

func (h *handler) faucet(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Account      domain.Address `json:"account" validate:"required,address"`
		ValueInEther string         `json:"valueInEther" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	amount, err := price.ParseEther(p.ValueInEther)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := h.bank.Credit(ctx, p.Account, amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return h.balanceOf(c, ctx, p.Account, http.StatusCreated)
}

func (h *handler) getBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return h.balanceOf(c, ctx, domain.Address(c.Param("address")), http.StatusOK)
}

func (h *handler) balanceOf(c echo.Context, ctx ctx.Ctx, account domain.Address, status int) error {
	bal := h.bank.BalanceOf(ctx, account).String()
	ether, _ := price.FormatWei(bal)
	return delivery.MakeJsonResp(c, status, struct {
		Account        domain.Address `json:"account"`
		Balance        string         `json:"balance"`
		BalanceInEther string         `json:"balanceInEther"`
	}{account.ToLower(), bal, ether})
}

func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ContractAddress domain.Address `json:"contractAddress" validate:"required,address"`
		TokenId         domain.TokenId `json:"tokenId" validate:"required,wei"`
		To              domain.Address `json:"to" validate:"required,address"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}
	if err := h.registry.Mint(ctx, p.ContractAddress, p.TokenId, p.To); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, p)
}

func (h *handler) getOwner(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	owner, err := h.registry.OwnerOf(ctx, domain.Address(c.Param("contract")), domain.TokenId(c.Param("tokenId")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, owner)
}

// setApproval lets the house move the caller's tokens, the sandbox setApprovalForAll
func (h *handler) setApproval(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	type params struct {
		Approved bool `json:"approved"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := h.registry.SetApprovalForAll(ctx, caller, h.custodian, p.Approved); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, h.registry.IsApprovedForAll(ctx, caller, h.custodian))
}
