package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/delivery"
	"github.com/x-xyz/auctionhouse/domain"
)

type AuthMiddleware struct {
	auth domain.AuthUsecase
	// operator returns the current operator, it can change with the house config
	operator func(ctx.Ctx) domain.Address
}

func New(auth domain.AuthUsecase, operator func(ctx.Ctx) domain.Address) *AuthMiddleware {
	return &AuthMiddleware{
		auth:     auth,
		operator: operator,
	}
}

// Auth requires a bearer token and puts its address under "address"
func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateAuthToken)
}

func (m *AuthMiddleware) IsOperator() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Get("ctx").(ctx.Ctx)
			address := c.Get("address").(domain.Address)

			if !address.Equals(m.operator(ctx)) {
				return delivery.MakeJsonResp(c, http.StatusForbidden, domain.ErrUnauthorized)
			}
			return next(c)
		}
	}
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	ctx := c.Get("ctx").(ctx.Ctx)
	if ads, err := m.auth.ParseToken(ctx, key); err != nil {
		ctx.WithField("err", err).Warn("auth.ParseToken failed")
		return false, err
	} else {
		c.Set("address", ads)
		return true, nil
	}
}
