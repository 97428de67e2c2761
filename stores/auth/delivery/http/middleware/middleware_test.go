package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/mocks"
	"github.com/x-xyz/auctionhouse/middleware"
)

const (
	operator = domain.Address("0x00000000000000000000000000000000000000a1")
	stranger = domain.Address("0x00000000000000000000000000000000000000b2")
)

func TestAuthAndIsOperator(t *testing.T) {
	auth := mocks.NewAuthUsecase(t)
	auth.On("ParseToken", mock.Anything, "op-token").Return(operator, nil)
	auth.On("ParseToken", mock.Anything, "other-token").Return(stranger, nil)
	auth.On("ParseToken", mock.Anything, "junk").Return(domain.Address(""), domain.ErrUnauthorized)

	m := New(auth, func(ctx.Ctx) domain.Address { return operator })

	e := echo.New()
	e.Use(middleware.InitMiddleware().AddContext())
	e.PUT("/admin/config", func(c echo.Context) error {
		return c.String(http.StatusOK, string(c.Get("address").(domain.Address)))
	}, m.Auth(), m.IsOperator())

	tests := []struct {
		desc   string
		header string
		status int
	}{
		{"operator", "Bearer op-token", http.StatusOK},
		{"someone else", "Bearer other-token", http.StatusForbidden},
		{"bad token", "Bearer junk", http.StatusUnauthorized},
		{"no token", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPut, "/admin/config", nil)
		if tt.header != "" {
			req.Header.Set(echo.HeaderAuthorization, tt.header)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, tt.status, rec.Code, tt.desc)
	}
}
