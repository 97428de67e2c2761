package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/middleware"
)

type checkFunc func(ctx.Ctx) error

func (f checkFunc) Check(c ctx.Ctx) error {
	return f(c)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ready", nil, http.StatusOK, `{"healthy":true}`},
		{"store down", errors.New("redis down"), http.StatusServiceUnavailable, `{"healthy":false,"reason":"redis down"}`},
		{
			"house halted",
			xerrors.Errorf("settle: %w", domain.ErrLedgerInconsistent),
			http.StatusServiceUnavailable,
			`{"healthy":false,"code":"LedgerInconsistent","reason":"settle: house and ledger disagree"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(middleware.InitMiddleware().AddContext())
			New(e, checkFunc(func(ctx.Ctx) error { return tt.err }))

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, tt.status, rec.Code)
			require.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}
