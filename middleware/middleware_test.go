package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/auctionhouse/base/ctx"
)

func TestAddContext(t *testing.T) {
	m := InitMiddleware()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	var got ctx.Ctx
	h := m.AddContext()(func(c echo.Context) error {
		got = c.Get("ctx").(ctx.Ctx)
		return nil
	})
	require.NoError(t, h(c))
	require.NotNil(t, got.Context)
	require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	require.Equal(t, rec.Header().Get(echo.HeaderXRequestID), got.Value("requestID"))
}

func TestIsValidAddress(t *testing.T) {
	e := echo.New()
	e.GET("/accounts/:address", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, IsValidAddress("address"))

	tests := []struct {
		path   string
		status int
	}{
		{"/accounts/0x939ae6a4c8dfdbb1f7085189574f0a938013952b", http.StatusNoContent},
		{"/accounts/0x000", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		require.Equal(t, tt.status, rec.Code, tt.path)
	}
}
