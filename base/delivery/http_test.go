package delivery

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/auctionhouse/domain"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrBelowReserve, http.StatusConflict, "BelowReserve"},
		{fmt.Errorf("bid: %w", domain.ErrInsufficientIncrement), http.StatusConflict, "InsufficientIncrement"},
		{fmt.Errorf("pay: %w", domain.ErrTransferFailure), http.StatusBadGateway, "TransferFailure"},
		{domain.ErrNotApproved, http.StatusForbidden, "NotApproved"},
		{domain.ErrNotFound, http.StatusNotFound, "NotFound"},
		{fmt.Errorf("deliver: %v, then %w", domain.ErrTransferFailure, domain.ErrLedgerInconsistent), http.StatusServiceUnavailable, "LedgerInconsistent"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		status, code := ErrorStatus(tt.err)
		require.Equal(t, tt.status, status, tt.err.Error())
		require.Equal(t, tt.code, code, tt.err.Error())
	}
}

func TestMakeJsonResp(t *testing.T) {
	e := echo.New()

	t.Run("error keeps its code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, MakeJsonResp(c, http.StatusInternalServerError, domain.ErrAuctionNotOver))
		require.Equal(t, http.StatusConflict, rec.Code)

		res := JsonResponse{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.Equal(t, JsonResponseStatusFail, res.Status)
		require.Equal(t, "AuctionNotOver", res.Code)
	})

	t.Run("success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, MakeJsonResp(c, http.StatusOK, "ok"))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"data":"ok","status":"success"}`, rec.Body.String())
	})
}
