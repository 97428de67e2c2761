package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
	// Code names the failed precondition so callers can branch on it
	Code string `json:"code,omitempty"`
}

type errorCode struct {
	err    error
	status int
	code   string
}

// first match wins, keep wrapped errors before their causes
var errorCodes = []errorCode{
	{domain.ErrLedgerInconsistent, http.StatusServiceUnavailable, "LedgerInconsistent"},
	{domain.ErrUnauthorized, http.StatusForbidden, "Unauthorized"},
	{domain.ErrNotApproved, http.StatusForbidden, "NotApproved"},
	{domain.ErrNotAssetOwner, http.StatusForbidden, "NotAssetOwner"},
	{domain.ErrAuctionNotUp, http.StatusConflict, "AuctionNotUp"},
	{domain.ErrBelowReserve, http.StatusConflict, "BelowReserve"},
	{domain.ErrInsufficientIncrement, http.StatusConflict, "InsufficientIncrement"},
	{domain.ErrAuctionNotOver, http.StatusConflict, "AuctionNotOver"},
	{domain.ErrAlreadySettled, http.StatusConflict, "AlreadySettled"},
	{domain.ErrAlreadyCancelled, http.StatusConflict, "AlreadyCancelled"},
	{domain.ErrCannotCancelActive, http.StatusConflict, "CannotCancelActive"},
	{domain.ErrTransferFailure, http.StatusBadGateway, "TransferFailure"},
	{domain.ErrInsufficientFunds, http.StatusPaymentRequired, "InsufficientFunds"},
	{domain.ErrNotTokenOwner, http.StatusConflict, "NotTokenOwner"},
	{domain.ErrNotOperator, http.StatusConflict, "NotOperator"},
	{domain.ErrNotFound, http.StatusNotFound, "NotFound"},
	{query.ErrNotFound, http.StatusNotFound, "NotFound"},
	{domain.ErrConflict, http.StatusConflict, "Conflict"},
	{domain.ErrBadParamInput, http.StatusBadRequest, "BadParamInput"},
	{domain.ErrInvalidNumberFormat, http.StatusBadRequest, "InvalidNumberFormat"},
	{domain.ErrInvalidAddress, http.StatusBadRequest, "InvalidAddress"},
	{domain.ErrInvalidConfig, http.StatusBadRequest, "InvalidConfig"},
	{domain.ErrInvalidSignature, http.StatusUnauthorized, "InvalidSignature"},
	{domain.ErrInvalidNonce, http.StatusUnauthorized, "InvalidNonce"},
}

// ErrorStatus maps an error to its http status and code, unknown errors are 500
func ErrorStatus(err error) (int, string) {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.status, ec.code
		}
	}
	return http.StatusInternalServerError, ""
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	code := ""
	if err, ok := data.(error); ok {
		if s, cd := ErrorStatus(err); cd != "" {
			status, code = s, cd
		}
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail, code})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{Data: data, Status: JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
