package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/auctionhouse/base/validator"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
	"github.com/x-xyz/auctionhouse/domain/mirror"
	"github.com/x-xyz/auctionhouse/domain/mirror/mocks"
	"github.com/x-xyz/auctionhouse/middleware"
)

const bidder = domain.Address("0x0000000000000000000000000000000000000b0b")

func newServer(t *testing.T) (*echo.Echo, *mocks.UseCase) {
	uc := mocks.NewUseCase(t)
	e := echo.New()
	e.Validator = validator.NewCustomValidator(validator.New())
	e.Use(middleware.InitMiddleware().AddContext())
	New(e, uc)
	return e, uc
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetBids(t *testing.T) {
	e, uc := newServer(t)
	uc.On("GetBids", mock.Anything, auction.Id(3), 2).Return([]*mirror.Bid{
		{AuctionId: 3, Seq: 9, Bidder: bidder, Value: "2", ValueInEther: "0.000000000000000002", LastBid: true},
		{AuctionId: 3, Seq: 8, Bidder: bidder, Value: "1", ValueInEther: "0.000000000000000001"},
	}, nil).Once()
	uc.On("GetBids", mock.Anything, auction.Id(3), defaultLimit).Return([]*mirror.Bid{}, nil).Once()

	rec := get(e, "/auctions/3/bids?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"seq":9`)

	rec = get(e, "/auctions/3/bids")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(e, "/auctions/3/bids?limit=1000")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAuction(t *testing.T) {
	e, uc := newServer(t)
	uc.On("GetAuction", mock.Anything, auction.Id(1)).Return(&mirror.Auction{AuctionId: 1, Started: true}, nil).Once()
	uc.On("GetAuction", mock.Anything, auction.Id(2)).Return(nil, domain.ErrNotFound).Once()
	uc.On("GetCurrent", mock.Anything).Return(nil, domain.ErrNotFound).Once()

	rec := get(e, "/auctions/1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"started":true`)

	require.Equal(t, http.StatusNotFound, get(e, "/auctions/2").Code)
	require.Equal(t, http.StatusBadRequest, get(e, "/auctions/abc").Code)
	require.Equal(t, http.StatusNotFound, get(e, "/auctions/current").Code)
}

func TestGetAuctions(t *testing.T) {
	e, uc := newServer(t)

	var got mirror.AuctionFindAllOptions
	uc.On("GetAuctions", mock.Anything, mock.Anything, mock.Anything).Return([]*mirror.Auction{{AuctionId: 4}}, nil).Run(func(args mock.Arguments) {
		got = mirror.GetAuctionFindAllOptions(
			args.Get(1).(mirror.AuctionFindAllOptionsFunc),
			args.Get(2).(mirror.AuctionFindAllOptionsFunc),
		)
	}).Once()

	rec := get(e, "/auctions?offset=10&limit=5&state=active")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 10, got.Offset)
	require.Equal(t, 5, got.Limit)
	require.NotNil(t, got.State)
	require.Equal(t, auction.StateActive, *got.State)

	require.Equal(t, http.StatusBadRequest, get(e, "/auctions?state=sold").Code)
	require.Equal(t, http.StatusBadRequest, get(e, "/auctions?limit=500").Code)
}

func TestIsApproved(t *testing.T) {
	e, uc := newServer(t)
	uc.On("IsApproved", mock.Anything, bidder).Return(true, nil).Once()

	rec := get(e, "/accounts/"+string(bidder)+"/approved")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"data":true,"status":"success"}`, rec.Body.String())

	require.Equal(t, http.StatusBadRequest, get(e, "/accounts/0x12/approved").Code)
}
