package http

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/auctionhouse/base/ctx"
	"github.com/x-xyz/auctionhouse/base/delivery"
	"github.com/x-xyz/auctionhouse/base/price"
	"github.com/x-xyz/auctionhouse/base/validator"
	"github.com/x-xyz/auctionhouse/domain"
	"github.com/x-xyz/auctionhouse/domain/auction"
	"github.com/x-xyz/auctionhouse/domain/ledger"
	"github.com/x-xyz/auctionhouse/domain/mocks"
	"github.com/x-xyz/auctionhouse/middleware"
	authMiddleware "github.com/x-xyz/auctionhouse/stores/auth/delivery/http/middleware"
	houseUsecase "github.com/x-xyz/auctionhouse/stores/house/usecase"
	"github.com/x-xyz/auctionhouse/stores/journal/repository/memory"
	ledgerUsecase "github.com/x-xyz/auctionhouse/stores/ledger/usecase"
)

const (
	operator  = domain.Address("0x0000000000000000000000000000000000000001")
	custodian = domain.Address("0x00000000000000000000000000000000000000aa")
	alice     = domain.Address("0x000000000000000000000000000000000000a11c")
	bob       = domain.Address("0x0000000000000000000000000000000000000b0b")
	nft       = domain.Address("0x0000000000000000000000000000000000000721")
)

type handlerSuite struct {
	suite.Suite
	c        ctx.Ctx
	now      time.Time
	e        *echo.Echo
	registry ledger.Registry
	bank     ledger.Bank
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	s.c = ctx.Background()
	s.now = time.Unix(1650000000, 0)
	s.registry = ledgerUsecase.NewRegistry(custodian)
	s.bank = ledgerUsecase.NewBank(custodian)

	house, err := houseUsecase.NewHouseUseCase(&houseUsecase.HouseUseCaseCfg{
		Config: auction.Config{
			Operator:                  operator,
			Custodian:                 custodian,
			Duration:                  time.Hour,
			MinBidIncrementPercentage: 5,
			TimeBuffer:                5 * time.Minute,
		},
		Registry: s.registry,
		Custody:  s.bank,
		Journal:  memory.NewJournal(),
		Clock:    func() time.Time { return s.now },
	})
	s.Require().NoError(err)

	// the bearer token is the caller's address
	auth := mocks.NewAuthUsecase(s.T())
	auth.On("ParseToken", mock.Anything, mock.Anything).Return(
		func(c ctx.Ctx, tkn string) domain.Address { return domain.Address(tkn) },
		nil,
	).Maybe()

	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(validator.New())
	s.e.Use(middleware.InitMiddleware().AddContext())
	New(s.e, house, authMiddleware.New(auth, func(c ctx.Ctx) domain.Address { return house.Config(c).Operator }))

	s.Require().NoError(s.registry.Mint(s.c, nft, "1", alice))
	s.Require().NoError(s.registry.SetApprovalForAll(s.c, alice, custodian, true))
	s.Require().NoError(s.bank.Credit(s.c, bob, ether(s, "1")))
}

func ether(s *handlerSuite, v string) *big.Int {
	n, err := price.ParseEther(v)
	s.Require().NoError(err)
	return n
}

func (s *handlerSuite) do(method, path string, caller domain.Address, body string) (int, delivery.JsonResponse) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if caller != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+string(caller))
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	res := delivery.JsonResponse{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return rec.Code, res
}

func (s *handlerSuite) TestAuctionOverHttp() {
	code, res := s.do(http.MethodPost, "/auctions", alice, `{"contractAddress":"`+string(nft)+`","tokenId":"1","reservePriceInEther":"0.1"}`)
	s.Require().Equal(http.StatusForbidden, code)
	s.Equal("NotApproved", res.Code)

	code, _ = s.do(http.MethodPost, "/admin/accounts", alice, `{"account":"`+string(alice)+`"}`)
	s.Require().Equal(http.StatusForbidden, code)
	code, _ = s.do(http.MethodPost, "/admin/accounts", operator, `{"account":"`+string(alice)+`"}`)
	s.Require().Equal(http.StatusCreated, code)

	code, res = s.do(http.MethodGet, "/accounts/"+string(alice)+"/approved", "", "")
	s.Require().Equal(http.StatusOK, code)
	s.Equal(true, res.Data)

	code, res = s.do(http.MethodPost, "/auctions", alice, `{"contractAddress":"`+string(nft)+`","tokenId":"1","reservePriceInEther":"0.1"}`)
	s.Require().Equal(http.StatusCreated, code)
	view := res.Data.(map[string]interface{})
	s.Equal(string(auction.StateActive), view["state"])
	s.Equal("100000000000000000", view["reservePrice"])
	s.Equal("0.1", view["reservePriceInEther"])

	code, res = s.do(http.MethodPost, "/auctions/0/bids", bob, `{"valueInEther":"0.05"}`)
	s.Require().Equal(http.StatusConflict, code)
	s.Equal("BelowReserve", res.Code)

	code, _ = s.do(http.MethodPost, "/auctions/0/bids", bob, `{"value":"100000000000000000"}`)
	s.Require().Equal(http.StatusCreated, code)

	code, res = s.do(http.MethodGet, "/auctions/current", "", "")
	s.Require().Equal(http.StatusOK, code)
	cur := res.Data.(map[string]interface{})
	s.Equal(float64(0), cur["auctionId"])
	s.Equal("105000000000000000", cur["auction"].(map[string]interface{})["minNextBid"])

	code, res = s.do(http.MethodPost, "/auctions/settle", bob, "")
	s.Require().Equal(http.StatusConflict, code)
	s.Equal("AuctionNotOver", res.Code)

	s.now = s.now.Add(time.Hour)
	code, res = s.do(http.MethodPost, "/auctions/settle", bob, "")
	s.Require().Equal(http.StatusOK, code)
	s.Equal(string(auction.StateSettled), res.Data.(map[string]interface{})["state"])

	owner, err := s.registry.OwnerOf(s.c, nft, "1")
	s.Require().NoError(err)
	s.True(owner.Equals(bob))
	s.Equal("100000000000000000", s.bank.BalanceOf(s.c, alice).String())

	code, res = s.do(http.MethodGet, "/auctions/7", "", "")
	s.Require().Equal(http.StatusNotFound, code)
	s.Equal("NotFound", res.Code)
}

func (s *handlerSuite) TestBadInput() {
	code, _ := s.do(http.MethodPost, "/auctions/x/bids", bob, `{"value":"1"}`)
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/auctions/0/bids", bob, `{"value":"0.1"}`)
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/auctions/0/bids", bob, `{}`)
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/auctions/0/bids", "", `{"value":"1"}`)
	s.Equal(http.StatusBadRequest, code)
}

func (s *handlerSuite) TestUpdateConfig() {
	code, res := s.do(http.MethodPut, "/admin/config", operator, `{"duration":60,"minBidIncrementPercentage":10}`)
	s.Require().Equal(http.StatusOK, code)
	cfg := res.Data.(map[string]interface{})
	s.Equal(float64(60), cfg["duration"])
	s.Equal(float64(10), cfg["minBidIncrementPercentage"])
	s.Equal(float64(300), cfg["timeBuffer"])

	code, _ = s.do(http.MethodPut, "/admin/config", operator, `{"minBidIncrementPercentage":101}`)
	s.Equal(http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPut, "/admin/config", bob, `{"duration":60}`)
	s.Equal(http.StatusForbidden, code)

	// seconds that would overflow a duration are refused
	code, _ = s.do(http.MethodPut, "/admin/config", operator, `{"duration":9223372036854775807}`)
	s.Equal(http.StatusBadRequest, code)
	code, _ = s.do(http.MethodPut, "/admin/config", operator, `{"timeBuffer":86401}`)
	s.Equal(http.StatusBadRequest, code)

	// one bad field leaves the rest untouched
	code, _ = s.do(http.MethodPut, "/admin/config", operator, `{"duration":120,"minBidIncrementPercentage":101}`)
	s.Equal(http.StatusBadRequest, code)
	code, res = s.do(http.MethodGet, "/config", "", ``)
	s.Require().Equal(http.StatusOK, code)
	cfg = res.Data.(map[string]interface{})
	s.Equal(float64(60), cfg["duration"])
	s.Equal(float64(10), cfg["minBidIncrementPercentage"])
}
