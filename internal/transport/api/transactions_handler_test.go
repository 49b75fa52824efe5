package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/logger"
	"github.com/fsdevblog/groph-market/internal/service"
	"github.com/fsdevblog/groph-market/internal/transport/api/mocks"
	"github.com/fsdevblog/groph-market/internal/transport/api/testutils"
	"github.com/fsdevblog/groph-market/internal/transport/api/tokens"
)

type TransactionsHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockCheckoutService *mocks.MockCheckoutServicer
	mockBalanceService  *mocks.MockBalanceServicer
	jwtSecret           []byte
	jwtToken            string
	currentUserID       int64
}

func TestTransactionsHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionsHandlerTestSuite))
}

func (s *TransactionsHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockCheckoutService = mocks.NewMockCheckoutServicer(mockCtrl)
	s.mockBalanceService = mocks.NewMockBalanceServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")
	s.currentUserID = 1

	jwtToken, jwtErr := tokens.GenerateUserJWT(s.currentUserID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)
	s.jwtToken = jwtToken

	s.router = New(RouterArgs{
		Logger:          logger.New(os.Stdout),
		CheckoutService: s.mockCheckoutService,
		BalanceService:  s.mockBalanceService,
		JWTSecretKey:    s.jwtSecret,
	})
}

func (s *TransactionsHandlerTestSuite) postJSON(url, payload, jwtToken string) *http.Response {
	opts := []func(*testutils.RequestOptions){
		testutils.WithHeader("Content-Type", "application/json"),
	}
	if jwtToken != "" {
		opts = append(opts, testutils.WithAuthToken(jwtToken))
	}
	return testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    url,
		Body:   bytes.NewBufferString(payload),
	}, opts...)
}

func (s *TransactionsHandlerTestSuite) TestCheckout() {
	wantLines := []service.CheckoutLine{
		{ProductID: 10, ProductName: "gadget", SellerID: 2, Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
	}
	payload := `{"items":[{"productId":10,"productName":"gadget","sellerId":2,"quantity":2,"price":100}]}`

	// Моки
	gomock.InOrder(
		s.mockCheckoutService.EXPECT().
			Checkout(gomock.Any(), s.currentUserID, wantLines).
			Return(decimal.NewFromInt(1800), nil),
		s.mockCheckoutService.EXPECT().
			Checkout(gomock.Any(), s.currentUserID, wantLines).
			Return(decimal.Zero, domain.ErrInsufficientFunds),
		s.mockCheckoutService.EXPECT().
			Checkout(gomock.Any(), s.currentUserID, wantLines).
			Return(decimal.Zero, domain.NewOutOfStockError("gadget")),
	)

	cases := []struct {
		name       string
		payload    string
		jwtToken   string
		wantStatus int
	}{
		{name: "ok", payload: payload, jwtToken: s.jwtToken, wantStatus: http.StatusOK},
		{name: "insufficient funds", payload: payload, jwtToken: s.jwtToken, wantStatus: http.StatusBadRequest},
		{name: "out of stock", payload: payload, jwtToken: s.jwtToken, wantStatus: http.StatusBadRequest},
		{name: "not authorized", payload: payload, wantStatus: http.StatusUnauthorized},
		{name: "malformed json", payload: `{"items"`, jwtToken: s.jwtToken, wantStatus: http.StatusBadRequest},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			resp := s.postJSON(RouteGroup+CheckoutRoute, t.payload, t.jwtToken)
			defer resp.Body.Close() //nolint:errcheck

			s.Equal(t.wantStatus, resp.StatusCode)

			if t.name == "ok" {
				var body struct {
					Balance float64 `json:"balance"`
				}
				s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
				s.InDelta(1800, body.Balance, 0.0001)
			}
		})
	}
}

func (s *TransactionsHandlerTestSuite) TestUpdateBalance() {
	s.mockBalanceService.EXPECT().
		Adjust(gomock.Any(), s.currentUserID, decimal.NewFromInt(500)).
		Return(decimal.NewFromInt(2500), nil)
	s.mockBalanceService.EXPECT().
		Adjust(gomock.Any(), s.currentUserID, decimal.NewFromInt(-10000)).
		Return(decimal.Zero, domain.ErrInsufficientFunds)

	cases := []struct {
		name       string
		payload    string
		wantStatus int
	}{
		{name: "deposit", payload: `{"amount":500}`, wantStatus: http.StatusOK},
		{name: "overdraft", payload: `{"amount":-10000}`, wantStatus: http.StatusBadRequest},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			resp := s.postJSON(RouteGroup+AdjustRoute, t.payload, s.jwtToken)
			defer resp.Body.Close() //nolint:errcheck

			s.Equal(t.wantStatus, resp.StatusCode)
		})
	}
}

func (s *TransactionsHandlerTestSuite) TestGamble() {
	s.mockBalanceService.EXPECT().
		RollDice(gomock.Any(), s.currentUserID, decimal.NewFromInt(100), 3).
		Return(&service.DiceRollResult{
			Rolled:     3,
			Won:        true,
			Delta:      decimal.NewFromInt(400),
			NewBalance: decimal.NewFromInt(2400),
		}, nil)

	resp := s.postJSON(RouteGroup+GambleRoute, `{"bet":100,"guess":3}`, s.jwtToken)
	defer resp.Body.Close() //nolint:errcheck

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Rolled  int     `json:"rolled"`
		Won     bool    `json:"won"`
		Delta   float64 `json:"delta"`
		Balance float64 `json:"balance"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal(3, body.Rolled)
	s.True(body.Won)
	s.InDelta(400, body.Delta, 0.0001)
	s.InDelta(2400, body.Balance, 0.0001)
}

func (s *TransactionsHandlerTestSuite) TestGambleGuessOutOfRange() {
	s.mockBalanceService.EXPECT().
		RollDice(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	resp := s.postJSON(RouteGroup+GambleRoute, `{"bet":100,"guess":7}`, s.jwtToken)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *TransactionsHandlerTestSuite) TestIndex() {
	records := []domain.TransactionRecord{
		{
			Transaction: domain.Transaction{
				ID:        1,
				BuyerID:   1,
				SellerID:  2,
				ProductID: 10,
				Quantity:  2,
				Amount:    decimal.NewFromInt(200),
			},
			BuyerName:   "buyer",
			SellerName:  "seller",
			ProductName: "gadget",
		},
	}

	s.mockCheckoutService.EXPECT().History(gomock.Any()).Return(records, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + TransactionsRoute,
	}, testutils.WithAuthToken(s.jwtToken))
	defer resp.Body.Close() //nolint:errcheck

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body []TransactionResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Require().Len(body, 1)
	s.Equal("gadget", body[0].ProductName)
	s.InDelta(200, body[0].Amount, 0.0001)
}
