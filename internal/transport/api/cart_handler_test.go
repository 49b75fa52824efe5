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
	"github.com/fsdevblog/groph-market/internal/transport/api/mocks"
	"github.com/fsdevblog/groph-market/internal/transport/api/testutils"
	"github.com/fsdevblog/groph-market/internal/transport/api/tokens"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCartService *mocks.MockCartServicer
	jwtSecret       []byte
	jwtToken        string
	currentUserID   int64
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

func (s *CartHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockCartService = mocks.NewMockCartServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")
	s.currentUserID = 1

	jwtToken, jwtErr := tokens.GenerateUserJWT(s.currentUserID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)
	s.jwtToken = jwtToken

	s.router = New(RouterArgs{
		Logger:       logger.New(os.Stdout),
		CartService:  s.mockCartService,
		JWTSecretKey: s.jwtSecret,
	})
}

func (s *CartHandlerTestSuite) TestIndex() {
	lines := []domain.CartLine{
		{
			CartItem:    domain.CartItem{ID: 5, UserID: s.currentUserID, ProductID: 10, Quantity: 2},
			ProductName: "gadget",
			Price:       decimal.NewFromInt(100),
			Stock:       5,
			SellerID:    2,
			SellerName:  "seller",
		},
	}

	s.mockCartService.EXPECT().
		List(gomock.Any(), s.currentUserID).
		Return(lines, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + CartRoute,
	}, testutils.WithAuthToken(s.jwtToken))
	defer resp.Body.Close() //nolint:errcheck

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body []CartLineResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Require().Len(body, 1)
	s.Equal("gadget", body[0].ProductName)
	s.Equal(int32(2), body[0].Quantity)
}

func (s *CartHandlerTestSuite) TestCreate() {
	s.mockCartService.EXPECT().
		Add(gomock.Any(), s.currentUserID, int64(10), int32(2)).
		Return(&domain.CartItem{ID: 5, UserID: s.currentUserID, ProductID: 10, Quantity: 2}, nil)
	s.mockCartService.EXPECT().
		Add(gomock.Any(), s.currentUserID, int64(11), int32(1)).
		Return(nil, domain.ErrOwnProduct)
	s.mockCartService.EXPECT().
		Add(gomock.Any(), s.currentUserID, int64(12), int32(3)).
		Return(nil, domain.NewOutOfStockError("gadget"))
	s.mockCartService.EXPECT().
		Add(gomock.Any(), s.currentUserID, int64(404), int32(1)).
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name       string
		payload    string
		wantStatus int
	}{
		{name: "ok", payload: `{"productId":10,"quantity":2}`, wantStatus: http.StatusOK},
		{name: "own product", payload: `{"productId":11,"quantity":1}`, wantStatus: http.StatusBadRequest},
		{name: "out of stock", payload: `{"productId":12,"quantity":3}`, wantStatus: http.StatusBadRequest},
		{name: "unknown product", payload: `{"productId":404,"quantity":1}`, wantStatus: http.StatusNotFound},
		{name: "zero quantity", payload: `{"productId":10,"quantity":0}`, wantStatus: http.StatusBadRequest},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			resp := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + CartRoute,
				Body:   bytes.NewBufferString(t.payload),
			}, testutils.WithAuthToken(s.jwtToken), testutils.WithHeader("Content-Type", "application/json"))
			defer resp.Body.Close() //nolint:errcheck

			s.Equal(t.wantStatus, resp.StatusCode)
		})
	}
}

func (s *CartHandlerTestSuite) TestUpdate() {
	s.mockCartService.EXPECT().
		UpdateQuantity(gomock.Any(), s.currentUserID, int64(5), int32(4)).
		Return(&domain.CartItem{ID: 5, UserID: s.currentUserID, ProductID: 10, Quantity: 4}, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPut,
		URL:    RouteGroup + "/cart/5",
		Body:   bytes.NewBufferString(`{"quantity":4}`),
	}, testutils.WithAuthToken(s.jwtToken), testutils.WithHeader("Content-Type", "application/json"))
	defer resp.Body.Close() //nolint:errcheck

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body CartItemResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal(int32(4), body.Quantity)
}

func (s *CartHandlerTestSuite) TestDelete() {
	s.mockCartService.EXPECT().
		Remove(gomock.Any(), s.currentUserID, int64(5)).
		Return(nil)
	s.mockCartService.EXPECT().
		Remove(gomock.Any(), s.currentUserID, int64(404)).
		Return(domain.ErrRecordNotFound)

	cases := []struct {
		name       string
		url        string
		wantStatus int
	}{
		{name: "ok", url: RouteGroup + "/cart/5", wantStatus: http.StatusOK},
		{name: "unknown item", url: RouteGroup + "/cart/404", wantStatus: http.StatusNotFound},
		{name: "not a number", url: RouteGroup + "/cart/abc", wantStatus: http.StatusBadRequest},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			resp := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodDelete,
				URL:    t.url,
			}, testutils.WithAuthToken(s.jwtToken))
			defer resp.Body.Close() //nolint:errcheck

			s.Equal(t.wantStatus, resp.StatusCode)
		})
	}
}
