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

type ProductsHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockProductService *mocks.MockProductServicer
	jwtSecret          []byte
	jwtToken           string
	currentUserID      int64
}

func TestProductsHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProductsHandlerTestSuite))
}

func (s *ProductsHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockProductService = mocks.NewMockProductServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")
	s.currentUserID = 1

	jwtToken, jwtErr := tokens.GenerateUserJWT(s.currentUserID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)
	s.jwtToken = jwtToken

	s.router = New(RouterArgs{
		Logger:         logger.New(os.Stdout),
		ProductService: s.mockProductService,
		JWTSecretKey:   s.jwtSecret,
	})
}

// Витрина доступна без авторизации. С токеном витрина исключает товары
// самого юзера, без токена отдается все.
func (s *ProductsHandlerTestSuite) TestIndex() {
	listings := []domain.ProductListing{
		{
			Product: domain.Product{
				ID:       10,
				Name:     "gadget",
				Price:    decimal.NewFromInt(100),
				Stock:    5,
				SellerID: 2,
			},
			SellerName: "seller",
		},
	}

	s.mockProductService.EXPECT().
		List(gomock.Any(), gomock.Nil()).
		Return(listings, nil)
	s.mockProductService.EXPECT().
		List(gomock.Any(), &s.currentUserID).
		Return(listings, nil)

	cases := []struct {
		name     string
		jwtToken string
	}{
		{name: "anonymous"},
		{name: "authorized", jwtToken: s.jwtToken},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			opts := []func(*testutils.RequestOptions){}
			if t.jwtToken != "" {
				opts = append(opts, testutils.WithAuthToken(t.jwtToken))
			}

			resp := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    RouteGroup + ProductsRoute,
			}, opts...)
			defer resp.Body.Close() //nolint:errcheck

			s.Require().Equal(http.StatusOK, resp.StatusCode)

			var body []ProductResponse
			s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
			s.Require().Len(body, 1)
			s.Equal("gadget", body[0].Name)
			s.Equal("seller", body[0].SellerName)
		})
	}
}

func (s *ProductsHandlerTestSuite) TestCreate() {
	created := domain.Product{
		ID:       10,
		Name:     "gadget",
		Price:    decimal.NewFromInt(100),
		Stock:    5,
		SellerID: s.currentUserID,
	}

	s.mockProductService.EXPECT().
		Create(gomock.Any(), s.currentUserID, service.CreateProductArgs{
			Name:  "gadget",
			Price: decimal.NewFromInt(100),
			Stock: 5,
		}).
		Return(&created, nil)

	cases := []struct {
		name       string
		payload    string
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "ok",
			payload:    `{"name":"gadget","price":100,"stock":5}`,
			jwtToken:   s.jwtToken,
			wantStatus: http.StatusOK,
		}, {
			name:       "not authorized",
			payload:    `{"name":"gadget","price":100,"stock":5}`,
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "missing name",
			payload:    `{"price":100,"stock":5}`,
			jwtToken:   s.jwtToken,
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "negative price",
			payload:    `{"name":"gadget","price":-1,"stock":5}`,
			jwtToken:   s.jwtToken,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			opts := []func(*testutils.RequestOptions){
				testutils.WithHeader("Content-Type", "application/json"),
			}
			if t.jwtToken != "" {
				opts = append(opts, testutils.WithAuthToken(t.jwtToken))
			}

			resp := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + ProductsRoute,
				Body:   bytes.NewBufferString(t.payload),
			}, opts...)
			defer resp.Body.Close() //nolint:errcheck

			s.Equal(t.wantStatus, resp.StatusCode)
		})
	}
}

// Попытка изменить чужой товар возвращает 403.
func (s *ProductsHandlerTestSuite) TestUpdateForeignProduct() {
	s.mockProductService.EXPECT().
		Update(gomock.Any(), s.currentUserID, gomock.Any()).
		Return(nil, domain.ErrOwnerConflict)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPut,
		URL:    RouteGroup + "/products/10",
		Body:   bytes.NewBufferString(`{"name":"gadget","price":100,"stock":5}`),
	}, testutils.WithAuthToken(s.jwtToken), testutils.WithHeader("Content-Type", "application/json"))
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *ProductsHandlerTestSuite) TestDelete() {
	s.mockProductService.EXPECT().
		Delete(gomock.Any(), s.currentUserID, int64(10)).
		Return(nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodDelete,
		URL:    RouteGroup + "/products/10",
	}, testutils.WithAuthToken(s.jwtToken))
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(http.StatusOK, resp.StatusCode)
}
