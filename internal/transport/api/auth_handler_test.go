package api

import (
	"bytes"
	"encoding/json"
	"fmt"
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

type AuthHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockUserService    *mocks.MockUserServicer
	mockBalanceService *mocks.MockBalanceServicer
	jwtSecret          []byte
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockUserService = mocks.NewMockUserServicer(mockCtrl)
	s.mockBalanceService = mocks.NewMockBalanceServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:         logger.New(os.Stdout),
		UserService:    s.mockUserService,
		BalanceService: s.mockBalanceService,
		JWTSecretKey:   s.jwtSecret,
	})
}

func (s *AuthHandlerTestSuite) TestSignup() {
	validArgs := service.RegisterUserArgs{Username: "newUser", Password: "password"}
	duplicateArgs := service.RegisterUserArgs{Username: "existingUser", Password: "password"}

	createdUser := domain.User{
		ID:       1,
		Username: validArgs.Username,
		Balance:  decimal.NewFromInt(2000),
	}

	// Моки
	s.mockUserService.EXPECT().
		Register(gomock.Any(), validArgs).
		Return(&createdUser, "jwt-token", nil)
	s.mockUserService.EXPECT().
		Register(gomock.Any(), duplicateArgs).
		Return(nil, "", domain.ErrDuplicateKey)

	cases := []struct {
		name       string
		payload    string
		wantStatus int
	}{
		{
			name:       "ok",
			payload:    fmt.Sprintf(`{"username":%q,"password":%q}`, validArgs.Username, validArgs.Password),
			wantStatus: http.StatusOK,
		}, {
			name:       "duplicate username",
			payload:    fmt.Sprintf(`{"username":%q,"password":%q}`, duplicateArgs.Username, duplicateArgs.Password),
			wantStatus: http.StatusConflict,
		}, {
			name:       "password too short",
			payload:    `{"username":"someUser","password":"short"}`,
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "malformed json",
			payload:    `{"username"`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			resp := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + SignupRoute,
				Body:   bytes.NewBufferString(t.payload),
			}, testutils.WithHeader("Content-Type", "application/json"))
			defer resp.Body.Close() //nolint:errcheck

			s.Equal(t.wantStatus, resp.StatusCode)

			if t.wantStatus == http.StatusOK {
				var body struct {
					Token string       `json:"token"`
					User  UserResponse `json:"user"`
				}
				s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
				s.Equal("jwt-token", body.Token)
				s.Equal(createdUser.ID, body.User.ID)
				s.InDelta(2000, body.User.Balance, 0.0001)
			}
		})
	}
}

func (s *AuthHandlerTestSuite) TestLogin() {
	validArgs := service.LoginUserArgs{Username: "someUser", Password: "password"}
	wrongPassArgs := service.LoginUserArgs{Username: "someUser", Password: "wrong pass"}

	savedUser := domain.User{
		ID:       1,
		Username: validArgs.Username,
		Balance:  decimal.NewFromInt(1500),
	}

	s.mockUserService.EXPECT().
		Login(gomock.Any(), validArgs).
		Return(&savedUser, "jwt-token", nil)
	s.mockUserService.EXPECT().
		Login(gomock.Any(), wrongPassArgs).
		Return(nil, "", domain.ErrPasswordMissMatch)

	cases := []struct {
		name       string
		args       service.LoginUserArgs
		wantStatus int
	}{
		{name: "ok", args: validArgs, wantStatus: http.StatusOK},
		{name: "wrong password", args: wrongPassArgs, wantStatus: http.StatusUnauthorized},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			payload := fmt.Sprintf(`{"username":%q,"password":%q}`, t.args.Username, t.args.Password)
			resp := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + LoginRoute,
				Body:   bytes.NewBufferString(payload),
			}, testutils.WithHeader("Content-Type", "application/json"))
			defer resp.Body.Close() //nolint:errcheck

			s.Equal(t.wantStatus, resp.StatusCode)
		})
	}
}

func (s *AuthHandlerTestSuite) TestBalance() {
	var currentUserID int64 = 1

	jwtToken, jwtErr := tokens.GenerateUserJWT(currentUserID, time.Hour, s.jwtSecret)
	s.Require().NoError(jwtErr)

	s.mockBalanceService.EXPECT().
		GetBalance(gomock.Any(), currentUserID).
		Return(decimal.NewFromInt(1750), nil)

	cases := []struct {
		name       string
		jwtToken   string
		wantStatus int
	}{
		{name: "ok", jwtToken: jwtToken, wantStatus: http.StatusOK},
		{name: "not authorized", wantStatus: http.StatusUnauthorized},
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
				URL:    RouteGroup + BalanceRoute,
			}, opts...)
			defer resp.Body.Close() //nolint:errcheck

			s.Equal(t.wantStatus, resp.StatusCode)

			if t.wantStatus == http.StatusOK {
				var body struct {
					Balance float64 `json:"balance"`
				}
				s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
				s.InDelta(1750, body.Balance, 0.0001)
			}
		})
	}
}
