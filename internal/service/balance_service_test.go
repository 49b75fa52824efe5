package service

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/internal/service/mocks"
	"github.com/fsdevblog/groph-market/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-market/pkg/uow/mocks"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	mockUOW        *uowmocks.MockUOW
	mockUserRepo   *mocks.MockUserRepository
	balanceService *BalanceService
}

func TestBalanceServiceSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}

func (s *BalanceServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()

	balanceService, servErr := NewBalanceService(s.mockUOW)
	s.Require().NoError(servErr)
	s.balanceService = balanceService
}

func (s *BalanceServiceTestSuite) TestAdjust() {
	var userID int64 = 1

	deltaOk := decimal.NewFromInt(500)
	deltaOverdraft := decimal.NewFromInt(-10000)

	s.mockUserRepo.EXPECT().
		AdjustBalance(gomock.Any(), userID, decimalEq(deltaOk)).
		Return(decimal.NewFromInt(2500), nil)
	s.mockUserRepo.EXPECT().
		AdjustBalance(gomock.Any(), userID, decimalEq(deltaOverdraft)).
		Return(decimal.Zero, domain.ErrInsufficientFunds)

	cases := []struct {
		name        string
		delta       decimal.Decimal
		wantErr     error
		wantBalance decimal.Decimal
	}{
		{name: "deposit", delta: deltaOk, wantBalance: decimal.NewFromInt(2500)},
		{name: "overdraft", delta: deltaOverdraft, wantErr: domain.ErrInsufficientFunds},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			balance, err := s.balanceService.Adjust(s.T().Context(), userID, t.delta)
			s.Require().ErrorIs(err, t.wantErr)
			if t.wantErr == nil {
				s.True(t.wantBalance.Equal(balance))
			}
		})
	}
}

// Выигрыш: загаданное число совпало с броском, чистое изменение +4x ставки.
func (s *BalanceServiceTestSuite) TestRollDiceWin() {
	var userID int64 = 1
	bet := decimal.NewFromInt(100)

	// Подменяем бросок детерминированным значением.
	s.balanceService.roll = func() int { return 3 }

	s.mockUserRepo.EXPECT().
		GetBalance(gomock.Any(), userID).
		Return(decimal.NewFromInt(2000), nil)
	s.mockUserRepo.EXPECT().
		AdjustBalance(gomock.Any(), userID, decimalEq(decimal.NewFromInt(400))).
		Return(decimal.NewFromInt(2400), nil)

	result, err := s.balanceService.RollDice(s.T().Context(), userID, bet, 3)
	s.Require().NoError(err)
	s.Equal(3, result.Rolled)
	s.True(result.Won)
	s.True(decimal.NewFromInt(400).Equal(result.Delta))
	s.True(decimal.NewFromInt(2400).Equal(result.NewBalance))
}

func (s *BalanceServiceTestSuite) TestRollDiceLose() {
	var userID int64 = 1
	bet := decimal.NewFromInt(100)

	s.balanceService.roll = func() int { return 6 }

	s.mockUserRepo.EXPECT().
		GetBalance(gomock.Any(), userID).
		Return(decimal.NewFromInt(2000), nil)
	s.mockUserRepo.EXPECT().
		AdjustBalance(gomock.Any(), userID, decimalEq(decimal.NewFromInt(-100))).
		Return(decimal.NewFromInt(1900), nil)

	result, err := s.balanceService.RollDice(s.T().Context(), userID, bet, 3)
	s.Require().NoError(err)
	s.Equal(6, result.Rolled)
	s.False(result.Won)
	s.True(decimal.NewFromInt(-100).Equal(result.Delta))
}

// Ставка больше баланса отклоняется до броска, баланс не трогается.
func (s *BalanceServiceTestSuite) TestRollDiceInsufficientFunds() {
	var userID int64 = 1

	s.mockUserRepo.EXPECT().
		GetBalance(gomock.Any(), userID).
		Return(decimal.NewFromInt(50), nil)
	s.mockUserRepo.EXPECT().
		AdjustBalance(gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)

	_, err := s.balanceService.RollDice(s.T().Context(), userID, decimal.NewFromInt(100), 3)
	s.Require().ErrorIs(err, domain.ErrInsufficientFunds)
}

func (s *BalanceServiceTestSuite) TestRollDiceInvalidBet() {
	var userID int64 = 1

	s.mockUserRepo.EXPECT().GetBalance(gomock.Any(), gomock.Any()).Times(0)

	cases := []struct {
		name  string
		bet   decimal.Decimal
		guess int
	}{
		{name: "zero bet", bet: decimal.Zero, guess: 3},
		{name: "negative bet", bet: decimal.NewFromInt(-10), guess: 3},
		{name: "guess below range", bet: decimal.NewFromInt(10), guess: 0},
		{name: "guess above range", bet: decimal.NewFromInt(10), guess: 7},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			_, err := s.balanceService.RollDice(s.T().Context(), userID, t.bet, t.guess)
			s.Require().ErrorIs(err, domain.ErrInvalidBet)
		})
	}
}
