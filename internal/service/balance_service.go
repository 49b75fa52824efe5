package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

type BalanceService struct {
	uow      uow.UOW
	userRepo UserRepository
	roll     func() int
}

func NewBalanceService(u uow.UOW) (*BalanceService, error) {
	userRepo, err := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if err != nil {
		return nil, err
	}
	return &BalanceService{
		uow:      u,
		userRepo: userRepo,
		roll:     rollDie,
	}, nil
}

func (b *BalanceService) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	balance, err := b.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, err //nolint:wrapcheck
	}
	return balance, nil
}

// Adjust применяет balance += delta одним атомарным обновлением и возвращает новый баланс.
// Баланс не может стать отрицательным: такой delta вернет domain.ErrInsufficientFunds.
func (b *BalanceService) Adjust(
	ctx context.Context,
	userID int64,
	delta decimal.Decimal,
) (decimal.Decimal, error) {
	balance, err := b.userRepo.AdjustBalance(ctx, userID, delta)
	if err != nil {
		return decimal.Zero, err //nolint:wrapcheck
	}
	return balance, nil
}

type DiceRollResult struct {
	Rolled     int
	Won        bool
	Delta      decimal.Decimal
	NewBalance decimal.Decimal
}

// RollDice разыгрывает ставку: юзер загадывает число 1..6, бросается кубик.
// Угадал - чистый выигрыш 4x ставки, не угадал - ставка списывается.
// Кроме изменения баланса игра ничего не персистит.
func (b *BalanceService) RollDice(
	ctx context.Context,
	userID int64,
	bet decimal.Decimal,
	guess int,
) (*DiceRollResult, error) {
	if !bet.IsPositive() {
		return nil, fmt.Errorf("rolling dice: %w", domain.ErrInvalidBet)
	}
	if guess < 1 || guess > diceSides {
		return nil, fmt.Errorf("rolling dice: %w", domain.ErrInvalidBet)
	}

	balance, balanceErr := b.userRepo.GetBalance(ctx, userID)
	if balanceErr != nil {
		return nil, fmt.Errorf("rolling dice: %w", balanceErr)
	}
	if balance.LessThan(bet) {
		return nil, fmt.Errorf("rolling dice: %w", domain.ErrInsufficientFunds)
	}

	rolled := b.roll()
	delta := diceOutcome(bet, guess, rolled)

	newBalance, err := b.userRepo.AdjustBalance(ctx, userID, delta)
	if err != nil {
		return nil, fmt.Errorf("rolling dice: %w", err)
	}

	return &DiceRollResult{
		Rolled:     rolled,
		Won:        guess == rolled,
		Delta:      delta,
		NewBalance: newBalance,
	}, nil
}
