package service

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

const diceSides = 6

// rollDie возвращает равномерно распределенное значение кубика 1..6.
func rollDie() int {
	return rand.IntN(diceSides) + 1 //nolint:gosec
}

// diceOutcome чистая функция исхода игры: при угаданном числе выплата 5x ставки,
// сама ставка при этом удерживается - чистое изменение баланса +4x. Проигрыш - минус ставка.
func diceOutcome(bet decimal.Decimal, guess, rolled int) decimal.Decimal {
	if guess == rolled {
		return bet.Mul(decimal.NewFromInt(4)) //nolint:mnd
	}
	return bet.Neg()
}
