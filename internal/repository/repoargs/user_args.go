package repoargs

import "github.com/shopspring/decimal"

type CreateUser struct {
	Username          string
	EncryptedPassword string
	Balance           decimal.Decimal
}
