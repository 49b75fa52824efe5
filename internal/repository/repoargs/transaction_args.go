package repoargs

import "github.com/shopspring/decimal"

type CreateTransaction struct {
	BuyerID   int64
	SellerID  int64
	ProductID int64
	Quantity  int32
	Amount    decimal.Decimal
}
