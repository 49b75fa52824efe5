package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")

	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidBet        = errors.New("invalid bet")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrOwnProduct        = errors.New("seller cannot buy own product")
	ErrOwnerConflict     = errors.New("owner conflict")
)

// OutOfStockError возвращается когда условное списание остатка не затронуло ни одной строки:
// товара не хватает, в том числе из-за конкурентного чекаута.
type OutOfStockError struct {
	ProductName string
}

func NewOutOfStockError(productName string) error {
	return &OutOfStockError{ProductName: productName}
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("product %s is out of stock", e.ProductName)
}
