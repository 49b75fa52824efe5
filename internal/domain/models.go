package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID                int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Username          string
	EncryptedPassword string
	Balance           decimal.Decimal
}

type Category struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string
	Description string
}

type Product struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string
	Price       decimal.Decimal
	Description string
	Stock       int32
	TotalSold   int32
	SellerID    int64
	CategoryID  *int64
}

// ProductListing дополняет Product данными из смежных таблиц для витрины.
type ProductListing struct {
	Product
	SellerName   string
	CategoryName string
}

type CartItem struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    int64
	ProductID int64
	Quantity  int32
}

// CartLine строка корзины вместе с актуальным (не снапшотом) состоянием товара.
// Цена и остаток могут уйти от тех, что юзер видел при добавлении, чекаут
// перепроверяет их заново.
type CartLine struct {
	CartItem
	ProductName string
	Price       decimal.Decimal
	Stock       int32
	SellerID    int64
	SellerName  string
}

// Transaction неизменяемая запись аудита об одной проданной позиции чекаута.
type Transaction struct {
	ID        int64
	CreatedAt time.Time
	BuyerID   int64
	SellerID  int64
	ProductID int64
	Quantity  int32
	Amount    decimal.Decimal
}

type TransactionRecord struct {
	Transaction
	BuyerName   string
	SellerName  string
	ProductName string
}

type Order struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      int64
	ProductID   int64
	Quantity    int32
	TotalAmount decimal.Decimal
	Status      OrderStatusType
}

type Review struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    int64
	ProductID int64
	Rating    int16
	Comment   string
}
