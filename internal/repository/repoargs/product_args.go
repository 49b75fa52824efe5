package repoargs

import "github.com/shopspring/decimal"

type CreateProduct struct {
	Name        string
	Price       decimal.Decimal
	Description string
	Stock       int32
	SellerID    int64
	CategoryID  *int64
}

type UpdateProduct struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Description string
	Stock       int32
	CategoryID  *int64
}

// ProductFilter фильтр витрины. ExcludeSellerID исключает из выдачи товары
// самого продавца, nil - без исключений.
type ProductFilter struct {
	ExcludeSellerID *int64
}
