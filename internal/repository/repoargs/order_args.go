package repoargs

import (
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-market/internal/domain"
)

type CreateOrder struct {
	UserID      int64
	ProductID   int64
	Quantity    int32
	TotalAmount decimal.Decimal
	Status      domain.OrderStatusType
}
