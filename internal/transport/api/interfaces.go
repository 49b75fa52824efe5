package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/service"
)

// Интерфейсы сервисов исключительно для моков в тестах хендлеров.

type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
}

type BalanceServicer interface {
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	Adjust(ctx context.Context, userID int64, delta decimal.Decimal) (decimal.Decimal, error)
	RollDice(ctx context.Context, userID int64, bet decimal.Decimal, guess int) (*service.DiceRollResult, error)
}

type ProductServicer interface {
	List(ctx context.Context, excludeSellerID *int64) ([]domain.ProductListing, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]domain.ProductListing, error)
	Create(ctx context.Context, sellerID int64, args service.CreateProductArgs) (*domain.Product, error)
	Update(ctx context.Context, actorID int64, args service.UpdateProductArgs) (*domain.Product, error)
	Delete(ctx context.Context, actorID, productID int64) error
}

type CartServicer interface {
	List(ctx context.Context, userID int64) ([]domain.CartLine, error)
	Add(ctx context.Context, userID, productID int64, quantity int32) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, cartItemID int64, quantity int32) (*domain.CartItem, error)
	Remove(ctx context.Context, userID, cartItemID int64) error
}

type CheckoutServicer interface {
	Checkout(ctx context.Context, buyerID int64, lines []service.CheckoutLine) (decimal.Decimal, error)
	History(ctx context.Context) ([]domain.TransactionRecord, error)
}

type CategoryServicer interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, name, description string) (*domain.Category, error)
	Update(ctx context.Context, id int64, name, description string) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type OrderServicer interface {
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	Create(ctx context.Context, args service.CreateOrderArgs) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatusType) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewServicer interface {
	ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error)
	Create(ctx context.Context, userID, productID int64, rating int16, comment string) (*domain.Review, error)
	Update(ctx context.Context, id int64, rating int16, comment string) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
}
