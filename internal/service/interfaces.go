package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type UserRepository interface {
	CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	AdjustBalance(ctx context.Context, userID int64, delta decimal.Decimal) (decimal.Decimal, error)
}

type ProductRepository interface {
	Create(ctx context.Context, args repoargs.CreateProduct) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetAll(ctx context.Context, filter repoargs.ProductFilter) ([]domain.ProductListing, error)
	GetBySellerID(ctx context.Context, sellerID int64) ([]domain.ProductListing, error)
	Update(ctx context.Context, args repoargs.UpdateProduct) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	DecrementStock(ctx context.Context, productID int64, qty int32) (bool, error)
}

type CartRepository interface {
	GetLinesByUserID(ctx context.Context, userID int64) ([]domain.CartLine, error)
	FindByUserAndProduct(ctx context.Context, userID, productID int64) (*domain.CartItem, error)
	Upsert(ctx context.Context, args repoargs.UpsertCartItem) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, cartItemID, userID int64, quantity int32) (*domain.CartItem, error)
	Delete(ctx context.Context, cartItemID, userID int64) error
	DeleteByUserAndProduct(ctx context.Context, userID, productID int64) error
}

type TransactionRepository interface {
	Create(ctx context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error)
	GetAll(ctx context.Context) ([]domain.TransactionRecord, error)
}

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, args repoargs.CreateCategory) (*domain.Category, error)
	Update(ctx context.Context, args repoargs.UpdateCategory) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type OrderRepository interface {
	GetAll(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Create(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatusType) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewRepository interface {
	GetByProductID(ctx context.Context, productID int64) ([]domain.Review, error)
	Create(ctx context.Context, args repoargs.CreateReview) (*domain.Review, error)
	Update(ctx context.Context, args repoargs.UpdateReview) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
}
