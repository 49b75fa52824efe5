package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

// OrderService ведет отдельный журнал заказов. Он не участвует в чекауте
// и не трогает остатки или балансы - это самостоятельный учет.
type OrderService struct {
	orderRepo OrderRepository
}

func NewOrderService(u uow.UOW) (*OrderService, error) {
	orderRepo, err := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if err != nil {
		return nil, err
	}
	return &OrderService{orderRepo: orderRepo}, nil
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return order, nil
}

type CreateOrderArgs struct {
	UserID      int64
	ProductID   int64
	Quantity    int32
	TotalAmount decimal.Decimal
	Status      domain.OrderStatusType
}

func (s *OrderService) Create(ctx context.Context, args CreateOrderArgs) (*domain.Order, error) {
	if args.Quantity <= 0 {
		return nil, fmt.Errorf("creating order: %w", domain.ErrInvalidQuantity)
	}
	status := args.Status
	if status == "" {
		status = domain.OrderStatusPending
	}
	order, err := s.orderRepo.Create(ctx, repoargs.CreateOrder{
		UserID:      args.UserID,
		ProductID:   args.ProductID,
		Quantity:    args.Quantity,
		TotalAmount: args.TotalAmount,
		Status:      status,
	})
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}
	return order, nil
}

func (s *OrderService) UpdateStatus(
	ctx context.Context,
	id int64,
	status domain.OrderStatusType,
) (*domain.Order, error) {
	order, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("updating order: %w", err)
	}
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}
	return nil
}
