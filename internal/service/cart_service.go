package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

type CartService struct {
	uow      uow.UOW
	cartRepo CartRepository
}

func NewCartService(u uow.UOW) (*CartService, error) {
	cartRepo, err := uow.GetRepositoryAs[CartRepository](u, uow.RepositoryName(repoargs.CartRepoName))
	if err != nil {
		return nil, err
	}
	return &CartService{
		uow:      u,
		cartRepo: cartRepo,
	}, nil
}

// List возвращает корзину юзера с живыми ценой/остатком товара. Строка может стать
// невалидной между добавлением и чекаутом, чекаут перепроверяет остатки сам.
func (s *CartService) List(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	lines, err := s.cartRepo.GetLinesByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return lines, nil
}

// Add кладет товар в корзину. Повторное добавление наращивает количество существующей
// строки, двух строк на один товар не бывает.
//
// Правила: товар должен существовать (domain.ErrRecordNotFound), свой товар купить
// нельзя (domain.ErrOwnProduct), суммарное количество в корзине не может превысить
// остаток (*domain.OutOfStockError).
func (s *CartService) Add(
	ctx context.Context,
	userID, productID int64,
	quantity int32,
) (*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("adding to cart: %w", domain.ErrInvalidQuantity)
	}

	var item *domain.CartItem
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		productRepo, productRepoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if productRepoErr != nil {
			return productRepoErr //nolint:wrapcheck
		}
		cartRepo, cartRepoErr := uow.GetAs[CartRepository](tx, uow.RepositoryName(repoargs.CartRepoName))
		if cartRepoErr != nil {
			return cartRepoErr //nolint:wrapcheck
		}

		product, productErr := productRepo.GetByID(c, productID)
		if productErr != nil {
			return productErr //nolint:wrapcheck
		}
		if product.SellerID == userID {
			return domain.ErrOwnProduct
		}

		var inCart int32
		existing, existingErr := cartRepo.FindByUserAndProduct(c, userID, productID)
		if existingErr != nil && !errors.Is(existingErr, domain.ErrRecordNotFound) {
			return existingErr //nolint:wrapcheck
		}
		if existing != nil {
			inCart = existing.Quantity
		}

		if product.Stock < inCart+quantity {
			return domain.NewOutOfStockError(product.Name)
		}

		var upsertErr error
		item, upsertErr = cartRepo.Upsert(c, repoargs.UpsertCartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		})
		return upsertErr //nolint:wrapcheck
	})

	if txErr != nil {
		return nil, fmt.Errorf("adding to cart: %w", txErr)
	}
	return item, nil
}

// UpdateQuantity меняет количество в строке корзины с перепроверкой остатка.
func (s *CartService) UpdateQuantity(
	ctx context.Context,
	userID, cartItemID int64,
	quantity int32,
) (*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("updating cart item: %w", domain.ErrInvalidQuantity)
	}

	var item *domain.CartItem
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		cartRepo, cartRepoErr := uow.GetAs[CartRepository](tx, uow.RepositoryName(repoargs.CartRepoName))
		if cartRepoErr != nil {
			return cartRepoErr //nolint:wrapcheck
		}
		productRepo, productRepoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if productRepoErr != nil {
			return productRepoErr //nolint:wrapcheck
		}

		var updateErr error
		item, updateErr = cartRepo.UpdateQuantity(c, cartItemID, userID, quantity)
		if updateErr != nil {
			return updateErr //nolint:wrapcheck
		}

		product, productErr := productRepo.GetByID(c, item.ProductID)
		if productErr != nil {
			return productErr //nolint:wrapcheck
		}
		if product.Stock < quantity {
			// Откат вернет строке прежнее количество.
			return domain.NewOutOfStockError(product.Name)
		}
		return nil
	})

	if txErr != nil {
		return nil, fmt.Errorf("updating cart item: %w", txErr)
	}
	return item, nil
}

// Remove удаляет строку корзины безусловно.
func (s *CartService) Remove(ctx context.Context, userID, cartItemID int64) error {
	if err := s.cartRepo.Delete(ctx, cartItemID, userID); err != nil {
		return fmt.Errorf("removing cart item: %w", err)
	}
	return nil
}
