package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

type ProductService struct {
	uow         uow.UOW
	productRepo ProductRepository
}

func NewProductService(u uow.UOW) (*ProductService, error) {
	productRepo, err := uow.GetRepositoryAs[ProductRepository](u, uow.RepositoryName(repoargs.ProductRepoName))
	if err != nil {
		return nil, err
	}
	return &ProductService{
		uow:         u,
		productRepo: productRepo,
	}, nil
}

// List возвращает витрину (товары с остатком). excludeSellerID, если не nil,
// убирает из выдачи товары этого продавца.
func (s *ProductService) List(ctx context.Context, excludeSellerID *int64) ([]domain.ProductListing, error) {
	listings, err := s.productRepo.GetAll(ctx, repoargs.ProductFilter{ExcludeSellerID: excludeSellerID})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return listings, nil
}

// ListBySeller возвращает все товары продавца, включая распроданные.
func (s *ProductService) ListBySeller(ctx context.Context, sellerID int64) ([]domain.ProductListing, error) {
	listings, err := s.productRepo.GetBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return listings, nil
}

type CreateProductArgs struct {
	Name        string
	Price       decimal.Decimal
	Description string
	Stock       int32
	CategoryID  *int64
}

func (s *ProductService) Create(
	ctx context.Context,
	sellerID int64,
	args CreateProductArgs,
) (*domain.Product, error) {
	product, err := s.productRepo.Create(ctx, repoargs.CreateProduct{
		Name:        args.Name,
		Price:       args.Price,
		Description: args.Description,
		Stock:       args.Stock,
		SellerID:    sellerID,
		CategoryID:  args.CategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}
	return product, nil
}

type UpdateProductArgs struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Description string
	Stock       int32
	CategoryID  *int64
}

// Update меняет товар. Право на изменение есть только у владельца,
// иначе вернется domain.ErrOwnerConflict. Проверка владельца и само изменение
// выполняются в одной транзакции.
func (s *ProductService) Update(
	ctx context.Context,
	actorID int64,
	args UpdateProductArgs,
) (*domain.Product, error) {
	var product *domain.Product
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		productRepo, repoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		existing, findErr := productRepo.GetByID(c, args.ID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if existing.SellerID != actorID {
			return domain.ErrOwnerConflict
		}

		var updateErr error
		product, updateErr = productRepo.Update(c, repoargs.UpdateProduct{
			ID:          args.ID,
			Name:        args.Name,
			Price:       args.Price,
			Description: args.Description,
			Stock:       args.Stock,
			CategoryID:  args.CategoryID,
		})
		return updateErr //nolint:wrapcheck
	})

	if txErr != nil {
		return nil, fmt.Errorf("updating product: %w", txErr)
	}
	return product, nil
}

// Delete удаляет товар владельца. Строки корзин, отзывы, заказы и записи лога продаж,
// ссылающиеся на товар, удаляются каскадом.
func (s *ProductService) Delete(ctx context.Context, actorID, productID int64) error {
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		productRepo, repoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		existing, findErr := productRepo.GetByID(c, productID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if existing.SellerID != actorID {
			return domain.ErrOwnerConflict
		}

		return productRepo.Delete(c, productID) //nolint:wrapcheck
	})

	if txErr != nil {
		return fmt.Errorf("deleting product: %w", txErr)
	}
	return nil
}
