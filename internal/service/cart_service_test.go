package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/internal/service/mocks"
	"github.com/fsdevblog/groph-market/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-market/pkg/uow/mocks"
)

type CartServiceTestSuite struct {
	suite.Suite
	mockUOW         *uowmocks.MockUOW
	mockTX          *uowmocks.MockTX
	mockCartRepo    *mocks.MockCartRepository
	mockProductRepo *mocks.MockProductRepository
	cartService     *CartService
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}

func (s *CartServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)
	s.mockCartRepo = mocks.NewMockCartRepository(mockCtrl)
	s.mockProductRepo = mocks.NewMockProductRepository(mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.CartRepoName)).
		Return(s.mockCartRepo, nil).AnyTimes()

	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.CartRepoName)).
		Return(s.mockCartRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.ProductRepoName)).
		Return(s.mockProductRepo, nil).AnyTimes()

	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()

	cartService, servErr := NewCartService(s.mockUOW)
	s.Require().NoError(servErr)
	s.cartService = cartService
}

// Первое добавление товара создает строку корзины.
func (s *CartServiceTestSuite) TestAdd() {
	var userID int64 = 1

	product := domain.Product{
		ID:       10,
		Name:     "gadget",
		Price:    decimal.NewFromInt(100),
		Stock:    5,
		SellerID: 2,
	}

	s.mockProductRepo.EXPECT().
		GetByID(gomock.Any(), product.ID).
		Return(&product, nil)
	s.mockCartRepo.EXPECT().
		FindByUserAndProduct(gomock.Any(), userID, product.ID).
		Return(nil, domain.ErrRecordNotFound)
	s.mockCartRepo.EXPECT().
		Upsert(gomock.Any(), repoargs.UpsertCartItem{
			UserID:    userID,
			ProductID: product.ID,
			Quantity:  3,
		}).
		Return(&domain.CartItem{ID: 5, UserID: userID, ProductID: product.ID, Quantity: 3}, nil)

	item, err := s.cartService.Add(s.T().Context(), userID, product.ID, 3)
	s.Require().NoError(err)
	s.Equal(int32(3), item.Quantity)
}

// Повторное добавление наращивает количество существующей строки,
// суммарное количество сверяется с остатком.
func (s *CartServiceTestSuite) TestAddMergesExistingLine() {
	var userID int64 = 1

	product := domain.Product{
		ID:       10,
		Name:     "gadget",
		Price:    decimal.NewFromInt(100),
		Stock:    5,
		SellerID: 2,
	}
	existing := domain.CartItem{ID: 5, UserID: userID, ProductID: product.ID, Quantity: 3}

	s.mockProductRepo.EXPECT().
		GetByID(gomock.Any(), product.ID).
		Return(&product, nil).Times(2)
	s.mockCartRepo.EXPECT().
		FindByUserAndProduct(gomock.Any(), userID, product.ID).
		Return(&existing, nil).Times(2)

	// 3 в корзине + 2 новых <= 5 на складе: проходит.
	s.mockCartRepo.EXPECT().
		Upsert(gomock.Any(), repoargs.UpsertCartItem{
			UserID:    userID,
			ProductID: product.ID,
			Quantity:  2,
		}).
		Return(&domain.CartItem{ID: 5, UserID: userID, ProductID: product.ID, Quantity: 5}, nil)

	item, err := s.cartService.Add(s.T().Context(), userID, product.ID, 2)
	s.Require().NoError(err)
	s.Equal(int32(5), item.Quantity)

	// 3 в корзине + 3 новых > 5 на складе: отказ без апсерта.
	_, err = s.cartService.Add(s.T().Context(), userID, product.ID, 3)

	var outOfStock *domain.OutOfStockError
	s.Require().ErrorAs(err, &outOfStock)
	s.Equal(product.Name, outOfStock.ProductName)
}

// Свой товар в корзину не добавить.
func (s *CartServiceTestSuite) TestAddOwnProduct() {
	var userID int64 = 1

	product := domain.Product{
		ID:       10,
		Name:     "gadget",
		Stock:    5,
		SellerID: userID,
	}

	s.mockProductRepo.EXPECT().
		GetByID(gomock.Any(), product.ID).
		Return(&product, nil)
	s.mockCartRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.cartService.Add(s.T().Context(), userID, product.ID, 1)
	s.Require().ErrorIs(err, domain.ErrOwnProduct)
}

func (s *CartServiceTestSuite) TestAddInvalidQuantity() {
	_, err := s.cartService.Add(s.T().Context(), 1, 10, 0)
	s.Require().ErrorIs(err, domain.ErrInvalidQuantity)
}

func (s *CartServiceTestSuite) TestUpdateQuantity() {
	var userID int64 = 1
	var cartItemID int64 = 5

	product := domain.Product{ID: 10, Name: "gadget", Stock: 4}
	updated := domain.CartItem{ID: cartItemID, UserID: userID, ProductID: product.ID, Quantity: 4}

	s.mockCartRepo.EXPECT().
		UpdateQuantity(gomock.Any(), cartItemID, userID, int32(4)).
		Return(&updated, nil)
	s.mockProductRepo.EXPECT().
		GetByID(gomock.Any(), product.ID).
		Return(&product, nil)

	item, err := s.cartService.UpdateQuantity(s.T().Context(), userID, cartItemID, 4)
	s.Require().NoError(err)
	s.Equal(int32(4), item.Quantity)
}

// Новое количество больше остатка: обновление откатывается.
func (s *CartServiceTestSuite) TestUpdateQuantityOverStock() {
	var userID int64 = 1
	var cartItemID int64 = 5

	product := domain.Product{ID: 10, Name: "gadget", Stock: 4}
	updated := domain.CartItem{ID: cartItemID, UserID: userID, ProductID: product.ID, Quantity: 9}

	s.mockCartRepo.EXPECT().
		UpdateQuantity(gomock.Any(), cartItemID, userID, int32(9)).
		Return(&updated, nil)
	s.mockProductRepo.EXPECT().
		GetByID(gomock.Any(), product.ID).
		Return(&product, nil)

	_, err := s.cartService.UpdateQuantity(s.T().Context(), userID, cartItemID, 9)

	var outOfStock *domain.OutOfStockError
	s.Require().ErrorAs(err, &outOfStock)
}

func (s *CartServiceTestSuite) TestRemove() {
	var userID int64 = 1
	var cartItemID int64 = 5

	s.mockCartRepo.EXPECT().
		Delete(gomock.Any(), cartItemID, userID).
		Return(nil)
	s.Require().NoError(s.cartService.Remove(s.T().Context(), userID, cartItemID))

	s.mockCartRepo.EXPECT().
		Delete(gomock.Any(), cartItemID, userID).
		Return(domain.ErrRecordNotFound)
	s.Require().ErrorIs(
		s.cartService.Remove(s.T().Context(), userID, cartItemID),
		domain.ErrRecordNotFound,
	)
}

func (s *CartServiceTestSuite) TestList() {
	var userID int64 = 1

	lines := []domain.CartLine{
		{
			CartItem:    domain.CartItem{ID: 5, UserID: userID, ProductID: 10, Quantity: 2},
			ProductName: "gadget",
			Price:       decimal.NewFromInt(100),
			Stock:       5,
			SellerID:    2,
			SellerName:  "seller",
		},
	}

	s.mockCartRepo.EXPECT().GetLinesByUserID(gomock.Any(), userID).Return(lines, nil)

	got, err := s.cartService.List(s.T().Context(), userID)
	s.Require().NoError(err)
	s.Equal(lines, got)
}
