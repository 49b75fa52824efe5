package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

// CheckoutService проводит покупку корзины как одну атомарную единицу работы
// и отдает историю продаж.
type CheckoutService struct {
	uow       uow.UOW
	transRepo TransactionRepository
}

func NewCheckoutService(u uow.UOW) (*CheckoutService, error) {
	transRepo, err := uow.GetRepositoryAs[TransactionRepository](u, uow.RepositoryName(repoargs.TransactionRepoName))
	if err != nil {
		return nil, err
	}
	return &CheckoutService{
		uow:       u,
		transRepo: transRepo,
	}, nil
}

// CheckoutLine одна позиция покупки: товар, количество и цена за единицу,
// какими их видел покупатель в корзине.
type CheckoutLine struct {
	ProductID   int64
	ProductName string
	SellerID    int64
	Quantity    int32
	UnitPrice   decimal.Decimal
}

// Checkout проводит покупку всех позиций одной транзакцией БД и возвращает новый баланс покупателя.
//
// Внутри транзакции для каждой позиции: условное списание остатка (stock >= qty, иначе
// *domain.OutOfStockError и полный откат, включая уже обработанные позиции), зачисление
// продавцу, запись в лог продаж, удаление строки из корзины. В конце - условное списание
// стоимости с покупателя. Проверка баланса до начала работ отсеивает заведомо
// неплатежеспособные запросы без побочных эффектов, условное списание в конце закрывает
// гонку с параллельной тратой.
//
// Ошибки бизнес-правил: domain.ErrEmptyCart, domain.ErrInvalidQuantity, domain.ErrOwnProduct,
// domain.ErrInsufficientFunds, *domain.OutOfStockError. Частичное применение невозможно:
// любая ошибка откатывает всю единицу работы.
func (s *CheckoutService) Checkout(
	ctx context.Context,
	buyerID int64,
	lines []CheckoutLine,
) (decimal.Decimal, error) {
	if len(lines) == 0 {
		return decimal.Zero, fmt.Errorf("checkout: %w", domain.ErrEmptyCart)
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return decimal.Zero, fmt.Errorf("checkout: %w", domain.ErrInvalidQuantity)
		}
		// Собственные товары отсеиваются еще при добавлении в корзину,
		// но позиции приходят от клиента - перепроверяем.
		if line.SellerID == buyerID {
			return decimal.Zero, fmt.Errorf("checkout: %w", domain.ErrOwnProduct)
		}
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt32(line.Quantity)))
	}

	var newBalance decimal.Decimal
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		productRepo, productRepoErr := uow.GetAs[ProductRepository](tx, uow.RepositoryName(repoargs.ProductRepoName))
		if productRepoErr != nil {
			return productRepoErr //nolint:wrapcheck
		}
		cartRepo, cartRepoErr := uow.GetAs[CartRepository](tx, uow.RepositoryName(repoargs.CartRepoName))
		if cartRepoErr != nil {
			return cartRepoErr //nolint:wrapcheck
		}
		transRepo, transRepoErr :=
			uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if transRepoErr != nil {
			return transRepoErr //nolint:wrapcheck
		}

		balance, balanceErr := userRepo.GetBalance(c, buyerID)
		if balanceErr != nil {
			return balanceErr //nolint:wrapcheck
		}
		if balance.LessThan(total) {
			return domain.ErrInsufficientFunds
		}

		for _, line := range lines {
			decremented, decErr := productRepo.DecrementStock(c, line.ProductID, line.Quantity)
			if decErr != nil {
				return decErr //nolint:wrapcheck
			}
			if !decremented {
				return domain.NewOutOfStockError(line.ProductName)
			}

			amount := line.UnitPrice.Mul(decimal.NewFromInt32(line.Quantity))
			if _, creditErr := userRepo.AdjustBalance(c, line.SellerID, amount); creditErr != nil {
				return creditErr //nolint:wrapcheck
			}

			if _, transErr := transRepo.Create(c, repoargs.CreateTransaction{
				BuyerID:   buyerID,
				SellerID:  line.SellerID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Amount:    amount,
			}); transErr != nil {
				return transErr //nolint:wrapcheck
			}

			if delErr := cartRepo.DeleteByUserAndProduct(c, buyerID, line.ProductID); delErr != nil {
				return delErr //nolint:wrapcheck
			}
		}

		var debitErr error
		newBalance, debitErr = userRepo.AdjustBalance(c, buyerID, total.Neg())
		if debitErr != nil {
			return debitErr //nolint:wrapcheck
		}
		return nil
	})

	if txErr != nil {
		return decimal.Zero, fmt.Errorf("checkout: %w", txErr)
	}
	return newBalance, nil
}

// History возвращает лог продаж по убыванию даты.
func (s *CheckoutService) History(ctx context.Context) ([]domain.TransactionRecord, error) {
	records, err := s.transRepo.GetAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return records, nil
}
