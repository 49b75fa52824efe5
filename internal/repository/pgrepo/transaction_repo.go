package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

type TransactionRepository struct {
	db uow.DBTX
}

func NewTransactionRepository(db uow.DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create добавляет запись в лог продаж. Записи не обновляются и не удаляются
// обычным потоком, это след аудита.
func (t *TransactionRepository) Create(
	ctx context.Context,
	args repoargs.CreateTransaction,
) (*domain.Transaction, error) {
	var trans domain.Transaction
	err := t.db.QueryRow(ctx,
		`INSERT INTO transactions (buyer_id, seller_id, product_id, quantity, amount)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, buyer_id, seller_id, product_id, quantity, amount`,
		args.BuyerID, args.SellerID, args.ProductID, args.Quantity, args.Amount,
	).Scan(
		&trans.ID,
		&trans.CreatedAt,
		&trans.BuyerID,
		&trans.SellerID,
		&trans.ProductID,
		&trans.Quantity,
		&trans.Amount,
	)
	if err != nil {
		return nil, convertErr(err, "creating transaction")
	}
	return &trans, nil
}

// GetAll возвращает лог продаж с именами покупателя, продавца и товара,
// отсортированный по дате по убыванию.
func (t *TransactionRepository) GetAll(ctx context.Context) ([]domain.TransactionRecord, error) {
	rows, err := t.db.Query(ctx,
		`SELECT t.id, t.created_at, t.buyer_id, t.seller_id, t.product_id, t.quantity, t.amount,
		        b.username AS buyer_name, s.username AS seller_name, p.name AS product_name
		 FROM transactions t
		 JOIN users b ON t.buyer_id = b.id
		 JOIN users s ON t.seller_id = s.id
		 JOIN products p ON t.product_id = p.id
		 ORDER BY t.created_at DESC`,
	)
	if err != nil {
		return nil, convertErr(err, "getting transactions")
	}
	defer rows.Close()

	var records []domain.TransactionRecord
	for rows.Next() {
		var r domain.TransactionRecord
		scanErr := rows.Scan(
			&r.ID,
			&r.CreatedAt,
			&r.BuyerID,
			&r.SellerID,
			&r.ProductID,
			&r.Quantity,
			&r.Amount,
			&r.BuyerName,
			&r.SellerName,
			&r.ProductName,
		)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting transactions")
		}
		records = append(records, r)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting transactions")
	}
	return records, nil
}
