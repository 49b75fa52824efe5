package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

type OrderRepository struct {
	db uow.DBTX
}

func NewOrderRepository(db uow.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = "id, created_at, updated_at, user_id, product_id, quantity, total_amount, status"

func (o *OrderRepository) GetAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := o.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, convertErr(err, "getting orders")
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting orders")
		}
		orders = append(orders, *order)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting orders")
	}
	return orders, nil
}

func (o *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := o.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "finding order by id %d", id)
	}
	return order, nil
}

func (o *OrderRepository) Create(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	row := o.db.QueryRow(ctx,
		`INSERT INTO orders (user_id, product_id, quantity, total_amount, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+orderColumns,
		args.UserID, args.ProductID, args.Quantity, args.TotalAmount, args.Status,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "creating order")
	}
	return order, nil
}

func (o *OrderRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status domain.OrderStatusType,
) (*domain.Order, error) {
	row := o.db.QueryRow(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1
		 RETURNING `+orderColumns,
		id, status)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "updating order %d", id)
	}
	return order, nil
}

func (o *OrderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := o.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting order %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting order %d", id)
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.UserID,
		&order.ProductID,
		&order.Quantity,
		&order.TotalAmount,
		&order.Status,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &order, nil
}
