package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

type CartRepository struct {
	db uow.DBTX
}

func NewCartRepository(db uow.DBTX) *CartRepository {
	return &CartRepository{db: db}
}

const cartItemColumns = "id, created_at, updated_at, user_id, product_id, quantity"

// GetLinesByUserID возвращает строки корзины вместе с живым состоянием товара.
// Корзина не блокируется от конкурентных чекаутов, расхождения разрешаются при чекауте.
func (c *CartRepository) GetLinesByUserID(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	rows, err := c.db.Query(ctx,
		`SELECT ci.id, ci.created_at, ci.updated_at, ci.user_id, ci.product_id, ci.quantity,
		        p.name, p.price, p.stock, p.seller_id, u.username AS seller_name
		 FROM cart_items ci
		 JOIN products p ON ci.product_id = p.id
		 JOIN users u ON p.seller_id = u.id
		 WHERE ci.user_id = $1
		 ORDER BY ci.created_at`,
		userID,
	)
	if err != nil {
		return nil, convertErr(err, "getting cart of user %d", userID)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		scanErr := rows.Scan(
			&l.ID,
			&l.CreatedAt,
			&l.UpdatedAt,
			&l.UserID,
			&l.ProductID,
			&l.Quantity,
			&l.ProductName,
			&l.Price,
			&l.Stock,
			&l.SellerID,
			&l.SellerName,
		)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting cart of user %d", userID)
		}
		lines = append(lines, l)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting cart of user %d", userID)
	}
	return lines, nil
}

func (c *CartRepository) FindByUserAndProduct(
	ctx context.Context,
	userID, productID int64,
) (*domain.CartItem, error) {
	row := c.db.QueryRow(ctx,
		`SELECT `+cartItemColumns+` FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID)
	item, err := scanCartItem(row)
	if err != nil {
		return nil, convertErr(err, "finding cart item of user %d for product %d", userID, productID)
	}
	return item, nil
}

// Upsert вставляет строку корзины, а при повторном добавлении того же товара
// наращивает количество существующей строки. Две строки на один товар невозможны,
// уникальность (user_id, product_id) гарантирует база.
func (c *CartRepository) Upsert(
	ctx context.Context,
	args repoargs.UpsertCartItem,
) (*domain.CartItem, error) {
	row := c.db.QueryRow(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
		 RETURNING `+cartItemColumns,
		args.UserID, args.ProductID, args.Quantity,
	)
	item, err := scanCartItem(row)
	if err != nil {
		return nil, convertErr(err, "upserting cart item of user %d for product %d", args.UserID, args.ProductID)
	}
	return item, nil
}

// UpdateQuantity меняет количество в строке корзины. Строка должна принадлежать userID.
func (c *CartRepository) UpdateQuantity(
	ctx context.Context,
	cartItemID, userID int64,
	quantity int32,
) (*domain.CartItem, error) {
	row := c.db.QueryRow(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+cartItemColumns,
		cartItemID, userID, quantity,
	)
	item, err := scanCartItem(row)
	if err != nil {
		return nil, convertErr(err, "updating cart item %d", cartItemID)
	}
	return item, nil
}

// Delete удаляет строку корзины принадлежащую userID. Если строки нет - domain.ErrRecordNotFound.
func (c *CartRepository) Delete(ctx context.Context, cartItemID, userID int64) error {
	tag, err := c.db.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, cartItemID, userID)
	if err != nil {
		return convertErr(err, "deleting cart item %d", cartItemID)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting cart item %d", cartItemID)
	}
	return nil
}

// DeleteByUserAndProduct убирает товар из корзины юзера после успешной покупки.
// Отсутствие строки не считается ошибкой: чекаут принимает строки от клиента
// и корзина могла быть изменена параллельно.
func (c *CartRepository) DeleteByUserAndProduct(ctx context.Context, userID, productID int64) error {
	_, err := c.db.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return convertErr(err, "deleting cart item of user %d for product %d", userID, productID)
	}
	return nil
}

func scanCartItem(row pgx.Row) (*domain.CartItem, error) {
	var item domain.CartItem
	err := row.Scan(
		&item.ID,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &item, nil
}
