package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

type ProductRepository struct {
	db uow.DBTX
}

func NewProductRepository(db uow.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `p.id, p.created_at, p.updated_at, p.name, p.price, p.description,
	p.stock, p.total_sold, p.seller_id, p.category_id`

const productListingQuery = `
	SELECT ` + productColumns + `, u.username AS seller_name, COALESCE(c.name, '') AS category_name
	FROM products p
	JOIN users u ON p.seller_id = u.id
	LEFT JOIN categories c ON p.category_id = c.id`

func (p *ProductRepository) Create(
	ctx context.Context,
	args repoargs.CreateProduct,
) (*domain.Product, error) {
	row := p.db.QueryRow(ctx,
		`INSERT INTO products (name, price, description, stock, seller_id, category_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at, name, price, description, stock, total_sold, seller_id, category_id`,
		args.Name, args.Price, args.Description, args.Stock, args.SellerID, args.CategoryID,
	)
	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "creating product")
	}
	return product, nil
}

func (p *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := p.db.QueryRow(ctx,
		`SELECT id, created_at, updated_at, name, price, description, stock, total_sold, seller_id, category_id
		 FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "finding product by id %d", id)
	}
	return product, nil
}

// GetAll возвращает витрину: товары с остатком, с именем продавца и категорией.
// Через filter можно исключить товары конкретного продавца (чтобы юзер не видел свои).
func (p *ProductRepository) GetAll(
	ctx context.Context,
	filter repoargs.ProductFilter,
) ([]domain.ProductListing, error) {
	query := productListingQuery + ` WHERE p.stock > 0`
	var queryArgs []any
	if filter.ExcludeSellerID != nil {
		query += ` AND p.seller_id <> $1`
		queryArgs = append(queryArgs, *filter.ExcludeSellerID)
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := p.db.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, convertErr(err, "getting products")
	}
	defer rows.Close()

	listings, scanErr := scanProductListings(rows)
	if scanErr != nil {
		return nil, convertErr(scanErr, "getting products")
	}
	return listings, nil
}

// GetBySellerID возвращает все товары продавца, включая распроданные.
func (p *ProductRepository) GetBySellerID(
	ctx context.Context,
	sellerID int64,
) ([]domain.ProductListing, error) {
	rows, err := p.db.Query(ctx,
		productListingQuery+` WHERE p.seller_id = $1 ORDER BY p.created_at DESC`, sellerID)
	if err != nil {
		return nil, convertErr(err, "getting products of seller %d", sellerID)
	}
	defer rows.Close()

	listings, scanErr := scanProductListings(rows)
	if scanErr != nil {
		return nil, convertErr(scanErr, "getting products of seller %d", sellerID)
	}
	return listings, nil
}

func (p *ProductRepository) Update(
	ctx context.Context,
	args repoargs.UpdateProduct,
) (*domain.Product, error) {
	row := p.db.QueryRow(ctx,
		`UPDATE products
		 SET name = $2, price = $3, description = $4, stock = $5, category_id = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING id, created_at, updated_at, name, price, description, stock, total_sold, seller_id, category_id`,
		args.ID, args.Name, args.Price, args.Description, args.Stock, args.CategoryID,
	)
	product, err := scanProduct(row)
	if err != nil {
		return nil, convertErr(err, "updating product %d", args.ID)
	}
	return product, nil
}

// Delete удаляет товар. Связанные строки корзин, отзывов, заказов и лога транзакций
// снимаются каскадом на уровне внешних ключей.
func (p *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting product %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting product %d", id)
	}
	return nil
}

// DecrementStock условно списывает qty единиц остатка и увеличивает счетчик продаж.
// Сравнение остатка и списание - одно UPDATE выражение: два конкурентных чекаута
// за последнюю единицу сериализуются блокировкой строки, проигравший получит false.
func (p *ProductRepository) DecrementStock(ctx context.Context, productID int64, qty int32) (bool, error) {
	tag, err := p.db.Exec(ctx,
		`UPDATE products
		 SET stock = stock - $2, total_sold = total_sold + $2, updated_at = now()
		 WHERE id = $1 AND stock >= $2`,
		productID, qty,
	)
	if err != nil {
		return false, convertErr(err, "decrementing stock of product %d", productID)
	}
	return tag.RowsAffected() > 0, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	err := row.Scan(
		&product.ID,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.Name,
		&product.Price,
		&product.Description,
		&product.Stock,
		&product.TotalSold,
		&product.SellerID,
		&product.CategoryID,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &product, nil
}

func scanProductListings(rows pgx.Rows) ([]domain.ProductListing, error) {
	var listings []domain.ProductListing
	for rows.Next() {
		var l domain.ProductListing
		err := rows.Scan(
			&l.ID,
			&l.CreatedAt,
			&l.UpdatedAt,
			&l.Name,
			&l.Price,
			&l.Description,
			&l.Stock,
			&l.TotalSold,
			&l.SellerID,
			&l.CategoryID,
			&l.SellerName,
			&l.CategoryName,
		)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		listings = append(listings, l)
	}
	return listings, rows.Err() //nolint:wrapcheck
}
