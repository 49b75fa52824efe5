package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

type CategoryRepository struct {
	db uow.DBTX
}

func NewCategoryRepository(db uow.DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = "id, created_at, updated_at, name, description"

func (c *CategoryRepository) GetAll(ctx context.Context) ([]domain.Category, error) {
	rows, err := c.db.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, convertErr(err, "getting categories")
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		category, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting categories")
		}
		categories = append(categories, *category)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting categories")
	}
	return categories, nil
}

func (c *CategoryRepository) Create(
	ctx context.Context,
	args repoargs.CreateCategory,
) (*domain.Category, error) {
	row := c.db.QueryRow(ctx,
		`INSERT INTO categories (name, description) VALUES ($1, $2)
		 RETURNING `+categoryColumns,
		args.Name, args.Description)
	category, err := scanCategory(row)
	if err != nil {
		return nil, convertErr(err, "creating category")
	}
	return category, nil
}

func (c *CategoryRepository) Update(
	ctx context.Context,
	args repoargs.UpdateCategory,
) (*domain.Category, error) {
	row := c.db.QueryRow(ctx,
		`UPDATE categories SET name = $2, description = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING `+categoryColumns,
		args.ID, args.Name, args.Description)
	category, err := scanCategory(row)
	if err != nil {
		return nil, convertErr(err, "updating category %d", args.ID)
	}
	return category, nil
}

func (c *CategoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := c.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting category %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting category %d", id)
	}
	return nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var category domain.Category
	err := row.Scan(
		&category.ID,
		&category.CreatedAt,
		&category.UpdatedAt,
		&category.Name,
		&category.Description,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &category, nil
}
