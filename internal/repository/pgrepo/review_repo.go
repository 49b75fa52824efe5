package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

type ReviewRepository struct {
	db uow.DBTX
}

func NewReviewRepository(db uow.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = "id, created_at, updated_at, user_id, product_id, rating, comment"

func (r *ReviewRepository) GetByProductID(ctx context.Context, productID int64) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`,
		productID)
	if err != nil {
		return nil, convertErr(err, "getting reviews of product %d", productID)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		review, scanErr := scanReview(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting reviews of product %d", productID)
		}
		reviews = append(reviews, *review)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting reviews of product %d", productID)
	}
	return reviews, nil
}

func (r *ReviewRepository) Create(ctx context.Context, args repoargs.CreateReview) (*domain.Review, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO reviews (user_id, product_id, rating, comment)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+reviewColumns,
		args.UserID, args.ProductID, args.Rating, args.Comment,
	)
	review, err := scanReview(row)
	if err != nil {
		return nil, convertErr(err, "creating review")
	}
	return review, nil
}

func (r *ReviewRepository) Update(ctx context.Context, args repoargs.UpdateReview) (*domain.Review, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE reviews SET rating = $2, comment = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING `+reviewColumns,
		args.ID, args.Rating, args.Comment,
	)
	review, err := scanReview(row)
	if err != nil {
		return nil, convertErr(err, "updating review %d", args.ID)
	}
	return review, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting review %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting review %d", id)
	}
	return nil
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID,
		&review.CreatedAt,
		&review.UpdatedAt,
		&review.UserID,
		&review.ProductID,
		&review.Rating,
		&review.Comment,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &review, nil
}
