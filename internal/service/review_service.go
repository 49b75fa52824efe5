package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

type ReviewService struct {
	reviewRepo ReviewRepository
}

func NewReviewService(u uow.UOW) (*ReviewService, error) {
	reviewRepo, err := uow.GetRepositoryAs[ReviewRepository](u, uow.RepositoryName(repoargs.ReviewRepoName))
	if err != nil {
		return nil, err
	}
	return &ReviewService{reviewRepo: reviewRepo}, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID int64) ([]domain.Review, error) {
	reviews, err := s.reviewRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return reviews, nil
}

func (s *ReviewService) Create(
	ctx context.Context,
	userID, productID int64,
	rating int16,
	comment string,
) (*domain.Review, error) {
	review, err := s.reviewRepo.Create(ctx, repoargs.CreateReview{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	})
	if err != nil {
		return nil, fmt.Errorf("creating review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) Update(
	ctx context.Context,
	id int64,
	rating int16,
	comment string,
) (*domain.Review, error) {
	review, err := s.reviewRepo.Update(ctx, repoargs.UpdateReview{
		ID:      id,
		Rating:  rating,
		Comment: comment,
	})
	if err != nil {
		return nil, fmt.Errorf("updating review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting review: %w", err)
	}
	return nil
}
