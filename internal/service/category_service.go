package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

type CategoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(u uow.UOW) (*CategoryService, error) {
	categoryRepo, err := uow.GetRepositoryAs[CategoryRepository](u, uow.RepositoryName(repoargs.CategoryRepoName))
	if err != nil {
		return nil, err
	}
	return &CategoryService{categoryRepo: categoryRepo}, nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return categories, nil
}

// Create создает категорию. Имя уникально, конфликт - domain.ErrDuplicateKey.
func (s *CategoryService) Create(ctx context.Context, name, description string) (*domain.Category, error) {
	category, err := s.categoryRepo.Create(ctx, repoargs.CreateCategory{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Update(
	ctx context.Context,
	id int64,
	name, description string,
) (*domain.Category, error) {
	category, err := s.categoryRepo.Update(ctx, repoargs.UpdateCategory{
		ID:          id,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return nil
}
