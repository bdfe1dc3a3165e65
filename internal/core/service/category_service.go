package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rl1809/catalog/internal/core/domain"
	"github.com/rl1809/catalog/internal/port"
)

type CategoryService struct {
	uow port.UnitOfWork
}

func NewCategoryService(uow port.UnitOfWork) *CategoryService {
	return &CategoryService{uow: uow}
}

// List returns all categories with their items.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := s.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		var err error
		categories, err = repos.Categories().List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, category domain.Category) (*domain.Category, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}
	category.ID = 0
	category.Items = nil

	err := s.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		return repos.Categories().Create(ctx, &category)
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// Update replaces the name and description of an existing category.
func (s *CategoryService) Update(ctx context.Context, category domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	err := s.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		return repos.Categories().Update(ctx, category)
	})
	if errors.Is(err, port.ErrNotFound) {
		return domain.ErrCategoryNotFound
	}
	if err != nil {
		return fmt.Errorf("update category %d: %w", category.ID, err)
	}
	return nil
}

// Delete removes a category together with its items. Unknown IDs are ignored.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	err := s.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		return repos.Categories().Delete(ctx, id)
	})
	if err != nil && !errors.Is(err, port.ErrNotFound) {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return nil
}
