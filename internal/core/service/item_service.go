package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rl1809/catalog/internal/core/domain"
	"github.com/rl1809/catalog/internal/port"
)

type ItemService struct {
	uow port.UnitOfWork
}

func NewItemService(uow port.UnitOfWork) *ItemService {
	return &ItemService{uow: uow}
}

// List returns one page of items. Out of range paging values are clamped.
func (s *ItemService) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	filter = filter.Normalize()

	var items []domain.Item
	err := s.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		var err error
		items, err = repos.Items().List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *ItemService) Create(ctx context.Context, item domain.Item) (*domain.Item, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	item.ID = 0

	err := s.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		if err := requireCategory(ctx, repos, item.CategoryID); err != nil {
			return err
		}
		return repos.Items().Create(ctx, &item)
	})
	if err != nil {
		return nil, fmt.Errorf("create item: %w", translateItemError(err))
	}
	return &item, nil
}

// Update replaces every field of an existing item.
func (s *ItemService) Update(ctx context.Context, item domain.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	err := s.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		if err := requireCategory(ctx, repos, item.CategoryID); err != nil {
			return err
		}
		return repos.Items().Update(ctx, item)
	})
	if err != nil {
		return fmt.Errorf("update item %d: %w", item.ID, translateItemError(err))
	}
	return nil
}

// Delete removes an item. Unknown IDs are ignored.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	err := s.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		return repos.Items().Delete(ctx, id)
	})
	if err != nil && !errors.Is(err, port.ErrNotFound) {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	return nil
}

func requireCategory(ctx context.Context, repos port.Repositories, id int64) error {
	ok, err := repos.Categories().Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnknownCategory
	}
	return nil
}

// translateItemError maps storage errors to domain errors. A foreign key
// violation means the category vanished between the check and the write.
func translateItemError(err error) error {
	switch {
	case errors.Is(err, port.ErrForeignKey):
		return domain.ErrUnknownCategory
	case errors.Is(err, port.ErrNotFound):
		return domain.ErrItemNotFound
	}
	return err
}
