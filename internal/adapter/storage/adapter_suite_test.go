package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/catalog/internal/core/domain"
	"github.com/rl1809/catalog/internal/port"
)

type catalogStore interface {
	port.UnitOfWork
	port.HealthChecker
}

// runAdapterSuite checks the repository contract every adapter must honour.
func runAdapterSuite(t *testing.T, store catalogStore) {
	t.Run("Ping", func(t *testing.T) { testPing(t, store) })
	t.Run("CreateAndList", func(t *testing.T) { testCreateAndList(t, store) })
	t.Run("UpdateCategory", func(t *testing.T) { testUpdateCategory(t, store) })
	t.Run("Pagination", func(t *testing.T) { testPagination(t, store) })
	t.Run("CascadeDelete", func(t *testing.T) { testCascadeDelete(t, store) })
	t.Run("ForeignKey", func(t *testing.T) { testForeignKey(t, store) })
	t.Run("NotFound", func(t *testing.T) { testNotFound(t, store) })
	t.Run("RollbackOnError", func(t *testing.T) { testRollbackOnError(t, store) })
}

func createCategory(t *testing.T, uow port.UnitOfWork) domain.Category {
	t.Helper()
	category := domain.Category{Name: "cat-" + uuid.NewString()[:8]}
	err := uow.Do(context.Background(), func(ctx context.Context, repos port.Repositories) error {
		return repos.Categories().Create(ctx, &category)
	})
	require.NoError(t, err)
	require.Greater(t, category.ID, int64(0))
	return category
}

func createItem(t *testing.T, uow port.UnitOfWork, categoryID int64, price string) domain.Item {
	t.Helper()
	item := domain.Item{
		Name:       "item-" + uuid.NewString()[:8],
		Price:      decimal.RequireFromString(price),
		CategoryID: categoryID,
	}
	err := uow.Do(context.Background(), func(ctx context.Context, repos port.Repositories) error {
		return repos.Items().Create(ctx, &item)
	})
	require.NoError(t, err)
	require.Greater(t, item.ID, int64(0))
	return item
}

func listItems(t *testing.T, uow port.UnitOfWork, filter domain.ItemFilter) []domain.Item {
	t.Helper()
	var items []domain.Item
	err := uow.Do(context.Background(), func(ctx context.Context, repos port.Repositories) error {
		var err error
		items, err = repos.Items().List(ctx, filter.Normalize())
		return err
	})
	require.NoError(t, err)
	return items
}

func listCategories(t *testing.T, uow port.UnitOfWork) []domain.Category {
	t.Helper()
	var categories []domain.Category
	err := uow.Do(context.Background(), func(ctx context.Context, repos port.Repositories) error {
		var err error
		categories, err = repos.Categories().List(ctx)
		return err
	})
	require.NoError(t, err)
	return categories
}

func findCategory(categories []domain.Category, id int64) *domain.Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}

func testPing(t *testing.T, store catalogStore) {
	assert.NoError(t, store.Ping(context.Background()))
}

func testCreateAndList(t *testing.T, store catalogStore) {
	category := createCategory(t, store)
	item := createItem(t, store, category.ID, "9.99")

	found := findCategory(listCategories(t, store), category.ID)
	require.NotNil(t, found)
	assert.Equal(t, category.Name, found.Name)
	require.Len(t, found.Items, 1)
	assert.Equal(t, item.ID, found.Items[0].ID)
	assert.True(t, decimal.RequireFromString("9.99").Equal(found.Items[0].Price))
}

func testUpdateCategory(t *testing.T, store catalogStore) {
	category := createCategory(t, store)
	description := "updated"
	category.Name = "renamed-" + uuid.NewString()[:8]
	category.Description = &description

	err := store.Do(context.Background(), func(ctx context.Context, repos port.Repositories) error {
		return repos.Categories().Update(ctx, category)
	})
	require.NoError(t, err)

	found := findCategory(listCategories(t, store), category.ID)
	require.NotNil(t, found)
	assert.Equal(t, category.Name, found.Name)
	require.NotNil(t, found.Description)
	assert.Equal(t, "updated", *found.Description)
}

func testPagination(t *testing.T, store catalogStore) {
	category := createCategory(t, store)
	for i := 0; i < 15; i++ {
		createItem(t, store, category.ID, "1.00")
	}

	first := listItems(t, store, domain.ItemFilter{CategoryID: &category.ID, Page: 1, PageSize: 10})
	second := listItems(t, store, domain.ItemFilter{CategoryID: &category.ID, Page: 2, PageSize: 10})
	third := listItems(t, store, domain.ItemFilter{CategoryID: &category.ID, Page: 3, PageSize: 10})

	assert.Len(t, first, 10)
	assert.Len(t, second, 5)
	assert.Empty(t, third)
	assert.Less(t, first[9].ID, second[0].ID, "pages must be ordered by id")
}

func testCascadeDelete(t *testing.T, store catalogStore) {
	category := createCategory(t, store)
	createItem(t, store, category.ID, "1.00")
	createItem(t, store, category.ID, "2.00")

	err := store.Do(context.Background(), func(ctx context.Context, repos port.Repositories) error {
		return repos.Categories().Delete(ctx, category.ID)
	})
	require.NoError(t, err)

	assert.Nil(t, findCategory(listCategories(t, store), category.ID))
	assert.Empty(t, listItems(t, store, domain.ItemFilter{CategoryID: &category.ID}))
}

func testForeignKey(t *testing.T, store catalogStore) {
	item := domain.Item{Name: "orphan", Price: decimal.Zero, CategoryID: 987654321}
	err := store.Do(context.Background(), func(ctx context.Context, repos port.Repositories) error {
		return repos.Items().Create(ctx, &item)
	})
	assert.ErrorIs(t, err, port.ErrForeignKey)
}

func testNotFound(t *testing.T, store catalogStore) {
	const missing = int64(987654321)
	ctx := context.Background()

	err := store.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		return repos.Categories().Update(ctx, domain.Category{ID: missing, Name: "x"})
	})
	assert.ErrorIs(t, err, port.ErrNotFound)

	err = store.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		return repos.Categories().Delete(ctx, missing)
	})
	assert.ErrorIs(t, err, port.ErrNotFound)

	err = store.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		return repos.Items().Delete(ctx, missing)
	})
	assert.ErrorIs(t, err, port.ErrNotFound)

	exists := true
	err = store.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		var err error
		exists, err = repos.Categories().Exists(ctx, missing)
		return err
	})
	require.NoError(t, err)
	assert.False(t, exists)
}

func testRollbackOnError(t *testing.T, store catalogStore) {
	errBoom := errors.New("boom")
	category := domain.Category{Name: "rolled-back-" + uuid.NewString()[:8]}

	err := store.Do(context.Background(), func(ctx context.Context, repos port.Repositories) error {
		if err := repos.Categories().Create(ctx, &category); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	for _, c := range listCategories(t, store) {
		assert.NotEqual(t, category.Name, c.Name, "category should not survive a failed unit of work")
	}
}
