package port

import (
	"context"
	"errors"

	"github.com/rl1809/catalog/internal/core/domain"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrForeignKey = errors.New("foreign key violation")
)

type CategoryRepository interface {
	// List returns every category with its items, ordered by ID
	List(ctx context.Context) ([]domain.Category, error)

	// Exists reports whether a category with the given ID is stored
	Exists(ctx context.Context, id int64) (bool, error)

	// Create inserts the category and sets its generated ID
	Create(ctx context.Context, category *domain.Category) error

	// Update replaces name and description, returns ErrNotFound for unknown IDs
	Update(ctx context.Context, category domain.Category) error

	// Delete removes the category and every item it owns, returns ErrNotFound for unknown IDs
	Delete(ctx context.Context, id int64) error
}

type ItemRepository interface {
	// List returns one page of items ordered by ID; the filter must be normalized
	List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)

	// Create inserts the item and sets its generated ID, returns ErrForeignKey for unknown categories
	Create(ctx context.Context, item *domain.Item) error

	// Update replaces every field, returns ErrNotFound for unknown IDs
	Update(ctx context.Context, item domain.Item) error

	// Delete removes the item, returns ErrNotFound for unknown IDs
	Delete(ctx context.Context, id int64) error
}

// Repositories are scoped to a single unit of work and must not be retained
// after it ends.
type Repositories interface {
	Categories() CategoryRepository
	Items() ItemRepository
}

type UnitOfWork interface {
	// Do runs fn in one transaction: committed when fn returns nil,
	// rolled back when it returns an error or panics.
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}
