package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/rl1809/catalog/internal/core/domain"
	"github.com/rl1809/catalog/internal/port"
)

// MemoryAdapter keeps the catalog in process memory. Units of work run one
// at a time against a copy of the state which replaces the original only on
// success.
type MemoryAdapter struct {
	mu    sync.Mutex
	state memoryState
}

type memoryState struct {
	categories     map[int64]domain.Category
	items          map[int64]domain.Item
	nextCategoryID int64
	nextItemID     int64
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		state: memoryState{
			categories: make(map[int64]domain.Category),
			items:      make(map[int64]domain.Item),
		},
	}
}

func (m *MemoryAdapter) Do(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.state.clone()
	if err := fn(ctx, memoryRepositories{state: &work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.state = work
	return nil
}

func (m *MemoryAdapter) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s memoryState) clone() memoryState {
	out := memoryState{
		categories:     make(map[int64]domain.Category, len(s.categories)),
		items:          make(map[int64]domain.Item, len(s.items)),
		nextCategoryID: s.nextCategoryID,
		nextItemID:     s.nextItemID,
	}
	for id, c := range s.categories {
		out.categories[id] = c
	}
	for id, i := range s.items {
		out.items[id] = i
	}
	return out
}

type memoryRepositories struct {
	state *memoryState
}

func (r memoryRepositories) Categories() port.CategoryRepository {
	return memoryCategoryRepo(r)
}

func (r memoryRepositories) Items() port.ItemRepository {
	return memoryItemRepo(r)
}

type memoryCategoryRepo struct {
	state *memoryState
}

func (r memoryCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	ids := sortedKeys(r.state.categories)
	itemIDs := sortedKeys(r.state.items)

	categories := make([]domain.Category, 0, len(ids))
	for _, id := range ids {
		c := copyCategory(r.state.categories[id])
		for _, itemID := range itemIDs {
			if item := r.state.items[itemID]; item.CategoryID == id {
				c.Items = append(c.Items, copyItem(item))
			}
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (r memoryCategoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.state.categories[id]
	return ok, nil
}

func (r memoryCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	r.state.nextCategoryID++
	category.ID = r.state.nextCategoryID

	stored := copyCategory(*category)
	stored.Items = nil
	r.state.categories[stored.ID] = stored
	return nil
}

func (r memoryCategoryRepo) Update(ctx context.Context, category domain.Category) error {
	stored, ok := r.state.categories[category.ID]
	if !ok {
		return port.ErrNotFound
	}
	stored.Name = category.Name
	stored.Description = copyString(category.Description)
	r.state.categories[stored.ID] = stored
	return nil
}

func (r memoryCategoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.state.categories[id]; !ok {
		return port.ErrNotFound
	}
	for itemID, item := range r.state.items {
		if item.CategoryID == id {
			delete(r.state.items, itemID)
		}
	}
	delete(r.state.categories, id)
	return nil
}

type memoryItemRepo struct {
	state *memoryState
}

func (r memoryItemRepo) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	items := make([]domain.Item, 0, filter.PageSize)
	skipped := 0
	for _, id := range sortedKeys(r.state.items) {
		item := r.state.items[id]
		if filter.CategoryID != nil && item.CategoryID != *filter.CategoryID {
			continue
		}
		if skipped < filter.Offset() {
			skipped++
			continue
		}
		if len(items) == filter.PageSize {
			break
		}
		items = append(items, copyItem(item))
	}
	return items, nil
}

func (r memoryItemRepo) Create(ctx context.Context, item *domain.Item) error {
	if _, ok := r.state.categories[item.CategoryID]; !ok {
		return port.ErrForeignKey
	}
	r.state.nextItemID++
	item.ID = r.state.nextItemID
	r.state.items[item.ID] = copyItem(*item)
	return nil
}

func (r memoryItemRepo) Update(ctx context.Context, item domain.Item) error {
	if _, ok := r.state.items[item.ID]; !ok {
		return port.ErrNotFound
	}
	if _, ok := r.state.categories[item.CategoryID]; !ok {
		return port.ErrForeignKey
	}
	r.state.items[item.ID] = copyItem(item)
	return nil
}

func (r memoryItemRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.state.items[id]; !ok {
		return port.ErrNotFound
	}
	delete(r.state.items, id)
	return nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyCategory(c domain.Category) domain.Category {
	c.Description = copyString(c.Description)
	c.Items = nil
	return c
}

func copyItem(i domain.Item) domain.Item {
	i.Description = copyString(i.Description)
	return i
}
