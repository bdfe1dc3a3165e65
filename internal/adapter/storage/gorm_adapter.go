package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rl1809/catalog/internal/core/domain"
	"github.com/rl1809/catalog/internal/port"
)

// GormAdapter runs every unit of work in a database transaction.
type GormAdapter struct {
	db *gorm.DB
}

func NewGormAdapter(db *gorm.DB) *GormAdapter {
	return &GormAdapter{db: db}
}

func (g *GormAdapter) Do(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, gormRepositories{tx: tx})
	})
}

func (g *GormAdapter) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Migrate creates or updates the categories and items tables.
func (g *GormAdapter) Migrate(ctx context.Context) error {
	if err := g.db.WithContext(ctx).AutoMigrate(&domain.Category{}, &domain.Item{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (g *GormAdapter) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormRepositories struct {
	tx *gorm.DB
}

func (r gormRepositories) Categories() port.CategoryRepository {
	return gormCategoryRepo(r)
}

func (r gormRepositories) Items() port.ItemRepository {
	return gormItemRepo(r)
}

type gormCategoryRepo struct {
	tx *gorm.DB
}

func (r gormCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.tx.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("id").
		Find(&categories).Error
	if err != nil {
		return nil, translate("query categories", err)
	}
	return categories, nil
}

func (r gormCategoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.tx.WithContext(ctx).Model(&domain.Category{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, translate("count categories", err)
	}
	return count > 0, nil
}

func (r gormCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	err := r.tx.WithContext(ctx).Omit(clause.Associations).Create(category).Error
	return translate("insert category", err)
}

func (r gormCategoryRepo) Update(ctx context.Context, category domain.Category) error {
	var existing domain.Category
	if err := r.tx.WithContext(ctx).Select("id").First(&existing, category.ID).Error; err != nil {
		return translate("find category", err)
	}

	err := r.tx.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"name":        category.Name,
		"description": category.Description,
	}).Error
	return translate("update category", err)
}

func (r gormCategoryRepo) Delete(ctx context.Context, id int64) error {
	var existing domain.Category
	if err := r.tx.WithContext(ctx).Select("id").First(&existing, id).Error; err != nil {
		return translate("find category", err)
	}

	// Items go first so the delete also works where the schema lacks the cascade.
	if err := r.tx.WithContext(ctx).Where("category_id = ?", id).Delete(&domain.Item{}).Error; err != nil {
		return translate("delete items", err)
	}
	return translate("delete category", r.tx.WithContext(ctx).Delete(&existing).Error)
}

type gormItemRepo struct {
	tx *gorm.DB
}

func (r gormItemRepo) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	query := r.tx.WithContext(ctx).Model(&domain.Item{})
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	items := make([]domain.Item, 0, filter.PageSize)
	err := query.Order("id").Offset(filter.Offset()).Limit(filter.PageSize).Find(&items).Error
	if err != nil {
		return nil, translate("query items", err)
	}
	return items, nil
}

func (r gormItemRepo) Create(ctx context.Context, item *domain.Item) error {
	return translate("insert item", r.tx.WithContext(ctx).Create(item).Error)
}

func (r gormItemRepo) Update(ctx context.Context, item domain.Item) error {
	var existing domain.Item
	if err := r.tx.WithContext(ctx).Select("id").First(&existing, item.ID).Error; err != nil {
		return translate("find item", err)
	}

	err := r.tx.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"category_id": item.CategoryID,
	}).Error
	return translate("update item", err)
}

func (r gormItemRepo) Delete(ctx context.Context, id int64) error {
	result := r.tx.WithContext(ctx).Delete(&domain.Item{}, id)
	if result.Error != nil {
		return translate("delete item", result.Error)
	}
	if result.RowsAffected == 0 {
		return port.ErrNotFound
	}
	return nil
}

// translate maps gorm's translated driver errors onto port errors.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return port.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return port.ErrForeignKey
	}
	return fmt.Errorf("%s: %w", op, err)
}
