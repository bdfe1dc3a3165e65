package handler

import (
	"github.com/shopspring/decimal"

	"github.com/rl1809/catalog/internal/core/domain"
)

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type CategoryResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	Items       []ItemResponse `json:"items,omitempty"`
}

type CreateItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"categoryId" binding:"required"`
}

type UpdateItemRequest struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"categoryId" binding:"required"`
}

// ItemResponse leaves out the description and owning category.
type ItemResponse struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type ListItemsQuery struct {
	CategoryID *int64 `form:"categoryId"`
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (r CreateCategoryRequest) toDomain() domain.Category {
	return domain.Category{Name: r.Name, Description: r.Description}
}

func (r UpdateCategoryRequest) toDomain() domain.Category {
	return domain.Category{ID: r.ID, Name: r.Name, Description: r.Description}
}

func (r CreateItemRequest) toDomain() domain.Item {
	return domain.Item{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		CategoryID:  r.CategoryID,
	}
}

func (r UpdateItemRequest) toDomain() domain.Item {
	return domain.Item{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		CategoryID:  r.CategoryID,
	}
}

func (q ListItemsQuery) toFilter() domain.ItemFilter {
	return domain.ItemFilter{CategoryID: q.CategoryID, Page: q.Page, PageSize: q.PageSize}
}

func newCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Items:       newItemResponses(c.Items),
	}
}

func newCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, newCategoryResponse(c))
	}
	return out
}

func newItemResponse(i domain.Item) ItemResponse {
	return ItemResponse{ID: i.ID, Name: i.Name, Price: i.Price}
}

func newItemResponses(items []domain.Item) []ItemResponse {
	if items == nil {
		return nil
	}
	out := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, newItemResponse(i))
	}
	return out
}
