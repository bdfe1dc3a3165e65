package handler

import (
	"context"
	"errors"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/catalog/internal/adapter/handler/catalogrpc"
	"github.com/rl1809/catalog/internal/core/domain"
	"github.com/rl1809/catalog/internal/core/service"
)

type GRPCHandler struct {
	categories *service.CategoryService
	items      *service.ItemService
}

var _ catalogrpc.CatalogServiceServer = (*GRPCHandler)(nil)

func NewGRPCHandler(categories *service.CategoryService, items *service.ItemService) *GRPCHandler {
	return &GRPCHandler{categories: categories, items: items}
}

func (h *GRPCHandler) ListCategories(ctx context.Context, req *catalogrpc.ListCategoriesRequest) (*catalogrpc.ListCategoriesResponse, error) {
	categories, err := h.categories.List(ctx)
	if err != nil {
		return nil, grpcError(err)
	}

	resp := &catalogrpc.ListCategoriesResponse{Categories: make([]*catalogrpc.Category, 0, len(categories))}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, toRPCCategory(c))
	}
	return resp, nil
}

func (h *GRPCHandler) CreateCategory(ctx context.Context, req *catalogrpc.CreateCategoryRequest) (*catalogrpc.CategoryResponse, error) {
	created, err := h.categories.Create(ctx, domain.Category{Name: req.Name, Description: req.Description})
	if err != nil {
		return nil, grpcError(err)
	}
	return &catalogrpc.CategoryResponse{Category: toRPCCategory(*created)}, nil
}

func (h *GRPCHandler) UpdateCategory(ctx context.Context, req *catalogrpc.UpdateCategoryRequest) (*catalogrpc.Empty, error) {
	if req.Category == nil {
		return nil, status.Error(codes.InvalidArgument, "category is required")
	}

	c := req.Category
	if err := h.categories.Update(ctx, domain.Category{ID: c.ID, Name: c.Name, Description: c.Description}); err != nil {
		return nil, grpcError(err)
	}
	return &catalogrpc.Empty{}, nil
}

func (h *GRPCHandler) DeleteCategory(ctx context.Context, req *catalogrpc.DeleteRequest) (*catalogrpc.Empty, error) {
	if err := h.categories.Delete(ctx, req.ID); err != nil {
		return nil, grpcError(err)
	}
	return &catalogrpc.Empty{}, nil
}

func (h *GRPCHandler) ListItems(ctx context.Context, req *catalogrpc.ListItemsRequest) (*catalogrpc.ListItemsResponse, error) {
	items, err := h.items.List(ctx, domain.ItemFilter{
		CategoryID: req.CategoryID,
		Page:       int(req.Page),
		PageSize:   int(req.PageSize),
	})
	if err != nil {
		return nil, grpcError(err)
	}

	resp := &catalogrpc.ListItemsResponse{Items: make([]*catalogrpc.Item, 0, len(items))}
	for _, i := range items {
		resp.Items = append(resp.Items, toRPCItem(i))
	}
	return resp, nil
}

func (h *GRPCHandler) CreateItem(ctx context.Context, req *catalogrpc.CreateItemRequest) (*catalogrpc.ItemResponse, error) {
	created, err := h.items.Create(ctx, domain.Item{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return nil, grpcError(err)
	}
	return &catalogrpc.ItemResponse{Item: toRPCItem(*created)}, nil
}

func (h *GRPCHandler) UpdateItem(ctx context.Context, req *catalogrpc.UpdateItemRequest) (*catalogrpc.Empty, error) {
	if req.Item == nil {
		return nil, status.Error(codes.InvalidArgument, "item is required")
	}

	i := req.Item
	err := h.items.Update(ctx, domain.Item{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Price:       i.Price,
		CategoryID:  i.CategoryID,
	})
	if err != nil {
		return nil, grpcError(err)
	}
	return &catalogrpc.Empty{}, nil
}

func (h *GRPCHandler) DeleteItem(ctx context.Context, req *catalogrpc.DeleteRequest) (*catalogrpc.Empty, error) {
	if err := h.items.Delete(ctx, req.ID); err != nil {
		return nil, grpcError(err)
	}
	return &catalogrpc.Empty{}, nil
}

func grpcError(err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, domain.ErrCategoryNotFound):
		return status.Error(codes.NotFound, domain.ErrCategoryNotFound.Error())
	case errors.Is(err, domain.ErrItemNotFound):
		return status.Error(codes.NotFound, domain.ErrItemNotFound.Error())
	case errors.Is(err, domain.ErrUnknownCategory):
		return status.Error(codes.FailedPrecondition, domain.ErrUnknownCategory.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request cancelled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}

	log.Printf("grpc: %v", err)
	return status.Error(codes.Internal, "internal error")
}

func toRPCCategory(c domain.Category) *catalogrpc.Category {
	out := &catalogrpc.Category{ID: c.ID, Name: c.Name, Description: c.Description}
	for _, i := range c.Items {
		out.Items = append(out.Items, toRPCItem(i))
	}
	return out
}

func toRPCItem(i domain.Item) *catalogrpc.Item {
	return &catalogrpc.Item{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Price:       i.Price,
		CategoryID:  i.CategoryID,
	}
}
