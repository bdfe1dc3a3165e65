package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rl1809/catalog/internal/core/domain"
	"github.com/rl1809/catalog/internal/core/service"
	"github.com/rl1809/catalog/internal/port"
)

const healthCheckTimeout = 2 * time.Second

var errIDMismatch = errors.New("id in path does not match id in body")

type HTTPHandler struct {
	categories *service.CategoryService
	items      *service.ItemService
	health     port.HealthChecker
	basePath   string
}

func NewHTTPHandler(categories *service.CategoryService, items *service.ItemService, health port.HealthChecker, basePath string) *HTTPHandler {
	return &HTTPHandler{
		categories: categories,
		items:      items,
		health:     health,
		basePath:   basePath,
	}
}

func (h *HTTPHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryResponses(categories))
}

func (h *HTTPHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.categories.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/categories?id=%d", h.basePath, created.ID))
	c.JSON(http.StatusCreated, newCategoryResponse(*created))
}

func (h *HTTPHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.ID != id {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errIDMismatch.Error()})
		return
	}

	if err := h.categories.Update(c.Request.Context(), req.toDomain()); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) ListItems(c *gin.Context) {
	var query ListItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query parameters"})
		return
	}
	// gin binds a present but empty value to a pointer to zero
	if c.Query("categoryId") == "" {
		query.CategoryID = nil
	}
	h.listItems(c, query.toFilter())
}

// ListCategoryItems serves /categories/:id/items.
func (h *HTTPHandler) ListCategoryItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var query ListItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query parameters"})
		return
	}
	query.CategoryID = &id
	h.listItems(c, query.toFilter())
}

func (h *HTTPHandler) listItems(c *gin.Context, filter domain.ItemFilter) {
	items, err := h.items.List(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := newItemResponses(items)
	if resp == nil {
		resp = []ItemResponse{}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.items.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/items?categoryId=%d", h.basePath, created.CategoryID))
	c.JSON(http.StatusCreated, newItemResponse(*created))
}

func (h *HTTPHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.ID != id {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errIDMismatch.Error()})
		return
	}

	if err := h.items.Update(c.Request.Context(), req.toDomain()); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) DeleteItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		log.Printf("health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		message = verr.Error()
	case errors.Is(err, domain.ErrCategoryNotFound):
		status = http.StatusNotFound
		message = domain.ErrCategoryNotFound.Error()
	case errors.Is(err, domain.ErrItemNotFound):
		status = http.StatusNotFound
		message = domain.ErrItemNotFound.Error()
	case errors.Is(err, domain.ErrUnknownCategory):
		status = http.StatusUnprocessableEntity
		message = domain.ErrUnknownCategory.Error()
	case errors.Is(err, context.Canceled):
		// client went away; nobody reads the body
		status = 499
		message = "request cancelled"
	default:
		log.Printf("%s %s request_id=%s: %v", c.Request.Method, c.FullPath(), requestID(c), err)
	}

	c.JSON(status, ErrorResponse{Error: message})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}
