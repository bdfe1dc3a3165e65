package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rl1809/catalog/internal/port"
)

type RouterOptions struct {
	BasePath       string
	AllowedOrigins []string
	Idempotency    port.IdempotencyStore // nil disables Idempotency-Key handling
}

func NewRouter(h *HTTPHandler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(), cors.New(corsConfig(opts.AllowedOrigins)))

	r.GET("/health", h.HealthCheck)

	api := r.Group(opts.BasePath)
	idempotent := Idempotency(opts.Idempotency)
	{
		api.GET("/categories", h.ListCategories)
		api.POST("/categories", idempotent, h.CreateCategory)
		api.PUT("/categories/:id", h.UpdateCategory)
		api.DELETE("/categories/:id", h.DeleteCategory)
		api.GET("/categories/:id/items", h.ListCategoryItems)

		api.GET("/items", h.ListItems)
		api.POST("/items", idempotent, h.CreateItem)
		api.PUT("/items/:id", h.UpdateItem)
		api.DELETE("/items/:id", h.DeleteItem)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader, IdempotencyKeyHeader},
		ExposeHeaders: []string{"Location", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
