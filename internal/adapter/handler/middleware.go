package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rl1809/catalog/internal/port"
)

const (
	RequestIDHeader      = "X-Request-ID"
	IdempotencyKeyHeader = "Idempotency-Key"

	requestIDKey = "request_id"
)

// RequestID tags every request with an ID, reusing the caller's when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s %d %s request_id=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), requestID(c))
	}
}

// Idempotency rejects a replayed Idempotency-Key with 409. Requests without
// the header pass through, as do all requests when store is nil. Keys of
// requests that end in an error or a panic are released so the client may
// retry.
func Idempotency(store port.IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if store == nil || key == "" {
			c.Next()
			return
		}
		key = c.Request.Method + ":" + c.FullPath() + ":" + key

		ok, err := store.SetIdempotency(c.Request.Context(), key)
		if err != nil {
			log.Printf("idempotency check failed request_id=%s: %v", requestID(c), err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusConflict, ErrorResponse{Error: "duplicate request"})
			return
		}

		release := func() {
			if err := store.ReleaseIdempotency(context.WithoutCancel(c.Request.Context()), key); err != nil {
				log.Printf("release idempotency key failed request_id=%s: %v", requestID(c), err)
			}
		}
		defer func() {
			if p := recover(); p != nil {
				release()
				panic(p)
			}
		}()

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			release()
		}
	}
}
