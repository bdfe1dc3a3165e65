package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdempotencyStore struct {
	mu       sync.Mutex
	keys     map[string]bool
	released []string
	err      error
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{keys: make(map[string]bool)}
}

func (f *fakeIdempotencyStore) SetIdempotency(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.keys[key] {
		return false, nil
	}
	f.keys[key] = true
	return true, nil
}

func (f *fakeIdempotencyStore) ReleaseIdempotency(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, key)
	f.released = append(f.released, key)
	return nil
}

func TestRequestID_Generated(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/api/categories", nil, nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	other := s.do(http.MethodGet, "/api/categories", nil, nil)
	assert.NotEqual(t, w.Header().Get(RequestIDHeader), other.Header().Get(RequestIDHeader))
}

func TestRequestID_Echoed(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/api/categories", nil, map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestIdempotency_RejectsReplay(t *testing.T) {
	store := newFakeIdempotencyStore()
	s := newTestServer(t, store)
	headers := map[string]string{IdempotencyKeyHeader: "key-1"}

	w := s.do(http.MethodPost, "/api/categories", map[string]any{"name": "Books"}, headers)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodPost, "/api/categories", map[string]any{"name": "Books"}, headers)
	assert.Equal(t, http.StatusConflict, w.Code)

	// the same key on another route is a different request
	w = s.do(http.MethodPost, "/api/items", map[string]any{"name": "Dune", "price": 1, "categoryId": 1}, headers)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestIdempotency_ReleasesKeyOnFailure(t *testing.T) {
	store := newFakeIdempotencyStore()
	s := newTestServer(t, store)
	headers := map[string]string{IdempotencyKeyHeader: "key-2"}

	w := s.do(http.MethodPost, "/api/items", map[string]any{"name": "Orphan", "price": 1, "categoryId": 42}, headers)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"POST:/api/items:key-2"}, store.released)

	s.createCategory("Books")
	w = s.do(http.MethodPost, "/api/items", map[string]any{"name": "Dune", "price": 1, "categoryId": 1}, headers)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestIdempotency_ReleasesKeyOnPanic(t *testing.T) {
	store := newFakeIdempotencyStore()
	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/boom", Idempotency(store), func(c *gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodPost, "/boom", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-4")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, []string{"POST:/boom:key-4"}, store.released)
	assert.Empty(t, store.keys)
}

func TestIdempotency_WithoutHeader(t *testing.T) {
	store := newFakeIdempotencyStore()
	s := newTestServer(t, store)

	for i := 0; i < 2; i++ {
		w := s.do(http.MethodPost, "/api/categories", map[string]any{"name": "Books"}, nil)
		assert.Equal(t, http.StatusCreated, w.Code)
	}
	assert.Empty(t, store.keys)
}

func TestIdempotency_StoreFailure(t *testing.T) {
	store := newFakeIdempotencyStore()
	store.err = errors.New("redis down")
	s := newTestServer(t, store)

	w := s.do(http.MethodPost, "/api/categories", map[string]any{"name": "Books"}, map[string]string{IdempotencyKeyHeader: "key-3"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = s.do(http.MethodGet, "/api/categories", nil, nil)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodOptions, "/api/categories", nil, map[string]string{
		"Origin":                        "http://example.com",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
