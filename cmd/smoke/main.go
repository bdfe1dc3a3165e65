package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const (
	defaultBaseURL = "http://localhost:8080/api"
	totalItems     = 15
	pageSize       = 10
)

type category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type client struct {
	baseURL string
	http    *http.Client
}

func main() {
	godotenv.Load()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}

	failed := 0
	check := func(ok bool, format string, args ...any) {
		if ok {
			fmt.Printf("PASS: "+format+"\n", args...)
		} else {
			failed++
			fmt.Printf("FAIL: "+format+"\n", args...)
		}
	}

	// Setup
	var books category
	status, err := c.send(http.MethodPost, "/categories", map[string]any{"name": "smoke-" + uuid.NewString()[:8]}, &books)
	if err != nil || status != http.StatusCreated {
		log.Fatalf("failed to create category: status=%d err=%v", status, err)
	}
	defer c.send(http.MethodDelete, fmt.Sprintf("/categories/%d", books.ID), nil, nil)

	// Create items concurrently
	var successCount atomic.Int32
	var failCount atomic.Int32
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalItems; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			body := map[string]any{"name": fmt.Sprintf("item-%d", n), "price": 1.25, "categoryId": books.ID}
			status, err := c.send(http.MethodPost, "/items", body, nil)
			if err == nil && status == http.StatusCreated {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	fmt.Println("========== SMOKE TEST RESULTS ==========")
	fmt.Printf("Base URL:         %s\n", c.baseURL)
	fmt.Printf("Category:         %d\n", books.ID)
	fmt.Printf("Items Created:    %d\n", successCount.Load())
	fmt.Printf("Failed:           %d\n", failCount.Load())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("========================================")

	check(successCount.Load() == totalItems, "%d items created", totalItems)

	// Pagination
	var page1, page2 []item
	c.send(http.MethodGet, fmt.Sprintf("/items?categoryId=%d&page=1&pageSize=%d", books.ID, pageSize), nil, &page1)
	c.send(http.MethodGet, fmt.Sprintf("/items?categoryId=%d&page=2&pageSize=%d", books.ID, pageSize), nil, &page2)
	check(len(page1) == pageSize, "page 1 has %d items (got %d)", pageSize, len(page1))
	check(len(page2) == totalItems-pageSize, "page 2 has %d items (got %d)", totalItems-pageSize, len(page2))

	// Update with mismatched id
	path := fmt.Sprintf("/categories/%d", books.ID)
	status, _ = c.send(http.MethodPut, path, map[string]any{"id": books.ID + 1, "name": "renamed"}, nil)
	check(status == http.StatusBadRequest, "mismatched update rejected (got %d)", status)

	status, _ = c.send(http.MethodPut, path, map[string]any{"id": books.ID, "name": "renamed"}, nil)
	check(status == http.StatusNoContent, "update accepted (got %d)", status)

	// Unknown category
	status, _ = c.send(http.MethodPost, "/items", map[string]any{"name": "orphan", "price": 1, "categoryId": int64(1) << 40}, nil)
	check(status == http.StatusUnprocessableEntity, "item for unknown category rejected (got %d)", status)

	// Cascade delete
	status, _ = c.send(http.MethodDelete, path, nil, nil)
	check(status == http.StatusNoContent, "category deleted (got %d)", status)

	var remaining []item
	c.send(http.MethodGet, fmt.Sprintf("/items?categoryId=%d", books.ID), nil, &remaining)
	check(len(remaining) == 0, "items removed with category (got %d)", len(remaining))

	status, _ = c.send(http.MethodDelete, path, nil, nil)
	check(status == http.StatusNoContent, "deleting again is a no-op (got %d)", status)

	if failed > 0 {
		os.Exit(1)
	}
}

// send issues one request and decodes a 2xx JSON body into out when out is non-nil.
func (c *client) send(method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusMultipleChoices {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}
