package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/feirafacil/catalogo-service/internal/model"
	"github.com/feirafacil/catalogo-service/internal/schema"
)

// DefaultTimeout bounds every request the cache issues. An expired
// request surfaces like any other network failure.
const DefaultTimeout = 10 * time.Second

// UI-facing failure messages for outcomes the server never described.
// Validation messages come verbatim from the schema or the server.
const (
	msgNetworkFailure = "Não foi possível contactar o servidor."
	msgServerFailure  = "O servidor rejeitou a operação."
)

// Cache mirrors the server's product collection for a UI. Writes are
// validated locally before any request is issued; every successful
// mutation re-fetches the collection so the cache tracks server truth
// instead of an optimistic local guess. Mutations return a success flag
// plus failure messages, never a panic or an error the UI must rethrow.
type Cache struct {
	baseURL    string
	httpClient *http.Client

	mu       sync.RWMutex
	products []model.Product
	loading  bool
	fresh    bool
}

// New creates a cache talking to the API at baseURL. A non-positive
// timeout falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Cache {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Cache{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Products returns a snapshot of the cached collection.
func (c *Cache) Products() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Loading reports whether a refresh is in flight.
func (c *Cache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Fresh reports whether at least one refresh has completed.
func (c *Cache) Fresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fresh
}

// Refresh re-fetches the full collection and replaces the cache. On any
// failure the previous cache is left untouched and the error returned.
func (c *Cache) Refresh(ctx context.Context) error {
	c.setLoading(true)
	defer c.setLoading(false)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/produtos", nil)
	if err != nil {
		return fmt.Errorf("failed to build refresh request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d fetching products", resp.StatusCode)
	}

	var products []model.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return fmt.Errorf("failed to decode products: %w", err)
	}

	c.mu.Lock()
	c.products = products
	c.fresh = true
	c.mu.Unlock()
	return nil
}

// Add creates a product. A local schema failure returns immediately
// with every violated rule and no request on the wire.
func (c *Cache) Add(ctx context.Context, in schema.ProductInput) (bool, []string) {
	if res := schema.Validate(in); !res.Valido {
		return false, res.Erros
	}
	return c.write(ctx, http.MethodPost, "/api/produtos", in, http.StatusCreated)
}

// Edit updates the product with the given id, with the same local
// pre-check as Add.
func (c *Cache) Edit(ctx context.Context, id int, in schema.ProductInput) (bool, []string) {
	if res := schema.Validate(in); !res.Valido {
		return false, res.Erros
	}
	return c.write(ctx, http.MethodPut, fmt.Sprintf("/api/produtos/%d", id), in, http.StatusOK)
}

// Remove deletes the product with the given id. There is no payload to
// validate, so the request goes straight out.
func (c *Cache) Remove(ctx context.Context, id int) (bool, []string) {
	return c.write(ctx, http.MethodDelete, fmt.Sprintf("/api/produtos/%d", id), nil, http.StatusNoContent)
}

// write issues one mutation and, when it succeeds, refreshes the cache.
// The server stays authoritative: a local pass does not guarantee a
// server pass, so its rejection list is surfaced as-is.
func (c *Cache) write(ctx context.Context, method, path string, payload interface{}, wantStatus int) (bool, []string) {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return false, []string{msgServerFailure}
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return false, []string{msgNetworkFailure}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, []string{msgNetworkFailure}
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return false, decodeFailure(resp)
	}

	// The refresh after a successful write observes that write on the
	// same store. If the refresh itself fails, the mutation still
	// happened; the stale cache catches up on the next refresh.
	if err := c.Refresh(ctx); err != nil {
		slog.Warn("cache refresh after write failed", slog.Any("err", err))
	}
	return true, nil
}

// decodeFailure extracts the server's message list from a non-success
// response. Validation envelopes keep their full ordered list; other
// bodies fall back to their single error message or a generic one.
func decodeFailure(resp *http.Response) []string {
	var envelope struct {
		Valido *bool    `json:"valido"`
		Erros  []string `json:"erros"`
		Error  string   `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		if len(envelope.Erros) > 0 {
			return envelope.Erros
		}
		if envelope.Error != "" {
			return []string{envelope.Error}
		}
	}
	return []string{msgServerFailure}
}

func (c *Cache) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}
