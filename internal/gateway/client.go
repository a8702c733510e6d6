// Package gateway is the HTTP client for the inventory backend's read API.
//
// Every method returns the decoded collection, or an empty collection plus
// an error when the backend is unreachable or answers non-2xx. Callers
// render the empty state and surface the error as a notice; nothing here
// retries automatically.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/wareroom/stockview/internal/metrics"
)

// StatusError reports a non-success backend response.
type StatusError struct {
	Resource string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s: unexpected status %d", e.Resource, e.Code)
}

// Client talks to the inventory backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL. The timeout bounds
// each individual request, including body read.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ItemsByAdmin fetches all items owned by the administrator.
func (c *Client) ItemsByAdmin(ctx context.Context, adminID string) ([]Item, error) {
	var items []Item
	err := c.getJSON(ctx, "items", "/api/items/admin/"+url.PathEscape(adminID), &items)
	return items, err
}

// SearchItems fetches the administrator's items matching a text query.
func (c *Client) SearchItems(ctx context.Context, adminID, query string) ([]Item, error) {
	var items []Item
	path := "/api/items/search/" + url.PathEscape(adminID) + "?q=" + url.QueryEscape(query)
	err := c.getJSON(ctx, "items_search", path, &items)
	return items, err
}

// Imports fetches the administrator's import records.
func (c *Client) Imports(ctx context.Context, adminID string) ([]ImportRecord, error) {
	var records []ImportRecord
	err := c.getJSON(ctx, "imports", "/api/admins/"+url.PathEscape(adminID)+"/imports", &records)
	return records, err
}

// Exports fetches the administrator's export records.
func (c *Client) Exports(ctx context.Context, adminID string) ([]ExportRecord, error) {
	var records []ExportRecord
	err := c.getJSON(ctx, "exports", "/api/admins/"+url.PathEscape(adminID)+"/exports", &records)
	return records, err
}

// getJSON performs a GET and decodes the JSON response into v. The chi
// request ID is propagated as X-Request-ID so backend logs correlate with
// ours; requests outside an HTTP flow get a fresh one.
func (c *Client) getJSON(ctx context.Context, resource, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("backend %s: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequests.WithLabelValues(resource, "transport").Inc()
		return fmt.Errorf("backend %s: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.BackendRequests.WithLabelValues(resource, strconv.Itoa(resp.StatusCode)).Inc()
		return &StatusError{Resource: resource, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		metrics.BackendRequests.WithLabelValues(resource, "decode").Inc()
		return fmt.Errorf("backend %s: decode response: %w", resource, err)
	}
	metrics.BackendRequests.WithLabelValues(resource, "ok").Inc()
	return nil
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
