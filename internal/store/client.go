// Package store talks to the REST document store that holds every
// collection of the shop (services, cart, favorites, users, orders,
// feedback). The store follows json-server conventions: collections live
// at /<name>, documents at /<name>/<id>, list endpoints accept field
// equality filters plus _page, _limit, _sort, _order, <field>_gte,
// <field>_lte, <field>_like and q, and report the unpaged size in
// X-Total-Count.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// TotalCountHeader carries the size of the filtered, unpaged result set.
const TotalCountHeader = "X-Total-Count"

// Client is a thin JSON client bound to one store base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for baseURL. A zero timeout leaves requests
// bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP lets callers supply their own *http.Client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

// BaseURL returns the store root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

func documentPath(collection, id string) string {
	return "/" + collection + "/" + url.PathEscape(id)
}

// List fetches a collection with the given query. total is X-Total-Count
// when the store sends a usable value and len(items) otherwise.
func List[T any](ctx context.Context, c *Client, collection string, query url.Values) ([]T, int, error) {
	var items []T
	hdr, err := c.doJSON(ctx, http.MethodGet, "/"+collection, query, nil, &items)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []T{}
	}
	total := len(items)
	if raw := hdr.Get(TotalCountHeader); raw != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 0 {
			total = n
		}
	}
	return items, total, nil
}

// Get fetches one document by id.
func Get[T any](ctx context.Context, c *Client, collection, id string) (T, error) {
	var out T
	_, err := c.doJSON(ctx, http.MethodGet, documentPath(collection, id), nil, nil, &out)
	return out, err
}

// Create POSTs body to the collection and decodes the stored document.
func Create[T any](ctx context.Context, c *Client, collection string, body any) (T, error) {
	var out T
	_, err := c.doJSON(ctx, http.MethodPost, "/"+collection, nil, body, &out)
	return out, err
}

// Replace PUTs the full document.
func Replace[T any](ctx context.Context, c *Client, collection, id string, body any) (T, error) {
	var out T
	_, err := c.doJSON(ctx, http.MethodPut, documentPath(collection, id), nil, body, &out)
	return out, err
}

// Patch merges the given fields into a document.
func Patch[T any](ctx context.Context, c *Client, collection, id string, fields any) (T, error) {
	var out T
	_, err := c.doJSON(ctx, http.MethodPatch, documentPath(collection, id), nil, fields, &out)
	return out, err
}

// Delete removes a document.
func Delete(ctx context.Context, c *Client, collection, id string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, documentPath(collection, id), nil, nil, nil)
	return err
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any) (http.Header, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("store: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("store: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("store: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Header, fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return resp.Header, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Header, nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.Header, fmt.Errorf("store: read %s %s: %w", method, path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return resp.Header, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.Header, fmt.Errorf("store: decode %s %s: %w", method, path, err)
	}
	return resp.Header, nil
}
