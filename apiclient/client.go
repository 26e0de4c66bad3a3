// Package apiclient is the typed HTTP client the frontend uses to reach the
// carteira API, plus a small query cache on top of it.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/go-carteira/internal/models"
)

// Error is a non-2xx API response.
type Error struct {
	Status int
	Code   string
	Detail map[string]string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Code)
}

// Client calls the JSON API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API rooted at baseURL. A nil hc uses a client
// with a 10 second timeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *Client) ListClients(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	err := c.do(ctx, http.MethodGet, "/clientes", nil, &out)
	return out, err
}

func (c *Client) CreateClient(ctx context.Context, in models.ClientInput) (*models.Client, error) {
	var out models.Client
	if err := c.do(ctx, http.MethodPost, "/clientes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateClient(ctx context.Context, id uint, in models.ClientInput) (*models.Client, error) {
	var out models.Client
	if err := c.do(ctx, http.MethodPut, "/clientes/"+idPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteClient(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, "/clientes/"+idPath(id), nil, nil)
}

func (c *Client) ListClientAssets(ctx context.Context, id uint) ([]models.Asset, error) {
	var out []models.Asset
	err := c.do(ctx, http.MethodGet, "/clientes/"+idPath(id)+"/ativos", nil, &out)
	return out, err
}

func (c *Client) ListAssets(ctx context.Context) ([]models.Asset, error) {
	var out []models.Asset
	err := c.do(ctx, http.MethodGet, "/ativos", nil, &out)
	return out, err
}

func (c *Client) CreateAsset(ctx context.Context, in models.AssetInput) (*models.Asset, error) {
	var out models.Asset
	if err := c.do(ctx, http.MethodPost, "/ativos", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAsset(ctx context.Context, id uint, in models.AssetInput) (*models.Asset, error) {
	var out models.Asset
	if err := c.do(ctx, http.MethodPut, "/ativos/"+idPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAsset(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, "/ativos/"+idPath(id), nil, nil)
}

// Health reports whether the API answered /healthz with 200.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func idPath(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var payload struct {
			Error  string            `json:"error"`
			Detail map[string]string `json:"detail"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			apiErr.Code = payload.Error
			apiErr.Detail = payload.Detail
		}
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
