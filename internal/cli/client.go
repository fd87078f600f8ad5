// Package cli holds the HTTP client behind the coinctl tool.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coinbot/internal/economy"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Top(ctx context.Context, limit int) ([]economy.LeaderboardRow, error) {
	var out struct {
		Rows []economy.LeaderboardRow `json:"rows"`
	}
	path := "/v1/top"
	if limit > 0 {
		path = fmt.Sprintf("/v1/top?limit=%d", limit)
	}
	err := c.jsonRequest(ctx, http.MethodGet, path, nil, &out)
	return out.Rows, err
}

func (c *Client) Instruments(ctx context.Context) ([]economy.Instrument, error) {
	var out struct {
		Instruments []economy.Instrument `json:"instruments"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/instruments", nil, &out)
	return out.Instruments, err
}

func (c *Client) Instrument(ctx context.Context, symbol string) (economy.Instrument, error) {
	var out economy.Instrument
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/instruments/"+url.PathEscape(symbol), nil, &out)
	return out, err
}

func (c *Client) History(ctx context.Context, symbol string, limit int) (economy.HistoryPage, error) {
	var out economy.HistoryPage
	path := "/v1/instruments/" + url.PathEscape(symbol) + "/history"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	err := c.jsonRequest(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) Account(ctx context.Context, id int64) (economy.Account, error) {
	var out economy.Account
	err := c.jsonRequest(ctx, http.MethodGet, fmt.Sprintf("/v1/accounts/%d", id), nil, &out)
	return out, err
}

func (c *Client) Portfolio(ctx context.Context, id int64) (economy.PortfolioView, error) {
	var out economy.PortfolioView
	err := c.jsonRequest(ctx, http.MethodGet, fmt.Sprintf("/v1/accounts/%d/portfolio", id), nil, &out)
	return out, err
}

func (c *Client) ReloadAdmins(ctx context.Context) (int, error) {
	var out struct {
		OK    bool `json:"ok"`
		Count int  `json:"count"`
	}
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/admin/reload-admins", nil, &out)
	return out.Count, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
