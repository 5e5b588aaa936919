package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const fundsPath = "/api/funds"

// List returns the funds matching q, filtered and sorted by the server.
func (c *Client) List(ctx context.Context, q ListQuery) ([]Fund, error) {
	start := time.Now()
	var funds []Fund
	err := c.do(ctx, http.MethodGet, fundsPath, q.Values(), nil, &funds)
	c.obs.observe("list", start, err)
	if err != nil {
		return nil, fmt.Errorf("list funds: %w", err)
	}
	return funds, nil
}

// Get returns one fund by id.
func (c *Client) Get(ctx context.Context, id string) (Fund, error) {
	start := time.Now()
	var f Fund
	err := c.do(ctx, http.MethodGet, fundPath(id), nil, nil, &f)
	c.obs.observe("get", start, err)
	if err != nil {
		return Fund{}, fmt.Errorf("get fund %s: %w", id, err)
	}
	return f, nil
}

// Update applies p to the fund and returns the stored result.
// An empty patch returns the current fund unchanged.
func (c *Client) Update(ctx context.Context, id string, p Patch) (Fund, error) {
	start := time.Now()
	var f Fund
	err := c.do(ctx, http.MethodPatch, fundPath(id), nil, p, &f)
	c.obs.observe("update", start, err)
	if err != nil {
		return Fund{}, fmt.Errorf("update fund %s: %w", id, err)
	}
	return f, nil
}

// Delete removes the fund.
func (c *Client) Delete(ctx context.Context, id string) error {
	start := time.Now()
	var resp deleteResponse
	err := c.do(ctx, http.MethodDelete, fundPath(id), nil, nil, &resp)
	if err == nil && !resp.Success {
		err = fmt.Errorf("server did not acknowledge delete")
	}
	c.obs.observe("delete", start, err)
	if err != nil {
		return fmt.Errorf("delete fund %s: %w", id, err)
	}
	return nil
}

// Health fetches the server health report. A degraded server (503) still
// yields a report rather than an error.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	start := time.Now()
	var h HealthStatus
	err := c.do(ctx, http.MethodGet, "/health", nil, nil, &h, http.StatusServiceUnavailable)
	c.obs.observe("health", start, err)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("health: %w", err)
	}
	return h, nil
}

func fundPath(id string) string {
	return fundsPath + "/" + url.PathEscape(id)
}
