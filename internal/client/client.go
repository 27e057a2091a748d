package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/nduyhai/nodestatus/internal/api"
	"github.com/nduyhai/nodestatus/internal/journal"
	"github.com/nduyhai/nodestatus/internal/node"
)

// Client talks to the /api/v1 endpoints of a running dashboard.
type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/api/v1").
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

func (c *Client) Close() error {
	return c.http.Close()
}

func (c *Client) Status(ctx context.Context) (*api.SnapshotResponse, error) {
	out := &api.SnapshotResponse{}
	if err := c.get(ctx, "/status", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Query(ctx context.Context, q node.Query) (*api.ResultResponse, error) {
	out := &api.ResultResponse{}
	path := "/status/" + q.Type.String() + "/" + q.Partition.String()
	if err := c.get(ctx, path, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Runs(ctx context.Context, limit int) ([]journal.Entry, error) {
	var out []journal.Entry
	params := map[string]string{}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	if err := c.get(ctx, "/runs", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(out).
		Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	if res.IsError() {
		return fmt.Errorf("GET %s: %d %s", path, res.StatusCode(), strings.TrimSpace(res.String()))
	}
	return nil
}
