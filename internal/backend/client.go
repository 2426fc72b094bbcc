// Package backend reads candidate defects from the tracker's REST API.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/pkg/models"
	"github.com/valyala/fasthttp"
)

// Bug is a defect as serialized by the tracker backend
type Bug struct {
	ID          ID     `json:"id"`
	ProjectID   ID     `json:"projectId"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ID accepts both numeric and string identifiers
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// ToDefect converts a backend bug into the matcher model
func (b Bug) ToDefect() models.Defect {
	return models.Defect{
		ID:          string(b.ID),
		ProjectID:   string(b.ProjectID),
		Summary:     b.Summary,
		Description: b.Description,
		Status:      models.NormalizeStatus(b.Status),
	}
}

// Client is a candidate source backed by the tracker REST API
type Client struct {
	http    *fasthttp.Client
	url     string
	token   string
	timeout time.Duration
}

// NewClient creates a backend client from config
func NewClient(cfg *config.BackendConfig) *Client {
	return NewClientWith(&fasthttp.Client{Name: "debugae"}, cfg)
}

// NewClientWith creates a backend client on top of an existing fasthttp client
func NewClientWith(hc *fasthttp.Client, cfg *config.BackendConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	bugsPath := cfg.BugsPath
	if bugsPath == "" {
		bugsPath = "/bugs"
	}
	if !strings.HasPrefix(bugsPath, "/") {
		bugsPath = "/" + bugsPath
	}

	return &Client{
		http:    hc,
		url:     strings.TrimSuffix(cfg.URL, "/") + bugsPath,
		token:   cfg.Token,
		timeout: timeout,
	}
}

// Candidates fetches every bug known to the backend.
// The draft is not used: defects of other projects are part of the pool.
func (c *Client) Candidates(ctx context.Context, _ models.Draft) ([]models.Defect, error) {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		return nil, fmt.Errorf("failed to fetch bugs: %w", err)
	}

	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		return nil, fmt.Errorf("failed to fetch bugs: backend returned status %d", status)
	}

	var bugs []Bug
	if err := json.Unmarshal(resp.Body(), &bugs); err != nil {
		return nil, fmt.Errorf("failed to decode bugs: %w", err)
	}

	defects := make([]models.Defect, len(bugs))
	for i, b := range bugs {
		defects[i] = b.ToDefect()
	}
	return defects, nil
}

// Close releases idle connections
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
