package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/luizchimenes/debugae/pkg/models"
)

// Issue represents a GitHub issue from the API
type Issue struct {
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	State       string    `json:"state"`
	StateReason string    `json:"state_reason"`
	PullRequest *struct{} `json:"pull_request,omitempty"`
}

// ToDefect converts an API issue into a defect of project "org/repo".
// Open issues are ABERTO, issues closed as completed are RESOLVIDO and
// anything else closed is FECHADO.
func (i *Issue) ToDefect(org, repo string) models.Defect {
	status := models.StatusOpen
	if i.State == "closed" {
		status = models.StatusClosed
		if i.StateReason == "completed" {
			status = models.StatusResolved
		}
	}

	return models.Defect{
		ID:          strconv.Itoa(i.Number),
		ProjectID:   org + "/" + repo,
		Summary:     i.Title,
		Description: i.Body,
		Status:      status,
	}
}

// ListOptions configures issue listing
type ListOptions struct {
	State   string // "open", "closed", "all"
	PerPage int
	Page    int
}

// ListIssues fetches one page of issues from a repository, pull requests excluded.
// The second return value is the raw page size, used to detect the last page.
func (c *Client) ListIssues(ctx context.Context, org, repo string, opts ListOptions) ([]models.Defect, int, error) {
	if opts.PerPage == 0 {
		opts.PerPage = 100
	}
	if opts.State == "" {
		opts.State = "all"
	}
	if opts.Page == 0 {
		opts.Page = 1
	}

	params := url.Values{}
	params.Set("state", opts.State)
	params.Set("per_page", strconv.Itoa(opts.PerPage))
	params.Set("page", strconv.Itoa(opts.Page))
	params.Set("sort", "updated")
	params.Set("direction", "desc")

	endpoint := fmt.Sprintf("repos/%s/%s/issues?%s", org, repo, params.Encode())

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	var apiIssues []Issue
	if err := c.rest.Get(endpoint, &apiIssues); err != nil {
		return nil, 0, fmt.Errorf("failed to list issues: %w", err)
	}

	defects := make([]models.Defect, 0, len(apiIssues))
	for _, ai := range apiIssues {
		// The issues endpoint also returns pull requests
		if ai.PullRequest != nil {
			continue
		}
		defects = append(defects, ai.ToDefect(org, repo))
	}

	return defects, len(apiIssues), nil
}

// ListAllIssues fetches all issues using pagination
func (c *Client) ListAllIssues(ctx context.Context, org, repo, state string, perPage int) ([]models.Defect, error) {
	if perPage <= 0 {
		perPage = 100
	}

	var all []models.Defect
	for page := 1; ; page++ {
		defects, raw, err := c.ListIssues(ctx, org, repo, ListOptions{
			State:   state,
			PerPage: perPage,
			Page:    page,
		})
		if err != nil {
			return nil, err
		}

		all = append(all, defects...)

		if raw < perPage {
			break
		}
	}

	return all, nil
}
