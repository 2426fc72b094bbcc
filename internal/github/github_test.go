package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeREST serves canned JSON pages keyed by "org/repo?page"
type fakeREST struct {
	pages map[string]string
	paths []string
}

func (f *fakeREST) Get(path string, response interface{}) error {
	f.paths = append(f.paths, path)

	u, err := url.Parse(path)
	if err != nil {
		return err
	}
	repo := strings.TrimSuffix(strings.TrimPrefix(u.Path, "repos/"), "/issues")
	key := fmt.Sprintf("%s?%s", repo, u.Query().Get("page"))

	body, ok := f.pages[key]
	if !ok {
		return errors.New("HTTP 404: Not Found")
	}
	return json.Unmarshal([]byte(body), response)
}

func TestIssueToDefect(t *testing.T) {
	tests := []struct {
		name   string
		issue  Issue
		status models.Status
	}{
		{"open", Issue{State: "open"}, models.StatusOpen},
		{"closed completed", Issue{State: "closed", StateReason: "completed"}, models.StatusResolved},
		{"closed not planned", Issue{State: "closed", StateReason: "not_planned"}, models.StatusClosed},
		{"closed without reason", Issue{State: "closed"}, models.StatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.issue.Number = 7
			tt.issue.Title = "Crash on save"
			tt.issue.Body = "stack trace"

			d := tt.issue.ToDefect("acme", "tracker")
			assert.Equal(t, "7", d.ID)
			assert.Equal(t, "acme/tracker", d.ProjectID)
			assert.Equal(t, "Crash on save", d.Summary)
			assert.Equal(t, "stack trace", d.Description)
			assert.Equal(t, tt.status, d.Status)
		})
	}
}

func TestParseRepo(t *testing.T) {
	org, repo, err := ParseRepo("acme/tracker")
	require.NoError(t, err)
	assert.Equal(t, "acme", org)
	assert.Equal(t, "tracker", repo)

	for _, bad := range []string{"acme", "acme/", "/tracker", "a/b/c"} {
		_, _, err := ParseRepo(bad)
		assert.Error(t, err, bad)
	}
}

func TestSource_Candidates(t *testing.T) {
	rest := &fakeREST{pages: map[string]string{
		"acme/web?1": `[
			{"number": 1, "title": "Login quebrado", "body": "erro", "state": "open"},
			{"number": 2, "title": "PR", "state": "open", "pull_request": {}}
		]`,
		"acme/web?2": `[
			{"number": 3, "title": "Relatório vazio", "state": "closed", "state_reason": "completed"}
		]`,
		"acme/api?1": `[]`,
	}}

	src := NewSource(&Client{rest: rest}, &config.GitHubConfig{
		Repositories: []string{"acme/web", "acme/api"},
		State:        "all",
		PerPage:      2,
	})

	pool, err := src.Candidates(context.Background(), models.Draft{Summary: "x"})
	require.NoError(t, err)

	require.Len(t, pool, 2)
	assert.Equal(t, "1", pool[0].ID)
	assert.Equal(t, models.StatusOpen, pool[0].Status)
	assert.Equal(t, "3", pool[1].ID)
	assert.Equal(t, models.StatusResolved, pool[1].Status)

	require.NotEmpty(t, rest.paths)
	assert.Contains(t, rest.paths[0], "state=all")
	assert.Contains(t, rest.paths[0], "per_page=2")
	assert.NoError(t, src.Close())
}

func TestSource_CandidatesError(t *testing.T) {
	src := NewSource(&Client{rest: &fakeREST{}}, &config.GitHubConfig{
		Repositories: []string{"acme/missing"},
		PerPage:      100,
	})

	_, err := src.Candidates(context.Background(), models.Draft{})
	assert.ErrorContains(t, err, "acme/missing")
}
