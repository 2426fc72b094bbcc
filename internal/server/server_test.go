package server

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/pipeline"
	"github.com/luizchimenes/debugae/internal/similarity"
	"github.com/luizchimenes/debugae/internal/source"
	"github.com/luizchimenes/debugae/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

var pool = source.Static{
	{ID: "1", ProjectID: "p1", Summary: "Login falha ao enviar", Description: "erro 500", Status: models.StatusOpen},
	{ID: "2", ProjectID: "p1", Summary: "Login falhou ao enviar dados", Description: "outro", Status: models.StatusOpen},
	{ID: "3", ProjectID: "p1", Summary: "Login falha ao enviar", Description: "erro 500", Status: models.StatusResolved},
	{ID: "4", ProjectID: "p2", Summary: "Exportação lenta", Description: "gráfico", Status: models.StatusOpen},
}

func newTestServer(t *testing.T, withChecker bool) *fasthttp.Client {
	t.Helper()

	cfg := config.Default()
	var checker *pipeline.Checker
	if withChecker {
		checker = pipeline.NewChecker(cfg, pool, nil)
	}
	srv := New(&cfg.Server, similarity.NewFromConfig(&cfg.Matcher), checker, nil)

	ln := fasthttputil.NewInmemoryListener()
	go func() {
		_ = fasthttp.Serve(ln, srv.Handler)
	}()
	t.Cleanup(func() { ln.Close() })

	return &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) {
			return ln.Dial()
		},
	}
}

func do(t *testing.T, c *fasthttp.Client, method, path string, body interface{}) (int, []byte) {
	t.Helper()

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI("http://debugae.test" + path)
	req.Header.SetMethod(method)
	switch b := body.(type) {
	case nil:
	case string:
		req.SetBodyString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		req.SetBody(data)
	}

	require.NoError(t, c.Do(req, resp))
	return resp.StatusCode(), append([]byte(nil), resp.Body()...)
}

func matchIDs(t *testing.T, body []byte) []string {
	t.Helper()
	var resp MatchResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotNil(t, resp.Matches)
	out := make([]string, len(resp.Matches))
	for i, d := range resp.Matches {
		out[i] = d.ID
	}
	return out
}

func TestHealth(t *testing.T) {
	c := newTestServer(t, false)

	status, body := do(t, c, fasthttp.MethodGet, "/health", nil)
	assert.Equal(t, fasthttp.StatusOK, status)
	assert.Contains(t, string(body), `"status":"ok"`)
}

func TestSimilarAndDuplicates(t *testing.T) {
	c := newTestServer(t, false)
	req := MatchRequest{
		Summary:    "Login falha ao enviar",
		ProjectID:  "p1",
		Candidates: pool,
	}

	status, body := do(t, c, fasthttp.MethodPost, "/api/bugs/similar", req)
	require.Equal(t, fasthttp.StatusOK, status)
	assert.Equal(t, []string{"1", "2"}, matchIDs(t, body))

	status, body = do(t, c, fasthttp.MethodPost, "/api/bugs/duplicates", req)
	require.Equal(t, fasthttp.StatusOK, status)
	assert.Equal(t, []string{"1"}, matchIDs(t, body))

	strict := 1.0
	req.Threshold = &strict
	req.Summary = "login falha ao enviar!"
	status, body = do(t, c, fasthttp.MethodPost, "/api/bugs/similar", req)
	require.Equal(t, fasthttp.StatusOK, status)
	assert.Empty(t, matchIDs(t, body))
}

func TestBlankDraftReturnsEmptyMatches(t *testing.T) {
	c := newTestServer(t, false)

	status, body := do(t, c, fasthttp.MethodPost, "/api/bugs/similar", MatchRequest{ProjectID: "p1", Candidates: pool})
	require.Equal(t, fasthttp.StatusOK, status)
	assert.Contains(t, string(body), `"matches":[]`)
}

func TestErrors(t *testing.T) {
	c := newTestServer(t, false)
	tooHigh := 1.5

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"wrong method", fasthttp.MethodGet, "/api/bugs/similar", nil, fasthttp.StatusMethodNotAllowed},
		{"post health", fasthttp.MethodPost, "/health", nil, fasthttp.StatusMethodNotAllowed},
		{"invalid json", fasthttp.MethodPost, "/api/bugs/duplicates", `{"summary":`, fasthttp.StatusBadRequest},
		{"threshold out of range", fasthttp.MethodPost, "/api/bugs/similar", MatchRequest{Summary: "x", Threshold: &tooHigh}, fasthttp.StatusBadRequest},
		{"unknown path", fasthttp.MethodGet, "/api/bugs", nil, fasthttp.StatusNotFound},
		{"check without source", fasthttp.MethodPost, "/api/bugs/check", CheckRequest{Summary: "x"}, fasthttp.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, c, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status)

			var errResp ErrorResponse
			require.NoError(t, json.Unmarshal(body, &errResp))
			assert.NotEmpty(t, errResp.Error)
		})
	}
}

func TestCheck(t *testing.T) {
	c := newTestServer(t, true)

	status, body := do(t, c, fasthttp.MethodPost, "/api/bugs/check", CheckRequest{
		Summary:   "Login falha ao enviar",
		ProjectID: "p1",
	})
	require.Equal(t, fasthttp.StatusOK, status)

	var result struct {
		CandidateCount int             `json:"candidate_count"`
		Similar        []models.Defect `json:"similar"`
		Duplicates     []models.Defect `json:"duplicates"`
		Blocked        bool            `json:"blocked"`
		Report         string          `json:"report"`
	}
	require.NoError(t, json.Unmarshal(body, &result))

	assert.Equal(t, 4, result.CandidateCount)
	assert.True(t, result.Blocked)
	assert.Len(t, result.Similar, 2)
	assert.Len(t, result.Duplicates, 1)
	assert.Contains(t, result.Report, "Possible duplicate defects")

	status, body = do(t, c, fasthttp.MethodPost, "/api/bugs/check", CheckRequest{ProjectID: "p1"})
	require.Equal(t, fasthttp.StatusOK, status)
	assert.Contains(t, string(body), `"skip_reason":"blank draft"`)
}
