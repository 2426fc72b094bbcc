package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/internal/logging"
	"github.com/luizchimenes/debugae/internal/pipeline/core"
	"github.com/luizchimenes/debugae/internal/source"
	"github.com/luizchimenes/debugae/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	source.Static
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingSource) Candidates(ctx context.Context, d models.Draft) ([]models.Defect, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return c.Static.Candidates(ctx, d)
}

func candidates() source.Static {
	return source.Static{
		{ID: "1", ProjectID: "p1", Summary: "Erro ao salvar relatório", Description: "botão salvar retorna 500", Status: models.StatusOpen},
		{ID: "2", ProjectID: "p1", Summary: "Erro ao salvar relatório", Description: "botão salvar retorna 500", Status: models.StatusResolved},
		{ID: "3", ProjectID: "p2", Summary: "Erro ao salvar relatórios | mensal", Description: "outro texto", Status: models.StatusResolved},
		{ID: "4", ProjectID: "p1", Summary: "Upload de anexo falha", Description: "arquivo grande", Status: models.StatusOpen},
	}
}

func TestChecker_Check(t *testing.T) {
	src := &countingSource{Static: candidates()}
	checker := NewChecker(config.Default(), src, logging.Nop())

	draft := models.Draft{
		Summary:     "Erro ao salvar relatório",
		Description: "botão salvar retorna 500",
		ProjectID:   "p1",
	}

	result, err := checker.Check(context.Background(), draft)
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, 4, result.CandidateCount)
	assert.True(t, result.Blocked)
	assert.Equal(t, []string{"1", "3"}, ids(result.Similar))
	assert.Equal(t, []string{"1"}, ids(result.Duplicates))

	assert.Contains(t, result.Report, "## Possible duplicate defects")
	assert.Contains(t, result.Report, "| 1 | p1 | ABERTO | Erro ao salvar relatório | duplicate |")
	assert.Contains(t, result.Report, `relatórios \| mensal`)
	assert.NotContains(t, result.Report, "Upload")
}

func TestChecker_BlankDraft(t *testing.T) {
	src := &countingSource{Static: candidates()}
	checker := NewChecker(config.Default(), src, nil)

	result, err := checker.Check(context.Background(), models.Draft{Summary: " ", ProjectID: "p1"})
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Equal(t, "blank draft", result.SkipReason)
	assert.False(t, result.Blocked)
	assert.NotNil(t, result.Similar)
	assert.Empty(t, result.Similar)
	assert.Equal(t, 0, src.calls)
}

func TestChecker_NoMatches(t *testing.T) {
	checker := NewChecker(config.Default(), candidates(), nil)

	result, err := checker.Check(context.Background(), models.Draft{Summary: "Tela de login lenta", Description: "demora", ProjectID: "p9"})
	require.NoError(t, err)

	assert.False(t, result.Blocked)
	assert.Empty(t, result.Similar)
	assert.Empty(t, result.Report)
}

func TestChecker_SourceError(t *testing.T) {
	src := &countingSource{err: errors.New("backend down")}
	checker := NewChecker(config.Default(), src, nil)

	_, err := checker.Check(context.Background(), models.Draft{Summary: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step candidates failed")
	assert.Contains(t, err.Error(), "backend down")
}

func TestChecker_PipelineConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Pipeline.Steps = []string{"candidates", "similarity"}

	checker := NewChecker(cfg, candidates(), nil)
	assert.Equal(t, []string{"candidates", "similarity"}, checker.Steps())

	result, err := checker.Check(context.Background(), models.Draft{Summary: "Erro ao salvar relatório", ProjectID: "p1"})
	require.NoError(t, err)
	assert.True(t, result.Blocked)
	assert.Empty(t, result.Report)

	cfg.Pipeline.Steps = []string{"draft_gate", "notify"}
	checker = NewChecker(cfg, candidates(), nil)
	assert.Equal(t, []string{"draft_gate", "candidates", "similarity", "report"}, checker.Steps())
}

func TestChecker_Concurrent(t *testing.T) {
	src := &countingSource{Static: candidates()}
	checker := NewChecker(config.Default(), src, nil)
	draft := models.Draft{Summary: "Erro ao salvar relatório", ProjectID: "p1"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := checker.Check(context.Background(), draft)
			assert.NoError(t, err)
			assert.Len(t, result.Similar, 2)
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, src.calls)
}

func TestBuilder_UnknownStep(t *testing.T) {
	cfg := config.Default()
	cfg.Pipeline.Steps = []string{"report", "bogus"}

	_, err := NewBuilder(cfg, candidates(), nil, logging.Nop()).BuildFromConfig()
	assert.True(t, err != nil && strings.Contains(err.Error(), "bogus"))
}

func ids(defects []models.Defect) []string {
	out := make([]string, len(defects))
	for i, d := range defects {
		out[i] = d.ID
	}
	return out
}

func TestFprintResult(t *testing.T) {
	checker := NewChecker(config.Default(), candidates(), nil)

	result, err := checker.Check(context.Background(), models.Draft{Summary: "Erro ao salvar relatório", ProjectID: "p1"})
	require.NoError(t, err)

	var b strings.Builder
	FprintResult(&b, result)
	out := b.String()
	assert.Contains(t, out, "Project: p1")
	assert.Contains(t, out, "Candidates checked: 4")
	assert.Contains(t, out, "Similar: 2")
	assert.Contains(t, out, "| 3 | p2 | RESOLVIDO |")

	b.Reset()
	FprintResult(&b, &core.CheckResult{Skipped: true, SkipReason: "blank draft"})
	assert.Contains(t, b.String(), "Skipped: blank draft")
}
