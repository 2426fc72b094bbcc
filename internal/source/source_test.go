package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/luizchimenes/debugae/internal/backend"
	"github.com/luizchimenes/debugae/internal/config"
	"github.com/luizchimenes/debugae/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileSource_YAML(t *testing.T) {
	path := writeFile(t, "defects.yaml", `
- id: "1"
  project_id: p1
  summary: Login falha
  description: erro 500
  status: aberto
- id: "2"
  project_id: p2
  summary: Relatório vazio
  status: Em andamento
`)

	defects, err := NewFileSource(path).Candidates(context.Background(), models.Draft{})
	require.NoError(t, err)
	require.Len(t, defects, 2)

	assert.Equal(t, models.Defect{ID: "1", ProjectID: "p1", Summary: "Login falha", Description: "erro 500", Status: models.StatusOpen}, defects[0])
	assert.Equal(t, models.StatusInProgress, defects[1].Status)
}

func TestFileSource_JSON(t *testing.T) {
	path := writeFile(t, "defects.JSON", `[
		{"id": "9", "projectId": "p1", "summary": "Crash", "description": "", "status": "RESOLVIDO"}
	]`)

	defects, err := LoadDefects(path)
	require.NoError(t, err)
	require.Len(t, defects, 1)
	assert.Equal(t, "p1", defects[0].ProjectID)
	assert.Equal(t, models.StatusResolved, defects[0].Status)
}

func TestFileSource_Errors(t *testing.T) {
	_, err := LoadDefects(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read")

	_, err = LoadDefects(writeFile(t, "bad.json", `{"id":`))
	assert.ErrorContains(t, err, "failed to parse")
}

func TestNew(t *testing.T) {
	cfg := config.Default()

	cfg.Source.Path = "defects.yaml"
	src, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, src)

	cfg.Source.Type = config.SourceBackend
	cfg.Backend.URL = "http://tracker.local"
	src, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &backend.Client{}, src)

	cfg.Source.Type = config.SourceSemantic
	_, err = New(cfg)
	assert.True(t, errors.Is(err, ErrUnknownSource))
}

func TestStatic(t *testing.T) {
	pool := Static{{ID: "1"}, {ID: "2"}}

	got, err := pool.Candidates(context.Background(), models.Draft{})
	require.NoError(t, err)
	got[0].ID = "changed"

	assert.Equal(t, "1", pool[0].ID)
	assert.NoError(t, pool.Close())
}
