package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/luizchimenes/debugae/pkg/models"
	"gopkg.in/yaml.v3"
)

// FileSource reads candidate defects from a YAML or JSON file.
// The file is re-read on every call so edits are picked up.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Candidates loads the defect list
func (f *FileSource) Candidates(ctx context.Context, _ models.Draft) ([]models.Defect, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadDefects(f.path)
}

// Close is a no-op
func (f *FileSource) Close() error {
	return nil
}

// LoadDefects reads a defect list; ".json" files are decoded as JSON, anything else as YAML
func LoadDefects(path string) ([]models.Defect, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates file: %w", err)
	}

	var defects []models.Defect
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &defects)
	} else {
		err = yaml.Unmarshal(data, &defects)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse candidates file: %w", err)
	}

	for i := range defects {
		defects[i].Status = models.NormalizeStatus(string(defects[i].Status))
	}
	return defects, nil
}
