package vectordb

import (
	"testing"

	"github.com/luizchimenes/debugae/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHostPort(t *testing.T) {
	tests := []struct {
		url  string
		host string
		port int
	}{
		{"http://localhost:6334", "localhost", 6334},
		{"https://abc.cloud.qdrant.io:6333/", "abc.cloud.qdrant.io", 6333},
		{"qdrant", "qdrant", 6334},
		{"qdrant:notaport", "qdrant", 6334},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			host, port := parseHostPort(tt.url)
			assert.Equal(t, tt.host, host)
			assert.Equal(t, tt.port, port)
		})
	}
}

func TestDefectPayloadRoundTrip(t *testing.T) {
	d := &models.Defect{
		ID:          "42",
		ProjectID:   "p1",
		Summary:     "Erro ao salvar",
		Description: "O botão não responde",
		Status:      models.StatusInProgress,
	}

	point := defectToPoint(d, []float32{0.1, 0.2})
	assert.Equal(t, d.UUID(), point.Id.GetUuid())
	assert.Equal(t, d.TextHash(), point.Payload[fieldTextHash].GetStringValue())

	assert.Equal(t, *d, payloadToDefect(point.Payload))
}

func TestProjectFilter(t *testing.T) {
	assert.Nil(t, ProjectFilter(""))

	f := ProjectFilter("p1")
	require.NotNil(t, f)
	require.Len(t, f.Must, 1)
	match := f.Must[0].GetField()
	require.NotNil(t, match)
	assert.Equal(t, fieldProjectID, match.Key)
	assert.Equal(t, "p1", match.Match.GetKeyword())
}
