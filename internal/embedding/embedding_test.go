package embedding

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/luizchimenes/debugae/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	vectors [][]float32
	err     error
	calls   int
	closed  bool
}

func (s *stubProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	return embedOne(ctx, s, text)
}

func (s *stubProvider) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[:len(texts)], nil
}

func (s *stubProvider) Close() error {
	s.closed = true
	return nil
}

func TestPrepareDefectText(t *testing.T) {
	got := PrepareDefectText("  Erro ao salvar ", "linha 1\n\n   linha 2  \n")
	assert.Equal(t, "Summary: Erro ao salvar\n\nDescription: linha 1\nlinha 2", got)

	long := PrepareDefectText("ç", strings.Repeat("ã", 7000))
	assert.True(t, utf8.ValidString(long))
	assert.Equal(t, maxTextRunes+3, utf8.RuneCountInString(long))
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "abc", TruncateText("abc", 3))
	assert.Equal(t, "ab...", TruncateText("abc", 2))
	assert.Equal(t, "çã...", TruncateText("çãõ", 2))
}

func TestCheckBatch(t *testing.T) {
	assert.ErrorIs(t, checkBatch(nil, 1), ErrEmptyEmbedding)
	assert.Error(t, checkBatch([][]float32{{1}}, 2))
	assert.NoError(t, checkBatch([][]float32{{1}, {2}}, 2))
}

func TestFallbackProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("primary succeeds", func(t *testing.T) {
		primary := &stubProvider{vectors: [][]float32{{1, 2}}}
		fallback := &stubProvider{vectors: [][]float32{{9, 9}}}
		p := NewFallback(primary, fallback, logging.Nop())

		v, err := p.Embed(ctx, "texto")
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2}, v)
		assert.Equal(t, 0, fallback.calls)
	})

	t.Run("falls back on error", func(t *testing.T) {
		primary := &stubProvider{err: errors.New("quota")}
		fallback := &stubProvider{vectors: [][]float32{{3}, {4}}}
		p := NewFallback(primary, fallback, nil)

		v, err := p.EmbedBatch(ctx, []string{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, [][]float32{{3}, {4}}, v)
	})

	t.Run("no fallback", func(t *testing.T) {
		primary := &stubProvider{err: errors.New("quota")}
		p := NewFallback(primary, nil, logging.Nop())

		_, err := p.Embed(ctx, "a")
		assert.ErrorContains(t, err, "no fallback")
	})

	t.Run("close closes both", func(t *testing.T) {
		primary := &stubProvider{}
		fallback := &stubProvider{}
		require.NoError(t, NewFallback(primary, fallback, nil).Close())
		assert.True(t, primary.closed)
		assert.True(t, fallback.closed)
	})
}
