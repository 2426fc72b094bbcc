package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxTextRunes keeps a defect text around 1500 tokens
const maxTextRunes = 6000

// ErrEmptyEmbedding is returned when a provider answers without vectors
var ErrEmptyEmbedding = errors.New("provider returned no embeddings")

// Provider defines the interface for embedding generation
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Close() error
}

// PrepareDefectText combines summary and description for embedding
func PrepareDefectText(summary, description string) string {
	text := fmt.Sprintf("Summary: %s\n\nDescription: %s", CleanText(summary), CleanText(description))
	return TruncateText(text, maxTextRunes)
}

// TruncateText truncates text to maxLen characters without splitting a rune
func TruncateText(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	return string([]rune(text)[:maxLen]) + "..."
}

// CleanText trims every line and drops blank ones
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

// checkBatch makes sure a provider returned one vector per input
func checkBatch(embeddings [][]float32, want int) error {
	if len(embeddings) == 0 {
		return ErrEmptyEmbedding
	}
	if len(embeddings) != want {
		return fmt.Errorf("got %d embeddings for %d texts", len(embeddings), want)
	}
	return nil
}

// embedOne runs a single text through a batch call
func embedOne(ctx context.Context, p Provider, text string) ([]float32, error) {
	embeddings, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}
