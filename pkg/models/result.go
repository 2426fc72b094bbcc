package models

// SearchResult represents a defect found via vector search
type SearchResult struct {
	Defect Defect  `json:"defect"`
	Score  float64 `json:"score"` // Similarity score (0-1)
}

// IndexStats contains statistics from an indexing operation
type IndexStats struct {
	TotalDefects int `json:"total_defects"`
	Indexed      int `json:"indexed"`
	Skipped      int `json:"skipped"`
	Errors       int `json:"errors"`
	DurationMs   int `json:"duration_ms"`
}
