package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the full application configuration
type Config struct {
	Matcher   MatcherConfig   `yaml:"matcher"`
	Source    SourceConfig    `yaml:"source"`
	Backend   BackendConfig   `yaml:"backend"`
	GitHub    GitHubConfig    `yaml:"github"`
	Qdrant    QdrantConfig    `yaml:"qdrant"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Semantic  SemanticConfig  `yaml:"semantic"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
}

// MatcherConfig contains duplicate detection settings
type MatcherConfig struct {
	SimilarThreshold   float64  `yaml:"similar_threshold"`
	DuplicateThreshold float64  `yaml:"duplicate_threshold"`
	MinTokenLength     int      `yaml:"min_token_length"`
	StopWords          []string `yaml:"stop_words,omitempty"`
	ExtraStopWords     []string `yaml:"extra_stop_words,omitempty"`
	TerminalStatuses   []string `yaml:"terminal_statuses"`
}

// Source types
const (
	SourceFile     = "file"
	SourceBackend  = "backend"
	SourceGitHub   = "github"
	SourceSemantic = "semantic"
)

// SourceConfig selects where candidate defects come from
type SourceConfig struct {
	Type string `yaml:"type"`
	Path string `yaml:"path,omitempty"`
}

// BackendConfig contains settings for the tracker REST backend
type BackendConfig struct {
	URL            string `yaml:"url"`
	Token          string `yaml:"token"`
	BugsPath       string `yaml:"bugs_path"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// GitHubConfig lists repositories whose issues act as candidate defects
type GitHubConfig struct {
	Repositories []string `yaml:"repositories"`
	State        string   `yaml:"state"`
	PerPage      int      `yaml:"per_page"`
}

// QdrantConfig contains Qdrant connection settings
type QdrantConfig struct {
	URL        string `yaml:"url"`
	APIKey     string `yaml:"api_key"`
	Collection string `yaml:"collection"`
}

// EmbeddingConfig contains embedding provider settings
type EmbeddingConfig struct {
	Primary  ProviderConfig `yaml:"primary"`
	Fallback ProviderConfig `yaml:"fallback"`
}

// ProviderConfig contains settings for an embedding provider
type ProviderConfig struct {
	Provider   string `yaml:"provider"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	Dimensions int    `yaml:"dimensions"`
}

// SemanticConfig tunes the vector-search candidate pool
type SemanticConfig struct {
	Limit    int     `yaml:"limit"`
	MinScore float64 `yaml:"min_score"`
}

// ServerConfig contains HTTP check API settings
type ServerConfig struct {
	Addr                string `yaml:"addr"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
	MaxRequestBodyBytes int    `yaml:"max_request_body_bytes"`
}

// LogConfig contains logger settings
type LogConfig struct {
	JSON  bool   `yaml:"json"`
	File  string `yaml:"file"`
	Debug bool   `yaml:"debug"`
}

// PipelineConfig overrides the check pipeline step order
type PipelineConfig struct {
	Steps []string `yaml:"steps,omitempty"`
}

// Load reads and parses config from the given path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns an empty config with defaults applied
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// FindConfigPath looks for config in common locations
func FindConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	paths := []string{
		".debugae.yaml",
		".debugae.yml",
		"debugae.yaml",
		"debugae.yml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, ".config", "debugae", "config.yaml")
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}

	return ""
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	if cfg.Matcher.SimilarThreshold == 0 {
		cfg.Matcher.SimilarThreshold = 0.6
	}
	if cfg.Matcher.DuplicateThreshold == 0 {
		cfg.Matcher.DuplicateThreshold = 0.85
	}
	if cfg.Matcher.MinTokenLength == 0 {
		cfg.Matcher.MinTokenLength = 3
	}
	if len(cfg.Matcher.TerminalStatuses) == 0 {
		cfg.Matcher.TerminalStatuses = []string{"RESOLVIDO", "FECHADO"}
	}

	if cfg.Source.Type == "" {
		cfg.Source.Type = SourceFile
	}

	if cfg.Backend.BugsPath == "" {
		cfg.Backend.BugsPath = "/bugs"
	}
	if cfg.Backend.TimeoutSeconds == 0 {
		cfg.Backend.TimeoutSeconds = 10
	}

	if cfg.GitHub.State == "" {
		cfg.GitHub.State = "all"
	}
	if cfg.GitHub.PerPage == 0 {
		cfg.GitHub.PerPage = 100
	}

	if cfg.Qdrant.Collection == "" {
		cfg.Qdrant.Collection = "debugae_defects"
	}
	if cfg.Embedding.Primary.Dimensions == 0 {
		cfg.Embedding.Primary.Dimensions = 768
	}
	if cfg.Embedding.Fallback.Dimensions == 0 {
		cfg.Embedding.Fallback.Dimensions = 768
	}

	if cfg.Semantic.Limit == 0 {
		cfg.Semantic.Limit = 50
	}
	if cfg.Semantic.MinScore == 0 {
		cfg.Semantic.MinScore = 0.3
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeoutSeconds == 0 {
		cfg.Server.ReadTimeoutSeconds = 30
	}
	if cfg.Server.WriteTimeoutSeconds == 0 {
		cfg.Server.WriteTimeoutSeconds = 30
	}
	if cfg.Server.MaxRequestBodyBytes == 0 {
		cfg.Server.MaxRequestBodyBytes = 1 << 20
	}
}
