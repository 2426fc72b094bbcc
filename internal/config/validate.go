package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors
func Validate(cfg *Config) []error {
	var errs []error

	// Matcher
	if cfg.Matcher.SimilarThreshold < 0 || cfg.Matcher.SimilarThreshold > 1 {
		errs = append(errs, ValidationError{"matcher.similar_threshold", "must be between 0 and 1"})
	}
	if cfg.Matcher.DuplicateThreshold < 0 || cfg.Matcher.DuplicateThreshold > 1 {
		errs = append(errs, ValidationError{"matcher.duplicate_threshold", "must be between 0 and 1"})
	}
	if cfg.Matcher.DuplicateThreshold < cfg.Matcher.SimilarThreshold {
		errs = append(errs, ValidationError{"matcher.duplicate_threshold", "must not be lower than similar_threshold"})
	}
	if cfg.Matcher.MinTokenLength < 1 {
		errs = append(errs, ValidationError{"matcher.min_token_length", "must be at least 1"})
	}

	switch cfg.Source.Type {
	case SourceFile:
		if cfg.Source.Path == "" {
			errs = append(errs, ValidationError{"source.path", "required for file source"})
		}
	case SourceBackend:
		if cfg.Backend.URL == "" {
			errs = append(errs, ValidationError{"backend.url", "required for backend source"})
		}
		if cfg.Backend.TimeoutSeconds < 0 {
			errs = append(errs, ValidationError{"backend.timeout_seconds", "must not be negative"})
		}
	case SourceGitHub:
		if len(cfg.GitHub.Repositories) == 0 {
			errs = append(errs, ValidationError{"github.repositories", "at least one repository required"})
		}
		for i, repo := range cfg.GitHub.Repositories {
			if parts := strings.Split(repo, "/"); len(parts) != 2 || parts[0] == "" || parts[1] == "" {
				errs = append(errs, ValidationError{fmt.Sprintf("github.repositories[%d]", i), "must be in format 'org/repo'"})
			}
		}
		switch cfg.GitHub.State {
		case "open", "closed", "all":
		default:
			errs = append(errs, ValidationError{"github.state", "must be 'open', 'closed' or 'all'"})
		}
	case SourceSemantic:
		errs = append(errs, validateIndex(cfg)...)
		if cfg.Semantic.MinScore < 0 || cfg.Semantic.MinScore > 1 {
			errs = append(errs, ValidationError{"semantic.min_score", "must be between 0 and 1"})
		}
	default:
		errs = append(errs, ValidationError{"source.type", "must be 'file', 'backend', 'github' or 'semantic'"})
	}

	if cfg.Embedding.Fallback.Provider != "" && !knownProvider(cfg.Embedding.Fallback.Provider) {
		errs = append(errs, ValidationError{"embedding.fallback.provider", "must be 'gemini' or 'openai'"})
	}

	return errs
}

// ValidateIndex checks the settings needed by index and search commands
func ValidateIndex(cfg *Config) []error {
	return validateIndex(cfg)
}

func validateIndex(cfg *Config) []error {
	var errs []error

	if cfg.Qdrant.URL == "" {
		errs = append(errs, ValidationError{"qdrant.url", "required"})
	}

	if cfg.Embedding.Primary.Provider == "" {
		errs = append(errs, ValidationError{"embedding.primary.provider", "required"})
	} else if !knownProvider(cfg.Embedding.Primary.Provider) {
		errs = append(errs, ValidationError{"embedding.primary.provider", "must be 'gemini' or 'openai'"})
	}

	if cfg.Embedding.Primary.APIKey == "" {
		errs = append(errs, ValidationError{"embedding.primary.api_key", "required"})
	}

	return errs
}

func knownProvider(p string) bool {
	return p == "gemini" || p == "openai"
}
