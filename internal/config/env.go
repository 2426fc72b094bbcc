package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match // Keep original if env var not set
	})
}

// expandConfigEnvVars expands environment variables in config string fields
func expandConfigEnvVars(cfg *Config) {
	cfg.Source.Path = expandEnvVars(cfg.Source.Path)
	cfg.Backend.URL = expandEnvVars(cfg.Backend.URL)
	cfg.Backend.Token = expandEnvVars(cfg.Backend.Token)
	cfg.Qdrant.URL = expandEnvVars(cfg.Qdrant.URL)
	cfg.Qdrant.APIKey = expandEnvVars(cfg.Qdrant.APIKey)
	cfg.Embedding.Primary.APIKey = expandEnvVars(cfg.Embedding.Primary.APIKey)
	cfg.Embedding.Fallback.APIKey = expandEnvVars(cfg.Embedding.Fallback.APIKey)
	cfg.Log.File = expandEnvVars(cfg.Log.File)
}
