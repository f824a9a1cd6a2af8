package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variable overrides. Nested keys are
// separated by a double underscore: CONCIERGE_SERVER__PORT -> server.port.
const EnvPrefix = "CONCIERGE_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CONCIERGE_*). A .env file in the working
// directory is loaded first so API keys can live next to the config.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.Enhancement.Model == "" {
		cfg.Enhancement.Model = DefaultModel(cfg.Enhancement.Provider)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validProviders = map[ProviderType]bool{
	ProviderGoogle: true,
	ProviderOpenAI: true,
	ProviderOllama: true,
}

var validDrivers = map[DriverType]bool{
	DriverSQLite:   true,
	DriverPostgres: true,
}

var validCacheBackends = map[string]bool{
	"memory": true,
	"redis":  true,
	"none":   true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !validDrivers[c.Database.Driver] {
		return fmt.Errorf("invalid database.driver %q: must be one of sqlite, postgres", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if c.Log.Format != "" && c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q: must be text or json", c.Log.Format)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.RAG.TopK <= 0 {
		return fmt.Errorf("rag.top_k must be positive")
	}
	if c.RAG.ConfidenceFloor < 0 || c.RAG.ConfidenceFloor >= 1 {
		return fmt.Errorf("rag.confidence_floor must be in [0, 1)")
	}
	if c.RAG.HistoryLimit < 0 {
		return fmt.Errorf("rag.history_limit must be non-negative")
	}
	if c.RAG.MaxSources <= 0 || c.RAG.MaxSuggestions <= 0 {
		return fmt.Errorf("rag.max_sources and rag.max_suggestions must be positive")
	}
	if c.RAG.Scorer.KeywordWeight < 0 || c.RAG.Scorer.ContentWeight < 0 || c.RAG.Scorer.PhraseBonus < 0 {
		return fmt.Errorf("rag.scorer weights must be non-negative")
	}

	if c.Enhancement.Enabled {
		if !validProviders[c.Enhancement.Provider] {
			return fmt.Errorf("invalid enhancement.provider %q: must be one of google, openai, ollama", c.Enhancement.Provider)
		}
		if c.Enhancement.Timeout <= 0 {
			return fmt.Errorf("enhancement.timeout must be positive")
		}
	}
	if c.Enhancement.RequestsPerMinute < 0 {
		return fmt.Errorf("enhancement.requests_per_minute must be non-negative")
	}

	if c.Cache.Backend != "" && !validCacheBackends[c.Cache.Backend] {
		return fmt.Errorf("invalid cache.backend %q: must be one of memory, redis, none", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr is required for the redis backend")
	}

	return nil
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGoogle:
		return "GOOGLE_API_KEY"
	default:
		return ""
	}
}
