package llm

import (
	"fmt"
	"os"

	"github.com/locle27/Koyeb-Booking-sub000/internal/config"
)

const defaultOllamaHost = "http://localhost:11434"

// NewProvider builds the provider named by the enhancement config, reading
// API keys from the environment. A positive RequestsPerMinute wraps the
// provider in a rate limiter.
func NewProvider(cfg config.EnhancementConfig) (Provider, error) {
	model := cfg.Model
	if model == "" {
		model = config.DefaultModel(cfg.Provider)
	}

	var p Provider
	switch cfg.Provider {
	case config.ProviderGoogle, config.ProviderOpenAI:
		envVar := config.APIKeyEnvVar(cfg.Provider)
		apiKey := os.Getenv(envVar)
		if apiKey == "" {
			return nil, fmt.Errorf("%s environment variable is not set", envVar)
		}
		if cfg.Provider == config.ProviderGoogle {
			p = NewGoogleProvider(apiKey, model)
		} else {
			p = NewOpenAIProvider(apiKey, model, os.Getenv("OPENAI_BASE_URL"))
		}

	case config.ProviderOllama:
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = defaultOllamaHost
		}
		p = NewOllamaProvider(host, model)

	default:
		return nil, fmt.Errorf("unsupported provider type: %q", cfg.Provider)
	}

	if cfg.RequestsPerMinute > 0 {
		p = NewRateLimitedProvider(p, cfg.RequestsPerMinute)
	}
	return p, nil
}
