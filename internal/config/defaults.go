package config

import "time"

// defaultModels maps each provider to the model used when none is configured.
var defaultModels = map[ProviderType]string{
	ProviderGoogle: "gemini-2.5-flash",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderOllama: "llama3",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		HotelName: "118 Hang Bac Hostel",
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    "data/concierge.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Port: 8080,
		},
		RAG: RAGConfig{
			TopK:            3,
			ConfidenceFloor: 0.1,
			HistoryLimit:    5,
			MaxSources:      3,
			MaxSuggestions:  3,
			ReseedOnStart:   true,
			Scorer: ScorerConfig{
				KeywordWeight:   2.0,
				ContentWeight:   1.0,
				PhraseBonus:     0.3,
				PhraseMinLength: 4,
			},
		},
		Enhancement: EnhancementConfig{
			Enabled:           false,
			Provider:          ProviderGoogle,
			Model:             defaultModels[ProviderGoogle],
			Timeout:           15 * time.Second,
			RequestsPerMinute: 30,
		},
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     10 * time.Minute,
		},
		Bookings: BookingsConfig{
			Sheet: "Bookings",
		},
	}
}

// DefaultModel returns the model used for a provider when none is configured.
func DefaultModel(provider ProviderType) string {
	return defaultModels[provider]
}
