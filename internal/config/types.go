package config

import "time"

// ProviderType identifies an LLM provider used by the enhancement stage.
type ProviderType string

const (
	ProviderGoogle ProviderType = "google"
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// DriverType identifies the database driver backing the knowledge table and
// the interaction log.
type DriverType string

const (
	DriverSQLite   DriverType = "sqlite"
	DriverPostgres DriverType = "postgres"
)

// Config is the top-level concierge configuration, corresponding to .concierge.yml.
type Config struct {
	HotelName   string            `yaml:"hotel_name" koanf:"hotel_name"`
	Database    DatabaseConfig    `yaml:"database" koanf:"database"`
	Log         LogConfig         `yaml:"log" koanf:"log"`
	Server      ServerConfig      `yaml:"server" koanf:"server"`
	RAG         RAGConfig         `yaml:"rag" koanf:"rag"`
	Enhancement EnhancementConfig `yaml:"enhancement" koanf:"enhancement"`
	Cache       CacheConfig       `yaml:"cache" koanf:"cache"`
	Bookings    BookingsConfig    `yaml:"bookings" koanf:"bookings"`
}

// DatabaseConfig selects where knowledge and interactions are persisted.
type DatabaseConfig struct {
	Driver DriverType `yaml:"driver" koanf:"driver"`
	// DSN is a file path for sqlite or a connection string for postgres.
	DSN string `yaml:"dsn" koanf:"dsn"`
}

// LogConfig controls logrus output.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"` // "text" or "json"
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}

// RAGConfig holds the retrieval tunables. The defaults reproduce the
// reference answers exactly; change them only deliberately.
type RAGConfig struct {
	TopK            int          `yaml:"top_k" koanf:"top_k"`
	ConfidenceFloor float64      `yaml:"confidence_floor" koanf:"confidence_floor"`
	HistoryLimit    int          `yaml:"history_limit" koanf:"history_limit"`
	MaxSources      int          `yaml:"max_sources" koanf:"max_sources"`
	MaxSuggestions  int          `yaml:"max_suggestions" koanf:"max_suggestions"`
	ReseedOnStart   bool         `yaml:"reseed_on_start" koanf:"reseed_on_start"`
	KnowledgeFiles  []string     `yaml:"knowledge_files" koanf:"knowledge_files"`
	Scorer          ScorerConfig `yaml:"scorer" koanf:"scorer"`
}

// ScorerConfig holds the similarity weights.
type ScorerConfig struct {
	KeywordWeight   float64 `yaml:"keyword_weight" koanf:"keyword_weight"`
	ContentWeight   float64 `yaml:"content_weight" koanf:"content_weight"`
	PhraseBonus     float64 `yaml:"phrase_bonus" koanf:"phrase_bonus"`
	PhraseMinLength int     `yaml:"phrase_min_length" koanf:"phrase_min_length"`
}

// EnhancementConfig configures the optional LLM rewrite of composed answers.
type EnhancementConfig struct {
	Enabled           bool          `yaml:"enabled" koanf:"enabled"`
	Provider          ProviderType  `yaml:"provider" koanf:"provider"`
	Model             string        `yaml:"model" koanf:"model"`
	Timeout           time.Duration `yaml:"timeout" koanf:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute" koanf:"requests_per_minute"`
}

// CacheConfig configures caching of enhanced answers.
type CacheConfig struct {
	Backend   string        `yaml:"backend" koanf:"backend"` // "memory", "redis" or "none"
	TTL       time.Duration `yaml:"ttl" koanf:"ttl"`
	RedisAddr string        `yaml:"redis_addr" koanf:"redis_addr"`
	RedisDB   int           `yaml:"redis_db" koanf:"redis_db"`
}

// BookingsConfig points at the spreadsheet export used for guest enrichment.
type BookingsConfig struct {
	File  string `yaml:"file" koanf:"file"`
	Sheet string `yaml:"sheet" koanf:"sheet"`
}
