package cmd

import (
	"context"
	"fmt"

	"github.com/locle27/Koyeb-Booking-sub000/internal/backlog"
	"github.com/locle27/Koyeb-Booking-sub000/internal/bookings"
	"github.com/locle27/Koyeb-Booking-sub000/internal/cache"
	"github.com/locle27/Koyeb-Booking-sub000/internal/config"
	"github.com/locle27/Koyeb-Booking-sub000/internal/db"
	"github.com/locle27/Koyeb-Booking-sub000/internal/interactions"
	"github.com/locle27/Koyeb-Booking-sub000/internal/knowledge"
	"github.com/locle27/Koyeb-Booking-sub000/internal/llm"
	"github.com/locle27/Koyeb-Booking-sub000/internal/logging"
	"github.com/locle27/Koyeb-Booking-sub000/internal/rag"
)

// loadConfig loads and validates the config, then configures logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `concierge init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logging.Init(level, cfg.Log.Format)
	return cfg, nil
}

// app bundles the stores and engines a command works with.
type app struct {
	cfg          *config.Config
	db           *db.DB
	knowledge    *knowledge.Store
	interactions *interactions.Store
	backlog      *backlog.Store
	answers      cache.Cache
	core         *rag.CoreEngine
	engine       rag.Engine
}

// openApp opens the database, builds both engines and initializes the core.
// The default catalog plus any configured knowledge files are seeded.
func openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	database, err := db.Open(string(cfg.Database.Driver), cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	seed, err := seedEntries(cfg)
	if err != nil {
		database.Close()
		return nil, err
	}

	a := &app{
		cfg:          cfg,
		db:           database,
		knowledge:    knowledge.NewStore(database),
		interactions: interactions.NewStore(database),
		backlog:      backlog.NewStore(database),
	}

	a.core = rag.NewCoreEngine(rag.Options{
		RAG:          cfg.RAG,
		Knowledge:    a.knowledge,
		Interactions: a.interactions,
		Misses:       a.backlog,
		Bookings:     createBookingLookup(cfg),
		Seed:         seed,
		Logger:       logging.For("rag"),
	})
	if err := a.core.Initialize(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("initializing engine: %w", err)
	}

	provider := createLLMProviderFromConfig(cfg)
	if provider != nil {
		answers, err := cache.New(cfg.Cache)
		if err != nil {
			logging.For("cache").WithError(err).Warn("answer cache unavailable, continuing without it")
			answers = cache.Noop{}
		}
		a.answers = answers
	}
	a.engine = rag.NewEngine(cfg, a.core, provider, a.answers)
	return a, nil
}

func (a *app) api() rag.API {
	return rag.API{Engine: a.engine, Core: a.core, History: a.interactions}
}

// Close shuts the engine down and releases the database.
func (a *app) Close() {
	_ = a.core.Shutdown(context.Background())
	if a.answers != nil {
		_ = a.answers.Close()
	}
	a.db.Close()
}

// seedEntries returns the built-in catalog followed by entries from the
// configured knowledge files. Later entries override earlier ones with the
// same category.
func seedEntries(cfg *config.Config) ([]knowledge.Entry, error) {
	entries := knowledge.DefaultCatalog()
	if len(cfg.RAG.KnowledgeFiles) == 0 {
		return entries, nil
	}
	extra, err := knowledge.LoadFiles(".", cfg.RAG.KnowledgeFiles)
	if err != nil {
		return nil, fmt.Errorf("loading knowledge files: %w", err)
	}
	return append(entries, extra...), nil
}

// createBookingLookup returns a spreadsheet-backed lookup when a bookings
// file is configured.
func createBookingLookup(cfg *config.Config) bookings.Lookup {
	if cfg.Bookings.File == "" {
		return bookings.None{}
	}
	return bookings.NewSheetLookup(cfg.Bookings.File, cfg.Bookings.Sheet)
}

// createLLMProviderFromConfig returns nil when enhancement is disabled or
// the provider cannot be built; the core engine is used instead.
func createLLMProviderFromConfig(cfg *config.Config) llm.Provider {
	if !cfg.Enhancement.Enabled {
		return nil
	}
	provider, err := llm.NewProvider(cfg.Enhancement)
	if err != nil {
		logging.For("llm").WithError(err).Warn("enhancement disabled")
		return nil
	}
	return provider
}
