package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard asks a few questions interactively, saves the resulting Config
// to path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to concierge! Let's configure your front desk.")
	fmt.Println()

	cfg := DefaultConfig()

	namePrompt := promptui.Prompt{
		Label:   "Hotel name",
		Default: cfg.HotelName,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("hotel name: %w", err)
	}
	cfg.HotelName = strings.TrimSpace(name)

	dbPrompt := promptui.Prompt{
		Label:   "SQLite database path",
		Default: cfg.Database.DSN,
	}
	dsn, err := dbPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}
	cfg.Database.DSN = dsn

	enhancePrompt := promptui.Select{
		Label: "Rewrite answers with an LLM",
		Items: []string{
			"off    — keyword engine only",
			"google — Gemini",
			"openai — GPT",
			"ollama — local model",
		},
	}
	idx, _, err := enhancePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("enhancement selection: %w", err)
	}
	if idx > 0 {
		providers := []ProviderType{ProviderGoogle, ProviderOpenAI, ProviderOllama}
		cfg.Enhancement.Enabled = true
		cfg.Enhancement.Provider = providers[idx-1]
		cfg.Enhancement.Model = DefaultModel(cfg.Enhancement.Provider)

		if envVar := APIKeyEnvVar(cfg.Enhancement.Provider); envVar != "" && os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: set %s in your environment or .env before running concierge serve.\n", envVar)
		}
	}

	bookingPrompt := promptui.Prompt{
		Label:   "Booking spreadsheet (.xlsx, blank to skip)",
		Default: "",
	}
	bookingFile, err := bookingPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("booking file: %w", err)
	}
	cfg.Bookings.File = strings.TrimSpace(bookingFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
