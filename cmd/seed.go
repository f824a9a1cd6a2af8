package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/locle27/Koyeb-Booking-sub000/internal/knowledge"
	"github.com/locle27/Koyeb-Booking-sub000/internal/progress"
)

var seedCmd = &cobra.Command{
	Use:   "seed [glob...]",
	Short: "Load knowledge entries into the database",
	Long: `Upserts knowledge entries keyed by category. Entries come from YAML files
matching the given doublestar globs (e.g. "knowledge/**/*.yml"), or from
rag.knowledge_files when no globs are given. With --defaults the built-in
catalog is seeded first.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().Bool("defaults", false, "seed the built-in catalog as well")
	seedCmd.Flags().String("root", ".", "directory the globs are relative to")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	withDefaults, _ := cmd.Flags().GetBool("defaults")
	root, _ := cmd.Flags().GetString("root")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.RAG.KnowledgeFiles
	}

	var entries []knowledge.Entry
	if withDefaults {
		entries = append(entries, knowledge.DefaultCatalog()...)
	}
	if len(patterns) > 0 {
		loaded, err := knowledge.LoadFiles(root, patterns)
		if err != nil {
			return fmt.Errorf("loading knowledge files: %w", err)
		}
		entries = append(entries, loaded...)
	}
	if len(entries) == 0 {
		return fmt.Errorf("nothing to seed: pass globs, set rag.knowledge_files or use --defaults")
	}

	// Validate everything up front so a bad file leaves the table untouched.
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d (%q): %w", i, e.Topic, err)
		}
	}

	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	reporter := progress.NewReporter(os.Stderr)
	reporter.Start(len(entries))
	for i, e := range entries {
		if _, err := a.knowledge.Seed(ctx, []knowledge.Entry{e}); err != nil {
			reporter.Finish()
			return fmt.Errorf("seeding %q: %w", e.Category, err)
		}
		reporter.Update(i+1, e.Topic)
	}
	reporter.Finish()

	total, err := a.knowledge.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Seeded %d entries (%d in catalog)\n", len(entries), total)
	return nil
}
