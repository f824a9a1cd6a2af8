package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "concierge",
	Short: "Keyword-retrieval hotel concierge",
	Long: `Concierge answers guest questions from a small curated knowledge base.
It scores questions against each entry's content and keywords, personalizes
answers with the guest's booking and recent questions, and can optionally
rewrite answers with an LLM.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".concierge.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
