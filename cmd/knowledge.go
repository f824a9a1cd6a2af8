package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/locle27/Koyeb-Booking-sub000/internal/knowledge"
)

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "List the knowledge catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := openApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		entries := make([]knowledge.Entry, 0)
		for _, e := range a.core.Catalog() {
			if category == "" || strings.EqualFold(e.Category, category) {
				entries = append(entries, e)
			}
		}

		if jsonOutput {
			return writeJSON(entries)
		}
		if len(entries) == 0 {
			fmt.Println("No knowledge entries.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-16s %s\n", e.Category, e.Topic)
			if verbose {
				fmt.Printf("%16s keywords: %s\n", "", e.Keywords)
			}
		}
		return nil
	},
}

func init() {
	knowledgeCmd.Flags().String("category", "", "show only this category")
	knowledgeCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(knowledgeCmd)
}
