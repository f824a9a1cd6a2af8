package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [guest name]",
	Short: "Show a guest's recent questions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		guest := strings.Join(args, " ")
		limit, _ := cmd.Flags().GetInt("limit")
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

		records, err := a.interactions.Recent(cmd.Context(), guest, limit)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}
		if jsonOutput {
			return writeJSON(records)
		}
		if len(records) == 0 {
			fmt.Printf("No interactions recorded for %s.\n", guest)
			return nil
		}
		for _, r := range records {
			fmt.Printf("%s  [%s] (%.2f)\n", r.Timestamp.Local().Format(time.DateTime), r.ReferenceID, r.Payload.Confidence)
			fmt.Printf("  Q: %s\n", r.Payload.Query)
			fmt.Printf("  A: %s\n\n", r.Payload.Response)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 5, "number of interactions to show")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(historyCmd)
}
