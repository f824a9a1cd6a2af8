package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/locle27/Koyeb-Booking-sub000/internal/backlog"
)

var backlogCmd = &cobra.Command{
	Use:   "backlog",
	Short: "List guest questions the knowledge base could not answer",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		filter := backlog.ListFilter{Status: backlog.Status(status), Limit: limit}
		if status != "" && !filter.Status.Valid() {
			return fmt.Errorf("unknown status %q: must be open, answered or dismissed", status)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := openApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		questions, err := a.backlog.List(cmd.Context(), filter)
		if err != nil {
			return err
		}
		if jsonOutput {
			if questions == nil {
				questions = []backlog.Question{}
			}
			return writeJSON(questions)
		}
		if len(questions) == 0 {
			fmt.Println("Backlog is empty.")
			return nil
		}
		for _, q := range questions {
			fmt.Printf("%s  x%-3d %-9s %s\n", q.ID[:8], q.Asked, q.Status, q.Question)
		}
		return nil
	},
}

func init() {
	backlogCmd.Flags().String("status", string(backlog.StatusOpen), "filter by status (empty for all)")
	backlogCmd.Flags().Int("limit", 20, "maximum number of questions")
	backlogCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(backlogCmd)
}
