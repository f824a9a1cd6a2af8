package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/locle27/Koyeb-Booking-sub000/internal/handbook"
)

var handbookCmd = &cobra.Command{
	Use:   "handbook",
	Short: "Render the knowledge catalog as an HTML guest handbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		markdown, _ := cmd.Flags().GetBool("markdown")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := openApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()

		entries := a.core.Catalog()
		if markdown {
			_, err = f.WriteString(handbook.Markdown(cfg.HotelName, entries))
		} else {
			err = handbook.NewRenderer().Render(f, cfg.HotelName, entries)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Handbook with %d entries written to %s\n", len(entries), output)
		return nil
	},
}

func init() {
	handbookCmd.Flags().StringP("output", "o", "handbook.html", "output file")
	handbookCmd.Flags().Bool("markdown", false, "write the markdown source instead of HTML")
	rootCmd.AddCommand(handbookCmd)
}
