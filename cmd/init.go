package cmd

import (
	"github.com/spf13/cobra"

	"github.com/locle27/Koyeb-Booking-sub000/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize concierge configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the concierge and writes a .concierge.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
