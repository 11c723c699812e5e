package cmd

import (
	"github.com/spf13/cobra"

	"github.com/scholia-labs/scholia/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a scholia configuration with an interactive wizard",
	Long:  `Runs an interactive wizard and writes the answers to .scholia.yml (or the path given by --config).`,
	// The config file may not exist yet, so the root pre-run is skipped.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
