package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scholia-labs/scholia/internal/config"
	"github.com/scholia-labs/scholia/internal/logging"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "scholia",
	Short: "Publish long-form dossiers with scroll-synced marginalia",
	Long: `Scholia turns a tree of markdown dossiers into an editorial site.
Each volume is read with a marginalia panel that follows the reader's
scroll position and surfaces the notes attached to the current section.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		l, err := logging.New(cfg.Log, verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
