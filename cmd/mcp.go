package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scholia-labs/scholia/internal/catalog"
	"github.com/scholia-labs/scholia/internal/content"
	mcpserver "github.com/scholia-labs/scholia/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the dossier catalog to AI agents over MCP",
	Long:  `Loads the content tree into the catalog and starts a Model Context Protocol server on stdio with tools to list legends, search marginalia and outline volumes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openCatalog()
		if err != nil {
			return fmt.Errorf("opening catalog: %w", err)
		}
		defer database.Close()

		lib, err := newLoader().Load(cmd.Context())
		if err != nil {
			return err
		}
		store := catalog.NewStore(database)
		run, err := store.Sync(cmd.Context(), lib)
		if err != nil {
			return fmt.Errorf("syncing catalog: %w", err)
		}

		mcpserver.Version = Version
		logger.Info("MCP server started on stdio",
			zap.Int("legends", run.Legends),
			zap.Int("volumes", run.Volumes),
			zap.Int("marginalia", run.Marginalia))

		srv := mcpserver.NewServer(store, func() *content.Library { return lib })
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
