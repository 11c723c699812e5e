package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholia-labs/scholia/internal/content"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the content tree",
	Long: `Loads every dossier and reports marginalia that point at missing sections,
duplicate section ids and volumes the hubs do not agree on.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := newLoader().Load(cmd.Context())
		if err != nil {
			return err
		}
		problems := content.Validate(lib)
		for _, p := range problems {
			fmt.Println(p.String())
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d problem(s) found in %s", len(problems), cfg.ContentDir)
		}
		fmt.Printf("%d legends, %d volumes: no problems found\n", len(lib.AllLegends()), len(lib.Volumes()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
