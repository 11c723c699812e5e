package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholia-labs/scholia/internal/config"
	"github.com/scholia-labs/scholia/internal/content"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Scaffold a new legend hub",
	Long:  `Asks for a legend's details and writes its hub page and volume stubs under the content directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, err := config.PromptLegend()
		if err != nil {
			return err
		}
		created, err := content.Scaffold(cfg.ContentDir, content.LegendScaffold{
			Name:      answers.Name,
			Slug:      answers.Slug,
			Archetype: answers.Archetype,
			Industry:  answers.Industry,
			Dates:     answers.Dates,
			Volumes:   answers.Volumes,
		})
		for _, p := range created {
			fmt.Printf("  created %s\n", p)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
