package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholia-labs/scholia/internal/progress"
	"github.com/scholia-labs/scholia/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	Long: `Renders every page, volume manifest and the search index into the output
directory, then copies the public directory alongside them.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory (defaults to output_dir)")
	buildCmd.Flags().Int("concurrency", 0, "pages rendered in parallel (defaults to the number of CPUs)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	s, err := newSite(nil, false)
	if err != nil {
		return err
	}
	if err := s.Reload(cmd.Context()); err != nil {
		return err
	}

	g := site.NewGenerator(s, outputDir)
	g.Reporter = progress.NewReporter("Exporting")
	if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
		g.Concurrency = n
	}

	pages, err := g.Generate(cmd.Context())
	if err != nil {
		return fmt.Errorf("exporting site: %w", err)
	}
	fmt.Printf("Static site written to %s (%d pages)\n", outputDir, pages)
	return nil
}
