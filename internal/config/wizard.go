package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/scholia-labs/scholia/internal/sections"
	"github.com/scholia-labs/scholia/internal/taxonomy"
)

// detectContentDir returns the first conventional content directory that
// exists in the working directory.
func detectContentDir() string {
	for _, dir := range []string{"content", "src/content", "site/content"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "content"
}

// RunWizard runs an interactive configuration wizard and saves the
// resulting Config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to scholia! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.Site.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.Site.Title = strings.TrimSpace(title)

	contentPrompt := promptui.Prompt{
		Label:   "Content directory",
		Default: detectContentDir(),
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.ContentDir = strings.TrimSpace(contentDir)

	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the static export",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = strings.TrimSpace(outputDir)

	portPrompt := promptui.Prompt{
		Label:    "Server port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	watchPrompt := promptui.Select{
		Label: "Reload pages when content changes during serve",
		Items: []string{"no", "yes"},
	}
	watchIdx, _, err := watchPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("watch selection: %w", err)
	}
	cfg.Server.Watch = watchIdx == 1

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// LegendAnswers is the result of PromptLegend.
type LegendAnswers struct {
	Name      string
	Slug      string
	Archetype string
	Industry  string
	Dates     string
	Volumes   int
}

// PromptLegend asks for the details of a new legend hub.
func PromptLegend() (*LegendAnswers, error) {
	namePrompt := promptui.Prompt{
		Label:    "Legend name",
		Validate: required("name"),
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("legend name: %w", err)
	}
	name = strings.TrimSpace(name)

	slugPrompt := promptui.Prompt{
		Label:   "Slug",
		Default: sections.Normalize(name),
		Validate: func(s string) error {
			if sections.Normalize(s) != s {
				return fmt.Errorf("slug must be lowercase words joined by hyphens")
			}
			return nil
		},
	}
	slug, err := slugPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("slug: %w", err)
	}

	codes := append(taxonomy.Archetypes(), taxonomy.CrossCutting)
	labels := make([]string, len(codes))
	for i, c := range codes {
		labels[i] = taxonomy.DisplayName(c)
	}
	archetypePrompt := promptui.Select{
		Label: "Primary archetype",
		Items: labels,
		Size:  10,
	}
	archetypeIdx, _, err := archetypePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("archetype selection: %w", err)
	}

	industryPrompt := promptui.Prompt{Label: "Industry"}
	industry, err := industryPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("industry: %w", err)
	}

	datesPrompt := promptui.Prompt{Label: "Dates (e.g. 1863–1947)"}
	dates, err := datesPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("dates: %w", err)
	}

	volumesPrompt := promptui.Prompt{
		Label:    "Number of volumes",
		Default:  "1",
		Validate: validateCount,
	}
	volumesStr, err := volumesPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("volume count: %w", err)
	}
	volumes, _ := strconv.Atoi(volumesStr)

	return &LegendAnswers{
		Name:      name,
		Slug:      slug,
		Archetype: codes[archetypeIdx],
		Industry:  strings.TrimSpace(industry),
		Dates:     strings.TrimSpace(dates),
		Volumes:   volumes,
	}, nil
}

func required(field string) promptui.ValidateFunc {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}

func validateCount(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 20 {
		return fmt.Errorf("enter a number between 1 and 20")
	}
	return nil
}
