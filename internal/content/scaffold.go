package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrExists is returned by Scaffold when the legend directory already has
// an index.
var ErrExists = errors.New("legend already exists")

// LegendScaffold describes a new legend hub to lay out on disk.
type LegendScaffold struct {
	Name      string
	Slug      string
	Archetype string
	Industry  string
	Dates     string
	Volumes   int
}

type scaffoldVolume struct {
	Slug  string `yaml:"slug"`
	Title string `yaml:"title"`
}

type scaffoldIndex struct {
	Legend    string           `yaml:"legend"`
	Dates     string           `yaml:"dates,omitempty"`
	Archetype string           `yaml:"archetype,omitempty"`
	Industry  string           `yaml:"industry,omitempty"`
	Hook      string           `yaml:"hook"`
	Volumes   []scaffoldVolume `yaml:"volumes"`
}

type scaffoldDossier struct {
	Title string `yaml:"title"`
}

// Scaffold writes legends/<slug>/index.md and one stub per volume under
// root, returning the paths it created.
func Scaffold(root string, s LegendScaffold) ([]string, error) {
	if s.Slug == "" || s.Name == "" {
		return nil, fmt.Errorf("scaffold needs a name and a slug")
	}
	if s.Volumes < 1 {
		s.Volumes = 1
	}

	dir := filepath.Join(root, "legends", s.Slug)
	index := filepath.Join(dir, "index.md")
	if _, err := os.Stat(index); err == nil {
		return nil, fmt.Errorf("%s: %w", index, ErrExists)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	hub := scaffoldIndex{
		Legend:    s.Name,
		Dates:     s.Dates,
		Archetype: s.Archetype,
		Industry:  s.Industry,
	}
	for i := 1; i <= s.Volumes; i++ {
		hub.Volumes = append(hub.Volumes, scaffoldVolume{
			Slug:  fmt.Sprintf("volume-%d", i),
			Title: fmt.Sprintf("Volume %d", i),
		})
	}

	created := []string{}
	if err := writeMarkdown(index, hub, "Introduce "+s.Name+" here.\n"); err != nil {
		return created, err
	}
	created = append(created, index)

	for _, v := range hub.Volumes {
		p := filepath.Join(dir, v.Slug+".md")
		if _, err := os.Stat(p); err == nil {
			continue
		}
		body := "## Opening\n\nWrite the first section here.\n"
		if err := writeMarkdown(p, scaffoldDossier{Title: v.Title}, body); err != nil {
			return created, err
		}
		created = append(created, p)
	}
	return created, nil
}

func writeMarkdown(path string, fm any, body string) error {
	var buf bytes.Buffer
	buf.Write(fmDelim)
	buf.WriteByte('\n')
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return fmt.Errorf("encoding front matter for %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	buf.Write(fmDelim)
	buf.WriteString("\n\n")
	buf.WriteString(body)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
