// Package content loads legends, volumes and library entries from markdown
// files with YAML front matter and renders their bodies to HTML.
package content

import (
	"errors"

	"github.com/scholia-labs/scholia/internal/marginalia"
	"github.com/scholia-labs/scholia/internal/sections"
	"github.com/scholia-labs/scholia/internal/taxonomy"
)

// ErrNotFound is returned when a legend, volume or library entry does not exist.
var ErrNotFound = errors.New("content not found")

// Default presentation values applied during normalization.
const (
	DefaultArchetypeColor    = "#CA8A04"
	CrossCuttingColor        = "#0F2F53"
	DefaultReadingTime       = 30
	DefaultLegendName        = "Legend"
	coverImagePathFormat     = "/images/legends/%s/%s-%s.png"
	deterministicIDNamespace = "scholia.marginalia"
)

// VolumeRef is a legend hub's entry for one of its volumes.
type VolumeRef struct {
	Slug        string   `yaml:"slug" json:"slug"`
	Title       string   `yaml:"title" json:"title"`
	Subtitle    string   `yaml:"subtitle" json:"subtitle,omitempty"`
	ReadingTime Minutes  `yaml:"readingTime" json:"readingTime,omitempty"`
	Disciplines []string `yaml:"disciplines" json:"disciplines,omitempty"`
}

// Legend is a biographical dossier hub with one or more volumes.
type Legend struct {
	Slug                string
	Name                string
	Subtitle            string
	Dates               string
	Archetype           string
	ArchetypeColor      string
	SecondaryArchetypes []string
	Industry            string
	CoverImage          string
	IconImage           string
	CoverQuote          string
	QuoteAttribution    string
	Hook                string
	CentralQuestion     string
	TotalReadingTime    int
	Volumes             []VolumeRef
	BodyHTML            string
}

// IsCrossCutting reports whether the legend is a cross-archetype analysis.
func (l *Legend) IsCrossCutting() bool { return l.Archetype == taxonomy.CrossCutting }

// ArchetypeName is the display name of the primary archetype.
func (l *Legend) ArchetypeName() string {
	if l.Archetype == "" {
		return ""
	}
	return taxonomy.DisplayName(l.Archetype)
}

// VolumeLink points at a neighbouring volume of the same legend.
type VolumeLink struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Source is a bibliography entry referenced from a volume body.
type Source struct {
	ID       int    `yaml:"id" json:"id"`
	Citation string `yaml:"citation" json:"citation"`
	DBID     string `yaml:"dbId" json:"dbId,omitempty"`
}

// Volume is one long-form dossier page.
type Volume struct {
	LegendSlug          string
	Slug                string
	Title               string
	Subtitle            string
	LegendName          string
	Dates               string
	Industry            string
	ReadingTime         int
	Archetype           string
	ArchetypeColor      string
	SecondaryArchetypes []string
	Disciplines         []string
	Motifs              []string
	CoverImage          string
	Quote               string
	QuoteAttribution    string
	PDFURL              string
	Hook                string
	Sections            []sections.Section
	Marginalia          []marginalia.Annotation
	Sources             []Source
	BodyHTML            string
	Prev                *VolumeLink
	Next                *VolumeLink
	Path                string

	registry   *sections.Registry
	index      *marginalia.Index
	undeclared []sections.Section
}

// Key identifies the volume within a Library.
func (v *Volume) Key() string { return volumeKey(v.LegendSlug, v.Slug) }

// IsCrossCutting reports whether the volume is a cross-archetype analysis.
func (v *Volume) IsCrossCutting() bool { return v.Archetype == taxonomy.CrossCutting }

// Registry returns the section registry built for the volume.
func (v *Volume) Registry() *sections.Registry {
	if v.registry == nil {
		return sections.Build(v.Sections)
	}
	return v.registry
}

// Annotations returns the marginalia index of the volume.
func (v *Volume) Annotations() *marginalia.Index {
	if v.index == nil {
		return marginalia.NewIndex(v.Marginalia)
	}
	return v.index
}

// ArchetypeName is the display name of the primary archetype.
func (v *Volume) ArchetypeName() string {
	if v.Archetype == "" {
		return ""
	}
	return taxonomy.DisplayName(v.Archetype)
}

// Model is an entry of the mental-models library.
type Model struct {
	Slug    string
	Title   string
	Summary string
	Status  string
}

// Planned reports whether the model is announced but not yet published.
func (m *Model) Planned() bool { return m.Status == "" || m.Status == "planned" }

func volumeKey(legend, volume string) string { return legend + "/" + volume }
