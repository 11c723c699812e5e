// Package manifest is the JSON document a dossier page hands to the
// in-browser reader: the section list, the marginalia and reader tuning.
package manifest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/scholia-labs/scholia/internal/marginalia"
	"github.com/scholia-labs/scholia/internal/scroll"
	"github.com/scholia-labs/scholia/internal/sections"
)

// ElementID is the id of the script element a dossier page embeds the
// manifest in.
const ElementID = "scholia-manifest"

// ReaderSettings tunes the tracker, selector and card in the browser.
type ReaderSettings struct {
	LookAheadPx          float64 `json:"lookAheadPx"`
	LastSectionViewports float64 `json:"lastSectionViewports"`
	FadeMS               int     `json:"fadeMs"`
	TruncateAt           int     `json:"truncateAt"`
}

// DefaultReaderSettings mirrors the package defaults of scroll and marginalia.
func DefaultReaderSettings() ReaderSettings {
	return ReaderSettings{
		LookAheadPx:          scroll.DefaultLookAhead,
		LastSectionViewports: scroll.DefaultLastSectionViewports,
		FadeMS:               int(marginalia.DefaultFade / time.Millisecond),
		TruncateAt:           marginalia.DefaultTruncateAt,
	}
}

// ScrollConfig converts the settings to tracker tuning.
func (r ReaderSettings) ScrollConfig() scroll.Config {
	cfg := scroll.DefaultConfig()
	if r.LookAheadPx >= 0 {
		cfg.LookAhead = r.LookAheadPx
	}
	if r.LastSectionViewports > 0 {
		cfg.LastSectionViewports = r.LastSectionViewports
	}
	return cfg
}

// Fade is the marginalia fade-out duration.
func (r ReaderSettings) Fade() time.Duration {
	return time.Duration(r.FadeMS) * time.Millisecond
}

// Manifest describes one volume for the reader.
type Manifest struct {
	Legend         string                  `json:"legend"`
	Volume         string                  `json:"volume"`
	Title          string                  `json:"title"`
	Sections       []sections.Section      `json:"sections"`
	Marginalia     []marginalia.Annotation `json:"marginalia"`
	SectionNoteIDs map[string][]string     `json:"sectionNoteIds"`
	Reader         ReaderSettings          `json:"reader"`
}

// New assembles a manifest. The per-section id lists are derived from the
// annotations.
func New(legend, volume, title string, secs []sections.Section, notes []marginalia.Annotation, reader ReaderSettings) Manifest {
	if secs == nil {
		secs = []sections.Section{}
	}
	if notes == nil {
		notes = []marginalia.Annotation{}
	}
	return Manifest{
		Legend:         legend,
		Volume:         volume,
		Title:          title,
		Sections:       secs,
		Marginalia:     notes,
		SectionNoteIDs: marginalia.NewIndex(notes).SectionNotes().IDs,
		Reader:         reader,
	}
}

// Registry builds the section registry of the manifest.
func (m *Manifest) Registry() *sections.Registry {
	return sections.Build(m.Sections)
}

// Index builds the marginalia index of the manifest.
func (m *Manifest) Index() *marginalia.Index {
	return marginalia.NewIndex(m.Marginalia)
}

// Decode parses a manifest. Missing reader settings fall back to defaults.
func Decode(data []byte) (*Manifest, error) {
	m := &Manifest{Reader: DefaultReaderSettings()}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if m.Reader.FadeMS <= 0 {
		m.Reader.FadeMS = DefaultReaderSettings().FadeMS
	}
	if m.Reader.TruncateAt <= 0 {
		m.Reader.TruncateAt = marginalia.DefaultTruncateAt
	}
	return m, nil
}
