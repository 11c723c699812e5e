package site

import (
	"strings"

	"github.com/scholia-labs/scholia/internal/catalog"
	"github.com/scholia-labs/scholia/internal/content"
	"github.com/scholia-labs/scholia/internal/marginalia"
)

// SearchEntry is one searchable item of the static search index.
type SearchEntry struct {
	Kind        string `json:"kind"`
	Path        string `json:"path"`
	Legend      string `json:"legend"`
	Volume      string `json:"volume"`
	VolumeTitle string `json:"volumeTitle"`
	ID          string `json:"id"`
	Section     string `json:"section"`
	Type        string `json:"type,omitempty"`
	Title       string `json:"title"`
	Content     string `json:"content,omitempty"`
}

// BuildSearchIndex lists every marginalia note followed by every section
// heading of the library, each group ordered by volume then position.
func BuildSearchIndex(lib *content.Library) []SearchEntry {
	entries := []SearchEntry{}
	volumes := lib.Volumes()

	for _, v := range volumes {
		base := "/legends/" + v.LegendSlug + "/" + v.Slug
		for _, m := range v.Marginalia {
			entries = append(entries, SearchEntry{
				Kind:        catalog.KindMarginalia,
				Path:        base + "#" + m.SectionID,
				Legend:      v.LegendSlug,
				Volume:      v.Slug,
				VolumeTitle: v.Title,
				ID:          m.ID,
				Section:     m.SectionID,
				Type:        m.Type,
				Title:       m.Title,
				Content:     m.Content,
			})
		}
	}
	for _, v := range volumes {
		base := "/legends/" + v.LegendSlug + "/" + v.Slug
		for _, sec := range v.Sections {
			entries = append(entries, SearchEntry{
				Kind:        catalog.KindSection,
				Path:        base + "#" + sec.ID,
				Legend:      v.LegendSlug,
				Volume:      v.Slug,
				VolumeTitle: v.Title,
				ID:          sec.ID,
				Section:     sec.ID,
				Title:       sec.Title,
			})
		}
	}
	return entries
}

// searchEntries matches q case-insensitively against entry titles and
// marginalia content, returning hits shaped like catalog results.
func searchEntries(entries []SearchEntry, q string, limit int) []catalog.Hit {
	q = strings.ToLower(strings.TrimSpace(q))
	hits := []catalog.Hit{}
	if q == "" {
		return hits
	}
	if limit <= 0 {
		limit = catalog.DefaultSearchLimit
	}
	for _, e := range entries {
		if len(hits) == limit {
			break
		}
		if !strings.Contains(strings.ToLower(e.Title), q) && !strings.Contains(strings.ToLower(e.Content), q) {
			continue
		}
		h := catalog.Hit{
			Kind:        e.Kind,
			LegendSlug:  e.Legend,
			VolumeSlug:  e.Volume,
			VolumeTitle: e.VolumeTitle,
			ID:          e.ID,
			SectionID:   e.Section,
			Type:        e.Type,
			Title:       e.Title,
		}
		if e.Content != "" {
			h.Snippet = marginalia.Truncate(e.Content, 160)
		}
		hits = append(hits, h)
	}
	return hits
}
