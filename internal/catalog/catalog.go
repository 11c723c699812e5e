// Package catalog mirrors the loaded content library into SQLite so the
// server can list legends and search marginalia without walking the tree.
package catalog

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a catalog lookup matches nothing.
var ErrNotFound = errors.New("catalog entry not found")

// Hit kinds returned by Search.
const (
	KindMarginalia = "marginalia"
	KindSection    = "section"
)

// DefaultSearchLimit caps Search results when no limit is given.
const DefaultSearchLimit = 25

// snippetLength bounds the text excerpt attached to a search hit.
const snippetLength = 160

// LegendSummary is one row of the legend listing.
type LegendSummary struct {
	Slug             string `json:"slug"`
	Name             string `json:"name"`
	Archetype        string `json:"archetype"`
	ArchetypeName    string `json:"archetypeName"`
	ArchetypeColor   string `json:"archetypeColor"`
	Industry         string `json:"industry,omitempty"`
	CrossCutting     bool   `json:"crossCutting"`
	Volumes          int    `json:"volumes"`
	TotalReadingTime int    `json:"totalReadingTime"`
}

// ListFilter restricts ListLegends.
type ListFilter struct {
	Archetype    string
	CrossCutting *bool
}

// Hit is a search match inside a volume.
type Hit struct {
	Kind        string `json:"kind"`
	LegendSlug  string `json:"legend"`
	VolumeSlug  string `json:"volume"`
	VolumeTitle string `json:"volumeTitle"`
	ID          string `json:"id"`
	SectionID   string `json:"section"`
	Type        string `json:"type,omitempty"`
	Title       string `json:"title"`
	Snippet     string `json:"snippet,omitempty"`
}

// URL is the dossier link for the hit, anchored at its section.
func (h Hit) URL() string {
	return "/legends/" + h.LegendSlug + "/" + h.VolumeSlug + "#" + h.SectionID
}

// SyncRun records one Sync call.
type SyncRun struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	Legends    int       `json:"legends"`
	Volumes    int       `json:"volumes"`
	Marginalia int       `json:"marginalia"`
}
