// Package scroll derives the reader's position in a long-form document from
// viewport geometry: the active section, the fractional progress through it
// and the annotation band that progress falls into.
package scroll

import (
	"math"

	"github.com/scholia-labs/scholia/internal/sections"
)

// Default tuning for the tracker. Both are empirical heuristics.
const (
	DefaultLookAhead            = 200.0
	DefaultLastSectionViewports = 2.0
)

// Config holds the tunable heuristics of the tracker.
type Config struct {
	// LookAhead is how far (in pixels) past a heading the reader must scroll
	// before its section counts as entered.
	LookAhead float64
	// LastSectionViewports sizes the synthetic extent of the final section,
	// in multiples of the viewport height.
	LastSectionViewports float64
}

// DefaultConfig returns the stock tracker tuning.
func DefaultConfig() Config {
	return Config{
		LookAhead:            DefaultLookAhead,
		LastSectionViewports: DefaultLastSectionViewports,
	}
}

// Marker is the vertical page offset of a section heading.
type Marker struct {
	ID     string
	Offset float64
}

// SectionNotes describes how many annotations each section carries and
// their ids in authored order. IDs may be shorter than Counts suggests.
type SectionNotes struct {
	Counts map[string]int
	IDs    map[string][]string
}

// State is the derived reading position. An empty ActiveSectionID means no
// section markers have been observed yet; sections.IntroID means the reader
// is above the first heading. An empty ActiveAnnotationID means no
// annotation applies.
type State struct {
	ActiveSectionID       string  `json:"activeSectionId"`
	SectionProgress       float64 `json:"sectionProgress"`
	ActiveAnnotationIndex int     `json:"activeAnnotationIndex"`
	ActiveAnnotationID    string  `json:"activeAnnotationId"`
}

// InIntro reports whether the reader is above the first section heading.
func (s State) InIntro() bool { return s.ActiveSectionID == sections.IntroID }

// Snapshot is one reading of the viewport geometry.
type Snapshot struct {
	Markers        []Marker
	ScrollY        float64
	ViewportHeight float64
}

// Compute derives a State from a geometry snapshot. It returns false when the
// snapshot holds no markers, in which case callers keep their previous state.
func Compute(cfg Config, snap Snapshot, notes SectionNotes) (State, bool) {
	n := len(snap.Markers)
	if n == 0 {
		return State{}, false
	}

	probe := snap.ScrollY + cfg.LookAhead

	active := -1
	for i := n - 1; i >= 0; i-- {
		if snap.Markers[i].Offset <= probe {
			active = i
			break
		}
	}

	var (
		id         string
		start, end float64
	)
	switch {
	case active < 0:
		id = sections.IntroID
		start, end = 0, snap.Markers[0].Offset
	case active == n-1:
		id = snap.Markers[active].ID
		start = snap.Markers[active].Offset
		end = start + cfg.LastSectionViewports*snap.ViewportHeight
	default:
		id = snap.Markers[active].ID
		start = snap.Markers[active].Offset
		end = snap.Markers[active+1].Offset
	}

	st := State{
		ActiveSectionID: id,
		SectionProgress: progress(probe, start, end),
	}
	st.ActiveAnnotationIndex, st.ActiveAnnotationID = band(st.SectionProgress, notes.Counts[id], notes.IDs[id])
	return st, true
}

// progress is the clamped fraction of [start, end) covered by probe.
func progress(probe, start, end float64) float64 {
	p := (probe - start) / math.Max(end-start, 1)
	if math.IsNaN(p) {
		return 0
	}
	return math.Min(math.Max(p, 0), 1)
}

// band splits progress into k equal bands, the last absorbing progress == 1.
func band(p float64, k int, ids []string) (int, string) {
	if k <= 0 {
		return 0, ""
	}
	idx := int(math.Floor(p * float64(k)))
	if idx > k-1 {
		idx = k - 1
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(ids) {
		return idx, ""
	}
	return idx, ids[idx]
}
