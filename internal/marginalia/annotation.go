// Package marginalia selects and presents the single side-note shown next
// to the section the reader is in.
package marginalia

import "github.com/scholia-labs/scholia/internal/scroll"

// Annotation is one authored side-note attached to a section.
type Annotation struct {
	ID        string `json:"id" yaml:"id"`
	SectionID string `json:"section" yaml:"section"`
	Type      string `json:"type" yaml:"type"`
	Title     string `json:"title" yaml:"title"`
	Content   string `json:"content" yaml:"content"`
}

// Index groups a document's annotations by section, preserving authored
// order within each section.
type Index struct {
	items     []Annotation
	bySection map[string][]Annotation
	byID      map[string]int
}

// NewIndex builds an Index. When ids repeat, Lookup returns the first.
func NewIndex(items []Annotation) *Index {
	x := &Index{
		items:     make([]Annotation, len(items)),
		bySection: make(map[string][]Annotation),
		byID:      make(map[string]int, len(items)),
	}
	copy(x.items, items)
	for i, a := range x.items {
		x.bySection[a.SectionID] = append(x.bySection[a.SectionID], a)
		if _, dup := x.byID[a.ID]; !dup {
			x.byID[a.ID] = i
		}
	}
	return x
}

// All returns every annotation in authored order.
func (x *Index) All() []Annotation {
	out := make([]Annotation, len(x.items))
	copy(out, x.items)
	return out
}

// ForSection returns the annotations of one section in authored order.
func (x *Index) ForSection(sectionID string) []Annotation {
	return x.bySection[sectionID]
}

// Lookup finds an annotation by id.
func (x *Index) Lookup(id string) (Annotation, bool) {
	i, ok := x.byID[id]
	if !ok {
		return Annotation{}, false
	}
	return x.items[i], true
}

// At returns the n-th annotation of a section.
func (x *Index) At(sectionID string, n int) (Annotation, bool) {
	list := x.bySection[sectionID]
	if n < 0 || n >= len(list) {
		return Annotation{}, false
	}
	return list[n], true
}

// Position reports a's 0-based place among its section's annotations and
// the section total. The position is -1 when a is not indexed.
func (x *Index) Position(a Annotation) (pos, total int) {
	list := x.bySection[a.SectionID]
	for i, item := range list {
		if item.ID == a.ID {
			return i, len(list)
		}
	}
	return -1, len(list)
}

// SectionNotes exports per-section counts and ids for the scroll tracker.
func (x *Index) SectionNotes() scroll.SectionNotes {
	notes := scroll.SectionNotes{
		Counts: make(map[string]int, len(x.bySection)),
		IDs:    make(map[string][]string, len(x.bySection)),
	}
	for section, list := range x.bySection {
		notes.Counts[section] = len(list)
		ids := make([]string, len(list))
		for i, a := range list {
			ids[i] = a.ID
		}
		notes.IDs[section] = ids
	}
	return notes
}

// Sections lists the distinct section ids that carry annotations, in order
// of first appearance.
func (x *Index) Sections() []string {
	seen := make(map[string]bool, len(x.bySection))
	var out []string
	for _, a := range x.items {
		if !seen[a.SectionID] {
			seen[a.SectionID] = true
			out = append(out, a.SectionID)
		}
	}
	return out
}
