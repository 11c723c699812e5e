// Package sections assigns stable identifiers to the titled regions of a
// long-form document and resolves display titles back to those identifiers.
package sections

import "strings"

// IntroID is the sentinel section id for the region above the first heading.
const IntroID = "intro"

// Section is a titled, anchorable region of a document.
type Section struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Registry holds the ordered sections of one document. It is read-only after
// Build and safe for concurrent use.
type Registry struct {
	sections  []Section
	titleToID map[string]string
}

// Build creates a Registry preserving input order. Duplicate titles are
// allowed; the last one wins in the title lookup.
func Build(sections []Section) *Registry {
	r := &Registry{
		sections:  make([]Section, len(sections)),
		titleToID: make(map[string]string, len(sections)),
	}
	copy(r.sections, sections)
	for _, s := range sections {
		r.titleToID[titleKey(s.Title)] = s.ID
	}
	return r
}

// Resolve returns the id registered for title (case- and
// whitespace-insensitive), falling back to Normalize(title).
func (r *Registry) Resolve(title string) string {
	if r != nil {
		if id, ok := r.titleToID[titleKey(title)]; ok {
			return id
		}
	}
	return Normalize(title)
}

// Sections returns a copy of the registered sections in document order.
func (r *Registry) Sections() []Section {
	if r == nil {
		return nil
	}
	out := make([]Section, len(r.sections))
	copy(out, r.sections)
	return out
}

// IDs returns the registered section ids in document order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, len(r.sections))
	for i, s := range r.sections {
		ids[i] = s.ID
	}
	return ids
}

// Has reports whether id belongs to a registered section.
func (r *Registry) Has(id string) bool {
	if r == nil {
		return false
	}
	for _, s := range r.sections {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of registered sections.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.sections)
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
