package content

import (
	"fmt"

	"github.com/scholia-labs/scholia/internal/sections"
)

// Problem is a content inconsistency reported by Validate.
type Problem struct {
	Path    string
	Message string
}

func (p Problem) String() string { return p.Path + ": " + p.Message }

// Validate reports cross-reference problems in a loaded library: marginalia
// pointing at unknown sections, duplicate ids, undeclared section headings
// and hub/volume mismatches.
func Validate(lib *Library) []Problem {
	var problems []Problem

	for _, v := range lib.Volumes() {
		reg := v.Registry()

		seenSection := make(map[string]bool, len(v.Sections))
		for _, s := range v.Sections {
			if seenSection[s.ID] {
				problems = append(problems, Problem{v.Path, fmt.Sprintf("duplicate section id %q", s.ID)})
			}
			seenSection[s.ID] = true
		}
		for _, h := range v.undeclared {
			problems = append(problems, Problem{v.Path, fmt.Sprintf("section heading %q (%s) is not declared in front matter", h.Title, h.ID)})
		}

		seenNote := make(map[string]bool, len(v.Marginalia))
		for _, m := range v.Marginalia {
			if seenNote[m.ID] {
				problems = append(problems, Problem{v.Path, fmt.Sprintf("duplicate marginalia id %q", m.ID)})
			}
			seenNote[m.ID] = true
			if m.SectionID != sections.IntroID && !reg.Has(m.SectionID) {
				problems = append(problems, Problem{v.Path, fmt.Sprintf("marginalia %q references unknown section %q", m.ID, m.SectionID)})
			}
		}

		hub, err := lib.Legend(v.LegendSlug)
		if err != nil {
			problems = append(problems, Problem{v.Path, fmt.Sprintf("no index for legend %q", v.LegendSlug)})
			continue
		}
		listed := false
		for _, ref := range hub.Volumes {
			if ref.Slug == v.Slug {
				listed = true
				break
			}
		}
		if !listed {
			problems = append(problems, Problem{v.Path, fmt.Sprintf("volume %q is not listed in the legend index", v.Slug)})
		}
	}

	for _, l := range lib.AllLegends() {
		for _, ref := range l.Volumes {
			if _, err := lib.Volume(l.Slug, ref.Slug); err != nil {
				problems = append(problems, Problem{"legends/" + l.Slug, fmt.Sprintf("listed volume %q has no file", ref.Slug)})
			}
		}
	}
	return problems
}
