package site

import (
	"bytes"
	"encoding/json"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/scholia-labs/scholia/internal/content"
	"github.com/scholia-labs/scholia/internal/marginalia"
	"github.com/scholia-labs/scholia/internal/taxonomy"
)

type layoutData struct {
	SiteTitle   string
	Title       string
	Description string
	Canonical   string
	Active      string
	LiveReload  bool
}

type homeData struct {
	layoutData
	Legends  []*content.Legend
	Analyses []*content.Legend
	Models   []*content.Model
}

type legendsData struct {
	layoutData
	Legends []*content.Legend
}

// volumeEntry is one row of a hub's volume list.
type volumeEntry struct {
	Slug        string
	Title       string
	Subtitle    string
	ReadingTime int
	Available   bool
}

type legendData struct {
	layoutData
	Legend  *content.Legend
	Body    template.HTML
	Entries []volumeEntry
}

type volumeData struct {
	layoutData
	Volume       *content.Volume
	Body         template.HTML
	EmptyHint    string
	ManifestJSON template.JS
}

type archetypeGroup struct {
	Code    string
	Name    string
	Legends []*content.Legend
}

type archetypesData struct {
	layoutData
	Groups   []archetypeGroup
	Analyses []*content.Legend
}

type libraryData struct {
	layoutData
	Models []*content.Model
}

type notFoundData struct {
	layoutData
	Path string
}

func (s *Site) layout(title, description, active, path string) layoutData {
	l := layoutData{
		SiteTitle:   s.opts.Title,
		Title:       title,
		Description: description,
		Active:      active,
		LiveReload:  s.hub != nil,
	}
	if s.opts.BaseURL != "" {
		l.Canonical = strings.TrimRight(s.opts.BaseURL, "/") + path
	}
	return l
}

// Page is one renderable output of the site.
type Page struct {
	// Path is the URL path the page is served at.
	Path string
	// File is the output path used by the static export, relative to the
	// output directory.
	File   string
	Render func(w io.Writer) error
}

// Pages enumerates every page of the current library, including volume
// manifests and the search index.
func (s *Site) Pages() []Page {
	lib := s.Library()

	pages := []Page{
		{Path: "/", Render: func(w io.Writer) error { return s.renderHome(w, lib) }},
		{Path: "/legends", Render: func(w io.Writer) error { return s.renderLegends(w, lib) }},
		{Path: "/archetypes", Render: func(w io.Writer) error { return s.renderArchetypes(w, lib) }},
		{Path: "/library", Render: func(w io.Writer) error { return s.renderLibrary(w, lib) }},
		{Path: "/404", File: "404.html", Render: func(w io.Writer) error { return s.renderNotFound(w, "/404") }},
		{Path: "/search-index.json", File: "search-index.json", Render: func(w io.Writer) error {
			return writeJSON(w, BuildSearchIndex(lib))
		}},
	}

	for _, l := range lib.AllLegends() {
		l := l
		pages = append(pages, Page{
			Path:   "/legends/" + l.Slug,
			Render: func(w io.Writer) error { return s.renderLegend(w, lib, l) },
		})
	}
	for _, v := range lib.Volumes() {
		v := v
		base := "/legends/" + v.LegendSlug + "/" + v.Slug
		pages = append(pages,
			Page{Path: base, Render: func(w io.Writer) error { return s.renderVolume(w, v) }},
			Page{
				Path:   "/api" + base + "/manifest",
				File:   "api" + base + "/manifest.json",
				Render: func(w io.Writer) error { return writeJSON(w, s.Manifest(v)) },
			},
		)
	}

	for i := range pages {
		if pages[i].File == "" {
			pages[i].File = htmlFile(pages[i].Path)
		}
	}
	return pages
}

// htmlFile maps a URL path to a directory index file.
func htmlFile(urlPath string) string {
	p := strings.Trim(urlPath, "/")
	if p == "" {
		return "index.html"
	}
	return p + "/index.html"
}

func (s *Site) renderHome(w io.Writer, lib *content.Library) error {
	return s.pages.render(w, pageHome, homeData{
		layoutData: s.layout("", "Long-form dossiers with marginalia.", "", "/"),
		Legends:    lib.Legends(),
		Analyses:   lib.CrossCutting(),
		Models:     lib.Models(),
	})
}

func (s *Site) renderLegends(w io.Writer, lib *content.Library) error {
	return s.pages.render(w, pageLegends, legendsData{
		layoutData: s.layout("Legends", "", "legends", "/legends"),
		Legends:    lib.Legends(),
	})
}

func (s *Site) renderLegend(w io.Writer, lib *content.Library, l *content.Legend) error {
	entries := make([]volumeEntry, 0, len(l.Volumes))
	listed := make(map[string]bool, len(l.Volumes))
	for _, ref := range l.Volumes {
		listed[ref.Slug] = true
		e := volumeEntry{
			Slug:        ref.Slug,
			Title:       ref.Title,
			Subtitle:    ref.Subtitle,
			ReadingTime: int(ref.ReadingTime),
		}
		if v, err := lib.Volume(l.Slug, ref.Slug); err == nil {
			e.Available = true
			e.Title = v.Title
			e.ReadingTime = v.ReadingTime
			if e.Subtitle == "" {
				e.Subtitle = v.Subtitle
			}
		}
		if e.Title == "" {
			e.Title = ref.Slug
		}
		entries = append(entries, e)
	}
	for _, v := range lib.VolumesOf(l.Slug) {
		if !listed[v.Slug] {
			entries = append(entries, volumeEntry{
				Slug: v.Slug, Title: v.Title, Subtitle: v.Subtitle,
				ReadingTime: v.ReadingTime, Available: true,
			})
		}
	}

	return s.pages.render(w, pageLegend, legendData{
		layoutData: s.layout(l.Name, l.Hook, activeFor(l), "/legends/"+l.Slug),
		Legend:     l,
		Body:       template.HTML(l.BodyHTML),
		Entries:    entries,
	})
}

func (s *Site) renderVolume(w io.Writer, v *content.Volume) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(s.Manifest(v)); err != nil {
		return err
	}
	active := "legends"
	if v.IsCrossCutting() {
		active = "archetypes"
	}
	return s.pages.render(w, pageVolume, volumeData{
		layoutData:   s.layout(v.Title+" · "+v.LegendName, v.Hook, active, "/legends/"+v.LegendSlug+"/"+v.Slug),
		Volume:       v,
		Body:         template.HTML(v.BodyHTML),
		EmptyHint:    marginalia.EmptyHint,
		ManifestJSON: template.JS(bytes.TrimSpace(buf.Bytes())),
	})
}

func (s *Site) renderArchetypes(w io.Writer, lib *content.Library) error {
	index := make(map[string]int)
	var groups []archetypeGroup
	for _, l := range lib.Legends() {
		code := l.Archetype
		if code == "" {
			continue
		}
		i, ok := index[code]
		if !ok {
			i = len(groups)
			index[code] = i
			groups = append(groups, archetypeGroup{Code: code, Name: taxonomy.DisplayName(code)})
		}
		groups[i].Legends = append(groups[i].Legends, l)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })

	return s.pages.render(w, pageArchetypes, archetypesData{
		layoutData: s.layout("Archetypes", "", "archetypes", "/archetypes"),
		Groups:     groups,
		Analyses:   lib.CrossCutting(),
	})
}

func (s *Site) renderLibrary(w io.Writer, lib *content.Library) error {
	return s.pages.render(w, pageLibrary, libraryData{
		layoutData: s.layout("Library", "", "library", "/library"),
		Models:     lib.Models(),
	})
}

func (s *Site) renderNotFound(w io.Writer, path string) error {
	return s.pages.render(w, pageNotFound, notFoundData{
		layoutData: s.layout("Not found", "", "", path),
		Path:       path,
	})
}

func activeFor(l *content.Legend) string {
	if l.IsCrossCutting() {
		return "archetypes"
	}
	return "legends"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
