package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scholia-labs/scholia/internal/marginalia"
	"github.com/scholia-labs/scholia/internal/sections"
)

// Glob patterns relative to the content root.
const (
	LegendIndexPattern = "legends/*/index.{md,mdx}"
	VolumePattern      = "legends/*/volume-*.{md,mdx}"
	ModelPattern       = "library/*.{md,mdx}"
)

var marginaliaNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(deterministicIDNamespace))

// Loader reads a content tree into a Library.
type Loader struct {
	fsys     fs.FS
	renderer *Renderer
	logger   *zap.Logger
}

// NewLoader creates a Loader over the directory root.
func NewLoader(root string, renderer *Renderer, logger *zap.Logger) *Loader {
	return NewFSLoader(os.DirFS(root), renderer, logger)
}

// NewFSLoader creates a Loader over an arbitrary file system.
func NewFSLoader(fsys fs.FS, renderer *Renderer, logger *zap.Logger) *Loader {
	if renderer == nil {
		renderer = NewRenderer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fsys: fsys, renderer: renderer, logger: logger}
}

// Load reads every legend, volume and library entry. Files that fail to parse
// are logged and skipped; only file system errors abort the load.
func (l *Loader) Load(ctx context.Context) (*Library, error) {
	lib := newLibrary()

	indexPaths, err := doublestar.Glob(l.fsys, LegendIndexPattern)
	if err != nil {
		return nil, fmt.Errorf("listing legends: %w", err)
	}
	sort.Strings(indexPaths)
	for _, p := range indexPaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		legend, err := l.loadLegend(p)
		if err != nil {
			l.logger.Warn("skipping legend", zap.String("path", p), zap.Error(err))
			continue
		}
		lib.addLegend(legend)
	}

	volumePaths, err := doublestar.Glob(l.fsys, VolumePattern)
	if err != nil {
		return nil, fmt.Errorf("listing volumes: %w", err)
	}
	sort.Strings(volumePaths)
	for _, p := range volumePaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		slug := path.Base(path.Dir(p))
		vol, err := l.loadVolume(p, lib.bySlug[slug])
		if err != nil {
			l.logger.Warn("skipping volume", zap.String("path", p), zap.Error(err))
			continue
		}
		lib.addVolume(vol)
	}
	lib.linkVolumes()

	modelPaths, err := doublestar.Glob(l.fsys, ModelPattern)
	if err != nil {
		return nil, fmt.Errorf("listing library: %w", err)
	}
	sort.Strings(modelPaths)
	for _, p := range modelPaths {
		m, err := l.loadModel(p)
		if err != nil {
			l.logger.Warn("skipping library entry", zap.String("path", p), zap.Error(err))
			continue
		}
		lib.models = append(lib.models, m)
	}

	l.logger.Debug("content loaded",
		zap.Int("legends", len(lib.legends)),
		zap.Int("volumes", len(lib.volumes)),
		zap.Int("models", len(lib.models)))
	return lib, nil
}

func (l *Loader) loadLegend(p string) (*Legend, error) {
	src, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, err
	}
	fm, body := SplitFrontMatter(src)
	var raw legendFrontMatter
	if err := decodeFrontMatter(fm, &raw); err != nil {
		return nil, err
	}

	slug := path.Base(path.Dir(p))
	legend := &Legend{
		Slug:                slug,
		Name:                firstNonEmpty(raw.Legend, slug),
		Subtitle:            raw.Subtitle,
		Dates:               raw.Dates,
		Archetype:           raw.Archetype,
		SecondaryArchetypes: nonNil(raw.SecondaryArchetypes),
		Industry:            raw.Industry,
		CoverImage:          raw.CoverImage,
		IconImage:           raw.IconImage,
		CoverQuote:          firstNonEmpty(raw.CoverQuote, raw.Quote),
		QuoteAttribution:    raw.QuoteAttribution,
		Hook:                firstNonEmpty(raw.Hook, raw.Introduction),
		CentralQuestion:     raw.CentralQuestion,
		TotalReadingTime:    int(raw.TotalReadingTime),
		Volumes:             raw.Volumes,
	}
	if legend.Volumes == nil {
		legend.Volumes = []VolumeRef{}
	}
	legend.ArchetypeColor = raw.ArchetypeColor
	if legend.ArchetypeColor == "" {
		legend.ArchetypeColor = DefaultArchetypeColor
		if legend.IsCrossCutting() {
			legend.ArchetypeColor = CrossCuttingColor
		}
	}

	rendered, err := l.renderer.Render(body, nil)
	if err != nil {
		return nil, err
	}
	legend.BodyHTML = rendered.HTML
	return legend, nil
}

func (l *Loader) loadVolume(p string, hub *Legend) (*Volume, error) {
	src, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, err
	}
	fm, body := SplitFrontMatter(src)
	var raw volumeFrontMatter
	if err := decodeFrontMatter(fm, &raw); err != nil {
		return nil, err
	}

	legendSlug := path.Base(path.Dir(p))
	name := path.Base(p)
	slug := strings.TrimSuffix(name, path.Ext(name))

	var ref VolumeRef
	if hub != nil {
		for _, r := range hub.Volumes {
			if r.Slug == slug {
				ref = r
				break
			}
		}
	}

	vol := &Volume{
		LegendSlug:          legendSlug,
		Slug:                slug,
		Title:               firstNonEmpty(ref.Title, raw.Title, slug),
		Subtitle:            firstNonEmpty(raw.Subtitle, ref.Subtitle),
		Quote:               raw.Quote,
		QuoteAttribution:    raw.QuoteAttribution,
		PDFURL:              raw.PDFURL,
		Hook:                raw.Hook,
		Archetype:           raw.Archetype,
		SecondaryArchetypes: nonNil(raw.SecondaryArchetypes),
		Motifs:              nonNil(raw.Motifs),
		Sources:             raw.Sources,
		Path:                p,
	}
	if vol.Sources == nil {
		vol.Sources = []Source{}
	}

	vol.Disciplines = raw.Disciplines
	if len(vol.Disciplines) == 0 {
		vol.Disciplines = ref.Disciplines
	}
	vol.Disciplines = nonNil(vol.Disciplines)

	vol.ReadingTime = int(raw.ReadingTime)
	if vol.ReadingTime <= 0 {
		vol.ReadingTime = int(ref.ReadingTime)
	}
	if vol.ReadingTime <= 0 {
		vol.ReadingTime = DefaultReadingTime
	}

	vol.CoverImage = raw.CoverImage
	if vol.CoverImage == "" {
		vol.CoverImage = fmt.Sprintf(coverImagePathFormat, legendSlug, legendSlug, slug)
	}

	var hubName, hubDates, hubIndustry, hubColor string
	if hub != nil {
		hubName, hubDates, hubIndustry, hubColor = hub.Name, hub.Dates, hub.Industry, hub.ArchetypeColor
	}
	vol.LegendName = firstNonEmpty(raw.LegendName, raw.Title, hubName, DefaultLegendName)
	vol.Dates = firstNonEmpty(raw.Dates, hubDates)
	vol.Industry = firstNonEmpty(raw.Industry, hubIndustry)
	vol.ArchetypeColor = firstNonEmpty(raw.ArchetypeColor, hubColor, DefaultArchetypeColor)

	for _, s := range raw.Sections {
		if s.ID == "" {
			s.ID = sections.Normalize(s.Title)
		}
		vol.Sections = append(vol.Sections, sections.Section{ID: s.ID, Title: s.Title})
	}

	vol.Marginalia = make([]marginalia.Annotation, 0, len(raw.Marginalia))
	for _, m := range raw.Marginalia {
		id := m.ID
		if id == "" {
			id = annotationID(m)
		}
		vol.Marginalia = append(vol.Marginalia, marginalia.Annotation{
			ID:        id,
			SectionID: m.Section,
			Type:      m.Type,
			Title:     m.Title,
			Content:   m.Content,
		})
	}

	rendered, err := l.renderer.Render(body, sections.Build(vol.Sections))
	if err != nil {
		return nil, err
	}
	vol.BodyHTML = rendered.HTML
	vol.Sections, vol.undeclared = mergeHeadings(vol.Sections, rendered.Headings)
	if vol.Sections == nil {
		vol.Sections = []sections.Section{}
	}
	vol.registry = sections.Build(vol.Sections)
	vol.index = marginalia.NewIndex(vol.Marginalia)
	return vol, nil
}

func (l *Loader) loadModel(p string) (*Model, error) {
	src, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, err
	}
	fm, _ := SplitFrontMatter(src)
	var raw modelFrontMatter
	if err := decodeFrontMatter(fm, &raw); err != nil {
		return nil, err
	}
	name := path.Base(p)
	slug := strings.TrimSuffix(name, path.Ext(name))
	return &Model{
		Slug:    slug,
		Title:   firstNonEmpty(raw.Title, slug),
		Summary: raw.Summary,
		Status:  raw.Status,
	}, nil
}

// mergeHeadings appends rendered section headings missing from the declared
// list, in body order, so the outline matches the rendered markers. With
// nothing declared the headings are the outline and none count as undeclared.
func mergeHeadings(declared, rendered []sections.Section) (merged, undeclared []sections.Section) {
	if len(declared) == 0 {
		return rendered, nil
	}
	merged = declared
	seen := make(map[string]bool, len(declared))
	for _, s := range declared {
		seen[s.ID] = true
	}
	for _, h := range rendered {
		if seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		merged = append(merged, h)
		undeclared = append(undeclared, h)
	}
	return merged, undeclared
}

// annotationID derives a stable id for a marginalia record authored without one.
func annotationID(m marginaliaFrontMatter) string {
	key := m.Section + "\x00" + m.Title + "\x00" + m.Content
	return uuid.NewSHA1(marginaliaNamespace, []byte(key)).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
