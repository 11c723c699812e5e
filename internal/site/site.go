// Package site renders the editorial site: HTML pages for legends, volumes
// and the library, the JSON manifest each dossier hands to the reader, and
// a static export of all of it.
package site

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/scholia-labs/scholia/internal/catalog"
	"github.com/scholia-labs/scholia/internal/content"
	"github.com/scholia-labs/scholia/internal/manifest"
)

// Options configures a Site.
type Options struct {
	Title     string
	BaseURL   string
	PublicDir string
	Reader    manifest.ReaderSettings
	// LiveReload adds the reload client to every page.
	LiveReload bool
}

// Loader produces a fresh content library.
type Loader interface {
	Load(ctx context.Context) (*content.Library, error)
}

// Site holds the current content library and renders pages from it. The
// library is swapped atomically on Reload, so requests never see a
// half-loaded tree.
type Site struct {
	opts   Options
	loader Loader
	store  *catalog.Store
	hub    *Hub
	logger *zap.Logger
	pages  *templates
	lib    atomic.Pointer[content.Library]
}

// New creates a Site. store may be nil, in which case search runs over an
// in-memory index of the library.
func New(opts Options, loader Loader, store *catalog.Store, logger *zap.Logger) (*Site, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Title == "" {
		opts.Title = "Scholia"
	}
	if opts.Reader == (manifest.ReaderSettings{}) {
		opts.Reader = manifest.DefaultReaderSettings()
	}
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	s := &Site{
		opts:   opts,
		loader: loader,
		store:  store,
		logger: logger,
		pages:  pages,
	}
	if opts.LiveReload {
		s.hub = NewHub(logger)
	}
	s.lib.Store(&content.Library{})
	return s, nil
}

// Library returns the current library snapshot.
func (s *Site) Library() *content.Library { return s.lib.Load() }

// SetLibrary replaces the current library.
func (s *Site) SetLibrary(lib *content.Library) { s.lib.Store(lib) }

// Hub returns the live-reload hub, or nil when live reload is off.
func (s *Site) Hub() *Hub { return s.hub }

// Reload loads the content tree, syncs the catalog and swaps the library.
// On error the previous library stays in place.
func (s *Site) Reload(ctx context.Context) error {
	if s.loader == nil {
		return fmt.Errorf("site has no content loader")
	}
	lib, err := s.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	if s.store != nil {
		run, err := s.store.Sync(ctx, lib)
		if err != nil {
			return fmt.Errorf("syncing catalog: %w", err)
		}
		s.logger.Debug("catalog synced",
			zap.String("run", run.ID),
			zap.Int("legends", run.Legends),
			zap.Int("volumes", run.Volumes),
			zap.Int("marginalia", run.Marginalia))
	}
	s.SetLibrary(lib)
	return nil
}

// Manifest builds the reader manifest for one volume.
func (s *Site) Manifest(v *content.Volume) manifest.Manifest {
	return manifest.New(v.LegendSlug, v.Slug, v.Title, v.Sections, v.Marginalia, s.opts.Reader)
}
