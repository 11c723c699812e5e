package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/scholia-labs/scholia/internal/catalog"
	"github.com/scholia-labs/scholia/internal/config"
	"github.com/scholia-labs/scholia/internal/content"
	"github.com/scholia-labs/scholia/internal/db"
	"github.com/scholia-labs/scholia/internal/manifest"
	"github.com/scholia-labs/scholia/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `scholia init` to create a config file", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return c, nil
}

// readerSettings converts the reader config into the manifest form sent to
// the browser.
func readerSettings(r config.ReaderConfig) manifest.ReaderSettings {
	return manifest.ReaderSettings{
		LookAheadPx:          r.LookAheadPx,
		LastSectionViewports: r.LastSectionViewports,
		FadeMS:               r.FadeMS,
		TruncateAt:           r.TruncateAt,
	}
}

func newLoader() *content.Loader {
	return content.NewLoader(cfg.ContentDir, content.NewRenderer(), logger)
}

// newSite builds a Site over the configured content directory and loads it.
// store may be nil.
func newSite(store *catalog.Store, liveReload bool) (*site.Site, error) {
	if _, err := os.Stat(cfg.ContentDir); err != nil {
		return nil, fmt.Errorf("content directory %s: %w", cfg.ContentDir, err)
	}
	return site.New(site.Options{
		Title:      cfg.Site.Title,
		BaseURL:    cfg.Site.BaseURL,
		PublicDir:  cfg.PublicDir,
		Reader:     readerSettings(cfg.Reader),
		LiveReload: liveReload,
	}, newLoader(), store, logger)
}

// openCatalog opens the SQLite catalog under the data directory.
func openCatalog() (*db.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return db.Open(filepath.Join(cfg.DataDir, "catalog.db"))
}
