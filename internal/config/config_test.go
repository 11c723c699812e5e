package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ContentDir != "content" {
		t.Errorf("expected default content_dir %q, got %q", "content", cfg.ContentDir)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("expected default output_dir %q, got %q", "dist", cfg.OutputDir)
	}
	if cfg.PublicDir != "public" {
		t.Errorf("expected default public_dir %q, got %q", "public", cfg.PublicDir)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Reader.LookAheadPx != 200 {
		t.Errorf("expected default look-ahead 200, got %v", cfg.Reader.LookAheadPx)
	}
	if cfg.Reader.LastSectionViewports != 2 {
		t.Errorf("expected default last-section viewports 2, got %v", cfg.Reader.LastSectionViewports)
	}
	if cfg.Reader.Fade() != 200*time.Millisecond {
		t.Errorf("expected default fade 200ms, got %v", cfg.Reader.Fade())
	}
	if cfg.Reader.TruncateAt != 280 {
		t.Errorf("expected default truncate_at 280, got %d", cfg.Reader.TruncateAt)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.scholia.yml")

	original := DefaultConfig()
	original.ContentDir = "site/content"
	original.OutputDir = "public"
	original.Site.Title = "Field Notes"
	original.Server.Port = 3000
	original.Server.Watch = true
	original.Reader.LookAheadPx = 120
	original.Reader.FadeMS = 350

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.ContentDir != original.ContentDir {
		t.Errorf("content_dir: got %q, want %q", loaded.ContentDir, original.ContentDir)
	}
	if loaded.OutputDir != original.OutputDir {
		t.Errorf("output_dir: got %q, want %q", loaded.OutputDir, original.OutputDir)
	}
	if loaded.Site.Title != original.Site.Title {
		t.Errorf("site.title: got %q, want %q", loaded.Site.Title, original.Site.Title)
	}
	if loaded.Server.Port != 3000 || !loaded.Server.Watch {
		t.Errorf("server: got %+v", loaded.Server)
	}
	if loaded.Reader != original.Reader {
		t.Errorf("reader: got %+v, want %+v", loaded.Reader, original.Reader)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yml")
	if err := os.WriteFile(path, []byte("reader:\n  fade_ms: 500\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Reader.FadeMS != 500 {
		t.Errorf("fade_ms: got %d, want 500", cfg.Reader.FadeMS)
	}
	if cfg.Reader.TruncateAt != 280 {
		t.Errorf("truncate_at should keep its default, got %d", cfg.Reader.TruncateAt)
	}
	if cfg.ContentDir != "content" {
		t.Errorf("content_dir should keep its default, got %q", cfg.ContentDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(path, []byte("server: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("SCHOLIA_SERVER_PORT", "9090")
	t.Setenv("SCHOLIA_CONTENT_DIR", "elsewhere")
	t.Setenv("SCHOLIA_READER_LOOK_AHEAD_PX", "64")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("env override failed: got port %d, want 9090", loaded.Server.Port)
	}
	if loaded.ContentDir != "elsewhere" {
		t.Errorf("env override failed: got content_dir %q", loaded.ContentDir)
	}
	if loaded.Reader.LookAheadPx != 64 {
		t.Errorf("env override failed: got look-ahead %v", loaded.Reader.LookAheadPx)
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"SCHOLIA_SERVER_PORT", "server.port"},
		{"SCHOLIA_SERVER_ALLOW_ALL_ORIGINS", "server.allow_all_origins"},
		{"SCHOLIA_READER_FADE_MS", "reader.fade_ms"},
		{"SCHOLIA_LOG_LEVEL", "log.level"},
		{"SCHOLIA_SITE_BASE_URL", "site.base_url"},
		{"SCHOLIA_OUTPUT_DIR", "output_dir"},
		{"SCHOLIA_DATA_DIR", "data_dir"},
		{"SCHOLIA_PUBLIC_DIR", "public_dir"},
	}
	for _, tt := range tests {
		if got := envKey(tt.env); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty content dir", func(c *Config) { c.ContentDir = "" }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"negative look-ahead", func(c *Config) { c.Reader.LookAheadPx = -1 }},
		{"zero last-section viewports", func(c *Config) { c.Reader.LastSectionViewports = 0 }},
		{"zero fade", func(c *Config) { c.Reader.FadeMS = 0 }},
		{"zero truncate", func(c *Config) { c.Reader.TruncateAt = 0 }},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestValidateZeroLookAheadAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reader.LookAheadPx = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero look-ahead should be valid, got: %v", err)
	}
}

func TestPromptValidators(t *testing.T) {
	if err := validatePort("8080"); err != nil {
		t.Errorf("validatePort(8080): %v", err)
	}
	if err := validatePort("abc"); err == nil {
		t.Error("validatePort should reject non-numeric input")
	}
	if err := validateCount("0"); err == nil {
		t.Error("validateCount should reject zero")
	}
	if err := validateCount("3"); err != nil {
		t.Errorf("validateCount(3): %v", err)
	}
	if err := required("name")("  "); err == nil {
		t.Error("required should reject blank input")
	}
}

func TestDetectContentDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "site", "content"), 0755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	if got := detectContentDir(); got != "site/content" {
		t.Errorf("detectContentDir() = %q, want %q", got, "site/content")
	}
}
