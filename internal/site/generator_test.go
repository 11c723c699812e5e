package site

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholia-labs/scholia/internal/manifest"
	"github.com/scholia-labs/scholia/internal/progress"
)

func TestGenerate(t *testing.T) {
	public := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(public, "robots.txt"), []byte("User-agent: *\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(public, ".DS_Store"), []byte("junk"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(public, "static"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(public, "static", "reader.wasm"), []byte("wasm"), 0o644))

	s := newTestSite(t, siteOptions{publicDir: public})
	out := t.TempDir()

	var log bytes.Buffer
	g := NewGenerator(s, out)
	g.Reporter = &progress.CIReporter{Out: &log, Label: "Exporting"}
	g.Concurrency = 4

	n, err := g.Generate(context.Background())
	require.NoError(t, err)
	// 4 index pages, 404, search index, 2 hubs, 3 volumes with manifests.
	assert.Equal(t, 14, n)

	for _, rel := range []string{
		"index.html",
		"legends/index.html",
		"archetypes/index.html",
		"library/index.html",
		"404.html",
		"search-index.json",
		"legends/henry-ford/index.html",
		"legends/builders/volume-1/index.html",
		"legends/henry-ford/volume-2/index.html",
		"static/style.css",
		"static/site.js",
		"static/reader.wasm",
		"robots.txt",
	} {
		assert.FileExists(t, filepath.Join(out, filepath.FromSlash(rel)))
	}
	assert.NoFileExists(t, filepath.Join(out, ".DS_Store"))

	data, err := os.ReadFile(filepath.Join(out, "api", "legends", "henry-ford", "volume-1", "manifest.json"))
	require.NoError(t, err)
	m, err := manifest.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "volume-1", m.Volume)

	page, err := os.ReadFile(filepath.Join(out, "legends", "henry-ford", "volume-1", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `id="`+manifest.ElementID+`"`)

	assert.True(t, strings.HasPrefix(log.String(), "Exporting: 14 items\n"))
	assert.Contains(t, log.String(), "[14/14]")
	assert.True(t, strings.HasSuffix(log.String(), "Exporting: complete\n"))
}

func TestGenerateWithoutPublicDir(t *testing.T) {
	s := newTestSite(t, siteOptions{publicDir: filepath.Join(t.TempDir(), "missing")})
	out := filepath.Join(t.TempDir(), "nested", "dist")

	n, err := NewGenerator(s, out).Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 14, n)
	assert.FileExists(t, filepath.Join(out, "index.html"))
}

func TestGenerateCancelled(t *testing.T) {
	s := newTestSite(t, siteOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator(s, t.TempDir()).Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExcluded(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{".DS_Store", true},
		{"img/.DS_Store", true},
		{".git/config", true},
		{"draft.md~", true},
		{"img/cover.png", false},
		{"static/reader.wasm", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, excluded(tt.path, DefaultPublicExcludes), tt.path)
	}
}
