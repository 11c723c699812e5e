package site

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scholia-labs/scholia/internal/progress"
)

// DefaultPublicExcludes are never copied from the public directory.
var DefaultPublicExcludes = []string{
	"**/.DS_Store",
	"**/.git/**",
	"**/*.swp",
	"**/*~",
}

// Generator exports a Site as static files.
type Generator struct {
	Site      *Site
	OutputDir string
	// PublicDir is copied verbatim into the output after the pages, so a
	// built reader.wasm or extra images ride along.
	PublicDir   string
	Exclude     []string
	Reporter    progress.Reporter
	Concurrency int
	Logger      *zap.Logger
}

// NewGenerator creates a Generator writing s into outputDir.
func NewGenerator(s *Site, outputDir string) *Generator {
	return &Generator{
		Site:        s,
		OutputDir:   outputDir,
		PublicDir:   s.opts.PublicDir,
		Exclude:     DefaultPublicExcludes,
		Reporter:    progress.Nop{},
		Concurrency: runtime.NumCPU(),
		Logger:      s.logger,
	}
}

// Generate writes every page, the static assets and the public directory.
// It returns the number of pages written.
func (g *Generator) Generate(ctx context.Context) (int, error) {
	if g.OutputDir == "" {
		return 0, fmt.Errorf("no output directory")
	}
	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}
	logger := g.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output dir: %w", err)
	}

	pages := g.Site.Pages()
	reporter.Start(len(pages))

	eg, ctx := errgroup.WithContext(ctx)
	if g.Concurrency > 0 {
		eg.SetLimit(g.Concurrency)
	}
	done := make(chan string)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		n := 0
		for p := range done {
			n++
			reporter.Update(n, p)
		}
	}()

	for _, p := range pages {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := g.writePage(p); err != nil {
				return fmt.Errorf("writing %s: %w", p.Path, err)
			}
			done <- p.Path
			return nil
		})
	}
	err := eg.Wait()
	close(done)
	<-drained
	if err != nil {
		return 0, err
	}

	assets := map[string]string{
		"static/style.css": cssContent,
		"static/site.js":   jsContent,
	}
	for name, body := range assets {
		if err := writeFile(filepath.Join(g.OutputDir, filepath.FromSlash(name)), []byte(body)); err != nil {
			return 0, err
		}
	}

	copied, err := g.copyPublic()
	if err != nil {
		return 0, fmt.Errorf("copying public dir: %w", err)
	}
	reporter.Finish()

	logger.Info("site exported",
		zap.String("output", g.OutputDir),
		zap.Int("pages", len(pages)),
		zap.Int("public_files", copied))
	return len(pages), nil
}

func (g *Generator) writePage(p Page) error {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return err
	}
	return writeFile(filepath.Join(g.OutputDir, filepath.FromSlash(p.File)), buf.Bytes())
}

// copyPublic mirrors PublicDir into the output. A missing directory is not
// an error.
func (g *Generator) copyPublic() (int, error) {
	if g.PublicDir == "" {
		return 0, nil
	}
	info, err := os.Stat(g.PublicDir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s is not a directory", g.PublicDir)
	}

	copied := 0
	err = filepath.WalkDir(g.PublicDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(g.PublicDir, path)
		if err != nil {
			return err
		}
		if d.IsDir() || excluded(rel, g.Exclude) {
			return nil
		}
		copied++
		return copyFile(path, filepath.Join(g.OutputDir, rel))
	})
	return copied, err
}

// excluded reports whether relPath matches any of the glob patterns.
func excluded(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(filepath.ToSlash(pattern), normalized); err == nil && matched {
			return true
		}
	}
	return false
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
