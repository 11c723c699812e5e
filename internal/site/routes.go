package site

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/scholia-labs/scholia/internal/catalog"
	"github.com/scholia-labs/scholia/internal/content"
)

// RequestTimeout bounds page and API handlers. The live-reload socket is
// long-lived and sits outside it.
const RequestTimeout = 30 * time.Second

// RegisterRoutes mounts the site on r.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(RequestTimeout))

		r.Get("/", s.handlePage(func(w io.Writer, _ *http.Request) error {
			return s.renderHome(w, s.Library())
		}))
		r.Get("/legends", s.handlePage(func(w io.Writer, _ *http.Request) error {
			return s.renderLegends(w, s.Library())
		}))
		r.Get("/legends/{slug}", s.handlePage(func(w io.Writer, r *http.Request) error {
			lib := s.Library()
			l, err := lib.Legend(chi.URLParam(r, "slug"))
			if err != nil {
				return err
			}
			return s.renderLegend(w, lib, l)
		}))
		r.Get("/legends/{slug}/{volume}", s.handlePage(func(w io.Writer, r *http.Request) error {
			v, err := s.Library().Volume(chi.URLParam(r, "slug"), chi.URLParam(r, "volume"))
			if err != nil {
				return err
			}
			return s.renderVolume(w, v)
		}))
		r.Get("/archetypes", s.handlePage(func(w io.Writer, _ *http.Request) error {
			return s.renderArchetypes(w, s.Library())
		}))
		r.Get("/library", s.handlePage(func(w io.Writer, _ *http.Request) error {
			return s.renderLibrary(w, s.Library())
		}))

		r.Route("/api", func(r chi.Router) {
			r.Get("/legends", s.handleListLegends)
			r.Get("/legends/{slug}/{volume}/manifest", s.handleManifest)
			r.Get("/search", s.handleSearch)
		})
		r.Get("/search-index.json", func(w http.ResponseWriter, r *http.Request) {
			s.writeJSONResponse(w, http.StatusOK, BuildSearchIndex(s.Library()))
		})

		r.Get("/static/style.css", serveAsset("text/css; charset=utf-8", cssContent))
		r.Get("/static/site.js", serveAsset("text/javascript; charset=utf-8", jsContent))
	})
	r.NotFound(s.handleNotFound)

	if s.hub != nil {
		r.Handle("/livereload", s.hub)
	}
}

// handlePage buffers a render so a failure can still produce a clean
// error response.
func (s *Site) handlePage(render func(w io.Writer, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := render(&buf, r); err != nil {
			if errors.Is(err, content.ErrNotFound) {
				s.writeNotFound(w, r)
				return
			}
			s.logger.Error("rendering page", zap.String("path", r.URL.Path), zap.Error(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = buf.WriteTo(w)
	}
}

func (s *Site) handleManifest(w http.ResponseWriter, r *http.Request) {
	v, err := s.Library().Volume(chi.URLParam(r, "slug"), chi.URLParam(r, "volume"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, s.Manifest(v))
}

type legendsResponse struct {
	Legends []catalog.LegendSummary `json:"legends"`
}

func (s *Site) handleListLegends(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSONResponse(w, http.StatusServiceUnavailable, errorResponse{Error: "catalog unavailable"})
		return
	}
	var filter catalog.ListFilter
	filter.Archetype = r.URL.Query().Get("archetype")
	if raw := r.URL.Query().Get("crossCutting"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "crossCutting must be a boolean"})
			return
		}
		filter.CrossCutting = &b
	}
	legends, err := s.store.ListLegends(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if legends == nil {
		legends = []catalog.LegendSummary{}
	}
	s.writeJSONResponse(w, http.StatusOK, legendsResponse{Legends: legends})
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

type searchResult struct {
	catalog.Hit
	URL string `json:"url"`
}

func (s *Site) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		s.writeJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}
	limit := catalog.DefaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeJSONResponse(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = min(n, 100)
	}

	var hits []catalog.Hit
	if s.store != nil {
		var err error
		hits, err = s.store.Search(r.Context(), q, limit)
		if err != nil {
			s.writeError(w, err)
			return
		}
	} else {
		hits = searchEntries(BuildSearchIndex(s.Library()), q, limit)
	}

	resp := searchResponse{Query: q, Results: make([]searchResult, len(hits))}
	for i, h := range hits {
		resp.Results[i] = searchResult{Hit: h, URL: h.URL()}
	}
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// handleNotFound serves a file from the public directory when one matches,
// and the 404 page otherwise.
func (s *Site) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.publicFile(r.URL.Path); ok {
		http.ServeFile(w, r, p)
		return
	}
	s.writeNotFound(w, r)
}

func (s *Site) publicFile(urlPath string) (string, bool) {
	if s.opts.PublicDir == "" {
		return "", false
	}
	rel := filepath.FromSlash(strings.TrimPrefix(filepath.ToSlash(filepath.Clean("/"+urlPath)), "/"))
	if rel == "" || rel == "." {
		return "", false
	}
	p := filepath.Join(s.opts.PublicDir, rel)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", false
	}
	return p, true
}

func (s *Site) writeNotFound(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.renderNotFound(&buf, r.URL.Path); err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = buf.WriteTo(w)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Site) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, content.ErrNotFound) || errors.Is(err, catalog.ErrNotFound) {
		s.writeJSONResponse(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}
	s.logger.Error("api request failed", zap.Error(err))
	s.writeJSONResponse(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func (s *Site) writeJSONResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := writeJSON(w, v); err != nil {
		s.logger.Debug("writing response", zap.Error(err))
	}
}

func serveAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = io.WriteString(w, body)
	}
}
