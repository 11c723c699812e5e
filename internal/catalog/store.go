package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scholia-labs/scholia/internal/content"
	"github.com/scholia-labs/scholia/internal/db"
	"github.com/scholia-labs/scholia/internal/marginalia"
	"github.com/scholia-labs/scholia/internal/taxonomy"
)

// Store reads and replaces the catalog tables.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Sync replaces the catalog with the contents of lib in one transaction.
func (s *Store) Sync(ctx context.Context, lib *content.Library) (*SyncRun, error) {
	run := &SyncRun{ID: uuid.New().String(), StartedAt: time.Now().UTC()}

	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM legends`); err != nil {
			return fmt.Errorf("clearing legends: %w", err)
		}
		// Volumes whose hub is missing have no legend row to cascade from.
		if _, err := tx.ExecContext(ctx, `DELETE FROM volumes`); err != nil {
			return fmt.Errorf("clearing volumes: %w", err)
		}

		for _, l := range lib.AllLegends() {
			if err := insertLegend(ctx, tx, l); err != nil {
				return err
			}
			run.Legends++
		}

		for _, l := range lib.AllLegends() {
			for pos, v := range lib.VolumesOf(l.Slug) {
				if err := insertVolume(ctx, tx, v, pos); err != nil {
					return err
				}
				run.Volumes++
				run.Marginalia += len(v.Marginalia)
			}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO sync_runs (id, started_at, legends, volumes, marginalia)
			VALUES (?, ?, ?, ?, ?)`,
			run.ID, run.StartedAt.Format(time.DateTime), run.Legends, run.Volumes, run.Marginalia)
		if err != nil {
			return fmt.Errorf("recording sync run: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

func insertLegend(ctx context.Context, tx *sql.Tx, l *content.Legend) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO legends (
			slug, name, subtitle, dates, archetype, archetype_color,
			industry, hook, cross_cutting, total_reading_time
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.Slug, l.Name, l.Subtitle, l.Dates, l.Archetype, l.ArchetypeColor,
		l.Industry, l.Hook, boolInt(l.IsCrossCutting()), l.TotalReadingTime,
	)
	if err != nil {
		return fmt.Errorf("inserting legend %s: %w", l.Slug, err)
	}
	return nil
}

func insertVolume(ctx context.Context, tx *sql.Tx, v *content.Volume, pos int) error {
	disciplines, err := json.Marshal(v.Disciplines)
	if err != nil {
		return fmt.Errorf("marshalling disciplines: %w", err)
	}
	motifs, err := json.Marshal(v.Motifs)
	if err != nil {
		return fmt.Errorf("marshalling motifs: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO volumes (
			legend_slug, slug, position, title, subtitle, reading_time,
			disciplines, motifs, path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.LegendSlug, v.Slug, pos, v.Title, v.Subtitle, v.ReadingTime,
		string(disciplines), string(motifs), v.Path,
	)
	if err != nil {
		return fmt.Errorf("inserting volume %s: %w", v.Key(), err)
	}

	for i, sec := range v.Sections {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sections (legend_slug, volume_slug, id, position, title)
			VALUES (?, ?, ?, ?, ?)`,
			v.LegendSlug, v.Slug, sec.ID, i, sec.Title)
		if err != nil {
			return fmt.Errorf("inserting section %s of %s: %w", sec.ID, v.Key(), err)
		}
	}

	for i, m := range v.Marginalia {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO marginalia (
				legend_slug, volume_slug, id, section_id, position, type, title, content
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			v.LegendSlug, v.Slug, m.ID, m.SectionID, i, m.Type, m.Title, m.Content)
		if err != nil {
			return fmt.Errorf("inserting marginalia %s of %s: %w", m.ID, v.Key(), err)
		}
	}
	return nil
}

// ListLegends returns legend summaries ordered by name.
func (s *Store) ListLegends(ctx context.Context, filter ListFilter) ([]LegendSummary, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.Archetype != "" {
		clauses = append(clauses, "l.archetype = ?")
		args = append(args, filter.Archetype)
	}
	if filter.CrossCutting != nil {
		clauses = append(clauses, "l.cross_cutting = ?")
		args = append(args, boolInt(*filter.CrossCutting))
	}

	query := `SELECT l.slug, l.name, l.archetype, l.archetype_color, l.industry,
		l.cross_cutting, l.total_reading_time, COUNT(v.slug)
		FROM legends l LEFT JOIN volumes v ON v.legend_slug = l.slug`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " GROUP BY l.slug ORDER BY l.name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing legends: %w", err)
	}
	defer rows.Close()

	var out []LegendSummary
	for rows.Next() {
		var (
			ls    LegendSummary
			cross int
		)
		if err := rows.Scan(&ls.Slug, &ls.Name, &ls.Archetype, &ls.ArchetypeColor,
			&ls.Industry, &cross, &ls.TotalReadingTime, &ls.Volumes); err != nil {
			return nil, fmt.Errorf("scanning legend: %w", err)
		}
		ls.CrossCutting = cross != 0
		if ls.Archetype != "" {
			ls.ArchetypeName = taxonomy.DisplayName(ls.Archetype)
		}
		out = append(out, ls)
	}
	return out, rows.Err()
}

// Legend returns the summary of one legend.
func (s *Store) Legend(ctx context.Context, slug string) (*LegendSummary, error) {
	all, err := s.ListLegends(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Slug == slug {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}

// Search matches q against marginalia titles and content and section
// titles. Matching is case-insensitive substring matching.
func (s *Store) Search(ctx context.Context, q string, limit int) ([]Hit, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []Hit{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	pattern := "%" + escapeLike(q) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, legend_slug, volume_slug, volume_title, id, section_id, type, title, body FROM (
			SELECT 0 AS rank, 'marginalia' AS kind, m.legend_slug, m.volume_slug, v.title AS volume_title,
				m.id, m.section_id, m.type, m.title, m.content AS body, m.position
			FROM marginalia m
			JOIN volumes v ON v.legend_slug = m.legend_slug AND v.slug = m.volume_slug
			WHERE m.title LIKE ? ESCAPE '\' OR m.content LIKE ? ESCAPE '\'
			UNION ALL
			SELECT 1 AS rank, 'section' AS kind, s.legend_slug, s.volume_slug, v.title AS volume_title,
				s.id, s.id AS section_id, '' AS type, s.title, '' AS body, s.position
			FROM sections s
			JOIN volumes v ON v.legend_slug = s.legend_slug AND v.slug = s.volume_slug
			WHERE s.title LIKE ? ESCAPE '\'
		)
		ORDER BY rank, legend_slug, volume_slug, position
		LIMIT ?`,
		pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	defer rows.Close()

	hits := []Hit{}
	for rows.Next() {
		var (
			h    Hit
			body string
		)
		if err := rows.Scan(&h.Kind, &h.LegendSlug, &h.VolumeSlug, &h.VolumeTitle,
			&h.ID, &h.SectionID, &h.Type, &h.Title, &body); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		if body != "" {
			h.Snippet = marginalia.Truncate(body, snippetLength)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// LastSync returns the most recent sync run.
func (s *Store) LastSync(ctx context.Context) (*SyncRun, error) {
	var (
		run     SyncRun
		started string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, legends, volumes, marginalia
		FROM sync_runs ORDER BY started_at DESC, rowid DESC LIMIT 1`).
		Scan(&run.ID, &started, &run.Legends, &run.Volumes, &run.Marginalia)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading last sync: %w", err)
	}
	run.StartedAt = parseTime(started)
	return &run, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func parseTime(s string) time.Time {
	for _, layout := range []string{time.DateTime, time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
