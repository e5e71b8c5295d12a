package blog

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = sql.ErrNoRows

// ImageRecord remembers what a preview image was rendered from.
type ImageRecord struct {
	Slug       string
	Digest     string
	Size       int64
	RenderedAt time.Time
}

// Store wraps the SQLite build cache. It lets repeated builds skip preview
// images whose inputs have not changed.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One writer at a time; the busy timeout makes a concurrent build wait
	// instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS images (
    slug TEXT PRIMARY KEY,
    digest TEXT NOT NULL,
    size INTEGER NOT NULL,
    rendered_at TEXT NOT NULL
);
`)
	return err
}

// GetImage returns the record for slug, or ErrNotFound.
func (s *Store) GetImage(slug string) (ImageRecord, error) {
	var digest, renderedAt string
	var size int64
	err := s.db.QueryRow(`SELECT digest, size, rendered_at FROM images WHERE slug = ?`, slug).
		Scan(&digest, &size, &renderedAt)
	if err != nil {
		return ImageRecord{}, err
	}
	t, _ := time.Parse(time.RFC3339, renderedAt)
	return ImageRecord{Slug: slug, Digest: digest, Size: size, RenderedAt: t}, nil
}

// SaveImage upserts an image record.
func (s *Store) SaveImage(rec ImageRecord) error {
	if rec.RenderedAt.IsZero() {
		rec.RenderedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (slug, digest, size, rendered_at) VALUES (?, ?, ?, ?)`,
		rec.Slug, rec.Digest, rec.Size, rec.RenderedAt.UTC().Format(time.RFC3339))
	return err
}

// ListImages returns every record ordered by slug.
func (s *Store) ListImages() ([]ImageRecord, error) {
	rows, err := s.db.Query(`SELECT slug, digest, size, rendered_at FROM images ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []ImageRecord
	for rows.Next() {
		var rec ImageRecord
		var renderedAt string
		if err := rows.Scan(&rec.Slug, &rec.Digest, &rec.Size, &renderedAt); err != nil {
			return nil, err
		}
		rec.RenderedAt, _ = time.Parse(time.RFC3339, renderedAt)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DeleteImage removes the record for slug.
func (s *Store) DeleteImage(slug string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE slug = ?`, slug)
	return err
}

// PruneImages deletes records whose slug is not in keep and returns the
// slugs it removed.
func (s *Store) PruneImages(keep []string) ([]string, error) {
	recs, err := s.ListImages()
	if err != nil {
		return nil, err
	}
	live := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		live[k] = struct{}{}
	}
	var removed []string
	for _, rec := range recs {
		if _, ok := live[rec.Slug]; ok {
			continue
		}
		if err := s.DeleteImage(rec.Slug); err != nil {
			return removed, err
		}
		removed = append(removed, rec.Slug)
	}
	return removed, nil
}
