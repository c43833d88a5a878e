// Package cache keeps a local copy of fetched timetables so read-only
// viewing still works when the server is unreachable. It is write-through
// and best-effort: staleness is acceptable and recorded per entry.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/models"
)

// ErrNotCached is returned when the requested timetable has never been
// fetched on this machine.
var ErrNotCached = errors.New("timetable not in local cache")

const schema = `
CREATE TABLE IF NOT EXISTS timetables (
	id          INTEGER PRIMARY KEY,
	status      TEXT NOT NULL,
	version     INTEGER NOT NULL,
	created_by  INTEGER NOT NULL,
	created_at  TEXT NOT NULL,
	approved_at TEXT,
	comment     TEXT NOT NULL DEFAULT '',
	public_url  TEXT NOT NULL DEFAULT '',
	periods     TEXT NOT NULL,
	fetched_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_timetables_status ON timetables(status);
`

// Store is a sqlite-backed timetable cache under the config directory.
type Store struct {
	path string
	db   *sql.DB
}

// New returns a cache store at the given database path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the cache location inside the config directory.
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, "cache.db")
}

// Init opens the database, creating the file and schema as needed.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	s.db = db
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Put upserts a timetable, stamping the fetch time.
func (s *Store) Put(tt models.Timetable) error {
	periods, err := json.Marshal(tt.Periods)
	if err != nil {
		return fmt.Errorf("failed to encode periods: %w", err)
	}
	var approvedAt sql.NullString
	if tt.ApprovedAt != nil {
		approvedAt = sql.NullString{String: tt.ApprovedAt.Format(time.RFC3339), Valid: true}
	}
	_, err = s.db.Exec(`
		INSERT INTO timetables (id, status, version, created_by, created_at, approved_at, comment, public_url, periods, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			version = excluded.version,
			created_by = excluded.created_by,
			created_at = excluded.created_at,
			approved_at = excluded.approved_at,
			comment = excluded.comment,
			public_url = excluded.public_url,
			periods = excluded.periods,
			fetched_at = excluded.fetched_at`,
		tt.ID, string(tt.Status), tt.Version, tt.CreatedBy,
		tt.CreatedAt.Format(time.RFC3339), approvedAt, tt.Comment, tt.PublicURL,
		string(periods), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to cache timetable %d: %w", tt.ID, err)
	}
	return nil
}

// Get returns a cached timetable and when it was fetched.
func (s *Store) Get(id int) (models.Timetable, time.Time, error) {
	row := s.db.QueryRow(`
		SELECT id, status, version, created_by, created_at, approved_at, comment, public_url, periods, fetched_at
		FROM timetables WHERE id = ?`, id)
	tt, fetched, err := scanTimetable(row)
	if err == sql.ErrNoRows {
		return models.Timetable{}, time.Time{}, ErrNotCached
	}
	return tt, fetched, err
}

// List returns cached timetables, optionally filtered by status, newest
// first by creation time.
func (s *Store) List(status constants.Status) ([]models.Timetable, error) {
	query := `SELECT id, status, version, created_by, created_at, approved_at, comment, public_url, periods, fetched_at
		FROM timetables`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached timetables: %w", err)
	}
	defer rows.Close()

	var out []models.Timetable
	for rows.Next() {
		tt, _, err := scanTimetable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tt)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTimetable(row scanner) (models.Timetable, time.Time, error) {
	var (
		tt          models.Timetable
		status      string
		createdAt   string
		approvedAt  sql.NullString
		periodsJSON string
		fetchedAt   string
	)
	err := row.Scan(&tt.ID, &status, &tt.Version, &tt.CreatedBy, &createdAt, &approvedAt, &tt.Comment, &tt.PublicURL, &periodsJSON, &fetchedAt)
	if err != nil {
		return models.Timetable{}, time.Time{}, err
	}
	tt.Status = constants.Status(status)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		tt.CreatedAt = t
	}
	if approvedAt.Valid {
		if t, err := time.Parse(time.RFC3339, approvedAt.String); err == nil {
			tt.ApprovedAt = &t
		}
	}
	if err := json.Unmarshal([]byte(periodsJSON), &tt.Periods); err != nil {
		return models.Timetable{}, time.Time{}, fmt.Errorf("failed to decode cached periods for timetable %d: %w", tt.ID, err)
	}
	fetched, _ := time.Parse(time.RFC3339, fetchedAt)
	return tt, fetched, nil
}
