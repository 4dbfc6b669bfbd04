package gmm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"speakerid/internal/speaker"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS speakers (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL,
    gender     TEXT NOT NULL CHECK (gender IN ('M', 'F', 'U')),
    model_path TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_speakers_gender ON speakers(gender);
`

// Speaker is one registered voiceprint row.
type Speaker struct {
	ID        int64
	Name      string
	Gender    speaker.Gender
	ModelPath string
	CreatedAt time.Time
}

// Store manages the speaker registry backed by SQLite inside the database
// directory.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore initializes or connects to the registry database under dbDir.
func OpenStore(dbDir string) (*Store, error) {
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure db directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, "registry.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// AddSpeaker registers a voiceprint model for a named speaker.
func (s *Store) AddSpeaker(ctx context.Context, name string, gender speaker.Gender, modelPath string) (*Speaker, error) {
	if name == "" || name == speaker.UnknownName {
		return nil, fmt.Errorf("invalid speaker name %q", name)
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO speakers (name, gender, model_path, created_at) VALUES (?, ?, ?, ?)`,
		name, string(gender), modelPath, now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert speaker: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &Speaker{ID: id, Name: name, Gender: gender, ModelPath: modelPath, CreatedAt: now}, nil
}

// SpeakersByGender returns registered speakers for one gender partition,
// in registration order.
func (s *Store) SpeakersByGender(ctx context.Context, gender speaker.Gender) ([]Speaker, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, gender, model_path, created_at FROM speakers WHERE gender = ? ORDER BY id`,
		string(gender),
	)
	if err != nil {
		return nil, fmt.Errorf("query speakers: %w", err)
	}
	defer rows.Close()
	return scanSpeakers(rows)
}

// ListSpeakers returns every registered speaker in registration order.
func (s *Store) ListSpeakers(ctx context.Context) ([]Speaker, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, gender, model_path, created_at FROM speakers ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query speakers: %w", err)
	}
	defer rows.Close()
	return scanSpeakers(rows)
}

func scanSpeakers(rows *sql.Rows) ([]Speaker, error) {
	var speakers []Speaker
	for rows.Next() {
		var sp Speaker
		var gender, created string
		if err := rows.Scan(&sp.ID, &sp.Name, &gender, &sp.ModelPath, &created); err != nil {
			return nil, fmt.Errorf("scan speaker: %w", err)
		}
		sp.Gender = speaker.ParseGender(gender)
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			sp.CreatedAt = ts
		}
		speakers = append(speakers, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate speakers: %w", err)
	}
	return speakers, nil
}

// ErrNoSpeakers marks a lookup against an empty gender partition.
var ErrNoSpeakers = errors.New("no registered speakers")
