package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/tutormesh/core"
	"github.com/hupe1980/tutormesh/logging"
	_ "modernc.org/sqlite"
)

// Options configure the SQLite profile store.
type Options struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// SQLiteStore persists profiles in a users table keyed by user id. Preferred
// subjects and session history are stored as JSON arrays so a load yields
// structural equality with what was saved.
//
// Save is a full-row idempotent upsert; there is no partial-field update and
// no delete operation.
type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger
}

var _ core.ProfileStore = (*SQLiteStore)(nil)

// NewSQLite opens (creating if needed) the profile database at dbPath.
func NewSQLite(dbPath string, optFns ...func(o *Options)) (*SQLiteStore, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := dbPath + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db, logger: opts.Logger}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		name TEXT,
		learning_style TEXT,
		proficiency_level TEXT,
		preferred_subjects TEXT,
		session_history TEXT,
		avatar_path TEXT
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// LoadAll returns every stored profile. An empty store yields an empty slice.
func (s *SQLiteStore) LoadAll(ctx context.Context) ([]*core.Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, name, learning_style, proficiency_level, preferred_subjects, session_history, avatar_path FROM users")
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	profiles := []*core.Profile{}
	for rows.Next() {
		var p core.Profile
		var subjectsJSON, historyJSON string
		if err := rows.Scan(&p.UserID, &p.Name, &p.LearningStyle, &p.ProficiencyLevel, &subjectsJSON, &historyJSON, &p.AvatarPath); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		if err := json.Unmarshal([]byte(subjectsJSON), &p.PreferredSubjects); err != nil {
			return nil, fmt.Errorf("decode preferred subjects for %s: %w", p.UserID, err)
		}
		if err := json.Unmarshal([]byte(historyJSON), &p.SessionHistory); err != nil {
			return nil, fmt.Errorf("decode session history for %s: %w", p.UserID, err)
		}
		profiles = append(profiles, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	s.logger.Info("Loaded profiles", "count", len(profiles))
	return profiles, nil
}

// Save upserts the full profile record.
func (s *SQLiteStore) Save(ctx context.Context, profile *core.Profile) error {
	subjects := profile.PreferredSubjects
	if subjects == nil {
		subjects = []string{}
	}
	history := profile.SessionHistory
	if history == nil {
		history = []core.HistoryRecord{}
	}
	subjectsJSON, err := json.Marshal(subjects)
	if err != nil {
		return fmt.Errorf("encode preferred subjects: %w", err)
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode session history: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO users VALUES (?, ?, ?, ?, ?, ?, ?)",
		profile.UserID, profile.Name, profile.LearningStyle, profile.ProficiencyLevel,
		string(subjectsJSON), string(historyJSON), profile.AvatarPath,
	)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", profile.UserID, err)
	}

	s.logger.Debug("Saved profile", "user_id", profile.UserID)
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
