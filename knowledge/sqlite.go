package knowledge

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hupe1980/tutormesh/core"
	"github.com/hupe1980/tutormesh/logging"
	_ "modernc.org/sqlite"
)

// Options configure the SQLite knowledge base.
type Options struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// SQLiteKnowledgeBase is the local resource catalog backed by SQLite. It
// persists independently from the profile store, in its own database file.
//
// Read failures are logged and surface as an empty resource slice; write
// failures are logged and surface as a false success flag. Neither is ever
// returned as an error, per the KnowledgeBase contract.
type SQLiteKnowledgeBase struct {
	db     *sql.DB
	logger logging.Logger
}

var _ core.KnowledgeBase = (*SQLiteKnowledgeBase)(nil)

// NewSQLite opens (creating if needed) the catalog database at dbPath.
func NewSQLite(dbPath string, optFns ...func(o *Options)) (*SQLiteKnowledgeBase, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// WAL keeps readers unblocked while ingestion writes.
	dsn := dbPath + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	kb := &SQLiteKnowledgeBase{db: db, logger: opts.Logger}
	if err := kb.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return kb, nil
}

func (kb *SQLiteKnowledgeBase) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS subjects (
		subject_id TEXT PRIMARY KEY,
		subject_name TEXT NOT NULL,
		description TEXT,
		last_updated TEXT
	);
	CREATE TABLE IF NOT EXISTS resources (
		resource_id TEXT PRIMARY KEY,
		subject_id TEXT,
		title TEXT NOT NULL,
		content_type TEXT,
		content TEXT,
		difficulty_level TEXT,
		FOREIGN KEY (subject_id) REFERENCES subjects (subject_id)
	);
	`
	if _, err := kb.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SubjectResources returns the catalog entries for a subject, or an empty
// slice when the subject is unknown or the read fails.
func (kb *SQLiteKnowledgeBase) SubjectResources(ctx context.Context, subject string) []core.Resource {
	query := `
		SELECT r.title, r.content_type, r.content, r.difficulty_level
		FROM resources r
		JOIN subjects s ON r.subject_id = s.subject_id
		WHERE s.subject_name = ?
		ORDER BY r.title`

	rows, err := kb.db.QueryContext(ctx, query, subject)
	if err != nil {
		kb.logger.Error("Resource lookup failed", "subject", subject, "error", err)
		return []core.Resource{}
	}
	defer rows.Close()

	resources := []core.Resource{}
	for rows.Next() {
		var res core.Resource
		if err := rows.Scan(&res.Title, &res.ContentType, &res.Content, &res.Difficulty); err != nil {
			kb.logger.Error("Resource row scan failed", "subject", subject, "error", err)
			return []core.Resource{}
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		kb.logger.Error("Resource iteration failed", "subject", subject, "error", err)
		return []core.Resource{}
	}
	return resources
}

// UpsertResource ingests a resource under the given subject, creating the
// subject entry on first sight of the name. The resource identity derives
// from the title, so re-ingesting the same title overwrites the prior row.
func (kb *SQLiteKnowledgeBase) UpsertResource(ctx context.Context, subject string, resource core.Resource) bool {
	tx, err := kb.db.BeginTx(ctx, nil)
	if err != nil {
		kb.logger.Error("Knowledge base update failed", "subject", subject, "error", err)
		return false
	}
	defer tx.Rollback()

	var subjectID string
	err = tx.QueryRowContext(ctx, "SELECT subject_id FROM subjects WHERE subject_name = ?", subject).Scan(&subjectID)
	switch {
	case err == sql.ErrNoRows:
		subjectID = core.SubjectID(subject)
		_, err = tx.ExecContext(ctx,
			"INSERT INTO subjects VALUES (?, ?, ?, ?)",
			subjectID, subject, fmt.Sprintf("Resources for %s", subject), time.Now().UTC().Format(time.RFC3339),
		)
		if err != nil {
			kb.logger.Error("Subject insert failed", "subject", subject, "error", err)
			return false
		}
	case err != nil:
		kb.logger.Error("Subject lookup failed", "subject", subject, "error", err)
		return false
	}

	contentType := resource.ContentType
	if contentType == "" {
		contentType = "text"
	}
	difficulty := resource.Difficulty
	if difficulty == "" {
		difficulty = core.LevelIntermediate
	}

	_, err = tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO resources VALUES (?, ?, ?, ?, ?, ?)",
		core.ResourceID(resource.Title), subjectID, resource.Title, contentType, resource.Content, difficulty,
	)
	if err != nil {
		kb.logger.Error("Resource upsert failed", "subject", subject, "title", resource.Title, "error", err)
		return false
	}
	if err := tx.Commit(); err != nil {
		kb.logger.Error("Knowledge base commit failed", "subject", subject, "error", err)
		return false
	}
	return true
}

// Close releases the underlying database handle.
func (kb *SQLiteKnowledgeBase) Close() error {
	return kb.db.Close()
}
