package training

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"gazetteer/internal/learner"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump when the schema changes;
// stale databases are rejected rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible
// schema version.
var ErrSchemaMismatch = errors.New("training store schema version mismatch")

// LabeledPair is one persisted label, in collection order.
type LabeledPair struct {
	ID          int64
	SessionID   string
	MessyID     string
	CanonicalID string
	Label       learner.Label
	CreatedAt   time.Time
}

// Store persists labeled pairs in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the training database at path, creating it and its schema
// on first use.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure training directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open training db %s: %w", path, err)
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

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create training schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read training schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to start over)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// SaveSession appends a labeling session's examples in one transaction.
// Relabeling a pair seen in an earlier session replaces the old judgement.
func (s *Store) SaveSession(ctx context.Context, sessionID string, examples []learner.Example) error {
	if len(examples) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin training tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO labeled_pairs (session_id, messy_id, canonical_id, label, created_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT (messy_id, canonical_id)
        DO UPDATE SET session_id = excluded.session_id, label = excluded.label, created_at = excluded.created_at`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, example := range examples {
		if _, err := stmt.ExecContext(ctx,
			sessionID,
			example.Pair.Messy.ID,
			example.Pair.Canonical.ID,
			string(example.Label),
			now,
		); err != nil {
			return fmt.Errorf("insert labeled pair %s: %w", example.Pair.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit training session: %w", err)
	}
	return nil
}

// All returns every labeled pair in collection order.
func (s *Store) All(ctx context.Context) ([]LabeledPair, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, session_id, messy_id, canonical_id, label, created_at
        FROM labeled_pairs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query labeled pairs: %w", err)
	}
	defer rows.Close()

	var pairs []LabeledPair
	for rows.Next() {
		var pair LabeledPair
		var label, createdAt string
		if err := rows.Scan(&pair.ID, &pair.SessionID, &pair.MessyID, &pair.CanonicalID, &label, &createdAt); err != nil {
			return nil, fmt.Errorf("scan labeled pair: %w", err)
		}
		parsed, err := learner.ParseLabel(label)
		if err != nil {
			return nil, fmt.Errorf("labeled pair %d: %w", pair.ID, err)
		}
		pair.Label = parsed
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			pair.CreatedAt = ts
		}
		pairs = append(pairs, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate labeled pairs: %w", err)
	}
	return pairs, nil
}

// Counts reports how many labels of each kind the store holds.
func (s *Store) Counts(ctx context.Context) (matches, distinct, uncertain int, err error) {
	rows, err := s.db.QueryContext(ctx, "SELECT label, COUNT(1) FROM labeled_pairs GROUP BY label")
	if err != nil {
		return 0, 0, 0, fmt.Errorf("count labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return 0, 0, 0, fmt.Errorf("scan label count: %w", err)
		}
		switch learner.Label(label) {
		case learner.LabelMatch:
			matches = count
		case learner.LabelDistinct:
			distinct = count
		case learner.LabelUncertain:
			uncertain = count
		}
	}
	return matches, distinct, uncertain, rows.Err()
}
