package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/Munyola/boostsrl/pkg/boostsrl/internalerr"
	"github.com/Munyola/boostsrl/pkg/boostsrl/registry"
)

// sqliteStore implements registry.Store on a SQLite file.
type sqliteStore struct {
	db      *sql.DB
	entropy *ulid.MonotonicEntropy
}

// Open opens (or creates) a SQLite-backed registry with WAL mode
// enabled.
func Open(ctx context.Context, path string) (registry.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	target TEXT NOT NULL,
	n_trees INTEGER NOT NULL,
	node_size INTEGER NOT NULL,
	max_tree_depth INTEGER NOT NULL,
	background TEXT NOT NULL,
	threshold REAL NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trees (
	run_id TEXT NOT NULL,
	idx INTEGER NOT NULL,
	content TEXT NOT NULL,
	UNIQUE(run_id, idx),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_target ON runs(target);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun stores a run and its trees in one transaction.
func (s *sqliteStore) SaveRun(ctx context.Context, r registry.Run) (string, error) {
	id := ulid.MustNew(ulid.Now(), s.entropy).String()
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, target, n_trees, node_size, max_tree_depth, background, threshold, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.Target, len(r.Trees), r.NodeSize, r.MaxTreeDepth, r.Background, r.Threshold,
		createdAt.Format(time.RFC3339Nano))
	if err != nil {
		return "", err
	}

	for i, tree := range r.Trees {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO trees (run_id, idx, content) VALUES (?, ?, ?)`,
			id, i, tree); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// GetRun loads a run and its trees in index order.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (registry.Run, error) {
	var r registry.Run
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, target, node_size, max_tree_depth, background, threshold, created_at
		 FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.Target, &r.NodeSize, &r.MaxTreeDepth, &r.Background, &r.Threshold, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return registry.Run{}, fmt.Errorf("%w: run %s", internalerr.ErrNotFound, id)
	}
	if err != nil {
		return registry.Run{}, err
	}

	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return registry.Run{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT content FROM trees WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return registry.Run{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var tree string
		if err := rows.Scan(&tree); err != nil {
			return registry.Run{}, err
		}
		r.Trees = append(r.Trees, tree)
	}
	if err := rows.Err(); err != nil {
		return registry.Run{}, err
	}

	return r, nil
}

// ListRuns returns run summaries, newest first.
func (s *sqliteStore) ListRuns(ctx context.Context, target string) ([]registry.RunSummary, error) {
	query := `SELECT id, target, n_trees, created_at FROM runs`
	args := []interface{}{}
	if target != "" {
		query += ` WHERE target = ?`
		args = append(args, target)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []registry.RunSummary
	for rows.Next() {
		var sum registry.RunSummary
		var createdAt string
		if err := rows.Scan(&sum.ID, &sum.Target, &sum.Trees, &createdAt); err != nil {
			return nil, err
		}
		if sum.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
