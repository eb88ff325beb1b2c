// Package sqlite persists tour state in a SQLite database.
//
// The store expects an *sql.DB opened with a SQLite driver, for example:
//
//	import _ "modernc.org/sqlite"
//
//	db, err := sql.Open("sqlite", "file:walkthrough.db?_journal=WAL")
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"

	_ "modernc.org/sqlite"
)

// Store implements ports.StateStore on a sessions table.
type Store struct {
	db *sql.DB
}

var _ ports.StateStore = (*Store)(nil)

// New creates the schema if needed and returns a store.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to init sqlite schema: %w", err)
	}
	return s, nil
}

// Open opens (or creates) a database file with the modernc driver.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	s, err := New(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			phase TEXT NOT NULL,
			current_step INTEGER NOT NULL,
			total_steps INTEGER NOT NULL,
			state BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
	)
	return err
}

// Save upserts the state.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, phase, current_step, total_steps, state, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			phase = excluded.phase,
			current_step = excluded.current_step,
			total_steps = excluded.total_steps,
			state = excluded.state,
			updated_at = excluded.updated_at`,
		sessionID,
		string(state.Phase),
		state.CurrentStep,
		state.TotalSteps,
		data,
		time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load retrieves the state.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT state FROM sessions WHERE id = ?`, sessionID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &state, nil
}

// Delete removes the state. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// List returns session IDs, most recently updated first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM sessions ORDER BY updated_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
