package snapshot

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cogpy/agent-neuro/pkg/errors"
	"github.com/cogpy/agent-neuro/pkg/logging"
)

// SQLiteStore implements Store on a SQLite database. Snapshots live in a
// single table keyed by agent identifier with the state as a JSON column.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	initialized sync.Once
}

// NewSQLiteStore opens (or creates) the snapshot database at path. The
// special path ":memory:" keeps the database in memory.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to open snapshot database"),
			errors.Fields{"path": path})
	}

	store := &SQLiteStore{db: db, path: path}
	if err := store.ensureInitialized(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) ensureInitialized() error {
	var initErr error
	s.initialized.Do(func() {
		// Enable WAL mode for better concurrency
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			initErr = errors.WithFields(
				errors.Wrap(err, errors.StorageFailed, "failed to enable WAL mode"),
				errors.Fields{"path": s.path})
			return
		}

		query := `
        CREATE TABLE IF NOT EXISTS agent_snapshots (
            agent_id TEXT PRIMARY KEY,
            state TEXT NOT NULL,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );

        CREATE INDEX IF NOT EXISTS idx_agent_snapshots_created_at
        ON agent_snapshots(created_at);
        `

		if _, err := s.db.Exec(query); err != nil {
			initErr = errors.WithFields(
				errors.Wrap(err, errors.StorageFailed, "failed to initialize snapshot schema"),
				errors.Fields{"path": s.path})
			return
		}
	})
	return initErr
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, state *State) error {
	if err := s.ensureInitialized(); err != nil {
		return err
	}
	payload, err := encodeState(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to begin transaction"),
			errors.Fields{"agent_id": state.AgentID})
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			logging.GetLogger().Error(ctx, "failed to rollback snapshot transaction: %v", err)
		}
	}()

	query := `
    INSERT INTO agent_snapshots (agent_id, state, updated_at)
    VALUES (?, ?, CURRENT_TIMESTAMP)
    ON CONFLICT(agent_id) DO UPDATE SET
        state = excluded.state,
        updated_at = CURRENT_TIMESTAMP
    `

	if _, err = tx.ExecContext(ctx, query, state.AgentID, string(payload)); err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to save snapshot"),
			errors.Fields{"agent_id": state.AgentID})
	}

	if err = tx.Commit(); err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to commit snapshot"),
			errors.Fields{"agent_id": state.AgentID})
	}

	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context, agentID string) (*State, error) {
	if err := s.ensureInitialized(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	query := "SELECT state FROM agent_snapshots WHERE agent_id = ?"

	err := s.db.QueryRowContext(ctx, query, agentID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.WithFields(
			errors.New(errors.ResourceNotFound, "no snapshot for agent"),
			errors.Fields{"agent_id": agentID})
	}
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to load snapshot"),
			errors.Fields{"agent_id": agentID})
	}

	return decodeState(agentID, []byte(payload))
}

// List implements Store. Identifiers come back in snapshot creation order.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	if err := s.ensureInitialized(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT agent_id FROM agent_snapshots ORDER BY created_at")
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to list snapshots")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "failed to scan agent identifier")
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "error iterating snapshot rows")
	}

	return ids, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, agentID string) error {
	if err := s.ensureInitialized(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM agent_snapshots WHERE agent_id = ?", agentID)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to delete snapshot"),
			errors.Fields{"agent_id": agentID})
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.StorageFailed, "failed to count deleted rows")
	}
	if affected == 0 {
		return errors.WithFields(
			errors.New(errors.ResourceNotFound, "no snapshot for agent"),
			errors.Fields{"agent_id": agentID})
	}

	return nil
}

// Clear implements Store.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := s.ensureInitialized(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM agent_snapshots"); err != nil {
		return errors.Wrap(err, errors.StorageFailed, "failed to clear snapshot store")
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return errors.Wrap(err, errors.StorageFailed, "failed to close snapshot database")
	}
	return nil
}
