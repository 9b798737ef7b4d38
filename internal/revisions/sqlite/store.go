package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/artpar/menucms/internal/core"
	"github.com/artpar/menucms/internal/revisions"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store implements revisions.Store using SQLite.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

var _ revisions.Store = (*Store)(nil)

// New creates a new SQLite-based revision store.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open revisions database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize revisions database: %w", err)
	}

	return store, nil
}

// NewInMemory creates a new in-memory SQLite store (useful for testing).
func NewInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables and indexes.
func (s *Store) initialize() error {
	schema := `
		CREATE TABLE IF NOT EXISTS menu_revisions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			screen TEXT NOT NULL,
			entries TEXT NOT NULL,
			entry_count INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_revisions_screen ON menu_revisions(screen, seq);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores entries as the newest revision of screen.
func (s *Store) Record(ctx context.Context, screen string, entries []core.MenuEntry) (revisions.Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return revisions.Revision{}, revisions.ErrStoreClosed
	}

	if entries == nil {
		entries = []core.MenuEntry{}
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return revisions.Revision{}, fmt.Errorf("failed to marshal revision: %w", err)
	}

	rev := revisions.Revision{
		ID:         uuid.New().String(),
		Screen:     screen,
		Entries:    core.CloneEntries(entries),
		EntryCount: countEntries(entries),
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO menu_revisions (id, screen, entries, entry_count, created_at) VALUES (?, ?, ?, ?, ?)",
		rev.ID, rev.Screen, string(payload), rev.EntryCount, rev.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return revisions.Revision{}, fmt.Errorf("failed to record revision: %w", err)
	}

	return rev, nil
}

// Get returns a revision by ID.
func (s *Store) Get(ctx context.Context, id string) (revisions.Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return revisions.Revision{}, revisions.ErrStoreClosed
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT id, screen, entries, entry_count, created_at FROM menu_revisions WHERE id = ?",
		id,
	)
	return scanRevision(row)
}

// Latest returns the newest revision of screen.
func (s *Store) Latest(ctx context.Context, screen string) (revisions.Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return revisions.Revision{}, revisions.ErrStoreClosed
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT id, screen, entries, entry_count, created_at FROM menu_revisions WHERE screen = ? ORDER BY seq DESC LIMIT 1",
		screen,
	)
	return scanRevision(row)
}

// List returns revisions of screen, newest first, without their entries.
func (s *Store) List(ctx context.Context, screen string, limit int) ([]revisions.Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, revisions.ErrStoreClosed
	}

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, screen, entry_count, created_at FROM menu_revisions WHERE screen = ? ORDER BY seq DESC LIMIT ?",
		screen, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	defer rows.Close()

	var result []revisions.Revision
	for rows.Next() {
		var rev revisions.Revision
		var created int64
		if err := rows.Scan(&rev.ID, &rev.Screen, &rev.EntryCount, &created); err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		rev.CreatedAt = time.UnixMilli(created).UTC()
		result = append(result, rev)
	}

	return result, rows.Err()
}

// Prune keeps the newest keep revisions of screen.
func (s *Store) Prune(ctx context.Context, screen string, keep int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, revisions.ErrStoreClosed
	}
	if keep < 0 {
		keep = 0
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM menu_revisions
		WHERE screen = ? AND seq NOT IN (
			SELECT seq FROM menu_revisions WHERE screen = ? ORDER BY seq DESC LIMIT ?
		)`,
		screen, screen, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune revisions: %w", err)
	}

	return res.RowsAffected()
}

// Close closes the store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

func scanRevision(row *sql.Row) (revisions.Revision, error) {
	var rev revisions.Revision
	var payload string
	var created int64

	err := row.Scan(&rev.ID, &rev.Screen, &payload, &rev.EntryCount, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return revisions.Revision{}, revisions.ErrNotFound
	}
	if err != nil {
		return revisions.Revision{}, fmt.Errorf("failed to get revision: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &rev.Entries); err != nil {
		return revisions.Revision{}, fmt.Errorf("failed to unmarshal revision: %w", err)
	}
	rev.CreatedAt = time.UnixMilli(created).UTC()

	return rev, nil
}

func countEntries(entries []core.MenuEntry) int {
	count := len(entries)
	for _, e := range entries {
		if e.Submenu != nil {
			count += countEntries(e.Submenu.Items)
		}
	}
	return count
}
