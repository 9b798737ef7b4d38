package revisions

import (
	"context"
	"errors"
	"time"

	"github.com/artpar/menucms/internal/core"
)

// Common errors.
var (
	ErrNotFound    = errors.New("revision not found")
	ErrStoreClosed = errors.New("revision store is closed")
)

// Revision is one successfully saved version of a screen's menu.
type Revision struct {
	ID         string
	Screen     string
	Entries    []core.MenuEntry
	EntryCount int
	CreatedAt  time.Time
}

// Store keeps the history of saved menus. Revisions are append-only and are
// listed newest first.
type Store interface {
	// Record stores entries as the newest revision of screen.
	Record(ctx context.Context, screen string, entries []core.MenuEntry) (Revision, error)

	// Get returns a revision by ID.
	Get(ctx context.Context, id string) (Revision, error)

	// List returns up to limit revisions of screen, newest first. The
	// returned revisions do not carry entries. A limit <= 0 lists all.
	List(ctx context.Context, screen string, limit int) ([]Revision, error)

	// Latest returns the newest revision of screen.
	Latest(ctx context.Context, screen string) (Revision, error)

	// Prune keeps the newest keep revisions of screen and deletes the rest.
	Prune(ctx context.Context, screen string, keep int) (int64, error)

	// Close closes the store.
	Close() error
}
