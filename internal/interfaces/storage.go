package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/artpar/menucms/internal/core"
)

// ErrInvalidScreen is returned for screen names that cannot be stored.
var ErrInvalidScreen = errors.New("invalid screen name")

// MenuStore persists the flattened menu of each application screen.
type MenuStore interface {
	// Load returns the entries saved for screen. A screen that was never
	// saved loads as an empty menu.
	Load(ctx context.Context, screen string) ([]core.MenuEntry, error)

	// Save replaces the entries stored for screen.
	Save(ctx context.Context, screen string, entries []core.MenuEntry) error

	// List returns metadata for every stored screen.
	List(ctx context.Context) ([]MenuMeta, error)

	// Delete removes a screen's menu.
	Delete(ctx context.Context, screen string) error
}

// MenuMeta describes a stored menu without its content.
type MenuMeta struct {
	Screen     string
	Path       string
	EntryCount int
	UpdatedAt  time.Time
}
