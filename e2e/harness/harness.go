// Package harness provides E2E testing utilities for menucms.
package harness

import (
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/artpar/menucms/internal/app"
	"github.com/artpar/menucms/internal/logger"
	"github.com/artpar/menucms/internal/metrics"
	"github.com/artpar/menucms/internal/revisions/sqlite"
	"github.com/artpar/menucms/internal/server"
	"github.com/artpar/menucms/internal/storage/filesystem"
	"github.com/prometheus/client_golang/prometheus"
)

// E2EHarness is the main test orchestrator. Every runner it hands out works
// on the same data directory, so a menu saved by one is visible to the next.
type E2EHarness struct {
	t       *testing.T
	dataDir string
	screen  string
	timeout time.Duration
}

// Config configures the harness.
type Config struct {
	Screen  string        // Default: main
	Timeout time.Duration // Default: 5 seconds
}

// New creates a new E2E harness.
func New(t *testing.T, cfg Config) *E2EHarness {
	t.Helper()

	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Screen == "" {
		cfg.Screen = app.DefaultConfig().Screen
	}

	return &E2EHarness{
		t:       t,
		dataDir: t.TempDir(),
		screen:  cfg.Screen,
		timeout: cfg.Timeout,
	}
}

// DataDir returns the data directory shared by all runners.
func (h *E2EHarness) DataDir() string {
	return h.dataDir
}

// Screen returns the screen under test.
func (h *E2EHarness) Screen() string {
	return h.screen
}

// Timeout returns the configured timeout.
func (h *E2EHarness) Timeout() time.Duration {
	return h.timeout
}

// T returns the testing.T instance.
func (h *E2EHarness) T() *testing.T {
	return h.t
}

// CLI returns a CLI runner for this harness.
func (h *E2EHarness) CLI() *CLIRunner {
	return &CLIRunner{harness: h}
}

// TUI returns a TUI runner for this harness.
func (h *E2EHarness) TUI() *TUIRunner {
	return &TUIRunner{harness: h}
}

// OpenEditor loads a fresh editor over the harness data directory. The
// revision store is closed when the test ends.
func (h *E2EHarness) OpenEditor(t *testing.T, opts ...app.Option) *app.Editor {
	t.Helper()

	store, err := filesystem.NewMenuStore(filepath.Join(h.dataDir, "menus"), filesystem.FormatYAML)
	if err != nil {
		t.Fatalf("failed to open menu store: %v", err)
	}
	revs, err := sqlite.New(filepath.Join(h.dataDir, "revisions.db"))
	if err != nil {
		t.Fatalf("failed to open revision store: %v", err)
	}
	t.Cleanup(func() { revs.Close() })

	cfg := app.DefaultConfig()
	cfg.DataDir = h.dataDir
	cfg.Screen = h.screen

	editor := app.New(append([]app.Option{
		app.WithConfig(cfg),
		app.WithStore(store),
		app.WithRevisions(revs),
		app.WithLogger(logger.Discard()),
	}, opts...)...)

	ctx, cancel := h.context()
	defer cancel()
	if err := editor.Load(ctx); err != nil {
		t.Fatalf("failed to load menu: %v", err)
	}
	return editor
}

// StartServer serves a fresh editor over HTTP for the rest of the test.
func (h *E2EHarness) StartServer(t *testing.T) *httptest.Server {
	t.Helper()

	registry := prometheus.NewRegistry()
	editor := h.OpenEditor(t, app.WithRecorder(metrics.NewCounter(registry)))
	srv := server.New(editor, server.WithRegistry(registry), server.WithLogger(logger.Discard()))

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}
