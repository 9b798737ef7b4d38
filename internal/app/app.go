package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/artpar/menucms/internal/core"
	"github.com/artpar/menucms/internal/interfaces"
	"github.com/artpar/menucms/internal/logger"
	"github.com/artpar/menucms/internal/metrics"
	"github.com/artpar/menucms/internal/revisions"
)

// ErrNoStore is returned by Load and Save when the editor has no menu store.
var ErrNoStore = errors.New("no menu store configured")

// ErrNoRevisions is returned by revision operations when history is disabled.
var ErrNoRevisions = errors.New("revision history is not enabled")

// Config holds application configuration.
type Config struct {
	DataDir       string
	Screen        string
	Format        string
	LogLevel      string
	Addr          string
	KeepRevisions int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DataDir:       "~/.menucms",
		Screen:        "main",
		Format:        "yaml",
		LogLevel:      "info",
		Addr:          ":9876",
		KeepRevisions: 50,
	}
}

// Status summarizes the editing session.
type Status struct {
	Screen   string `json:"screen"`
	Dirty    bool   `json:"dirty"`
	Entries  int    `json:"entries"`
	Dragging bool   `json:"dragging"`
}

// Editor is one editing session over a screen's menu. It owns the working
// tree, the snapshot taken at the last load or save, and the drag gesture in
// progress. An Editor is not safe for concurrent use.
type Editor struct {
	config    Config
	store     interfaces.MenuStore
	revisions revisions.Store
	logger    *slog.Logger
	recorder  metrics.Recorder
	hooks     map[string][]interfaces.HookHandler

	tree      core.Tree
	reference core.Snapshot
	drag      core.DragState
}

// Option is a function that configures the Editor.
type Option func(*Editor)

// New creates a new Editor with the given options. The editor starts with an
// empty, clean menu until Load is called.
func New(opts ...Option) *Editor {
	e := &Editor{
		config:   DefaultConfig(),
		logger:   logger.Discard(),
		recorder: metrics.Nop{},
		hooks:    make(map[string][]interfaces.HookHandler),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.reference = core.TakeSnapshot(e.tree)
	return e
}

// WithStore sets the menu store used by Load and Save.
func WithStore(store interfaces.MenuStore) Option {
	return func(e *Editor) {
		e.store = store
	}
}

// WithRevisions enables revision history.
func WithRevisions(store revisions.Store) Option {
	return func(e *Editor) {
		e.revisions = store
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithConfig sets the application configuration.
func WithConfig(cfg Config) Option {
	return func(e *Editor) {
		e.config = cfg
	}
}

// WithRecorder sets the operation metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(e *Editor) {
		if r != nil {
			e.recorder = r
		}
	}
}

// Config returns the application configuration.
func (e *Editor) Config() Config {
	return e.config
}

// RegisterHook registers a hook handler for the given hook name.
func (e *Editor) RegisterHook(hook string, handler interfaces.HookHandler) {
	e.hooks[hook] = append(e.hooks[hook], handler)
}

// GetHooks returns all handlers for the given hook.
func (e *Editor) GetHooks(hook string) []interfaces.HookHandler {
	return e.hooks[hook]
}

// ExecuteHooks executes all handlers for the given hook in order. Each
// handler receives the previous handler's result.
func (e *Editor) ExecuteHooks(ctx context.Context, hook string, data any) (any, error) {
	result := data

	for _, handler := range e.hooks[hook] {
		var err error
		result, err = handler(ctx, result)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Load replaces the session with the stored menu of the configured screen.
// Entries are normalized before the tree is built, and the result becomes the
// new clean reference. Post-load hooks run against the loaded session; entries
// they return are normalized and replace the tree and reference.
func (e *Editor) Load(ctx context.Context) error {
	if e.store == nil {
		return ErrNoStore
	}

	raw, err := e.store.Load(ctx, e.config.Screen)
	if err != nil {
		e.recorder.Record("load", metrics.ResultError)
		return fmt.Errorf("failed to load menu: %w", err)
	}

	e.reset(core.Normalize(raw))

	out, err := e.ExecuteHooks(ctx, interfaces.HookPostLoad, e.Entries())
	if err != nil {
		e.recorder.Record("load", metrics.ResultError)
		return fmt.Errorf("post-load hook failed: %w", err)
	}
	if hooked, ok := out.([]core.MenuEntry); ok {
		if entries := core.Normalize(hooked); !core.EntriesEqual(entries, e.Entries()) {
			e.reset(entries)
		}
	}

	e.recorder.Record("load", metrics.ResultOK)
	e.logger.Info("menu loaded", "screen", e.config.Screen, "entries", e.tree.Len())
	return nil
}

// reset rebuilds the session from entries and marks it clean.
func (e *Editor) reset(entries []core.MenuEntry) {
	e.tree = core.Build(entries)
	e.reference = core.TakeSnapshot(e.tree)
	e.drag.Cancel()
}

// Save persists the flattened tree. Pre-save hooks may veto the save or
// rewrite the entries; a rewrite is reflected back into the tree. The
// reference only advances once the store accepts the entries, so a failed
// save leaves the session dirty.
func (e *Editor) Save(ctx context.Context) error {
	if e.store == nil {
		return ErrNoStore
	}

	entries := core.Flatten(e.tree)
	out, err := e.ExecuteHooks(ctx, interfaces.HookPreSave, entries)
	if err != nil {
		e.recorder.Record("save", metrics.ResultRejected)
		return fmt.Errorf("save rejected: %w", err)
	}
	if hooked, ok := out.([]core.MenuEntry); ok {
		entries = hooked
	}

	if err := e.store.Save(ctx, e.config.Screen, entries); err != nil {
		e.recorder.Record("save", metrics.ResultError)
		e.logger.Error("menu save failed", "screen", e.config.Screen, "error", err)
		return fmt.Errorf("failed to save menu: %w", err)
	}

	if !core.EntriesEqual(entries, core.Flatten(e.tree)) {
		e.tree = core.Build(entries)
	}
	e.reference = core.TakeSnapshot(e.tree)
	e.recorder.Record("save", metrics.ResultOK)
	e.logger.Info("menu saved", "screen", e.config.Screen, "entries", e.tree.Len())

	e.recordRevision(ctx, entries)

	if _, err := e.ExecuteHooks(ctx, interfaces.HookPostSave, entries); err != nil {
		e.logger.Warn("post-save hook failed", "error", err)
	}
	return nil
}

// recordRevision stores a history entry for a successful save. History is
// best effort: failures are logged and never fail the save.
func (e *Editor) recordRevision(ctx context.Context, entries []core.MenuEntry) {
	if e.revisions == nil {
		return
	}

	rev, err := e.revisions.Record(ctx, e.config.Screen, entries)
	if err != nil {
		e.logger.Warn("failed to record revision", "screen", e.config.Screen, "error", err)
		return
	}
	e.logger.Debug("revision recorded", "revision", rev.ID)

	if e.config.KeepRevisions > 0 {
		if _, err := e.revisions.Prune(ctx, e.config.Screen, e.config.KeepRevisions); err != nil {
			e.logger.Warn("failed to prune revisions", "screen", e.config.Screen, "error", err)
		}
	}
}

// Revisions lists the saved history of the configured screen, newest first.
func (e *Editor) Revisions(ctx context.Context, limit int) ([]revisions.Revision, error) {
	if e.revisions == nil {
		return nil, ErrNoRevisions
	}
	return e.revisions.List(ctx, e.config.Screen, limit)
}

// Restore replaces the working tree with a saved revision. The session is
// left dirty relative to the last load or save until it is saved again.
func (e *Editor) Restore(ctx context.Context, revisionID string) error {
	if e.revisions == nil {
		return ErrNoRevisions
	}

	rev, err := e.revisions.Get(ctx, revisionID)
	if err != nil {
		return err
	}
	if rev.Screen != e.config.Screen {
		return fmt.Errorf("revision %s belongs to screen %q", rev.ID, rev.Screen)
	}

	e.drag.Cancel()
	e.apply(ctx, "restore", core.Build(core.Normalize(rev.Entries)))
	return nil
}

// Tree returns the working tree. Callers must not modify it.
func (e *Editor) Tree() core.Tree {
	return e.tree
}

// Entries returns the working tree in persisted form.
func (e *Editor) Entries() []core.MenuEntry {
	return core.Flatten(e.tree)
}

// Reference returns the snapshot taken at the last load or save.
func (e *Editor) Reference() core.Snapshot {
	return e.reference
}

// Dirty reports whether the working tree differs from the reference.
func (e *Editor) Dirty() bool {
	return core.HasChanges(e.tree, e.reference)
}

// Status summarizes the session.
func (e *Editor) Status() Status {
	return Status{
		Screen:   e.config.Screen,
		Dirty:    e.Dirty(),
		Entries:  e.tree.Len(),
		Dragging: e.drag.Active(),
	}
}

// Find returns the node with the given handle, or nil.
func (e *Editor) Find(id core.NodeID) *core.Node {
	return core.Find(e.tree, id)
}

// FindByEntryID returns the node whose entry carries entryID, or nil.
func (e *Editor) FindByEntryID(entryID string) *core.Node {
	return core.FindByEntryID(e.tree, entryID)
}
