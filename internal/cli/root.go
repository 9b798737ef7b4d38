package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/artpar/menucms/internal/app"
	"github.com/artpar/menucms/internal/core"
	"github.com/artpar/menucms/internal/logger"
	"github.com/artpar/menucms/internal/metrics"
	"github.com/artpar/menucms/internal/revisions/sqlite"
	"github.com/artpar/menucms/internal/storage/filesystem"
	"github.com/spf13/cobra"
)

// GlobalOptions holds flags shared by every command.
type GlobalOptions struct {
	DataDir  string
	Screen   string
	Format   string
	LogLevel string
	Version  string
}

// NewRootCommand creates the root command. Without a subcommand it opens the
// interactive editor.
func NewRootCommand(version string) *cobra.Command {
	defaults := app.DefaultConfig()
	opts := &GlobalOptions{Version: version}

	cmd := &cobra.Command{
		Use:   "menucms",
		Short: "menucms - edit application navigation menus",
		Long: "menucms edits the hierarchical navigation menus of an application's screens.\n" +
			"Menus are stored per screen as YAML or JSON documents and every save is\n" +
			"kept as a revision.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", defaults.DataDir, "Directory holding menus and revision history")
	cmd.PersistentFlags().StringVarP(&opts.Screen, "screen", "s", defaults.Screen, "Screen whose menu to edit")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", defaults.Format, "Storage format (yaml or json)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $LOG_LEVEL or info")

	cmd.AddCommand(
		NewShowCommand(opts),
		NewNormalizeCommand(opts),
		NewAddCommand(opts),
		NewRemoveCommand(opts),
		NewMoveCommand(opts),
		NewDuplicateCommand(opts),
		NewRenameCommand(opts),
		NewDiffCommand(),
		NewRevisionsCommand(opts),
		NewEditCommand(opts),
		NewServeCommand(opts),
		NewScreensCommand(opts),
	)

	return cmd
}

// Config converts the flags to an application configuration.
func (o *GlobalOptions) Config() app.Config {
	cfg := app.DefaultConfig()
	cfg.DataDir = expandHome(o.DataDir)
	cfg.Screen = o.Screen
	cfg.Format = o.Format
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	} else if env := os.Getenv(logger.EnvVarLogLevel); env != "" {
		cfg.LogLevel = env
	}
	return cfg
}

// session bundles an editor with the stores it owns.
type session struct {
	editor    *app.Editor
	store     *filesystem.MenuStore
	revisions *sqlite.Store
	logger    *slog.Logger
}

// openSession builds and loads an editor for the configured screen. Logs go
// to logOut.
func openSession(ctx context.Context, opts *GlobalOptions, logOut io.Writer, extra ...app.Option) (*session, error) {
	cfg := opts.Config()
	log := logger.New(logOut, "menucms", opts.Version, cfg.LogLevel)

	store, err := openMenuStore(opts)
	if err != nil {
		return nil, err
	}
	revs, err := sqlite.New(filepath.Join(cfg.DataDir, "revisions.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open revision history: %w", err)
	}

	options := append([]app.Option{
		app.WithConfig(cfg),
		app.WithStore(store),
		app.WithRevisions(revs),
		app.WithLogger(log),
		app.WithRecorder(metrics.Nop{}),
	}, extra...)
	editor := app.New(options...)

	if err := editor.Load(ctx); err != nil {
		revs.Close()
		return nil, err
	}

	return &session{editor: editor, store: store, revisions: revs, logger: log}, nil
}

func (s *session) Close() error {
	return s.revisions.Close()
}

// resolve maps a persisted entry id to the node holding it.
func (s *session) resolve(entryID string) (*core.Node, error) {
	n := s.editor.FindByEntryID(entryID)
	if n == nil {
		return nil, fmt.Errorf("menu item not found: %s", entryID)
	}
	return n, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
