package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/artpar/menucms/internal/app"
	"github.com/artpar/menucms/internal/metrics"
	"github.com/artpar/menucms/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Addr string
}

// NewServeCommand creates the serve command.
func NewServeCommand(global *GlobalOptions) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editor over HTTP",
		Long: `Serve the editor of one screen over HTTP.

Endpoints:
  GET    /api/menu                   normalized entries
  GET    /api/menu/tree              tree with levels and kinds
  POST   /api/menu/items             add an item
  PATCH  /api/menu/items/{id}        update an item
  DELETE /api/menu/items/{id}        remove an item
  POST   /api/menu/items/{id}/move   move an item
  POST   /api/menu/save              save
  GET    /api/events                 websocket change feed
  GET    /metrics                    Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Addr, "addr", "a", app.DefaultConfig().Addr, "Address to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, global *GlobalOptions, opts *ServeOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s, err := openSession(ctx, global, cmd.ErrOrStderr(), app.WithRecorder(metrics.NewCounter(registry)))
	if err != nil {
		return err
	}
	defer s.Close()

	srv := server.New(s.editor,
		server.WithAddr(opts.Addr),
		server.WithRegistry(registry),
		server.WithLogger(s.logger),
	)

	fmt.Fprintf(cmd.OutOrStdout(), "Serving screen %q on %s\n", global.Screen, opts.Addr)
	if err := srv.Serve(ctx); err != nil {
		return err
	}
	if s.editor.Dirty() {
		s.logger.Warn("server stopped with unsaved changes", "screen", global.Screen)
	}
	return nil
}
