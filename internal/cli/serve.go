package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/olive-branch-content-api/internal/api"
	"github.com/olive-branch-content-api/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ServeOptions tunes Serve beyond what Config carries
type ServeOptions struct {
	Migrate bool // apply pending migrations before listening
}

func newServeCmd(e *env) *cobra.Command {
	var opts ServeOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP content API",
		Long: `Serve exposes categories, articles, timeline events, evidence documents
and search over HTTP.

Example:
  contentctl serve --source files --content-dir ./content
  contentctl serve --source store --sync-interval 10m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return Serve(ctx, e.cfg, e.log, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Migrate, "migrate", true, "run database migrations on start (store source only)")
	cmd.Flags().Duration("sync-interval", 0, "periodically sync the content tree into the store")
	_ = e.v.BindPFlag("sync_interval", cmd.Flags().Lookup("sync-interval"))
	return cmd
}

// Serve runs the HTTP API until ctx is done, then shuts down gracefully
func Serve(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts ServeOptions) error {
	log.Info().Str("source", cfg.Content.Source).Msg("Starting content API server...")

	interval := cfg.Content.SyncInterval

	a, err := newApp(cfg, log, interval > 0)
	if err != nil {
		return err
	}
	defer a.Close()

	// Run migrations
	if a.db != nil && opts.Migrate {
		if err := a.db.RunMigrations(); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}

	// Start background sync
	if interval > 0 {
		go func() {
			if err := a.services.Sync.Run(ctx, interval); err != nil {
				log.Error().Err(err).Msg("Sync loop failed")
			}
		}()
	}

	router := api.NewRouter(a.services, cfg, a.health(), log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
