package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/focustrack/internal/clock"
	"github.com/roach88/focustrack/internal/config"
	"github.com/roach88/focustrack/internal/creds"
	"github.com/roach88/focustrack/internal/history"
	"github.com/roach88/focustrack/internal/session"
	"github.com/roach88/focustrack/internal/task"
	"github.com/roach88/focustrack/internal/web"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Listen string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the FocusTrack web server",
		Long: `Start the FocusTrack web server.

The server renders the auth and task-management pages, persists users,
pending tasks, and completion history to three flat CSV tables under
the configured data directory, and keeps per-visitor sessions in memory.

Example:
  focustrack serve
  focustrack serve --listen :9000 --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Listen, "listen", "", "listen address (overrides config)")

	return cmd
}

func runServe(opts *ServeOptions) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("serve: create data dir: %w", err)
	}

	clk := clock.System{}
	sessions := session.NewManager()
	srv := web.NewServer(
		creds.NewStore(cfg.UsersPath()),
		task.NewStore(cfg.TasksPath()),
		history.NewLog(cfg.CompletedPath(), clk),
		sessions,
		clk,
	)

	httpSrv := &http.Server{
		Addr:    cfg.Listen,
		Handler: srv.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sweep idle sessions in the background. This is lifecycle
	// housekeeping only; there is no logout in the application.
	go evictLoop(ctx, sessions, cfg.SessionTTL())

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			"addr", cfg.Listen,
			"data_dir", cfg.DataDir,
			"version", web.Version,
		)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("serve: shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}

func evictLoop(ctx context.Context, sessions *session.Manager, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Evict(ttl); n > 0 {
				slog.Debug("evicted idle sessions", "count", n)
			}
		}
	}
}
