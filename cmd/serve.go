package cmd

import (
	"bitwise74/notes-api/api"
	"bitwise74/notes-api/db"
	"bitwise74/notes-api/internal"
	"bitwise74/notes-api/internal/service"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long:  `Applies pending migrations and starts serving the API until interrupted.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "Port to listen on (default 8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, conn, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer db.Close(conn)
	defer zap.L().Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(ctx, conn); err != nil {
		return err
	}

	if cfg.App.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	d := internal.NewDeps(conn, cfg)

	a := api.NewRouter(d)
	defer a.Close()

	// Accounts get a while to verify, so this doesn't need to run often
	go service.AccountCleanup(ctx, cfg.Cleanup.Interval, cfg.Cleanup.UnverifiedTTL, d.Users)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Host.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("Server starting", zap.Int("port", cfg.Host.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped, %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server, %w", err)
	}

	return nil
}
