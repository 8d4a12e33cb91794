package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"csvscope/internal/config"
	"csvscope/internal/logging"
	"csvscope/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the CSV upload web server",
	Long: `Serve a web form for uploading a CSV file and viewing its
profile. Configuration comes from the environment; a .env file in the
working directory is loaded if present.`,

	Run: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine, the environment alone may be complete.
		_ = godotenv.Load()

		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}

		logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
		server := web.New(cfg)

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server starting",
				"addr", cfg.Server.Addr(),
				"upload_max_mb", cfg.Upload.MaxSizeMB,
			)
			errCh <- server.Start()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server failed", "error", err)
				os.Exit(1)
			}
		case sig := <-stop:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown failed", "error", err)
				os.Exit(1)
			}
			logger.Info("server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
