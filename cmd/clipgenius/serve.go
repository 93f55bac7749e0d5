package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/clipgenius-go/api"
	"github.com/yourusername/clipgenius-go/internal/app"
	"github.com/yourusername/clipgenius-go/internal/infrastructure"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local read-only HTTP API",
	Long: `Serve URL validation, link extraction, metadata inspection, download
history and category logs over HTTP. The server never starts downloads.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(false)
		if err != nil {
			return err
		}
		defer rt.Close()

		config := rt.config
		if cmd.Flags().Changed("host") {
			config.Server.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			config.Server.Port, _ = cmd.Flags().GetInt("port")
		}

		// an existing database is served even when recording is off
		if rt.repo == nil {
			if _, err := os.Stat(config.History.DatabasePath); err == nil {
				if rt.repo, err = infrastructure.NewSQLiteHistoryRepository(config.History.DatabasePath); err != nil {
					rt.log.Warn("History database unavailable", zap.Error(err))
				}
			}
		}

		extractor := infrastructure.NewYTDLPExtractor(&config.Download, "", rt.log)
		downloads := app.NewDownloadManager(extractor, nil, nil, &config.Download, rt.log, rt.events)

		router := api.SetupRouter(api.RouterDeps{
			Downloads: downloads,
			Links:     infrastructure.NewLinkExtractor(&config.Batch, rt.log),
			History:   rt.History(),
			LogsDir:   config.Logging.LogsDir,
			Logger:    rt.log,
			Events:    rt.events,
		})

		addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
		server := &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			rt.log.Info("HTTP server listening", zap.String("addr", addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()
		fmt.Printf("ClipGenius API listening on http://%s\n", addr)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("failed to start server: %w", err)
			}
			return nil
		case <-quit:
			rt.log.Info("Received shutdown signal")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			rt.log.Error("Server forced to shutdown", zap.Error(err))
			return err
		}

		rt.log.Info("Server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("host", "localhost", "Listen address")
	serveCmd.Flags().Int("port", 8080, "Listen port")
}
