package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yourusername/clipgenius-go/internal/app"
	"github.com/yourusername/clipgenius-go/internal/domain"
	"github.com/yourusername/clipgenius-go/internal/infrastructure"
	"github.com/yourusername/clipgenius-go/pkg/logger"
)

// runtime holds the configuration and the optional stores every command shares
type runtime struct {
	config *domain.Config
	log    *zap.Logger
	events *logger.MultiLogger
	repo   *infrastructure.SQLiteHistoryRepository
}

// newRuntime loads .env and the config file, then opens the logger, the
// category logs (when logging.logs_dir is set) and the history database
// (when enabled by config or forceHistory)
func newRuntime(forceHistory bool) (*runtime, error) {
	if err := app.LoadDotEnv(); err != nil {
		return nil, err
	}

	config, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if forceHistory {
		config.History.Enabled = true
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &runtime{config: config, log: log}

	if config.Logging.LogsDir != "" {
		rt.events, err = logger.NewMultiLogger(logger.MultiLoggerConfig{
			Level:   config.Logging.Level,
			LogsDir: config.Logging.LogsDir,
		})
		if err != nil {
			log.Warn("Category logs disabled", zap.Error(err))
		}
	}

	if config.History.Enabled {
		rt.repo, err = infrastructure.NewSQLiteHistoryRepository(config.History.DatabasePath)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
	}

	log.Debug("Runtime ready",
		zap.String("output_dir", config.Download.OutputDir),
		zap.Bool("history", rt.repo != nil),
		zap.String("logs_dir", rt.events.LogsDir()))

	return rt, nil
}

// History returns the repository as an interface, nil when disabled
func (rt *runtime) History() domain.HistoryRepository {
	if rt.repo == nil {
		return nil
	}
	return rt.repo
}

// Close releases the database and flushes the loggers
func (rt *runtime) Close() {
	if rt.repo != nil {
		rt.repo.Close()
	}
	rt.events.Close()
	_ = rt.log.Sync()
}
