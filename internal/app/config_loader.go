package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yourusername/clipgenius-go/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. CLIPGENIUS_DOWNLOAD_OUTPUT_DIR
const EnvPrefix = "CLIPGENIUS"

// LoadDotEnv loads KEY=value pairs from the given files (default ".env")
// into the process environment. Missing files are ignored and variables
// that are already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from file and environment
func LoadConfig(configPath string) (*domain.Config, error) {
	config := domain.DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.clipgenius")
		v.AddConfigPath("/etc/clipgenius")
	}

	setDefaults(v, config)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("ai.api_key", EnvPrefix+"_AI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind API key: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults registers every key so that AutomaticEnv can override it
func setDefaults(v *viper.Viper, c *domain.Config) {
	v.SetDefault("download.output_dir", c.Download.OutputDir)
	v.SetDefault("download.quality", c.Download.Quality)
	v.SetDefault("download.subtitle_langs", c.Download.SubtitleLangs)
	v.SetDefault("download.ytdlp_binary", c.Download.YTDLPBinary)
	v.SetDefault("download.audio_format", c.Download.AudioFormat)
	v.SetDefault("download.audio_quality", c.Download.AudioQuality)
	v.SetDefault("download.timeout", c.Download.Timeout)
	v.SetDefault("download.show_formats", c.Download.ShowFormats)

	v.SetDefault("ai.enabled", c.AI.Enabled)
	v.SetDefault("ai.api_key", c.AI.APIKey)
	v.SetDefault("ai.model", c.AI.Model)
	v.SetDefault("ai.base_url", c.AI.BaseURL)
	v.SetDefault("ai.timeout", c.AI.Timeout)
	v.SetDefault("ai.max_tokens", c.AI.MaxTokens)
	v.SetDefault("ai.temperature", c.AI.Temperature)

	v.SetDefault("batch.fetch_timeout", c.Batch.FetchTimeout)
	v.SetDefault("batch.user_agent", c.Batch.UserAgent)

	v.SetDefault("history.enabled", c.History.Enabled)
	v.SetDefault("history.database_path", c.History.DatabasePath)

	v.SetDefault("notification.enabled", c.Notification.Enabled)
	v.SetDefault("notification.sound", c.Notification.Sound)
	v.SetDefault("notification.method", c.Notification.Method)

	v.SetDefault("server.host", c.Server.Host)
	v.SetDefault("server.port", c.Server.Port)

	v.SetDefault("logging.level", c.Logging.Level)
	v.SetDefault("logging.format", c.Logging.Format)
	v.SetDefault("logging.output_path", c.Logging.OutputPath)
	v.SetDefault("logging.logs_dir", c.Logging.LogsDir)
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	config.Download.OutputDir = expandPath(config.Download.OutputDir)
	config.History.DatabasePath = expandPath(config.History.DatabasePath)
	config.Logging.LogsDir = expandPath(config.Logging.LogsDir)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	return config
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	return os.ExpandEnv(path)
}

// validateConfig validates the configuration and fills empty optional values
func validateConfig(config *domain.Config) error {
	if config.Download.OutputDir == "" {
		return fmt.Errorf("download output directory not configured")
	}

	if config.Download.Timeout < 0 {
		return fmt.Errorf("download timeout cannot be negative")
	}

	if strings.TrimSpace(config.Download.Quality) == "" {
		config.Download.Quality = domain.DefaultQuality
	}

	if len(config.Download.SubtitleLangs) == 0 {
		config.Download.SubtitleLangs = []string{"en"}
	}

	if config.Batch.FetchTimeout <= 0 {
		return fmt.Errorf("batch fetch timeout must be positive")
	}

	if config.AI.MaxTokens < 0 {
		return fmt.Errorf("AI max tokens cannot be negative")
	}

	if config.History.Enabled && config.History.DatabasePath == "" {
		return fmt.Errorf("history database path not configured")
	}

	switch config.Notification.Method {
	case "osascript", "notify-send":
	default:
		if config.Notification.Enabled {
			return fmt.Errorf("unknown notification method: %s", config.Notification.Method)
		}
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "warn"
	}

	return nil
}

// SaveConfig saves configuration to file. The API key is never written.
func SaveConfig(config *domain.Config, path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.MergeConfigMap(configToMap(config)); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// configToMap mirrors the mapstructure keys so a saved file loads back unchanged
func configToMap(c *domain.Config) map[string]interface{} {
	return map[string]interface{}{
		"download": map[string]interface{}{
			"output_dir":     c.Download.OutputDir,
			"quality":        c.Download.Quality,
			"subtitle_langs": c.Download.SubtitleLangs,
			"ytdlp_binary":   c.Download.YTDLPBinary,
			"audio_format":   c.Download.AudioFormat,
			"audio_quality":  c.Download.AudioQuality,
			"timeout":        c.Download.Timeout.String(),
			"show_formats":   c.Download.ShowFormats,
		},
		"ai": map[string]interface{}{
			"enabled":     c.AI.Enabled,
			"model":       c.AI.Model,
			"base_url":    c.AI.BaseURL,
			"timeout":     c.AI.Timeout.String(),
			"max_tokens":  c.AI.MaxTokens,
			"temperature": c.AI.Temperature,
		},
		"batch": map[string]interface{}{
			"fetch_timeout": c.Batch.FetchTimeout.String(),
			"user_agent":    c.Batch.UserAgent,
		},
		"history": map[string]interface{}{
			"enabled":       c.History.Enabled,
			"database_path": c.History.DatabasePath,
		},
		"notification": map[string]interface{}{
			"enabled": c.Notification.Enabled,
			"sound":   c.Notification.Sound,
			"method":  c.Notification.Method,
		},
		"server": map[string]interface{}{
			"host": c.Server.Host,
			"port": c.Server.Port,
		},
		"logging": map[string]interface{}{
			"level":       c.Logging.Level,
			"format":      c.Logging.Format,
			"output_path": c.Logging.OutputPath,
			"logs_dir":    c.Logging.LogsDir,
		},
	}
}
