package domain

import "time"

// Config represents the application configuration
type Config struct {
	Download     DownloadConfig     `mapstructure:"download"`
	AI           AIConfig           `mapstructure:"ai"`
	Batch        BatchConfig        `mapstructure:"batch"`
	History      HistoryConfig      `mapstructure:"history"`
	Notification NotificationConfig `mapstructure:"notification"`
	Server       ServerConfig       `mapstructure:"server"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	OutputDir     string        `mapstructure:"output_dir"`
	Quality       string        `mapstructure:"quality"`
	SubtitleLangs []string      `mapstructure:"subtitle_langs"`
	YTDLPBinary   string        `mapstructure:"ytdlp_binary"`
	AudioFormat   string        `mapstructure:"audio_format"`
	AudioQuality  string        `mapstructure:"audio_quality"`
	Timeout       time.Duration `mapstructure:"timeout"` // 0 disables the per-download timeout
	ShowFormats   bool          `mapstructure:"show_formats"`
}

// AIConfig contains conversational assistant configuration
type AIConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float32       `mapstructure:"temperature"`
}

// BatchConfig contains batch-mode configuration
type BatchConfig struct {
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
}

// HistoryConfig contains the optional download history configuration
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Sound   bool   `mapstructure:"sound"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// ServerConfig contains configuration for the local API server
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
	LogsDir    string `mapstructure:"logs_dir"`    // category log files; empty disables them
}

// DefaultUserAgent is sent when fetching webpages in batch mode
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Download: DownloadConfig{
			OutputDir:     "./downloads",
			Quality:       DefaultQuality,
			SubtitleLangs: []string{"en"},
			YTDLPBinary:   "yt-dlp",
			AudioFormat:   "mp3",
			AudioQuality:  "192",
			Timeout:       0,
			ShowFormats:   false,
		},
		AI: AIConfig{
			Enabled:     true,
			Model:       "gpt-3.5-turbo",
			Timeout:     30 * time.Second,
			MaxTokens:   200,
			Temperature: 0.7,
		},
		Batch: BatchConfig{
			FetchTimeout: 10 * time.Second,
			UserAgent:    DefaultUserAgent,
		},
		History: HistoryConfig{
			Enabled:      false,
			DatabasePath: "$HOME/.clipgenius/history.db",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Sound:   true,
			Method:  "notify-send",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "console",
			OutputPath: "stderr",
			LogsDir:    "",
		},
	}
}
