package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/clipgenius-go/internal/domain"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfigFile(t, `
download:
  output_dir: /srv/videos
  quality: 720p
  subtitle_langs: [en, de]
ai:
  model: gpt-4o-mini
  timeout: 5s
batch:
  fetch_timeout: 3s
logging:
  logs_dir: /var/log/clipgenius
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/videos", config.Download.OutputDir)
	assert.Equal(t, "720p", config.Download.Quality)
	assert.Equal(t, []string{"en", "de"}, config.Download.SubtitleLangs)
	assert.Equal(t, "gpt-4o-mini", config.AI.Model)
	assert.Equal(t, 5*time.Second, config.AI.Timeout)
	assert.Equal(t, 3*time.Second, config.Batch.FetchTimeout)
	assert.Equal(t, "/var/log/clipgenius", config.Logging.LogsDir)
	// untouched keys keep their defaults
	assert.Equal(t, "yt-dlp", config.Download.YTDLPBinary)
	assert.Equal(t, 8080, config.Server.Port)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, "download:\n  output_dir: ./from-file\n")
	t.Setenv("CLIPGENIUS_DOWNLOAD_OUTPUT_DIR", "/from/env")
	t.Setenv("CLIPGENIUS_SERVER_PORT", "9090")
	t.Setenv("CLIPGENIUS_HISTORY_ENABLED", "true")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", config.Download.OutputDir)
	assert.Equal(t, 9090, config.Server.Port)
	assert.True(t, config.History.Enabled)
	assert.Equal(t, "sk-test", config.AI.APIKey)
}

func TestLoadConfig_ExpandsPaths(t *testing.T) {
	t.Setenv("CLIP_TEST_ROOT", "/data")
	path := writeConfigFile(t, "download:\n  output_dir: $CLIP_TEST_ROOT/videos\n")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/videos", config.Download.OutputDir)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".clipgenius", "history.db"), config.History.DatabasePath)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, "server:\n  port: 70000\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfigFile(t, "notification:\n  enabled: true\n  method: pigeon\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfigFile(t, "download: [broken"))
	assert.Error(t, err)
}

func TestValidateConfig_FillsDefaults(t *testing.T) {
	config := domain.DefaultConfig()
	config.Download.Quality = " "
	config.Download.SubtitleLangs = nil
	config.Logging.Level = ""

	require.NoError(t, validateConfig(config))
	assert.Equal(t, "best", config.Download.Quality)
	assert.Equal(t, []string{"en"}, config.Download.SubtitleLangs)
	assert.Equal(t, "warn", config.Logging.Level)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	config := domain.DefaultConfig()
	config.Download.OutputDir = "/tmp/clips"
	config.Download.Timeout = 90 * time.Second
	config.AI.APIKey = "sk-secret"
	config.History.Enabled = true

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, SaveConfig(config, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "sk-secret")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/clips", loaded.Download.OutputDir)
	assert.Equal(t, 90*time.Second, loaded.Download.Timeout)
	assert.True(t, loaded.History.Enabled)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CLIPGENIUS_DOTENV_TEST=hello\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("CLIPGENIUS_DOTENV_TEST") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "hello", os.Getenv("CLIPGENIUS_DOTENV_TEST"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
