package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{Level: "info", Format: "json", OutputPath: path})
	require.NoError(t, err)

	log.Info("hello", zap.String("k", "v"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestNilMultiLoggerIsSafe(t *testing.T) {
	var ml *MultiLogger

	assert.NotPanics(t, func() {
		ml.LogBatchEvent("started")
		ml.LogAppError("boom")
		assert.Equal(t, "", ml.LogsDir())
		assert.NoError(t, ml.Close())
	})
}

func TestMultiLogger_RequiresDir(t *testing.T) {
	_, err := NewMultiLogger(MultiLoggerConfig{Level: "info"})
	assert.Error(t, err)
}

func TestMultiLoggerAndReader(t *testing.T) {
	dir := t.TempDir()

	ml, err := NewMultiLogger(MultiLoggerConfig{Level: "info", LogsDir: dir})
	require.NoError(t, err)

	ml.LogBatchEvent("batch started", zap.String("job_id", "job-1"), zap.Int("total", 3))
	ml.LogBatchEvent("batch finished", zap.String("job_id", "job-1"), zap.Int("successful", 2))
	ml.LogAppError("download panic", zap.String("url", "https://youtu.be/x"))
	require.NoError(t, ml.Close())

	reader := NewLogReader(dir)

	entries, err := reader.ReadTodayLogs(CategoryBatch, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "batch started", entries[0].Message)
	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "job-1", entries[0].Fields["job_id"])
	assert.NotEmpty(t, entries[0].Timestamp)

	last, err := reader.ReadTodayLogs(CategoryBatch, 1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "batch finished", last[0].Message)

	found, err := reader.SearchLogs(CategoryError, time.Now(), "YOUTU.BE", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "download panic", found[0].Message)
}

func TestLogReader_RawLines(t *testing.T) {
	dir := t.TempDir()
	path := CategoryLogPath(dir, CategoryDownload, time.Now())
	require.NoError(t, os.WriteFile(path, []byte("=== [x] Download: 1 ===\n$ yt-dlp url\n\n=== END ===\n"), 0644))

	entries, err := NewLogReader(dir).ReadTodayLogs(CategoryDownload, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "$ yt-dlp url", entries[1].Message)
	assert.Equal(t, "download", entries[1].Category)
}

func TestLogReader_MissingFile(t *testing.T) {
	entries, err := NewLogReader(t.TempDir()).ReadTodayLogs(CategoryBatch, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLogReader_Follow(t *testing.T) {
	dir := t.TempDir()
	path := CategoryLogPath(dir, CategoryDownload, time.Now())
	require.NoError(t, os.WriteFile(path, []byte("old line\n"), 0644))

	reader := NewLogReader(dir)
	reader.pollInterval = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out := make(chan LogEntry, 1)
	done := make(chan error, 1)
	go func() { done <- reader.Follow(ctx, CategoryDownload, out) }()

	// Give Follow time to seek past the existing content.
	time.Sleep(50 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("new line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case entry := <-out:
		assert.Equal(t, "new line", entry.Message)
	case <-ctx.Done():
		t.Fatal("no entry received")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("batch")
	require.NoError(t, err)
	assert.Equal(t, CategoryBatch, c)

	_, err = ParseCategory("queue")
	assert.Error(t, err)
}
