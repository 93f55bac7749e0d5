package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/clipgenius-go/internal/domain"
	"github.com/yourusername/clipgenius-go/pkg/console"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  string
	}{
		{"success", nil, 0, ""},
		{"interrupted", fmt.Errorf("%w: input interrupted", domain.ErrInterrupted), 0, "Download interrupted by user."},
		{"no source", domain.ErrNoBatchSource, 1, "Either provide a video URL or use --batch."},
		{"invalid url", domain.ErrInvalidURL, 1, ""},
		{"declined", domain.ErrCancelled, 1, ""},
		{"download failed", fmt.Errorf("%w: HTTP Error 403", domain.ErrDownloadFailed), 1, ""},
		{"input closed", fmt.Errorf("%w: input closed", domain.ErrInputClosed), 1, ""},
		{"unreadable batch file", fmt.Errorf("%w: permission denied", domain.ErrBatchSourceUnreadable), 1, ""},
		{"unexpected", errors.New("disk full"), 1, "Unexpected error: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cmd := &cobra.Command{Use: "clipgenius"}
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			err := exitCode(cmd, console.NewPlain(&buf), zap.NewNop(), tt.err)

			code := 0
			var exit *exitError
			if errors.As(err, &exit) {
				code = exit.code
			}
			assert.Equal(t, tt.wantCode, code)
			if tt.wantOut != "" {
				assert.Contains(t, buf.String(), tt.wantOut)
			} else {
				assert.NotContains(t, buf.String(), "❌")
			}
		})
	}
}

func TestEnsureOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "media", "clips")
	require.NoError(t, ensureOutputDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// existing directories are fine
	assert.NoError(t, ensureOutputDir(dir))

	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	err = ensureOutputDir(filepath.Join(blocker, "downloads"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot create download directory")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 8))
	assert.Equal(t, "12345...", truncate("1234567890", 8))
	assert.Equal(t, "ééééé...", truncate("éééééééééé", 8))
}
