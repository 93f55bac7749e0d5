//go:build integration
// +build integration

package integration

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/clipgenius-go/internal/app"
	"github.com/yourusername/clipgenius-go/internal/domain"
	"github.com/yourusername/clipgenius-go/internal/infrastructure"
)

// Short, stable, Creative Commons test video
const sampleVideoURL = "https://www.youtube.com/watch?v=jNQXAC9IVRw"

func requireYTDLP(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("yt-dlp"); err != nil {
		t.Skip("yt-dlp not installed")
	}
	if os.Getenv("CLIPGENIUS_NETWORK_TESTS") == "" {
		t.Skip("set CLIPGENIUS_NETWORK_TESTS=1 to run network tests")
	}
}

func TestDownloadWorkflow_AudioOnly(t *testing.T) {
	requireYTDLP(t)

	tmpDir := t.TempDir()
	repo, err := infrastructure.NewSQLiteHistoryRepository(filepath.Join(tmpDir, "history.db"))
	require.NoError(t, err)
	defer repo.Close()

	config := domain.DefaultConfig()
	config.Download.OutputDir = filepath.Join(tmpDir, "downloads")

	extractor := infrastructure.NewYTDLPExtractor(&config.Download, "", zap.NewNop())
	manager := app.NewDownloadManager(extractor, repo, nil, &config.Download, zap.NewNop(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	meta, err := manager.FetchMetadata(ctx, sampleVideoURL)
	require.NoError(t, err)
	assert.Equal(t, "Me at the zoo", meta.TitleOr(""))

	prefs := domain.NewDownloadPreferences(true, "best", false, false, "").
		WithFilename(domain.SuggestFilename(meta))

	result := manager.Download(ctx, app.DownloadRequest{
		URL:         sampleVideoURL,
		Preferences: prefs,
		Metadata:    meta,
	})
	require.True(t, result.Success, result.Message)

	files, err := filepath.Glob(filepath.Join(config.Download.OutputDir, "*.mp3"))
	require.NoError(t, err)
	assert.Len(t, files, 1)

	records, err := repo.FindAll(domain.StatusCompleted, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].AudioOnly)
	assert.Equal(t, "Me at the zoo", records[0].Title)
}

func TestDownloadWorkflow_UnavailableVideo(t *testing.T) {
	requireYTDLP(t)

	config := domain.DefaultConfig()
	config.Download.OutputDir = t.TempDir()

	extractor := infrastructure.NewYTDLPExtractor(&config.Download, "", zap.NewNop())
	manager := app.NewDownloadManager(extractor, nil, nil, &config.Download, zap.NewNop(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, err := manager.FetchMetadata(ctx, "https://www.youtube.com/watch?v=xxxxxxxxxxx")
	assert.ErrorIs(t, err, domain.ErrMetadataUnavailable)
}
