package infrastructure

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/clipgenius-go/internal/domain"
)

func setupTestRepo(t *testing.T) *SQLiteHistoryRepository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")
	repo, err := NewSQLiteHistoryRepository(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() { repo.Close() })
	return repo
}

func newRecord(url string) *domain.DownloadRecord {
	return domain.NewDownloadRecord(url, domain.NewDownloadPreferences(false, "best", false, false, ""))
}

func TestHistoryRepository_CreateAndFind(t *testing.T) {
	repo := setupTestRepo(t)

	record := newRecord("https://youtu.be/abc")
	record.Title = "A video"
	require.NoError(t, repo.Create(record))

	found, err := repo.FindByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.URL, found.URL)
	assert.Equal(t, "A video", found.Title)
	assert.Equal(t, domain.PlatformYouTube, found.Platform)
	assert.Equal(t, domain.StatusQueued, found.Status)
}

func TestHistoryRepository_FindByIDMissing(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByID("nope")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestHistoryRepository_Update(t *testing.T) {
	repo := setupTestRepo(t)

	record := newRecord("https://vimeo.com/1")
	require.NoError(t, repo.Create(record))

	record.MarkProcessing()
	record.MarkFailed("HTTP Error 403")
	require.NoError(t, repo.Update(record))

	found, err := repo.FindByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, found.Status)
	assert.Equal(t, "HTTP Error 403", found.ErrorMessage)
	assert.NotNil(t, found.StartedAt)
}

func TestHistoryRepository_FindAll(t *testing.T) {
	repo := setupTestRepo(t)

	base := time.Now().Add(-time.Hour)
	for i, url := range []string{"https://youtu.be/1", "https://youtu.be/2", "https://youtu.be/3"} {
		record := newRecord(url)
		record.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if i == 1 {
			record.MarkCompleted()
		}
		require.NoError(t, repo.Create(record))
	}

	all, err := repo.FindAll("", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "https://youtu.be/3", all[0].URL, "newest first")

	limited, err := repo.FindAll("", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	completed, err := repo.FindAll(domain.StatusCompleted, 0)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "https://youtu.be/2", completed[0].URL)
}

func TestHistoryRepository_FindByBatch(t *testing.T) {
	repo := setupTestRepo(t)

	base := time.Now()
	for i, url := range []string{"https://youtu.be/a", "https://youtu.be/b"} {
		record := newRecord(url)
		record.BatchID = "batch-1"
		record.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(record))
	}
	require.NoError(t, repo.Create(newRecord("https://youtu.be/solo")))

	records, err := repo.FindByBatch("batch-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "https://youtu.be/a", records[0].URL)
	assert.Equal(t, "https://youtu.be/b", records[1].URL)
}

func TestHistoryRepository_GetStats(t *testing.T) {
	repo := setupTestRepo(t)

	completed := newRecord("https://youtu.be/1")
	completed.MarkCompleted()
	failed := newRecord("https://youtu.be/2")
	failed.MarkFailed("boom")
	failed2 := newRecord("https://youtu.be/3")
	failed2.MarkFailed("boom")

	for _, r := range []*domain.DownloadRecord{completed, failed, failed2, newRecord("https://youtu.be/4")} {
		require.NoError(t, repo.Create(r))
	}

	stats, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(2), stats.Failed)
	assert.Equal(t, int64(1), stats.Queued)
	assert.Equal(t, int64(0), stats.Processing)
}
