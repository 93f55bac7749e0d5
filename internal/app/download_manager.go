package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/clipgenius-go/internal/domain"
	"github.com/yourusername/clipgenius-go/internal/infrastructure"
	"github.com/yourusername/clipgenius-go/pkg/logger"
	"go.uber.org/zap"
)

// DownloadRequest describes one download attempt
type DownloadRequest struct {
	URL         string
	Preferences domain.DownloadPreferences
	// Metadata, when known, names the history record and notification
	Metadata *domain.VideoMetadata
	// BatchID groups history records; per-item notifications are skipped for batches
	BatchID  string
	Progress domain.ProgressFunc
}

// DownloadManager turns media-extractor calls into DownloadResults.
// Every failure, including a panic inside the extractor, becomes a failed
// result; nothing is retried.
type DownloadManager struct {
	extractor domain.MediaExtractor
	repo      domain.HistoryRepository
	notifier  *infrastructure.NotificationService
	config    *domain.DownloadConfig
	logger    *zap.Logger
	events    *logger.MultiLogger
}

// NewDownloadManager creates a new download manager. repo, notifier and
// events may be nil.
func NewDownloadManager(
	extractor domain.MediaExtractor,
	repo domain.HistoryRepository,
	notifier *infrastructure.NotificationService,
	config *domain.DownloadConfig,
	log *zap.Logger,
	events *logger.MultiLogger,
) *DownloadManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &DownloadManager{
		extractor: extractor,
		repo:      repo,
		notifier:  notifier,
		config:    config,
		logger:    log,
		events:    events,
	}
}

// OutputDir returns the directory downloads are written to
func (dm *DownloadManager) OutputDir() string {
	return dm.config.OutputDir
}

// FetchMetadata returns video information, wrapping any failure in
// domain.ErrMetadataUnavailable
func (dm *DownloadManager) FetchMetadata(ctx context.Context, url string) (meta *domain.VideoMetadata, err error) {
	defer dm.recoverInto("fetch metadata", url, func(r error) { meta, err = nil, r })

	meta, err = dm.extractor.FetchMetadata(ctx, url)
	if err != nil {
		dm.logger.Warn("Metadata extraction failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrMetadataUnavailable, err)
	}
	if meta == nil {
		return nil, domain.ErrMetadataUnavailable
	}
	return meta, nil
}

// ListFormats returns the available formats, best first. Failures yield an
// empty list.
func (dm *DownloadManager) ListFormats(ctx context.Context, url string) (formats []domain.FormatDescriptor) {
	defer dm.recoverInto("list formats", url, func(error) { formats = nil })

	formats, err := dm.extractor.ListFormats(ctx, url)
	if err != nil {
		dm.logger.Warn("Format listing failed", zap.String("url", url), zap.Error(err))
		return nil
	}
	return formats
}

// Download performs one download and records it in history when enabled
func (dm *DownloadManager) Download(ctx context.Context, req DownloadRequest) (result *domain.DownloadResult) {
	record := dm.startRecord(req)
	platform := domain.PlatformHint(req.URL)

	defer dm.recoverInto("download", req.URL, func(r error) {
		result = domain.NewFailureResult("Download failed", r)
		dm.finishRecord(record, result)
	})

	dm.logger.Info("Starting download",
		zap.String("url", req.URL),
		zap.Bool("audio_only", req.Preferences.AudioOnly),
		zap.String("quality", req.Preferences.Quality))

	err := dm.extractor.Download(ctx, req.URL, domain.DownloadOptions{
		AudioOnly: req.Preferences.AudioOnly,
		Quality:   req.Preferences.Quality,
		Filename:  req.Preferences.CustomFilename,
		Progress:  req.Progress,
	})

	if err != nil {
		result = domain.NewFailureResult("Download failed", err)
		dm.logger.Warn("Download failed", zap.String("url", req.URL), zap.String("error", result.Error))
		if req.BatchID == "" {
			dm.notifier.NotifyDownloadFailed(req.URL, platform)
		}
	} else {
		result = domain.NewSuccessResult("Download completed successfully!", dm.config.OutputDir)
		dm.logger.Info("Download completed", zap.String("url", req.URL), zap.String("dir", dm.config.OutputDir))
		if req.BatchID == "" {
			dm.notifier.NotifyDownloadCompleted(req.Metadata.TitleOr(req.URL), platform)
		}
	}

	dm.finishRecord(record, result)
	return result
}

// DownloadSubtitles fetches subtitles in the configured languages
func (dm *DownloadManager) DownloadSubtitles(ctx context.Context, url string) (result *domain.DownloadResult) {
	defer dm.recoverInto("subtitles", url, func(r error) {
		result = domain.NewFailureResult("Subtitle download failed", r)
	})

	if err := dm.extractor.DownloadSubtitles(ctx, url, dm.config.SubtitleLangs); err != nil {
		return domain.NewFailureResult("Subtitle download failed", err)
	}
	return domain.NewSuccessResult("Subtitles downloaded successfully!", dm.config.OutputDir)
}

// DownloadThumbnail fetches the thumbnail image
func (dm *DownloadManager) DownloadThumbnail(ctx context.Context, url string) (result *domain.DownloadResult) {
	defer dm.recoverInto("thumbnail", url, func(r error) {
		result = domain.NewFailureResult("Thumbnail download failed", r)
	})

	if err := dm.extractor.DownloadThumbnail(ctx, url); err != nil {
		return domain.NewFailureResult("Thumbnail download failed", err)
	}
	return domain.NewSuccessResult("Thumbnail downloaded successfully!", dm.config.OutputDir)
}

// recoverInto converts a panic in the extractor into an error for set
func (dm *DownloadManager) recoverInto(action, url string, set func(error)) {
	r := recover()
	if r == nil {
		return
	}
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	err = fmt.Errorf("unexpected failure during %s: %w", action, err)
	dm.logger.Error("Recovered from panic", zap.String("action", action), zap.String("url", url), zap.Error(err))
	dm.events.LogAppError("Recovered from panic", zap.String("action", action), zap.String("url", url), zap.Error(err))
	set(err)
}

func (dm *DownloadManager) startRecord(req DownloadRequest) *domain.DownloadRecord {
	if dm.repo == nil {
		return nil
	}

	record := domain.NewDownloadRecord(req.URL, req.Preferences)
	record.BatchID = req.BatchID
	record.OutputDir = dm.config.OutputDir
	record.Title = req.Metadata.TitleOr("")
	record.MarkProcessing()

	if err := dm.repo.Create(record); err != nil {
		dm.logger.Warn("Failed to record download", zap.Error(err))
		return nil
	}
	return record
}

func (dm *DownloadManager) finishRecord(record *domain.DownloadRecord, result *domain.DownloadResult) {
	if record == nil || dm.repo == nil {
		return
	}

	if result.Success {
		record.MarkCompleted()
	} else {
		record.MarkFailed(result.Error)
	}

	if err := dm.repo.Update(record); err != nil {
		dm.logger.Warn("Failed to update download record", zap.String("id", record.ID), zap.Error(err))
	}
}

// IsInterrupted reports whether err (or ctx) signals a user interrupt
func IsInterrupted(ctx context.Context, err error) bool {
	if errors.Is(err, domain.ErrInterrupted) || errors.Is(err, context.Canceled) {
		return true
	}
	return ctx != nil && errors.Is(ctx.Err(), context.Canceled)
}
