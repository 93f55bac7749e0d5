package app

import (
	"context"
	"fmt"
	"os"

	"github.com/yourusername/clipgenius-go/internal/domain"
	"github.com/yourusername/clipgenius-go/internal/infrastructure"
	"github.com/yourusername/clipgenius-go/pkg/logger"
	"go.uber.org/zap"
)

// BatchSource names where batch URLs come from
type BatchSource struct {
	// Value is a file path, a webpage URL or an inline newline/comma list
	Value string
	// Webpage forces Value to be fetched and scanned for video links
	Webpage bool
}

// BatchReporter receives progress from a running batch. Every method is
// called from the goroutine running the batch.
type BatchReporter interface {
	ItemStarted(index, total int, url string)
	ItemAnalyzed(meta *domain.VideoMetadata)
	ItemFinished(url string, meta *domain.VideoMetadata, result *domain.DownloadResult)
	ExtraFailed(kind string, result *domain.DownloadResult)
}

// BatchRunner processes batch jobs one URL at a time
type BatchRunner struct {
	downloads *DownloadManager
	links     domain.LinkSource
	notifier  *infrastructure.NotificationService
	logger    *zap.Logger
	events    *logger.MultiLogger
	readFile  func(name string) ([]byte, error)
}

// NewBatchRunner creates a new batch runner. notifier and events may be nil.
func NewBatchRunner(
	downloads *DownloadManager,
	links domain.LinkSource,
	notifier *infrastructure.NotificationService,
	log *zap.Logger,
	events *logger.MultiLogger,
) *BatchRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return &BatchRunner{
		downloads: downloads,
		links:     links,
		notifier:  notifier,
		logger:    log,
		events:    events,
		readFile:  os.ReadFile,
	}
}

// ResolveURLs turns a batch source into an ordered URL list. A readable
// file is parsed as a URL list; with Webpage set the value is scanned for
// links; anything else is parsed as an inline list.
func (br *BatchRunner) ResolveURLs(ctx context.Context, source BatchSource) ([]string, error) {
	if source.Value == "" {
		return nil, domain.ErrNoBatchSource
	}

	var urls []string
	switch {
	case isRegularFile(source.Value):
		data, err := br.readFile(source.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrBatchSourceUnreadable, err)
		}
		urls = domain.ParseURLList(string(data))
	case source.Webpage:
		if br.links == nil {
			return nil, fmt.Errorf("webpage batches are not supported")
		}
		if !domain.IsValidURL(source.Value) {
			return nil, domain.ErrInvalidURL
		}
		urls = br.links.ExtractVideoLinks(ctx, source.Value)
	default:
		urls = domain.ParseURLList(source.Value)
	}

	br.events.LogBatchEvent("urls_resolved",
		zap.String("source", source.Value),
		zap.Bool("webpage", source.Webpage),
		zap.Int("count", len(urls)))

	if len(urls) == 0 {
		return nil, domain.ErrNoVideoURLs
	}
	return urls, nil
}

// Run downloads every URL of job in order. A failing item is counted and
// the loop moves on; only context cancellation stops the batch early.
func (br *BatchRunner) Run(ctx context.Context, job *domain.BatchJob, reporter BatchReporter) (domain.BatchSummary, error) {
	summary := domain.BatchSummary{
		JobID:     job.ID,
		Total:     len(job.URLs),
		OutputDir: br.downloads.OutputDir(),
	}
	if reporter == nil {
		reporter = nopReporter{}
	}

	br.logger.Info("Starting batch", zap.String("job_id", job.ID), zap.Int("total", summary.Total))
	br.events.LogBatchEvent("batch_started",
		zap.String("job_id", job.ID),
		zap.Int("total", summary.Total),
		zap.Bool("audio_only", job.Preferences.AudioOnly),
		zap.String("quality", job.Preferences.Quality))

	for i, url := range job.URLs {
		if err := ctx.Err(); err != nil {
			br.events.LogBatchEvent("batch_interrupted", zap.String("job_id", job.ID), zap.Int("processed", i))
			return summary, fmt.Errorf("%w: %v", domain.ErrInterrupted, err)
		}

		reporter.ItemStarted(i+1, summary.Total, url)
		if br.runItem(ctx, job, url, reporter) {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}

	br.events.LogBatchEvent("batch_completed",
		zap.String("job_id", job.ID),
		zap.Int("successful", summary.Successful),
		zap.Int("failed", summary.Failed))
	br.notifier.NotifyBatchCompleted(summary)

	return summary, nil
}

func (br *BatchRunner) runItem(ctx context.Context, job *domain.BatchJob, url string, reporter BatchReporter) bool {
	if !domain.IsValidURL(url) {
		result := domain.NewFailureResult("Download failed", domain.ErrInvalidURL)
		br.itemFinished(job, url, nil, result, reporter)
		return false
	}

	meta, err := br.downloads.FetchMetadata(ctx, url)
	if err != nil {
		br.itemFinished(job, url, nil, domain.NewFailureResult("Download failed", err), reporter)
		return false
	}
	reporter.ItemAnalyzed(meta)

	prefs := job.Preferences.WithFilename(domain.SuggestFilename(meta))
	result := br.downloads.Download(ctx, DownloadRequest{
		URL:         url,
		Preferences: prefs,
		Metadata:    meta,
		BatchID:     job.ID,
	})
	br.itemFinished(job, url, meta, result, reporter)
	if !result.Success {
		return false
	}

	if prefs.Subtitles {
		if sub := br.downloads.DownloadSubtitles(ctx, url); !sub.Success {
			reporter.ExtraFailed("subtitles", sub)
		}
	}
	if prefs.Thumbnail {
		if thumb := br.downloads.DownloadThumbnail(ctx, url); !thumb.Success {
			reporter.ExtraFailed("thumbnail", thumb)
		}
	}
	return true
}

func (br *BatchRunner) itemFinished(job *domain.BatchJob, url string, meta *domain.VideoMetadata, result *domain.DownloadResult, reporter BatchReporter) {
	fields := []zap.Field{
		zap.String("job_id", job.ID),
		zap.String("url", url),
		zap.Bool("success", result.Success),
	}
	if !result.Success {
		fields = append(fields, zap.String("error", result.Error))
	}
	br.events.LogBatchEvent("item_finished", fields...)
	reporter.ItemFinished(url, meta, result)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

type nopReporter struct{}

func (nopReporter) ItemStarted(int, int, string)                                       {}
func (nopReporter) ItemAnalyzed(*domain.VideoMetadata)                                 {}
func (nopReporter) ItemFinished(string, *domain.VideoMetadata, *domain.DownloadResult) {}
func (nopReporter) ExtraFailed(string, *domain.DownloadResult)                         {}
