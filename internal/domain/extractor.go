package domain

import "context"

// DownloadOptions tells the media extractor how to fetch one video
type DownloadOptions struct {
	AudioOnly bool
	Quality   string
	// Filename is a sanitized name without extension; empty means "%(title)s"
	Filename string
	Progress ProgressFunc
}

// ProgressFunc receives byte progress for a running download. total is 0
// when the size is not known yet.
type ProgressFunc func(downloaded, total int64)

// MediaExtractor is the external media-extraction collaborator.
// Every call blocks, runs once and is never retried.
type MediaExtractor interface {
	// FetchMetadata extracts video information without downloading
	FetchMetadata(ctx context.Context, url string) (*VideoMetadata, error)

	// ListFormats returns the available formats, best quality first
	ListFormats(ctx context.Context, url string) ([]FormatDescriptor, error)

	// Download downloads the video into the output directory
	Download(ctx context.Context, url string, opts DownloadOptions) error

	// DownloadSubtitles downloads subtitles (and automatic captions) only
	DownloadSubtitles(ctx context.Context, url string, languages []string) error

	// DownloadThumbnail downloads the thumbnail only
	DownloadThumbnail(ctx context.Context, url string) error
}

// CompletionOptions tunes one conversational completion
type CompletionOptions struct {
	MaxTokens   int
	Temperature float32
}

// Completer is the external conversational-AI collaborator
type Completer interface {
	// Complete returns the model's reply to prompt
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)

	// Available reports whether the service is configured (e.g. an API key is set)
	Available() bool
}

// LinkSource discovers video URLs embedded in a webpage
type LinkSource interface {
	ExtractVideoLinks(ctx context.Context, pageURL string) []string
}
