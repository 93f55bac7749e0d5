package domain

import "errors"

var (
	ErrInvalidURL            = errors.New("invalid URL format")
	ErrNoBatchSource         = errors.New("either a URL or a batch source is required")
	ErrBatchSourceUnreadable = errors.New("cannot read batch file")
	ErrNoVideoURLs           = errors.New("no valid video URLs found")
	ErrMetadataUnavailable   = errors.New("could not extract video information")
	ErrDownloadFailed        = errors.New("download failed")
	ErrCancelled             = errors.New("cancelled by user")
	ErrInterrupted           = errors.New("interrupted")
	ErrInputClosed           = errors.New("input ended before all questions were answered")
)
