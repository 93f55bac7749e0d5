package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/clipgenius-go/internal/domain"
	"github.com/yourusername/clipgenius-go/pkg/console"
	"go.uber.org/zap"
)

const maxFormatRows = 10

// Console renders session output
type Console interface {
	Banner()
	Section(title string)
	Info(msg string)
	Success(msg string)
	Warning(msg string)
	Error(msg string)
	Println(text string)
	Markdown(text string)
	Progress(description string) (update func(downloaded, total int64), done func())
}

// Prompter asks the user a question and returns the trimmed answer
type Prompter interface {
	Ask(question string) (string, error)
}

// SessionOptions holds what the user passed on the command line
type SessionOptions struct {
	URL   string
	Batch BatchSource
	// Quick skips the conversation and prompts and downloads with the flags below
	Quick     bool
	AudioOnly bool
	Quality   string
}

// Session sequences one guided run: single, quick or batch
type Session struct {
	downloads   *DownloadManager
	batches     *BatchRunner
	assistant   Assistant
	console     Console
	prompter    Prompter
	showFormats bool
	logger      *zap.Logger
}

// NewSession creates a new session
func NewSession(
	downloads *DownloadManager,
	batches *BatchRunner,
	assistant Assistant,
	out Console,
	prompter Prompter,
	showFormats bool,
	log *zap.Logger,
) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		downloads:   downloads,
		batches:     batches,
		assistant:   assistant,
		console:     out,
		prompter:    prompter,
		showFormats: showFormats,
		logger:      log,
	}
}

// Run executes the mode selected by opts. It returns nil on success,
// domain.ErrInterrupted when the user pressed Ctrl+C, domain.ErrInputClosed
// when input ended mid-dialog, and another error otherwise.
func (s *Session) Run(ctx context.Context, opts SessionOptions) error {
	var err error
	switch {
	case opts.Batch.Value != "":
		err = s.runBatch(ctx, opts.Batch)
	case opts.URL == "":
		err = domain.ErrNoBatchSource
	case opts.Quick:
		err = s.runQuick(ctx, opts)
	default:
		err = s.runInteractive(ctx, opts.URL)
	}

	switch {
	case errors.Is(err, console.ErrInterrupted):
		return fmt.Errorf("%w: %v", domain.ErrInterrupted, err)
	case errors.Is(err, console.ErrInputClosed):
		s.console.Error("Input ended before all questions were answered.")
		return fmt.Errorf("%w: %v", domain.ErrInputClosed, err)
	}
	if err == nil {
		s.console.Success("ClipGenius session completed! 🎉")
	}
	return err
}

func (s *Session) runInteractive(ctx context.Context, url string) error {
	s.console.Banner()

	if err := s.validate(url); err != nil {
		return err
	}

	s.console.Markdown(s.assistant.Greeting(ctx, url))

	meta, err := s.analyze(ctx, url)
	if err != nil {
		return err
	}

	s.console.Section("🎬 Video Analysis")
	s.console.Markdown(s.assistant.Summarize(ctx, meta))

	show := s.showFormats
	if !show {
		answer, err := s.prompter.Ask("Would you like to see available formats? (yes/no)")
		if err != nil {
			return err
		}
		show = console.IsYes(answer)
	}
	if show {
		s.printFormats(ctx, url)
	}

	prefs, err := s.askPreferences(ctx, meta)
	if err != nil {
		return err
	}

	s.printDownloadSummary(url, prefs)
	answer, err := s.prompter.Ask("Proceed with download? (yes/no)")
	if err != nil {
		return err
	}
	if !console.IsYes(answer) {
		s.console.Info("Download cancelled.")
		return domain.ErrCancelled
	}

	return s.perform(ctx, url, meta, prefs)
}

func (s *Session) runQuick(ctx context.Context, opts SessionOptions) error {
	s.console.Banner()
	s.console.Info("Quick download mode: " + opts.URL)

	if err := s.validate(opts.URL); err != nil {
		return err
	}

	meta, err := s.analyze(ctx, opts.URL)
	if err != nil {
		return err
	}

	prefs := domain.NewDownloadPreferences(opts.AudioOnly, opts.Quality, false, false, "")
	return s.perform(ctx, opts.URL, meta, prefs)
}

func (s *Session) runBatch(ctx context.Context, source BatchSource) error {
	s.console.Banner()
	s.console.Section("🔄 Batch Download Mode")

	if source.Webpage && !isRegularFile(source.Value) {
		s.console.Info("Extracting video URLs from webpage: " + source.Value)
	}

	urls, err := s.batches.ResolveURLs(ctx, source)
	if err != nil {
		if errors.Is(err, domain.ErrNoVideoURLs) {
			s.console.Error("No valid video URLs found!")
		} else {
			s.console.Error(err.Error())
		}
		return err
	}

	s.console.Success(fmt.Sprintf("Found %d video URLs:", len(urls)))
	for i, u := range urls {
		s.console.Println(fmt.Sprintf("  %d. %s", i+1, u))
	}

	s.console.Section("📋 Batch Download Preferences")
	prefs, err := s.askBatchPreferences()
	if err != nil {
		return err
	}

	answer, err := s.prompter.Ask(fmt.Sprintf("Proceed with batch download of %d videos? (yes/no)", len(urls)))
	if err != nil {
		return err
	}
	if !console.IsYes(answer) {
		s.console.Info("Batch download cancelled.")
		return domain.ErrCancelled
	}

	job := domain.NewBatchJob(urls, prefs)
	summary, err := s.batches.Run(ctx, job, &batchView{console: s.console})
	if err != nil {
		return err
	}

	s.console.Section("🎉 Batch Download Complete!")
	s.console.Println(fmt.Sprintf("✅ Successful: %d", summary.Successful))
	s.console.Println(fmt.Sprintf("❌ Failed: %d", summary.Failed))
	s.console.Println(fmt.Sprintf("📁 Download location: %s", summary.OutputDir))

	if summary.Successful == 0 {
		return fmt.Errorf("%w: no video in the batch was downloaded", domain.ErrDownloadFailed)
	}
	return nil
}

func (s *Session) validate(url string) error {
	if !domain.IsValidURL(url) {
		s.console.Error("Invalid URL format. Please provide a valid video URL.")
		return domain.ErrInvalidURL
	}
	return nil
}

func (s *Session) analyze(ctx context.Context, url string) (*domain.VideoMetadata, error) {
	s.console.Info("Analyzing video... 🔍")
	meta, err := s.downloads.FetchMetadata(ctx, url)
	if err != nil {
		s.console.Error("Could not extract video information. Please check the URL and try again.")
		return nil, err
	}
	return meta, nil
}

func (s *Session) askPreferences(ctx context.Context, meta *domain.VideoMetadata) (domain.DownloadPreferences, error) {
	s.console.Section("📋 Download Preferences")
	s.console.Markdown(s.assistant.PreferencesQuestion(ctx))

	var (
		prefs domain.DownloadPreferences
		q     = &questionnaire{prompter: s.prompter}
	)

	format := q.ask("Video or audio only? (video/audio)")
	audioOnly := strings.HasPrefix(strings.ToLower(format), "a")

	quality := domain.DefaultQuality
	if !audioOnly {
		quality = q.ask("Quality preference? (best/720p/480p/360p/worst)")
	}

	subtitles := console.IsYes(q.ask("Download subtitles? (yes/no)"))
	thumbnail := console.IsYes(q.ask("Download thumbnail? (yes/no)"))

	filename := q.ask("Custom filename? (leave blank for default)")
	if filename == "" && q.err == nil && meta != nil {
		suggested := domain.SuggestFilename(meta)
		if console.IsYes(q.ask(fmt.Sprintf("Use suggested filename '%s'? (yes/no)", suggested))) {
			filename = suggested
		}
	}

	if q.err != nil {
		return prefs, q.err
	}
	return domain.NewDownloadPreferences(audioOnly, quality, subtitles, thumbnail, filename), nil
}

func (s *Session) askBatchPreferences() (domain.DownloadPreferences, error) {
	q := &questionnaire{prompter: s.prompter}

	audioOnly := console.IsYes(q.ask("Download all as audio only? (yes/no)"))
	quality := domain.DefaultQuality
	if !audioOnly {
		quality = q.ask("Quality for all videos? (best/720p/480p/etc.)")
	}
	subtitles := console.IsYes(q.ask("Download subtitles for all? (yes/no)"))
	thumbnails := console.IsYes(q.ask("Download thumbnails for all? (yes/no)"))

	if q.err != nil {
		return domain.DownloadPreferences{}, q.err
	}
	return domain.NewDownloadPreferences(audioOnly, quality, subtitles, thumbnails, ""), nil
}

func (s *Session) printDownloadSummary(url string, prefs domain.DownloadPreferences) {
	s.console.Section("📋 Download Summary")
	s.console.Println("URL: " + url)
	if prefs.AudioOnly {
		s.console.Println("Type: Audio only")
	} else {
		s.console.Println("Type: Video + Audio")
		s.console.Println("Quality: " + prefs.Quality)
	}
	s.console.Println("Subtitles: " + yesNo(prefs.Subtitles))
	s.console.Println("Thumbnail: " + yesNo(prefs.Thumbnail))
	if prefs.CustomFilename != "" {
		s.console.Println("Custom filename: " + prefs.CustomFilename)
	}
}

func (s *Session) printFormats(ctx context.Context, url string) {
	formats := s.downloads.ListFormats(ctx, url)
	if len(formats) == 0 {
		s.console.Warning("No formats available or could not fetch format information.")
		return
	}

	s.console.Section("📺 Available Formats")
	s.console.Markdown(formatTable(formats, maxFormatRows))
	if len(formats) > maxFormatRows {
		s.console.Info(fmt.Sprintf("... and %d more formats available", len(formats)-maxFormatRows))
	}
}

// formatTable renders up to limit formats as a markdown table
func formatTable(formats []domain.FormatDescriptor, limit int) string {
	var b strings.Builder
	b.WriteString("| ID | Resolution | Extension | Size | Note |\n")
	b.WriteString("|----|------------|-----------|------|------|\n")
	for i, f := range formats {
		if i == limit {
			break
		}
		note := []rune(f.Note)
		if len(note) > 20 {
			note = note[:20]
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			orNA(f.ID), orNA(f.Resolution), orNA(f.Extension), domain.FormatSize(f.Size), string(note))
	}
	return b.String()
}

func (s *Session) perform(ctx context.Context, url string, meta *domain.VideoMetadata, prefs domain.DownloadPreferences) error {
	s.console.Section("🚀 Starting Download")

	update, done := s.console.Progress("Downloading")
	result := s.downloads.Download(ctx, DownloadRequest{
		URL:         url,
		Preferences: prefs,
		Metadata:    meta,
		Progress:    update,
	})
	done()

	if IsInterrupted(ctx, nil) {
		return fmt.Errorf("%w: %v", domain.ErrInterrupted, ctx.Err())
	}

	if !result.Success {
		s.console.Error(result.Message)
		s.console.Section("💡 Troubleshooting Help")
		s.console.Markdown(s.assistant.ErrorHelp(ctx, result.Error, url))
		return fmt.Errorf("%w: %s", domain.ErrDownloadFailed, result.Error)
	}

	s.console.Success(result.Message)

	if prefs.Subtitles {
		s.console.Info("Downloading subtitles...")
		if sub := s.downloads.DownloadSubtitles(ctx, url); sub.Success {
			s.console.Success("Subtitles downloaded!")
		} else {
			s.console.Warning("Subtitles download failed: " + sub.Message)
		}
	}

	if prefs.Thumbnail {
		s.console.Info("Downloading thumbnail...")
		if thumb := s.downloads.DownloadThumbnail(ctx, url); thumb.Success {
			s.console.Success("Thumbnail downloaded!")
		} else {
			s.console.Warning("Thumbnail download failed: " + thumb.Message)
		}
	}

	s.console.Section("🎁 Additional Options")
	s.console.Markdown(s.assistant.ResourcesOffer(ctx, meta))
	return nil
}

// questionnaire asks questions until the first input error, which it keeps
type questionnaire struct {
	prompter Prompter
	err      error
}

func (q *questionnaire) ask(question string) string {
	if q.err != nil {
		return ""
	}
	answer, err := q.prompter.Ask(question)
	if err != nil {
		q.err = err
		return ""
	}
	return answer
}

// batchView prints batch progress to the console
type batchView struct {
	console Console
}

func (v *batchView) ItemStarted(index, total int, url string) {
	v.console.Section(fmt.Sprintf("📹 Processing %d/%d: %s", index, total, url))
}

func (v *batchView) ItemAnalyzed(meta *domain.VideoMetadata) {
	title := []rune(meta.TitleOr("Unknown"))
	if len(title) > 50 {
		title = title[:50]
	}
	v.console.Println("   Title: " + string(title))
	v.console.Println("   Duration: " + domain.FormatDuration(meta.DurationSeconds()))
}

func (v *batchView) ItemFinished(url string, meta *domain.VideoMetadata, result *domain.DownloadResult) {
	if !result.Success {
		v.console.Error("Failed: " + result.Error)
		return
	}
	title := []rune(meta.TitleOr(url))
	if len(title) > 30 {
		title = append(title[:30], []rune("...")...)
	}
	v.console.Success("Downloaded: " + string(title))
}

func (v *batchView) ExtraFailed(kind string, result *domain.DownloadResult) {
	v.console.Warning(fmt.Sprintf("%s%s failed: %s", strings.ToUpper(kind[:1]), kind[1:], result.Error))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
