package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/yourusername/clipgenius-go/internal/domain"
	"github.com/yourusername/clipgenius-go/pkg/logger"
	"go.uber.org/zap"
)

const (
	defaultOutputTemplate = "%(title)s.%(ext)s"
	progressInterval      = 250 * time.Millisecond
)

var heightQuality = regexp.MustCompile(`^(\d+)[pP]$`)

// YTDLPExtractor implements domain.MediaExtractor on top of the yt-dlp binary
type YTDLPExtractor struct {
	config  *domain.DownloadConfig
	logsDir string
	logger  *zap.Logger
}

// NewYTDLPExtractor creates a new yt-dlp backed extractor. An empty
// logsDir disables the raw download log.
func NewYTDLPExtractor(config *domain.DownloadConfig, logsDir string, log *zap.Logger) *YTDLPExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &YTDLPExtractor{
		config:  config,
		logsDir: logsDir,
		logger:  log,
	}
}

// FetchMetadata extracts video information without downloading
func (e *YTDLPExtractor) FetchMetadata(ctx context.Context, url string) (*domain.VideoMetadata, error) {
	cmd := e.newCommand().
		DumpSingleJSON().
		SkipDownload().
		NoPlaylist()

	result, err := e.run(ctx, "metadata", url, []string{"--dump-single-json", "--skip-download", "--no-playlist"}, cmd)
	if err != nil {
		return nil, err
	}

	meta, err := parseVideoInfo([]byte(result.Stdout))
	if err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}
	return meta, nil
}

// ListFormats returns the available formats, best quality first
func (e *YTDLPExtractor) ListFormats(ctx context.Context, url string) ([]domain.FormatDescriptor, error) {
	meta, err := e.FetchMetadata(ctx, url)
	if err != nil {
		return nil, err
	}
	return sortFormats(meta.Formats), nil
}

// Download downloads the video (or its audio track) into the output directory
func (e *YTDLPExtractor) Download(ctx context.Context, url string, opts domain.DownloadOptions) error {
	if err := os.MkdirAll(e.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	plan := planDownload(e.config, opts)
	cmd := plan.apply(e.newCommand().NoPlaylist())

	if opts.Progress != nil {
		progress := opts.Progress
		cmd.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			if update.Status == ytdlp.ProgressStatusFinished || update.Status == ytdlp.ProgressStatusPostProcessing {
				return
			}
			progress(int64(update.DownloadedBytes), int64(update.TotalBytes))
		})
	}

	_, err := e.run(ctx, "download", url, append(plan.args(), "--no-playlist"), cmd)
	return err
}

// DownloadSubtitles downloads subtitles and automatic captions only
func (e *YTDLPExtractor) DownloadSubtitles(ctx context.Context, url string, languages []string) error {
	if len(languages) == 0 {
		languages = e.config.SubtitleLangs
	}
	langs := strings.Join(languages, ",")
	output := filepath.Join(e.config.OutputDir, defaultOutputTemplate)

	cmd := e.newCommand().
		WriteSubs().
		WriteAutoSubs().
		SubLangs(langs).
		SkipDownload().
		NoPlaylist().
		Output(output)

	args := []string{"--write-subs", "--write-auto-subs", "--sub-langs", langs, "--skip-download", "--no-playlist", "-o", output}
	_, err := e.run(ctx, "subtitles", url, args, cmd)
	return err
}

// DownloadThumbnail downloads the thumbnail only
func (e *YTDLPExtractor) DownloadThumbnail(ctx context.Context, url string) error {
	output := filepath.Join(e.config.OutputDir, defaultOutputTemplate)

	cmd := e.newCommand().
		WriteThumbnail().
		SkipDownload().
		NoPlaylist().
		Output(output)

	args := []string{"--write-thumbnail", "--skip-download", "--no-playlist", "-o", output}
	_, err := e.run(ctx, "thumbnail", url, args, cmd)
	return err
}

func (e *YTDLPExtractor) newCommand() *ytdlp.Command {
	cmd := ytdlp.New().NoWarnings()
	if e.config.YTDLPBinary != "" {
		cmd.SetExecutable(e.config.YTDLPBinary)
	}
	return cmd
}

// run executes one yt-dlp invocation exactly once. Output is appended to the
// download log when one is configured.
func (e *YTDLPExtractor) run(ctx context.Context, action, url string, args []string, cmd *ytdlp.Command) (*ytdlp.Result, error) {
	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	binary := e.config.YTDLPBinary
	if binary == "" {
		binary = "yt-dlp"
	}
	cmdLine := ShellEscapeCommand(binary, append(args, url)...)
	e.logger.Debug("Running yt-dlp", zap.String("action", action), zap.String("command", cmdLine))

	logFile := e.openLogFile()
	if logFile != nil {
		defer logFile.Close()
		writeLogHeader(logFile, action, cmdLine)
	}

	result, err := cmd.Run(ctx, url)

	if logFile != nil && result != nil {
		io.WriteString(logFile, result.Stdout)
		io.WriteString(logFile, result.Stderr)
	}

	if err != nil {
		detail := failureDetail(result, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			detail = ctxErr.Error()
			err = fmt.Errorf("yt-dlp %s stopped: %w", action, ctxErr)
		} else {
			err = errors.New(detail)
		}
		if logFile != nil {
			writeLogFooter(logFile, false, detail)
		}
		e.logger.Warn("yt-dlp failed", zap.String("action", action), zap.String("url", url), zap.String("error", detail))
		return result, err
	}

	if logFile != nil {
		writeLogFooter(logFile, true, fmt.Sprintf("%s: %s", action, url))
	}
	return result, nil
}

// openLogFile opens today's download log, or returns nil when disabled
func (e *YTDLPExtractor) openLogFile() *os.File {
	if e.logsDir == "" {
		return nil
	}
	if err := os.MkdirAll(e.logsDir, 0755); err != nil {
		e.logger.Warn("Failed to create logs directory", zap.Error(err))
		return nil
	}

	path := logger.CategoryLogPath(e.logsDir, logger.CategoryDownload, time.Now())
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		e.logger.Warn("Failed to open download log", zap.Error(err))
		return nil
	}
	return f
}

// writeLogHeader writes the invocation start marker
func writeLogHeader(w io.Writer, action, cmdLine string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(w, "\n=== [%s] %s ===\n", timestamp, strings.ToUpper(action[:1])+action[1:])
	fmt.Fprintf(w, "$ %s\n", cmdLine)
}

// writeLogFooter writes the invocation end marker
func writeLogFooter(w io.Writer, success bool, message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	fmt.Fprintf(w, "[%s] %s: %s\n", timestamp, status, message)
	fmt.Fprint(w, "=== END ===\n\n")
}

// failureDetail prefers yt-dlp's own "ERROR:" line over the exit status
func failureDetail(result *ytdlp.Result, err error) string {
	if result != nil {
		lines := strings.Split(result.Stderr, "\n")
		for i := len(lines) - 1; i >= 0; i-- {
			line := strings.TrimSpace(lines[i])
			if strings.HasPrefix(line, "ERROR:") {
				return strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
			}
		}
	}
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// downloadPlan is the set of yt-dlp options for one download
type downloadPlan struct {
	Format       string
	Output       string
	ExtractAudio bool
	AudioFormat  string
	AudioQuality string
}

// planDownload maps user options onto yt-dlp options
func planDownload(cfg *domain.DownloadConfig, opts domain.DownloadOptions) downloadPlan {
	template := defaultOutputTemplate
	if name := domain.SanitizeFilename(opts.Filename); name != "" {
		template = name + ".%(ext)s"
	}

	plan := downloadPlan{
		Output: filepath.Join(cfg.OutputDir, template),
	}

	if opts.AudioOnly {
		plan.Format = "bestaudio/best"
		plan.ExtractAudio = true
		plan.AudioFormat = valueOr(cfg.AudioFormat, "mp3")
		plan.AudioQuality = valueOr(cfg.AudioQuality, "192")
		return plan
	}

	plan.Format = formatSelector(opts.Quality)
	return plan
}

func (p downloadPlan) apply(cmd *ytdlp.Command) *ytdlp.Command {
	cmd.Format(p.Format).Output(p.Output)
	if p.ExtractAudio {
		cmd.ExtractAudio().AudioFormat(p.AudioFormat).AudioQuality(p.AudioQuality)
	}
	return cmd
}

// args renders the plan as a command line for the download log
func (p downloadPlan) args() []string {
	args := []string{"-f", p.Format, "-o", p.Output}
	if p.ExtractAudio {
		args = append(args, "-x", "--audio-format", p.AudioFormat, "--audio-quality", p.AudioQuality)
	}
	return args
}

// formatSelector turns a quality hint into a yt-dlp format selector.
// Unrecognised hints are passed through so a format id can be used directly.
func formatSelector(quality string) string {
	quality = strings.TrimSpace(quality)
	switch strings.ToLower(quality) {
	case "", domain.DefaultQuality:
		return "bestvideo*+bestaudio/best"
	case "worst":
		return "worst"
	}
	if m := heightQuality.FindStringSubmatch(quality); m != nil {
		return fmt.Sprintf("bestvideo*[height<=%s]+bestaudio/best[height<=%s]", m[1], m[1])
	}
	return quality
}

func valueOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// videoInfo is the subset of yt-dlp's info JSON that we read
type videoInfo struct {
	ID                string                     `json:"id"`
	Title             *string                    `json:"title"`
	Uploader          *string                    `json:"uploader"`
	Channel           *string                    `json:"channel"`
	Duration          *float64                   `json:"duration"`
	ViewCount         *int64                     `json:"view_count"`
	Description       *string                    `json:"description"`
	Thumbnail         *string                    `json:"thumbnail"`
	WebpageURL        string                     `json:"webpage_url"`
	Subtitles         map[string]json.RawMessage `json:"subtitles"`
	AutomaticCaptions map[string]json.RawMessage `json:"automatic_captions"`
	Formats           []formatInfo               `json:"formats"`
}

type formatInfo struct {
	FormatID       string   `json:"format_id"`
	Ext            string   `json:"ext"`
	Resolution     string   `json:"resolution"`
	Width          *int     `json:"width"`
	Height         *int     `json:"height"`
	VCodec         string   `json:"vcodec"`
	Filesize       *float64 `json:"filesize"`
	FilesizeApprox *float64 `json:"filesize_approx"`
	FormatNote     string   `json:"format_note"`
	Quality        *float64 `json:"quality"`
}

// parseVideoInfo converts yt-dlp's JSON into VideoMetadata
func parseVideoInfo(data []byte) (*domain.VideoMetadata, error) {
	var info videoInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}

	meta := &domain.VideoMetadata{
		ID:           info.ID,
		Title:        info.Title,
		Uploader:     info.Uploader,
		ViewCount:    info.ViewCount,
		Description:  info.Description,
		Thumbnail:    info.Thumbnail,
		WebpageURL:   info.WebpageURL,
		HasSubtitles: len(info.Subtitles) > 0,
		HasCaptions:  len(info.AutomaticCaptions) > 0,
	}
	if meta.Uploader == nil {
		meta.Uploader = info.Channel
	}
	if info.Duration != nil {
		meta.Duration = domain.IntPtr(int(*info.Duration))
	}

	meta.Formats = make([]domain.FormatDescriptor, 0, len(info.Formats))
	for _, f := range info.Formats {
		meta.Formats = append(meta.Formats, f.descriptor())
	}
	return meta, nil
}

func (f formatInfo) descriptor() domain.FormatDescriptor {
	d := domain.FormatDescriptor{
		ID:         f.FormatID,
		Extension:  f.Ext,
		Resolution: f.Resolution,
		Note:       f.FormatNote,
	}

	switch {
	case f.VCodec == "none":
		d.Resolution = "audio only"
	case d.Resolution != "":
	case f.Width != nil && f.Height != nil:
		d.Resolution = fmt.Sprintf("%dx%d", *f.Width, *f.Height)
	default:
		d.Resolution = "unknown"
	}

	if f.Filesize != nil {
		d.Size = domain.Int64Ptr(int64(*f.Filesize))
	} else if f.FilesizeApprox != nil {
		d.Size = domain.Int64Ptr(int64(*f.FilesizeApprox))
	}
	if f.Quality != nil {
		d.Quality = *f.Quality
	}
	return d
}

// sortFormats returns a copy ordered by quality, highest first
func sortFormats(formats []domain.FormatDescriptor) []domain.FormatDescriptor {
	sorted := make([]domain.FormatDescriptor, len(formats))
	copy(sorted, formats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quality > sorted[j].Quality
	})
	return sorted
}
