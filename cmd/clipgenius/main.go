package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/yourusername/clipgenius-go/api/handlers"
	"github.com/yourusername/clipgenius-go/internal/app"
	"github.com/yourusername/clipgenius-go/internal/domain"
	"github.com/yourusername/clipgenius-go/internal/infrastructure"
	"github.com/yourusername/clipgenius-go/pkg/console"
)

var (
	configPath   string
	downloadPath string
	audioOnly    bool
	quality      string
	noAI         bool
	batchSource  string
	batchWebpage bool
	withHistory  bool

	rootCmd = &cobra.Command{
		Use:   "clipgenius [url]",
		Short: "ClipGenius - AI-assisted video downloader",
		Long: `A conversational assistant for downloading videos from YouTube, Vimeo,
Dailymotion and the many other sites supported by yt-dlp.`,
		Example: `  clipgenius https://www.youtube.com/watch?v=dQw4w9WgXcQ
  clipgenius -a -p ~/Music https://youtu.be/dQw4w9WgXcQ
  clipgenius --no-ai -q 720p https://vimeo.com/76979871
  clipgenius -b urls.txt
  clipgenius -b https://example.com/playlist-page --batch-webpage`,
		Args:          cobra.MaximumNArgs(1),
		Version:       handlers.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./configs/config.yaml or ~/.clipgenius/config.yaml)")

	rootCmd.Flags().StringVarP(&downloadPath, "download-path", "p", "", "Download directory (default \"./downloads\")")
	rootCmd.Flags().BoolVarP(&audioOnly, "audio-only", "a", false, "Download audio only")
	rootCmd.Flags().StringVarP(&quality, "quality", "q", "", "Video quality preference (best, 720p, 480p, 360p, worst)")
	rootCmd.Flags().BoolVar(&noAI, "no-ai", false, "Skip the AI conversation and prompts, download with the flags")
	rootCmd.Flags().StringVarP(&batchSource, "batch", "b", "", "Batch source: a file with URLs, a webpage URL, or a comma separated URL list")
	rootCmd.Flags().BoolVar(&batchWebpage, "batch-webpage", false, "Treat --batch as a webpage to scan for video links")
	rootCmd.Flags().BoolVar(&withHistory, "history", false, "Record downloads in the history database")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// exitError carries the process exit code out of a command
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func runRoot(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(withHistory)
	if err != nil {
		return err
	}
	defer rt.Close()

	config := rt.config
	if cmd.Flags().Changed("download-path") {
		config.Download.OutputDir = downloadPath
	}
	if cmd.Flags().Changed("quality") {
		config.Download.Quality = quality
	}
	if noAI {
		config.AI.Enabled = false
	}

	out := console.New(os.Stdout)
	if err := ensureOutputDir(config.Download.OutputDir); err != nil {
		rt.log.Error("Failed to create download directory", zap.Error(err))
		out.Error(err.Error())
		return &exitError{code: 1}
	}
	prompter, closePrompter := newPrompter(out)
	defer closePrompter()

	session := buildSession(rt, out, prompter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := app.SessionOptions{
		Batch:     app.BatchSource{Value: batchSource, Webpage: batchWebpage},
		Quick:     noAI,
		AudioOnly: audioOnly,
		Quality:   config.Download.Quality,
	}
	if len(args) > 0 {
		opts.URL = args[0]
	}

	err = session.Run(ctx, opts)
	return exitCode(cmd, out, rt.log, err)
}

// ensureOutputDir creates the download directory before any prompt is shown
func ensureOutputDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("cannot create download directory %s: %w", path, err)
	}
	return nil
}

// buildSession wires the download stack for one run
func buildSession(rt *runtime, out *console.Console, prompter app.Prompter) *app.Session {
	config := rt.config

	extractor := infrastructure.NewYTDLPExtractor(&config.Download, rt.events.LogsDir(), rt.log)
	notifier := infrastructure.NewNotificationService(&config.Notification, rt.log)
	links := infrastructure.NewLinkExtractor(&config.Batch, rt.log)

	downloads := app.NewDownloadManager(extractor, rt.History(), notifier, &config.Download, rt.log, rt.events)
	batches := app.NewBatchRunner(downloads, links, notifier, rt.log, rt.events)

	var completer domain.Completer
	if config.AI.Enabled {
		completer = infrastructure.NewOpenAICompleter(&config.AI, rt.log)
	}
	assistant := app.NewAssistant(completer, &config.AI, rt.log)
	if config.AI.Enabled && !assistant.UsesAI() {
		out.Warning("OPENAI_API_KEY not set. Continuing without AI responses.")
	}

	return app.NewSession(downloads, batches, assistant, out, prompter, config.Download.ShowFormats, rt.log)
}

// newPrompter uses readline on a terminal and plain line reads otherwise
func newPrompter(out *console.Console) (app.Prompter, func()) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		rl, err := console.NewReadlinePrompter(out)
		if err == nil {
			return rl, func() { rl.Close() }
		}
	}
	return console.NewLinePrompter(os.Stdin, os.Stdout), func() {}
}

// exitCode maps a session error to the process exit code. Errors the
// session already reported to the user are not printed again.
func exitCode(cmd *cobra.Command, out *console.Console, log *zap.Logger, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInterrupted):
		out.Println("")
		out.Warning("Download interrupted by user.")
		return nil
	case errors.Is(err, domain.ErrNoBatchSource):
		out.Error("Either provide a video URL or use --batch.")
		fmt.Fprintln(os.Stderr)
		_ = cmd.Usage()
	case errors.Is(err, domain.ErrInvalidURL),
		errors.Is(err, domain.ErrMetadataUnavailable),
		errors.Is(err, domain.ErrNoVideoURLs),
		errors.Is(err, domain.ErrDownloadFailed),
		errors.Is(err, domain.ErrCancelled),
		errors.Is(err, domain.ErrInputClosed),
		errors.Is(err, domain.ErrBatchSourceUnreadable):
		log.Debug("Session ended with error", zap.Error(err))
	default:
		log.Error("Unexpected error", zap.Error(err))
		out.Error(fmt.Sprintf("Unexpected error: %v", err))
	}
	return &exitError{code: 1}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
