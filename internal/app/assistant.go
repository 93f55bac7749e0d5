package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/clipgenius-go/internal/domain"
	"go.uber.org/zap"
)

const descriptionExcerptLength = 300

// Assistant produces the conversational text shown around a download
type Assistant interface {
	Greeting(ctx context.Context, url string) string
	Summarize(ctx context.Context, meta *domain.VideoMetadata) string
	PreferencesQuestion(ctx context.Context) string
	ErrorHelp(ctx context.Context, errMsg, url string) string
	ResourcesOffer(ctx context.Context, meta *domain.VideoMetadata) string
	// UsesAI reports whether replies come from the completion service
	UsesAI() bool
}

// NewAssistant picks the AI assistant when completions are enabled and
// the completer is configured, and the canned one otherwise
func NewAssistant(completer domain.Completer, config *domain.AIConfig, log *zap.Logger) Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	if config != nil && config.Enabled && completer != nil && completer.Available() {
		return &aiAssistant{
			completer: completer,
			config:    config,
			fallback:  cannedAssistant{},
			logger:    log,
		}
	}
	return cannedAssistant{}
}

// cannedAssistant renders deterministic text without any service
type cannedAssistant struct{}

func (cannedAssistant) UsesAI() bool { return false }

func (cannedAssistant) Greeting(_ context.Context, url string) string {
	platform := domain.PlatformHint(url).DisplayName()
	return fmt.Sprintf(`👋 Hello! I'm ClipGenius, your video download assistant.

I see you want to download from %s. I'll help you:
- Analyze your video and show you the details
- Ask about your preferences (format, quality, etc.)
- Download exactly what you want
- Handle any issues that come up

Let's get started! 🚀`, platform)
}

func (cannedAssistant) Summarize(_ context.Context, meta *domain.VideoMetadata) string {
	return fmt.Sprintf(`📹 Video Details:
- Title: %s
- Channel: %s
- Duration: %s
- Views: %s views

Ready to download! 🎬`,
		meta.TitleOr("Unknown"),
		meta.UploaderOr("Unknown"),
		domain.FormatDuration(meta.DurationSeconds()),
		domain.FormatCount(meta.Views()))
}

func (cannedAssistant) PreferencesQuestion(context.Context) string {
	return `🎯 Let me know your preferences:

1. Do you want video + audio or just audio? (video/audio)
2. What quality do you prefer? (best/720p/480p/etc.)
3. Would you like subtitles? (yes/no)
4. Want to download the thumbnail too? (yes/no)
5. Any custom filename preference? (leave blank for default)`
}

func (cannedAssistant) ErrorHelp(_ context.Context, errMsg, _ string) string {
	return fmt.Sprintf(`❌ Oops! Something went wrong: %s

💡 Here are some things to try:
1. Check if the URL is correct and accessible
2. Try a different video quality/format
3. Make sure you have a stable internet connection
4. Some videos might be region-restricted or private`, errMsg)
}

func (cannedAssistant) ResourcesOffer(_ context.Context, meta *domain.VideoMetadata) string {
	var b strings.Builder
	b.WriteString("🎁 Your download is complete!\n\nAlso available for this video:\n")
	b.WriteString(fmt.Sprintf("- Subtitles: %s\n", availability(meta.HasAnySubtitles())))
	b.WriteString(fmt.Sprintf("- Thumbnail: %s\n", availability(meta.HasThumbnail())))
	b.WriteString("\nRun ClipGenius again with another link any time! ✨")
	return b.String()
}

func availability(ok bool) string {
	if ok {
		return "available"
	}
	return "not available"
}

// aiAssistant asks the completion service and falls back to the canned
// text for any call that fails
type aiAssistant struct {
	completer domain.Completer
	config    *domain.AIConfig
	fallback  cannedAssistant
	logger    *zap.Logger
}

func (a *aiAssistant) UsesAI() bool { return true }

func (a *aiAssistant) Greeting(ctx context.Context, url string) string {
	return a.ask(ctx, greetingPrompt(url), 200, func() string { return a.fallback.Greeting(ctx, url) })
}

func (a *aiAssistant) Summarize(ctx context.Context, meta *domain.VideoMetadata) string {
	return a.ask(ctx, summaryPrompt(meta), 300, func() string { return a.fallback.Summarize(ctx, meta) })
}

func (a *aiAssistant) PreferencesQuestion(ctx context.Context) string {
	return a.ask(ctx, preferencesPrompt, 250, func() string { return a.fallback.PreferencesQuestion(ctx) })
}

func (a *aiAssistant) ErrorHelp(ctx context.Context, errMsg, url string) string {
	return a.ask(ctx, errorHelpPrompt(errMsg, url), 300, func() string { return a.fallback.ErrorHelp(ctx, errMsg, url) })
}

func (a *aiAssistant) ResourcesOffer(ctx context.Context, meta *domain.VideoMetadata) string {
	return a.ask(ctx, resourcesPrompt(meta), 200, func() string { return a.fallback.ResourcesOffer(ctx, meta) })
}

func (a *aiAssistant) ask(ctx context.Context, prompt string, maxTokens int, fallback func() string) string {
	if a.config.MaxTokens > 0 && a.config.MaxTokens < maxTokens {
		maxTokens = a.config.MaxTokens
	}

	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	reply, err := a.completer.Complete(ctx, prompt, domain.CompletionOptions{
		MaxTokens:   maxTokens,
		Temperature: a.config.Temperature,
	})
	if err != nil {
		a.logger.Debug("Falling back to canned reply", zap.Error(err))
		return fallback()
	}
	return reply
}

func greetingPrompt(url string) string {
	return fmt.Sprintf(`You are ClipGenius, a friendly assistant that helps users download videos.

The user has provided this URL: %s
It appears to be from %s.

Please:
1. Greet the user warmly
2. Say which platform the link is from
3. Briefly explain what you'll help them with

Keep the response concise but friendly.`, url, domain.PlatformHint(url).DisplayName())
}

func summaryPrompt(meta *domain.VideoMetadata) string {
	description := "No description"
	if d := meta.DescriptionOr(""); d != "" {
		description = d
		if runes := []rune(d); len(runes) > descriptionExcerptLength {
			description = string(runes[:descriptionExcerptLength]) + "..."
		}
	}

	return fmt.Sprintf(`You are ClipGenius. Please create a friendly, conversational summary of this video:

Title: %s
Uploader: %s
Duration: %s
Views: %s views
Description: %s

Highlight the most interesting aspects. Keep it concise but informative.`,
		meta.TitleOr("Unknown"),
		meta.UploaderOr("Unknown"),
		domain.FormatDuration(meta.DurationSeconds()),
		domain.FormatCount(meta.Views()),
		description)
}

const preferencesPrompt = `You are ClipGenius. Ask the user about their download preferences in a conversational way.

Ask about:
1. Whether they want video or just audio
2. Video quality
3. Subtitles
4. The thumbnail
5. A custom filename

Make it feel like a natural conversation, not a formal questionnaire.`

func errorHelpPrompt(errMsg, url string) string {
	return fmt.Sprintf(`You are ClipGenius, helping a user who hit this error while downloading a video:

Error: %s
URL: %s

Please:
1. Explain what might have gone wrong in simple terms
2. Suggest 2-3 practical things to try
3. Mention it if this is a common issue

Keep it conversational and supportive.`, errMsg, url)
}

func resourcesPrompt(meta *domain.VideoMetadata) string {
	return fmt.Sprintf(`You are ClipGenius. The user just downloaded a video successfully.

Additional resources for this video:
- Subtitles: %s
- Thumbnail: %s

Let them know what is available in a friendly way, without being pushy.`,
		availability(meta.HasAnySubtitles()),
		availability(meta.HasThumbnail()))
}
