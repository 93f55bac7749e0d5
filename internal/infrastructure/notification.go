package infrastructure

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/yourusername/clipgenius-go/internal/domain"
	"go.uber.org/zap"
)

// NotificationService sends desktop notifications
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
	run    func(name string, args ...string) error
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, log *zap.Logger) *NotificationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &NotificationService{
		config: config,
		logger: log,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// NewNotificationServiceWithRunner creates a notification service that
// invokes run instead of executing the notifier binary
func NewNotificationServiceWithRunner(config *domain.NotificationConfig, log *zap.Logger, run func(name string, args ...string) error) *NotificationService {
	n := NewNotificationService(config, log)
	if run != nil {
		n.run = run
	}
	return n
}

// Send sends a notification. Failures are logged and returned but never
// interrupt a download.
func (n *NotificationService) Send(title, message string) error {
	if n == nil || !n.config.Enabled {
		return nil
	}

	var name string
	var args []string
	switch n.config.Method {
	case "osascript":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(message), escapeAppleScript(title))
		if n.config.Sound {
			script += ` sound name "default"`
		}
		name, args = "osascript", []string{"-e", script}
	case "notify-send":
		name, args = "notify-send", []string{"--app-name=clipgenius", title, message}
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return nil
	}

	if err := n.run(name, args...); err != nil {
		n.logger.Warn("Failed to send notification", zap.String("method", name), zap.Error(err))
		return err
	}

	n.logger.Debug("Notification sent", zap.String("title", title), zap.String("message", message))
	return nil
}

// NotifyDownloadCompleted sends notification when a download completes
func (n *NotificationService) NotifyDownloadCompleted(name string, platform domain.Platform) {
	n.Send("Download Completed", fmt.Sprintf("%s (%s)", truncateString(name, 40), platform.DisplayName()))
}

// NotifyDownloadFailed sends notification when a download fails
func (n *NotificationService) NotifyDownloadFailed(url string, platform domain.Platform) {
	n.Send("Download Failed", fmt.Sprintf("%s (%s)", truncateString(url, 40), platform.DisplayName()))
}

// NotifyBatchCompleted sends notification when a batch finishes
func (n *NotificationService) NotifyBatchCompleted(summary domain.BatchSummary) {
	n.Send("Batch Completed", fmt.Sprintf("%d of %d downloaded, %d failed", summary.Successful, summary.Total, summary.Failed))
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// truncateString truncates a string to maxLen runes
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
