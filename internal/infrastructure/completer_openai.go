package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yourusername/clipgenius-go/internal/domain"
	"go.uber.org/zap"
)

// ErrCompleterUnavailable is returned when no API key is configured
var ErrCompleterUnavailable = errors.New("AI completion is not configured")

// OpenAICompleter implements domain.Completer with the OpenAI chat API
type OpenAICompleter struct {
	client *openai.Client
	config *domain.AIConfig
	logger *zap.Logger
}

// NewOpenAICompleter creates a completer. Without an API key the completer
// reports itself unavailable and every call fails fast.
func NewOpenAICompleter(config *domain.AIConfig, log *zap.Logger) *OpenAICompleter {
	if log == nil {
		log = zap.NewNop()
	}

	c := &OpenAICompleter{config: config, logger: log}
	if config.APIKey == "" {
		return c
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}
	c.client = openai.NewClientWithConfig(clientConfig)
	return c
}

// Available reports whether an API key is configured
func (c *OpenAICompleter) Available() bool {
	return c.client != nil
}

// Complete sends prompt as a single user message and returns the reply
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string, opts domain.CompletionOptions) (string, error) {
	if !c.Available() {
		return "", ErrCompleterUnavailable
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.config.MaxTokens
	}
	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = c.config.Temperature
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		c.logger.Debug("Chat completion failed", zap.Error(err))
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("chat completion returned an empty reply")
	}
	return content, nil
}
