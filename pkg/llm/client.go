// Package llm provides clients for the hosted language models used to draft itineraries.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"trip-planner-go/internal/config"
	"trip-planner-go/pkg/errs"
)

// Client sends a single system+user exchange to a model and returns the reply text.
type Client interface {
	// Send never retries. Remote failures are returned as *errs.RemoteServiceError.
	Send(ctx context.Context, systemInstruction, userText string) (string, error)
}

// GenerationParams controls sampling for one request.
type GenerationParams struct {
	Temperature float32
	TopP        float32
	MaxTokens   int
}

func paramsFrom(cfg config.LLMConfig) GenerationParams {
	return GenerationParams{
		Temperature: float32(cfg.Generation.Temperature),
		TopP:        float32(cfg.Generation.TopP),
		MaxTokens:   cfg.Generation.MaxTokens,
	}
}

// NewClient creates a client for the provider named in the config.
// A missing credential yields *errs.ConfigurationError before any network call.
func NewClient(cfg config.LLMConfig) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &errs.ConfigurationError{Key: "llm.api_key", Msg: "no API key configured (set LLM_API_KEY or GOOGLE_API_KEY)"}
	}
	if cfg.Model == "" {
		cfg.Model = config.DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}

	switch strings.ToLower(cfg.Provider) {
	case "", config.ProviderGemini:
		return newGeminiClient(cfg), nil
	case config.ProviderOpenAI:
		return newOpenAIClient(cfg), nil
	default:
		return nil, &errs.ConfigurationError{Key: "llm.provider", Msg: fmt.Sprintf("unsupported provider %q", cfg.Provider)}
	}
}

// withTimeout bounds a single request. The caller's deadline wins if it is shorter.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// remoteError wraps a transport or API failure, marking deadline and network timeouts.
func remoteError(provider string, err error) error {
	if err == nil {
		return nil
	}
	var re *errs.RemoteServiceError
	if errors.As(err, &re) {
		return err
	}
	return &errs.RemoteServiceError{Provider: provider, Timeout: isTimeout(err), Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
