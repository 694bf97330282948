package llm

import (
	"context"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"trip-planner-go/internal/config"
)

// openAIClient talks to any OpenAI-compatible chat completions endpoint.
type openAIClient struct {
	cfg    config.LLMConfig
	params GenerationParams
	client *openai.Client
}

func newOpenAIClient(cfg config.LLMConfig) *openAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &openAIClient{
		cfg:    cfg,
		params: paramsFrom(cfg),
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (c *openAIClient) Send(ctx context.Context, systemInstruction, userText string) (string, error) {
	ctx, cancel := withTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemInstruction,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userText,
	})

	req := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.params.Temperature,
		TopP:        c.params.TopP,
		MaxTokens:   c.params.MaxTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", remoteError(config.ProviderOpenAI, err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
