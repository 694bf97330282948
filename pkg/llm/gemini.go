package llm

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/genai"

	"trip-planner-go/internal/config"
)

type geminiClient struct {
	cfg    config.LLMConfig
	params GenerationParams

	once   sync.Once
	client *genai.Client
	err    error
}

func newGeminiClient(cfg config.LLMConfig) *geminiClient {
	return &geminiClient{cfg: cfg, params: paramsFrom(cfg)}
}

// lazyClient 延迟到第一次请求时创建底层客户端，genai.NewClient 需要 ctx。
func (c *geminiClient) lazyClient(ctx context.Context) (*genai.Client, error) {
	c.once.Do(func() {
		cc := &genai.ClientConfig{
			APIKey:     c.cfg.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: &http.Client{Timeout: c.cfg.Timeout},
		}
		if c.cfg.BaseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.cfg.BaseURL}
		}
		c.client, c.err = genai.NewClient(ctx, cc)
	})
	return c.client, c.err
}

// Send calls models.generateContent once with the system instruction attached.
func (c *geminiClient) Send(ctx context.Context, systemInstruction, userText string) (string, error) {
	client, err := c.lazyClient(ctx)
	if err != nil {
		return "", remoteError(config.ProviderGemini, err)
	}

	ctx, cancel := withTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	gc := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.params.Temperature),
		TopP:            genai.Ptr(c.params.TopP),
		MaxOutputTokens: int32(c.params.MaxTokens),
	}
	if systemInstruction != "" {
		gc.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	resp, err := client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(userText), gc)
	if err != nil {
		return "", remoteError(config.ProviderGemini, err)
	}
	return candidateText(resp), nil
}

// candidateText 拼接第一个候选的全部文本分片；响应为空或没有候选时返回空串。
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
