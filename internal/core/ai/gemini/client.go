package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"recipe-suggester/internal/core/ai/provider"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	defaultBaseURL   = "https://generativelanguage.googleapis.com"
	generateEndpoint = "/v1beta/models/{model}:generateContent"
)

var (
	// ErrMissingAPIKey 未提供 API Key
	ErrMissingAPIKey = errors.New("gemini: api key is required")
	// ErrMissingModel 未提供模型名稱
	ErrMissingModel = errors.New("gemini: model is required")
)

// APIError Gemini 回傳的非 200 錯誤
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini API error (%d): %s", e.StatusCode, e.Message)
}

// Client Gemini generateContent 客戶端
type Client struct {
	client      *resty.Client
	model       string
	maxTokens   int
	temperature float64
}

// geminiPart 內容片段
type geminiPart struct {
	Text string `json:"text"`
}

// geminiContent 內容
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// geminiGenerationConfig 生成參數
type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens *int     `json:"maxOutputTokens,omitempty"`
}

// geminiRequest 請求格式
type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

// geminiResponse 響應格式
type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// geminiErrorResponse 錯誤響應格式
type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewClient 創建 Gemini 客戶端，設定不完整時回傳錯誤
func NewClient(cfg *config.Config) (*Client, error) {
	gc := cfg.Gemini
	if strings.TrimSpace(gc.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(gc.Model) == "" {
		return nil, ErrMissingModel
	}

	baseURL := strings.TrimRight(strings.TrimSpace(gc.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gemini: invalid base url %q", baseURL)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("x-goog-api-key", gc.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(gc.Timeout)

	common.LogInfo("Gemini 客戶端已初始化",
		zap.String("model", gc.Model),
		zap.String("base_url", baseURL),
		zap.Duration("timeout", gc.Timeout),
	)

	return &Client{
		client:      client,
		model:       gc.Model,
		maxTokens:   gc.MaxTokens,
		temperature: gc.Temperature,
	}, nil
}

// Generate 呼叫 generateContent
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: req.Prompt}},
			},
		},
	}

	// 設置模型參數
	if c.maxTokens > 0 || c.temperature > 0 {
		gen := &geminiGenerationConfig{}
		if c.maxTokens > 0 {
			maxTokens := c.maxTokens
			gen.MaxOutputTokens = &maxTokens
		}
		if c.temperature > 0 {
			temperature := c.temperature
			gen.Temperature = &temperature
		}
		body.GenerationConfig = gen
	}

	common.LogDebug("Sending request to Gemini",
		zap.String("model", c.model),
		zap.Int("prompt_chars", len(req.Prompt)),
	)

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("model", c.model).
		SetBody(body).
		Post(generateEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Gemini: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		apiErr := &APIError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Message:    strings.TrimSpace(resp.String()),
		}
		var errResp geminiErrorResponse
		if common.ParseJSONBytes(resp.Body(), &errResp) == nil && errResp.Error.Message != "" {
			apiErr.Message = errResp.Error.Message
			apiErr.Status = errResp.Error.Status
		}
		common.LogError("Gemini returned error status",
			zap.Int("status_code", apiErr.StatusCode),
			zap.String("model", c.model),
			zap.String("status", apiErr.Status),
		)
		return nil, apiErr
	}

	var out geminiResponse
	if err := common.ParseJSONBytes(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	result := &provider.Response{
		Usage: provider.Usage{
			PromptTokens:     out.UsageMetadata.PromptTokenCount,
			CompletionTokens: out.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      out.UsageMetadata.TotalTokenCount,
		},
	}
	if out.PromptFeedback != nil {
		result.BlockReason = out.PromptFeedback.BlockReason
	}
	for _, cand := range out.Candidates {
		parts := make([]string, 0, len(cand.Content.Parts))
		for _, p := range cand.Content.Parts {
			parts = append(parts, p.Text)
		}
		result.Candidates = append(result.Candidates, provider.Candidate{
			Parts:        parts,
			FinishReason: cand.FinishReason,
		})
	}

	common.LogDebug("Gemini response received",
		zap.String("model", c.model),
		zap.Int("candidates", len(result.Candidates)),
		zap.Int("total_tokens", result.Usage.TotalTokens),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// GetModel 模型名稱
func (c *Client) GetModel() string {
	return c.model
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
