package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-suggester/internal/core/ai/provider"
	"recipe-suggester/internal/metrics"
	"recipe-suggester/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	msgUnavailable   = "Error: Recipe generation service is currently unavailable."
	msgUnexpected    = "Error: An unexpected error occurred while contacting the recipe service (%s)."
	msgSafetyBlocked = "Error: Suggestions blocked by safety filters (Reason: %s). Try different ingredients."
	msgEmptyResponse = "Error: The model generated an empty response. Try adding more ingredients."
)

// DefaultTimeout 單次模型呼叫的預設逾時
const DefaultTimeout = 60 * time.Second

// Client 呼叫外部生成模型並統一結果格式
//
// 模型在啟動時建立一次；建立失敗時記錄錯誤，之後每次呼叫都直接回傳
// ServiceUnavailable，不會再嘗試連線。
type Client struct {
	provider provider.Provider
	initErr  error
	timeout  time.Duration
}

// NewClient 創建推薦客戶端，initErr 為模型初始化時的錯誤
func NewClient(p provider.Provider, initErr error, timeout time.Duration) *Client {
	if initErr == nil && p == nil {
		initErr = errors.New("generative provider not configured")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if initErr != nil {
		common.LogError("Generative model failed to initialize", zap.Error(initErr))
	}
	return &Client{provider: p, initErr: initErr, timeout: timeout}
}

// Available 模型是否已成功初始化
func (c *Client) Available() bool {
	return c.initErr == nil
}

// InitError 模型初始化錯誤
func (c *Client) InitError() error {
	return c.initErr
}

// Model 模型名稱，未初始化時為空字串
func (c *Client) Model() string {
	if !c.Available() {
		return ""
	}
	return c.provider.GetModel()
}

// Close 釋放底層提供者，未初始化時不做事
func (c *Client) Close() error {
	if c.provider == nil {
		return nil
	}
	return c.provider.Close()
}

// Suggest 送出提示詞並將回應轉成 Result
func (c *Client) Suggest(ctx context.Context, prompt string) Result {
	requestID := common.RequestIDFromContext(ctx)
	if !c.Available() {
		common.LogWarn("Suggest called but model not loaded",
			zap.String("request_id", requestID),
		)
		return Fail(ServiceUnavailable, msgUnavailable)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.provider.GetModel()
	start := time.Now()
	resp, err := c.provider.Generate(callCtx, &provider.Request{Prompt: prompt})
	duration := time.Since(start)
	common.LogAICall(model, duration, err, requestID)

	res := interpret(resp, err)
	metrics.ProviderRequestDuration.WithLabelValues(model, res.Outcome()).Observe(duration.Seconds())

	if !res.OK {
		common.LogWarn("Suggestion failed",
			zap.String("kind", res.Kind.String()),
			zap.String("message", res.Message),
			zap.String("request_id", requestID),
		)
	}
	return res
}

// interpret 將提供者回應或錯誤對應到 Result
func interpret(resp *provider.Response, err error) Result {
	if err != nil {
		return Fail(ServiceUnavailable, fmt.Sprintf(msgUnexpected, errorTypeName(err)))
	}
	if resp == nil || len(resp.Candidates) == 0 {
		reason := "Unknown"
		if resp != nil && resp.BlockReason != "" {
			reason = resp.BlockReason
		}
		return Fail(SafetyBlocked, fmt.Sprintf(msgSafetyBlocked, reason))
	}
	if !resp.HasParts() {
		return Fail(EmptyResponse, msgEmptyResponse)
	}
	return Ok(strings.TrimSpace(resp.Text()))
}

// errorTypeName 取出錯誤鏈中第一個非 fmt 包裝的型別名稱
func errorTypeName(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "DeadlineExceeded"
	case errors.Is(err, context.Canceled):
		return "Canceled"
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		name := strings.TrimPrefix(fmt.Sprintf("%T", e), "*")
		if name != "fmt.wrapError" && name != "fmt.wrapErrors" {
			return name
		}
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
}
