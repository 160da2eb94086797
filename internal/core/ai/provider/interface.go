package provider

import (
	"context"
	"strings"
)

// Request 表示發送到 AI 提供者的請求
type Request struct {
	Prompt string `json:"prompt"`
}

// Candidate 模型產生的候選內容
type Candidate struct {
	Parts        []string `json:"parts"`
	FinishReason string   `json:"finish_reason,omitempty"`
}

// Usage 使用量
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response 表示從 AI 提供者收到的響應
//
// 沒有任何候選內容時，BlockReason 說明提供者拒絕產生內容的原因。
type Response struct {
	Candidates  []Candidate `json:"candidates"`
	BlockReason string      `json:"block_reason,omitempty"`
	Usage       Usage       `json:"usage"`
}

// HasParts 第一個候選是否有內容片段
func (r *Response) HasParts() bool {
	return len(r.Candidates) > 0 && len(r.Candidates[0].Parts) > 0
}

// Text 合併第一個候選的所有片段
func (r *Response) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	return strings.Join(r.Candidates[0].Parts, "")
}

// Provider 定義 AI 提供者介面
type Provider interface {
	// Generate 生成 AI 響應
	Generate(ctx context.Context, req *Request) (*Response, error)

	// GetModel 獲取當前使用的模型名稱
	GetModel() string

	// Close 關閉提供者連接
	Close() error
}
