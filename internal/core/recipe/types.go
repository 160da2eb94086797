package recipe

import "recipe-suggester/internal/pkg/common"

// ErrorKind 推薦失敗的種類
type ErrorKind int

const (
	// KindNone 成功結果沒有錯誤種類
	KindNone ErrorKind = iota
	// InvalidInput 呼叫端資料無效或為空
	InvalidInput
	// PromptTooLarge 輸入超過提示詞長度上限
	PromptTooLarge
	// ServiceUnavailable 提供者無法連線、設定錯誤或未初始化
	ServiceUnavailable
	// SafetyBlocked 提供者因安全機制拒絕產生內容
	SafetyBlocked
	// EmptyResponse 提供者沒有回傳可用內容
	EmptyResponse
)

var kindNames = map[ErrorKind]string{
	KindNone:           "ok",
	InvalidInput:       "invalid_input",
	PromptTooLarge:     "prompt_too_large",
	ServiceUnavailable: "service_unavailable",
	SafetyBlocked:      "safety_blocked",
	EmptyResponse:      "empty_response",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Code 對應的錯誤代碼
func (k ErrorKind) Code() string {
	switch k {
	case InvalidInput:
		return common.ErrCodeInvalidInput
	case PromptTooLarge:
		return common.ErrCodePromptTooLarge
	case ServiceUnavailable:
		return common.ErrCodeServiceUnavailable
	case SafetyBlocked:
		return common.ErrCodeSafetyBlocked
	case EmptyResponse:
		return common.ErrCodeEmptyResponse
	default:
		return common.ErrCodeInternalError
	}
}

// Retryable 相同輸入稍後重試是否可能成功
func (k ErrorKind) Retryable() bool {
	return k == ServiceUnavailable
}

// Result 推薦結果：成功帶文字，失敗帶錯誤種類與訊息
type Result struct {
	OK      bool
	Text    string
	Kind    ErrorKind
	Message string
}

// Ok 成功結果
func Ok(text string) Result {
	return Result{OK: true, Text: text}
}

// Fail 失敗結果
func Fail(kind ErrorKind, message string) Result {
	return Result{Kind: kind, Message: message}
}

// Outcome 用於指標與日誌的結果標籤
func (r Result) Outcome() string {
	if r.OK {
		return "ok"
	}
	return r.Kind.String()
}
