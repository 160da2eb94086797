package recipe

import (
	"context"

	"recipe-suggester/internal/core/ai/cache"
	"recipe-suggester/internal/metrics"
	"recipe-suggester/internal/pkg/common"

	"go.uber.org/zap"
)

const msgNoIngredients = "Error: No ingredients provided."

// SuggestionService 食譜推薦流程：正規化、快取、建構提示詞、呼叫模型
type SuggestionService struct {
	client        *Client
	builder       *PromptBuilder
	cacheManager  *cache.Manager[Result]
	cacheFailures bool
}

// Option 推薦服務選項
type Option func(*SuggestionService)

// WithCacheFailures 設定是否快取失敗結果
func WithCacheFailures(enabled bool) Option {
	return func(s *SuggestionService) {
		s.cacheFailures = enabled
	}
}

// NewSuggestionService 創建推薦服務，cacheManager 為 nil 時不使用快取
func NewSuggestionService(client *Client, builder *PromptBuilder, cacheManager *cache.Manager[Result], opts ...Option) *SuggestionService {
	s := &SuggestionService{
		client:        client,
		builder:       builder,
		cacheManager:  cacheManager,
		cacheFailures: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Client 底層推薦客戶端
func (s *SuggestionService) Client() *Client {
	return s.client
}

// CacheStats 快取統計，未啟用快取時回傳 false
func (s *SuggestionService) CacheStats() (cache.Stats, bool) {
	if s.cacheManager == nil {
		return cache.Stats{}, false
	}
	return s.cacheManager.GetStats(), true
}

// GenerateSuggestions 依食材產生推薦，相同食材集合（不分順序）只呼叫一次模型
func (s *SuggestionService) GenerateSuggestions(ctx context.Context, ingredients []string) Result {
	set := NewIngredientSet(ingredients)
	if set.Empty() {
		return s.finish(Fail(InvalidInput, msgNoIngredients), false)
	}

	key := cache.NewKey(set, s.builder.TemplateID())
	requestID := common.RequestIDFromContext(ctx)

	if s.cacheManager != nil {
		if res, ok := s.cacheManager.Lookup(ctx, key); ok {
			common.LogInfo("Serving suggestions from cache",
				zap.String("key", key.String()),
				zap.String("outcome", res.Outcome()),
				zap.String("request_id", requestID),
			)
			return s.finish(res, true)
		}
	}

	prompt, tooLarge := s.builder.Build(set)
	if tooLarge != nil {
		common.LogWarn("Prompt exceeds limit",
			zap.Int("max_chars", s.builder.MaxChars()),
			zap.Int("ingredients", len(set)),
			zap.String("request_id", requestID),
		)
		return s.finish(*tooLarge, false)
	}

	common.LogInfo("Requesting suggestions",
		zap.Strings("ingredients", set),
		zap.Int("prompt_chars", len(prompt)),
		zap.String("request_id", requestID),
	)
	res := s.client.Suggest(ctx, prompt)

	if s.shouldStore(ctx, res) {
		s.cacheManager.Store(ctx, key, res)
	}
	return s.finish(res, false)
}

// shouldStore 呼叫端自己的 context 已結束時屬於暫時狀態，不寫入快取
func (s *SuggestionService) shouldStore(ctx context.Context, res Result) bool {
	if s.cacheManager == nil {
		return false
	}
	if res.OK {
		return true
	}
	return s.cacheFailures && ctx.Err() == nil
}

// finish 記錄指標與快取狀態
func (s *SuggestionService) finish(res Result, cached bool) Result {
	label := "false"
	if cached {
		label = "true"
	}
	metrics.SuggestionsTotal.WithLabelValues(res.Outcome(), label).Inc()

	if stats, ok := s.CacheStats(); ok {
		common.LogDebug("快取狀態",
			zap.Int64("hits", stats.Hits),
			zap.Int64("misses", stats.Misses),
			zap.Int("size", stats.Size),
			zap.Int("max_size", stats.MaxSize),
		)
	}
	return res
}
