package recipe

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"

	recipeService "recipe-suggester/internal/core/recipe"
	"recipe-suggester/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SuggestResponse 推薦回應
type SuggestResponse struct {
	Suggestions string `json:"suggestions"`
}

// ErrorResponse 錯誤回應
type ErrorResponse struct {
	Error string `json:"error"`
}

// Suggester 產生食譜推薦
type Suggester interface {
	GenerateSuggestions(ctx context.Context, ingredients []string) recipeService.Result
}

// Handler 食譜推薦處理器
type Handler struct {
	suggester Suggester
}

// NewHandler 創建處理器
func NewHandler(suggester Suggester) *Handler {
	return &Handler{suggester: suggester}
}

// HandleSuggest 處理 POST /api/suggest/
func (h *Handler) HandleSuggest(c *gin.Context) {
	requestID := requestid.Get(c)

	if !isJSON(c.GetHeader("Content-Type")) {
		h.abort(c, common.ErrInvalidContentType, requestID)
		return
	}

	// 以泛型解析才能區分欄位缺少與型別錯誤
	var body map[string]interface{}
	if err := common.DecodeJSON(c.Request.Body, &body); err != nil {
		if isBodyTooLarge(err) {
			h.abort(c, common.ErrRequestTooLarge, requestID)
			return
		}
		common.LogWarn("Failed to decode request body",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		h.abort(c, common.ErrInvalidIngredients, requestID)
		return
	}

	raw, ok := body["ingredients"].(string)
	// 只有空字串視為欄位無效，純空白交給正規化判斷
	if !ok || raw == "" {
		h.abort(c, common.ErrInvalidIngredients, requestID)
		return
	}

	set, err := recipeService.NormalizeIngredients(raw)
	if err != nil {
		h.abort(c, common.ErrNoValidIngredients, requestID)
		return
	}

	common.LogInfo("Processing suggestion request",
		zap.Strings("ingredients", set),
		zap.String("request_id", requestID),
	)

	res := h.suggester.GenerateSuggestions(c.Request.Context(), set)
	if !res.OK {
		status := StatusFor(res.Kind)
		common.LogWarn("Suggestion request failed",
			zap.Int("status", status),
			zap.String("kind", res.Kind.String()),
			zap.String("code", res.Kind.Code()),
			zap.Bool("retryable", res.Kind.Retryable()),
			zap.String("request_id", requestID),
		)
		c.JSON(status, ErrorResponse{Error: res.Message})
		return
	}

	c.JSON(http.StatusOK, SuggestResponse{Suggestions: res.Text})
}

// StatusFor 將錯誤種類對應到 HTTP 狀態碼
func StatusFor(kind recipeService.ErrorKind) int {
	switch kind {
	case recipeService.ServiceUnavailable:
		return http.StatusServiceUnavailable
	case recipeService.SafetyBlocked:
		return http.StatusTooManyRequests
	case recipeService.InvalidInput, recipeService.PromptTooLarge:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) abort(c *gin.Context, e *common.CustomError, requestID string) {
	common.LogDebug("Rejecting request",
		zap.String("code", e.Code),
		zap.String("request_id", requestID),
	)
	c.AbortWithStatusJSON(e.Status, ErrorResponse{Error: e.Message})
}

// isJSON 接受 application/json 與 application/*+json
func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
