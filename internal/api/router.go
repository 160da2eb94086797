package api

import (
	"time"

	"recipe-suggester/internal/api/handlers/health"
	recipeHandler "recipe-suggester/internal/api/handlers/recipe"
	"recipe-suggester/internal/api/middleware"
	"recipe-suggester/internal/core/ai/cache"
	"recipe-suggester/internal/core/ai/gemini"
	"recipe-suggester/internal/core/ai/provider"
	recipeService "recipe-suggester/internal/core/recipe"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/metrics"
	"recipe-suggester/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 建立模型客戶端與推薦服務並設置路由，回傳的客戶端需在關閉時釋放
func SetupRouter(cfg *config.Config, cacheManager *cache.Manager[recipeService.Result]) (*gin.Engine, *recipeService.Client) {
	// 模型初始化失敗時服務照常啟動，推薦請求一律回傳 503
	var p provider.Provider
	geminiClient, initErr := gemini.NewClient(cfg)
	if initErr == nil {
		p = geminiClient
	}

	client := recipeService.NewClient(p, initErr, cfg.Gemini.Timeout)
	builder := recipeService.NewPromptBuilder(recipeService.DefaultTemplate, cfg.Prompt.MaxChars)
	suggestionSvc := recipeService.NewSuggestionService(client, builder, cacheManager,
		recipeService.WithCacheFailures(cfg.Cache.CacheFailures),
	)

	common.LogInfo("Recipe services initialized",
		zap.Bool("model_initialized", client.Available()),
		zap.String("model", cfg.Gemini.Model),
		zap.Bool("cache_enabled", cacheManager != nil),
		zap.Int("prompt_max_chars", builder.MaxChars()),
	)

	return NewRouter(cfg, client, suggestionSvc), client
}

// NewRouter 以既有服務註冊中間件與路由
func NewRouter(cfg *config.Config, client *recipeService.Client, suggestionSvc *recipeService.SuggestionService) *gin.Engine {
	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.RequestContext())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	// CORS 設置，未設定來源時不開放跨域
	if origins := cfg.CORS.AllowedOrigins(); len(origins) > 0 {
		router.Use(cors.New(corsConfig(origins)))
	}

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	healthHandler := health.NewHandler(cfg, client, suggestionSvc)
	suggestHandler := recipeHandler.NewHandler(suggestionSvc)

	// 健康檢查路由
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API 路由組
	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/suggest/", suggestHandler.HandleSuggest)
	}

	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.JSON(common.ErrNotFound.Status, gin.H{"error": common.ErrNotFound.Message})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(common.ErrMethodNotAllowed.Status, gin.H{"error": common.ErrMethodNotAllowed.Message})
	})

	common.LogInfo("Router setup completed",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("environment", cfg.EnvironmentMode()),
		zap.Strings("cors_origins", cfg.CORS.AllowedOrigins()),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}
