package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvDevelopment 開發模式
	EnvDevelopment = "development"
	// EnvProduction 正式環境
	EnvProduction = "production"
)

var (
	// ErrMissingAPIKey 未設定 Gemini API Key
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set in the environment variables")
	// ErrInsecureCORS 正式環境的 CORS 來源設定不安全
	ErrInsecureCORS = errors.New("CORS_ORIGINS must be set to specific domains in the production environment")
)

// Config 應用配置
type Config struct {
	App      AppConfig    `mapstructure:"app"`
	Server   ServerConfig `mapstructure:"server"`
	Gemini   GeminiConfig `mapstructure:"gemini"`
	Cache    CacheConfig  `mapstructure:"cache"`
	Prompt   PromptConfig `mapstructure:"prompt"`
	CORS     CORSConfig   `mapstructure:"cors"`
	LogLevel string       `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// GeminiConfig Gemini 配置
type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxSize       int  `mapstructure:"max_size"`
	CacheFailures bool `mapstructure:"cache_failures"`
}

// PromptConfig 提示詞配置
type PromptConfig struct {
	MaxChars int `mapstructure:"max_chars"`
}

// CORSConfig 跨域設定，來源以空白分隔
type CORSConfig struct {
	Origins string `mapstructure:"origins"`
}

// AllowedOrigins 解析允許的來源清單
func (c CORSConfig) AllowedOrigins() []string {
	return strings.Fields(c.Origins)
}

// IsProduction 是否為正式環境
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.App.Env), EnvProduction)
}

// EnvironmentMode 回傳 production 或 development
func (c *Config) EnvironmentMode() string {
	if c.IsProduction() {
		return EnvProduction
	}
	return EnvDevelopment
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 不存在時直接使用環境變數
	_ = godotenv.Load()

	v := viper.New()

	// 設定預設值
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	bindings := map[string]string{
		"app.env":              "APP_ENV",
		"server.port":          "PORT",
		"gemini.api_key":       "GEMINI_API_KEY",
		"gemini.model":         "GEMINI_MODEL",
		"gemini.base_url":      "GEMINI_BASE_URL",
		"gemini.max_tokens":    "GEMINI_MAX_TOKENS",
		"gemini.temperature":   "GEMINI_TEMPERATURE",
		"gemini.timeout":       "GEMINI_TIMEOUT",
		"cache.enabled":        "CACHE_ENABLED",
		"cache.max_size":       "CACHE_MAX_SIZE",
		"cache.cache_failures": "CACHE_FAILURES",
		"prompt.max_chars":     "PROMPT_MAX_CHARS",
		"cors.origins":         "CORS_ORIGINS",
		"log_level":            "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	// 設定設定檔名稱和路徑
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// 讀取設定檔
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.App.Debug = !config.IsProduction()

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", EnvDevelopment)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "recipe-suggester")

	// 伺服器設定
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "75s")
	v.SetDefault("server.max_body_bytes", 1<<20)

	// Gemini 設定
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini.max_tokens", 2048)
	v.SetDefault("gemini.temperature", 0.7)
	v.SetDefault("gemini.timeout", "60s")

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_size", 128)
	v.SetDefault("cache.cache_failures", true)

	// 提示詞設定
	v.SetDefault("prompt.max_chars", 12000)

	v.SetDefault("cors.origins", "")
	v.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Gemini.APIKey) == "" {
		return ErrMissingAPIKey
	}

	// 驗證伺服器設定
	if config.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證快取設定
	if config.Cache.Enabled && config.Cache.MaxSize <= 0 {
		return fmt.Errorf("invalid cache max size")
	}

	if config.Prompt.MaxChars <= 0 {
		return fmt.Errorf("invalid prompt max chars")
	}
	if config.Gemini.Timeout <= 0 {
		return fmt.Errorf("invalid gemini timeout")
	}

	// 正式環境必須指定明確的來源
	if config.IsProduction() {
		origins := config.CORS.AllowedOrigins()
		if len(origins) == 0 {
			return ErrInsecureCORS
		}
		for _, origin := range origins {
			if origin == "*" {
				return ErrInsecureCORS
			}
		}
	}

	return nil
}
