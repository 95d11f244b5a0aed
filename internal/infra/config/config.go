package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/config.yaml"

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP           HTTPConfig           `yaml:"http"`
	LLM            LLMConfig            `yaml:"llm"`
	Recommendation RecommendationConfig `yaml:"recommendation"`
	Stylist        StylistConfig        `yaml:"stylist"`
	Storage        StorageConfig        `yaml:"storage"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	AllowOrigins []string        `yaml:"allowOrigins"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// LLMConfig contains settings for the OpenAI-compatible chat endpoint. Leaving APIKey empty
// disables every remote feature.
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// RecommendationConfig tunes the outfit recommendation cycle.
type RecommendationConfig struct {
	HistorySize     int           `yaml:"historySize"`
	MaxSessions     int           `yaml:"maxSessions"`
	SessionTTL      time.Duration `yaml:"sessionTtl"`
	RemoteEnabled   bool          `yaml:"remoteEnabled"`
	RemoteTimeout   time.Duration `yaml:"remoteTimeout"`
	MaxPromptTokens int           `yaml:"maxPromptTokens"`
}

// StylistConfig tunes the stylist chat.
type StylistConfig struct {
	MaxHistory int `yaml:"maxHistory"`
}

// StorageConfig groups the optional external stores. Each falls back to memory when unset.
type StorageConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Valkey   ValkeyConfig   `yaml:"valkey"`
	Images   ImagesConfig   `yaml:"images"`
}

// PostgresConfig contains DSN and pooling settings for the inventory.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for the preference store.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// ImagesConfig points at the S3-compatible bucket used for item photos.
type ImagesConfig struct {
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"accessKey"`
	SecretKey     string `yaml:"secretKey"`
	Bucket        string `yaml:"bucket"`
	Region        string `yaml:"region"`
	PublicBaseURL string `yaml:"publicBaseUrl"`
}

// Configured reports whether enough settings are present to reach the bucket.
func (c ImagesConfig) Configured() bool {
	return strings.TrimSpace(c.Endpoint) != "" && strings.TrimSpace(c.Bucket) != "" &&
		c.AccessKey != "" && c.SecretKey != ""
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		if err := hydrateFromFile(cfg, defaultConfigPath); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	envString("HTTP_ADDRESS", &cfg.HTTP.Address)
	envBool("HTTP_RATE_LIMIT_ENABLED", &cfg.HTTP.RateLimit.Enabled)
	envInt("HTTP_RATE_LIMIT_RPM", &cfg.HTTP.RateLimit.RequestsPerMinute)
	envInt("HTTP_RATE_LIMIT_BURST", &cfg.HTTP.RateLimit.Burst)
	envBool("HTTP_RETRY_ENABLED", &cfg.HTTP.Retry.Enabled)
	envInt("HTTP_RETRY_MAX_ATTEMPTS", &cfg.HTTP.Retry.MaxAttempts)
	envDuration("HTTP_RETRY_BASE_BACKOFF", &cfg.HTTP.Retry.BaseBackoff)
	if v := os.Getenv("HTTP_ALLOW_ORIGINS"); v != "" {
		cfg.HTTP.AllowOrigins = splitList(v)
	}

	envString("LLM_API_KEY", &cfg.LLM.APIKey)
	envString("LLM_BASE_URL", &cfg.LLM.BaseURL)
	envString("LLM_MODEL", &cfg.LLM.Model)
	envDuration("LLM_TIMEOUT", &cfg.LLM.Timeout)
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}

	envInt("RECOMMEND_HISTORY_SIZE", &cfg.Recommendation.HistorySize)
	envInt("RECOMMEND_MAX_SESSIONS", &cfg.Recommendation.MaxSessions)
	envDuration("RECOMMEND_SESSION_TTL", &cfg.Recommendation.SessionTTL)
	envBool("RECOMMEND_REMOTE_ENABLED", &cfg.Recommendation.RemoteEnabled)
	envDuration("RECOMMEND_REMOTE_TIMEOUT", &cfg.Recommendation.RemoteTimeout)
	envInt("RECOMMEND_MAX_PROMPT_TOKENS", &cfg.Recommendation.MaxPromptTokens)

	envInt("STYLIST_MAX_HISTORY", &cfg.Stylist.MaxHistory)

	envString("POSTGRES_DSN", &cfg.Storage.Postgres.DSN)
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Storage.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Storage.Postgres.MinConns = int32(parsed)
		}
	}
	envBool("VALKEY_ENABLED", &cfg.Storage.Valkey.Enabled)
	envString("VALKEY_ADDR", &cfg.Storage.Valkey.Addr)
	envString("VALKEY_PREFIX", &cfg.Storage.Valkey.Prefix)
	envString("R2_ENDPOINT", &cfg.Storage.Images.Endpoint)
	envString("R2_ACCESS_KEY", &cfg.Storage.Images.AccessKey)
	envString("R2_SECRET_KEY", &cfg.Storage.Images.SecretKey)
	envString("R2_BUCKET", &cfg.Storage.Images.Bucket)
	envString("R2_REGION", &cfg.Storage.Images.Region)
	envString("R2_PUBLIC_BASE_URL", &cfg.Storage.Images.PublicBaseURL)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func envDuration(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 90 * time.Second,
			AllowOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/items",
					"/api/v1/outfits",
					"/api/v1/recommendations",
					"/api/v1/chat",
					"/api/v1/chat/stream",
				},
			},
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			Timeout:     60 * time.Second,
		},
		Recommendation: RecommendationConfig{
			HistorySize:     20,
			MaxSessions:     1000,
			SessionTTL:      24 * time.Hour,
			RemoteEnabled:   true,
			RemoteTimeout:   20 * time.Second,
			MaxPromptTokens: 3000,
		},
		Stylist: StylistConfig{
			MaxHistory: 20,
		},
		Storage: StorageConfig{
			Postgres: PostgresConfig{MaxConns: 4},
			Valkey:   ValkeyConfig{Prefix: "fitgpt"},
			Images:   ImagesConfig{Bucket: "fitgpt-items", Region: "auto"},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.Recommendation.HistorySize <= 0 {
		return errors.New("recommendation.historySize must be positive")
	}
	if c.Recommendation.MaxSessions <= 0 {
		return errors.New("recommendation.maxSessions must be positive")
	}
	if c.Recommendation.RemoteTimeout <= 0 {
		return errors.New("recommendation.remoteTimeout must be positive")
	}
	if c.Recommendation.MaxPromptTokens < 0 {
		return errors.New("recommendation.maxPromptTokens cannot be negative")
	}
	if c.Stylist.MaxHistory <= 0 {
		return errors.New("stylist.maxHistory must be positive")
	}
	if c.Storage.Valkey.Enabled && strings.TrimSpace(c.Storage.Valkey.Addr) == "" {
		return errors.New("storage.valkey.addr cannot be empty when valkey is enabled")
	}
	return nil
}
