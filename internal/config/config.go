package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	Port string

	SpoonacularKey     string
	SpoonacularBaseURL string

	OpenAIKey string
	GroqKey   string
	GeminiKey string

	SessionSecret string
	// SessionMaxIdle drops sessions untouched for this long; zero keeps them.
	SessionMaxIdle time.Duration

	// RedisURL is optional; thumbnails are fetched every time without it.
	RedisURL string

	BrowserLaunch bool
	HTTPTimeout   time.Duration

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	Assistant  AssistantConfig
	Thumbnails ThumbnailConfig
}

type AssistantConfig struct {
	Provider         string `yaml:"provider"`
	Model            string `yaml:"model"`
	FallbackEnabled  bool   `yaml:"fallback_enabled"`
	FallbackProvider string `yaml:"fallback_provider"`
	TranscriptLimit  int    `yaml:"transcript_limit"`
}

type ThumbnailConfig struct {
	Size        int           `yaml:"size"`
	MaxAttempts int           `yaml:"max_attempts"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		Port:                     os.Getenv("PORT"),
		SpoonacularKey:           os.Getenv("SPOONACULAR_API_KEY"),
		SpoonacularBaseURL:       os.Getenv("SPOONACULAR_BASE_URL"),
		OpenAIKey:                os.Getenv("OPENAI_API_KEY"),
		GroqKey:                  os.Getenv("GROQ_API_KEY"),
		GeminiKey:                os.Getenv("GEMINI_API_KEY"),
		SessionSecret:            os.Getenv("SESSION_SECRET"),
		RedisURL:                 os.Getenv("REDIS_URL"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		BrowserLaunch:            true,
		SessionMaxIdle:           12 * time.Hour,
	}

	if v := os.Getenv("BROWSER_LAUNCH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BROWSER_LAUNCH: %w", err)
		}
		cfg.BrowserLaunch = b
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if v := os.Getenv("SESSION_MAX_IDLE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_MAX_IDLE: %w", err)
		}
		cfg.SessionMaxIdle = d
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML("config.yaml"); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	// Set defaults
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "recipedesk"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SpoonacularBaseURL == "" {
		cfg.SpoonacularBaseURL = "https://api.spoonacular.com"
	}

	cfg.SetAssistantDefaults()
	cfg.SetThumbnailDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Assistant  AssistantConfig `yaml:"assistant"`
		Thumbnails ThumbnailConfig `yaml:"thumbnails"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlConfig.Assistant.Provider != "" {
		c.Assistant.Provider = yamlConfig.Assistant.Provider
	}
	if yamlConfig.Assistant.Model != "" {
		c.Assistant.Model = yamlConfig.Assistant.Model
	}
	if yamlConfig.Assistant.FallbackEnabled {
		c.Assistant.FallbackEnabled = true
	}
	if yamlConfig.Assistant.FallbackProvider != "" {
		c.Assistant.FallbackProvider = yamlConfig.Assistant.FallbackProvider
	}
	if yamlConfig.Assistant.TranscriptLimit > 0 {
		c.Assistant.TranscriptLimit = yamlConfig.Assistant.TranscriptLimit
	}

	if yamlConfig.Thumbnails.Size > 0 {
		c.Thumbnails.Size = yamlConfig.Thumbnails.Size
	}
	if yamlConfig.Thumbnails.MaxAttempts > 0 {
		c.Thumbnails.MaxAttempts = yamlConfig.Thumbnails.MaxAttempts
	}
	if yamlConfig.Thumbnails.CacheTTL > 0 {
		c.Thumbnails.CacheTTL = yamlConfig.Thumbnails.CacheTTL
	}

	return nil
}

func (c *Config) SetAssistantDefaults() {
	if c.Assistant.Provider == "" {
		c.Assistant.Provider = "openai"
	}
	if c.Assistant.FallbackEnabled && c.Assistant.FallbackProvider == "" {
		c.Assistant.FallbackProvider = "groq"
	}
	if c.Assistant.TranscriptLimit <= 0 {
		c.Assistant.TranscriptLimit = 200
	}
}

func (c *Config) SetThumbnailDefaults() {
	if c.Thumbnails.Size <= 0 {
		c.Thumbnails.Size = 150
	}
	if c.Thumbnails.MaxAttempts <= 0 {
		c.Thumbnails.MaxAttempts = 1
	}
	if c.Thumbnails.CacheTTL <= 0 {
		c.Thumbnails.CacheTTL = 24 * time.Hour
	}
}

// ProviderKey returns the API key configured for the named assistant provider.
func (c *Config) ProviderKey(provider string) string {
	switch strings.ToLower(provider) {
	case "groq":
		return c.GroqKey
	case "gemini":
		return c.GeminiKey
	default:
		return c.OpenAIKey
	}
}

func (c *Config) validate() error {
	if c.SpoonacularKey == "" {
		return fmt.Errorf("SPOONACULAR_API_KEY is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	switch c.Assistant.Provider {
	case "openai", "groq", "gemini":
	default:
		return fmt.Errorf("unknown assistant provider %q", c.Assistant.Provider)
	}
	if c.ProviderKey(c.Assistant.Provider) == "" {
		return fmt.Errorf("API key for assistant provider %q is required", c.Assistant.Provider)
	}
	if c.Assistant.FallbackEnabled {
		switch c.Assistant.FallbackProvider {
		case "openai", "groq", "gemini":
		default:
			return fmt.Errorf("unknown fallback provider %q", c.Assistant.FallbackProvider)
		}
		if c.ProviderKey(c.Assistant.FallbackProvider) == "" {
			return fmt.Errorf("API key for fallback provider %q is required", c.Assistant.FallbackProvider)
		}
	}
	return nil
}
