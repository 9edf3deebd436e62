package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAssistantConfig(t *testing.T) {
	// Create a temporary config file for testing
	configContent := `assistant:
  provider: gemini
  model: gemini-1.5-pro
  fallback_enabled: true
  fallback_provider: openai
  transcript_limit: 50`

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.yaml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg := &Config{}
	err = cfg.LoadFromYAML(configPath)
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}

	if cfg.Assistant.Provider != "gemini" {
		t.Errorf("Expected provider to be 'gemini', got '%s'", cfg.Assistant.Provider)
	}
	if cfg.Assistant.Model != "gemini-1.5-pro" {
		t.Errorf("Expected model to be 'gemini-1.5-pro', got '%s'", cfg.Assistant.Model)
	}
	if !cfg.Assistant.FallbackEnabled {
		t.Errorf("Expected fallback_enabled to be true")
	}
	if cfg.Assistant.FallbackProvider != "openai" {
		t.Errorf("Expected fallback_provider to be 'openai', got '%s'", cfg.Assistant.FallbackProvider)
	}
	if cfg.Assistant.TranscriptLimit != 50 {
		t.Errorf("Expected transcript_limit to be 50, got %d", cfg.Assistant.TranscriptLimit)
	}
}

func TestLoadThumbnailConfig(t *testing.T) {
	configContent := `thumbnails:
  size: 96
  max_attempts: 3
  cache_ttl: 2h`

	configPath := filepath.Join(t.TempDir(), "thumbs.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg := &Config{}
	if err := cfg.LoadFromYAML(configPath); err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}

	if cfg.Thumbnails.Size != 96 {
		t.Errorf("Expected size 96, got %d", cfg.Thumbnails.Size)
	}
	if cfg.Thumbnails.MaxAttempts != 3 {
		t.Errorf("Expected max_attempts 3, got %d", cfg.Thumbnails.MaxAttempts)
	}
	if cfg.Thumbnails.CacheTTL != 2*time.Hour {
		t.Errorf("Expected cache_ttl 2h, got %v", cfg.Thumbnails.CacheTTL)
	}
}

func TestAssistantDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SetAssistantDefaults()

	if cfg.Assistant.Provider != "openai" {
		t.Errorf("Expected provider to be 'openai' (default), got '%s'", cfg.Assistant.Provider)
	}
	if cfg.Assistant.FallbackEnabled {
		t.Errorf("Expected fallback to be disabled by default")
	}
	if cfg.Assistant.TranscriptLimit != 200 {
		t.Errorf("Expected transcript_limit 200 (default), got %d", cfg.Assistant.TranscriptLimit)
	}

	withFallback := &Config{Assistant: AssistantConfig{FallbackEnabled: true}}
	withFallback.SetAssistantDefaults()
	if withFallback.Assistant.FallbackProvider != "groq" {
		t.Errorf("Expected fallback_provider 'groq' (default), got '%s'", withFallback.Assistant.FallbackProvider)
	}
}

func TestThumbnailDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SetThumbnailDefaults()

	if cfg.Thumbnails.Size != 150 {
		t.Errorf("Expected size 150 (default), got %d", cfg.Thumbnails.Size)
	}
	if cfg.Thumbnails.MaxAttempts != 1 {
		t.Errorf("Expected max_attempts 1 (default), got %d", cfg.Thumbnails.MaxAttempts)
	}
}

func TestLoadFromYAMLFileNotFound(t *testing.T) {
	cfg := &Config{}
	err := cfg.LoadFromYAML("non_existent_file.yaml")

	// Should not return an error for non-existent files
	if err != nil {
		t.Errorf("Expected no error for non-existent file, got: %v", err)
	}
}

func TestLoadFromYAMLInvalid(t *testing.T) {
	configContent := `assistant:
  provider: openai
  invalid_yaml: [unclosed`

	configPath := filepath.Join(t.TempDir(), "test_config_invalid.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg := &Config{}
	if err := cfg.LoadFromYAML(configPath); err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SPOONACULAR_API_KEY", "spoon-key")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("BROWSER_LAUNCH", "false")
	t.Setenv("HTTP_TIMEOUT", "15s")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.SpoonacularBaseURL != "https://api.spoonacular.com" {
		t.Errorf("Unexpected base URL %s", cfg.SpoonacularBaseURL)
	}
	if cfg.BrowserLaunch {
		t.Errorf("Expected browser launch disabled")
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("Expected 15s timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.SessionMaxIdle != 12*time.Hour {
		t.Errorf("Expected 12h session idle default, got %v", cfg.SessionMaxIdle)
	}
}

func TestLoadRequiresKeys(t *testing.T) {
	t.Setenv("SPOONACULAR_API_KEY", "")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("OPENAI_API_KEY", "openai-key")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error without SPOONACULAR_API_KEY")
	}

	t.Setenv("SPOONACULAR_API_KEY", "spoon-key")
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatal("Expected error without key for the default assistant provider")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("SPOONACULAR_API_KEY", "spoon-key")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("HTTP_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for invalid HTTP_TIMEOUT")
	}
}

func TestValidateFallbackKey(t *testing.T) {
	cfg := &Config{
		SpoonacularKey: "spoon-key",
		SessionSecret:  "secret",
		OpenAIKey:      "openai-key",
		Assistant:      AssistantConfig{FallbackEnabled: true},
	}
	cfg.SetAssistantDefaults()

	if err := cfg.validate(); err == nil {
		t.Fatal("Expected error without key for the fallback provider")
	}

	cfg.GroqKey = "groq-key"
	if err := cfg.validate(); err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}

	cfg.Assistant.FallbackProvider = "claude"
	if err := cfg.validate(); err == nil {
		t.Fatal("Expected error for unknown fallback provider")
	}
}
