// Package config provides configuration for the Danish Wikipedia Q&A
// dataset builder.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingDatabasePath      = errors.New("database.path is required")
	ErrMissingCacheDir          = errors.New("cache.dir is required")
	ErrMissingModel             = errors.New("generation.model is required")
	ErrInvalidTemperature       = errors.New("generation.temperature must be between 0 and 2")
	ErrInvalidMaxContentRunes   = errors.New("generation.max_content_runes must be at least 1")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidMinContentLength  = errors.New("filter.min_content_length must be non-negative")
	ErrInvalidMinWordCount      = errors.New("filter.min_word_count must be non-negative")
	ErrMissingOutputDir         = errors.New("output.dir is required")
	ErrInvalidOutputFormat      = errors.New("output.format must be 'json' or 'jsonl'")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Cache      CacheConfig      `yaml:"cache"`
	Generation GenerationConfig `yaml:"generation"`
	Retry      RetryPolicy      `yaml:"retry"`
	Filter     FilterConfig     `yaml:"filter"`
	Output     OutputConfig     `yaml:"output"`
	Hub        HubConfig        `yaml:"hub"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// DatabaseConfig locates the article store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// CacheConfig locates the content-addressed Q&A cache.
type CacheConfig struct {
	Dir string `yaml:"dir"`
}

// GenerationConfig controls the text-generation requests.
type GenerationConfig struct {
	Model           string  `yaml:"model"`
	Temperature     float64 `yaml:"temperature"`
	MaxContentRunes int     `yaml:"max_content_runes"`
}

// RetryPolicy defines retry behavior for generation requests.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
}

// FilterConfig holds the minimum-substance thresholds for keeping an
// article.
type FilterConfig struct {
	MinContentLength int `yaml:"min_content_length"`
	MinWordCount     int `yaml:"min_word_count"`
}

// OutputConfig defines where and how the dataset is written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// HubConfig defines the Hugging Face Hub target for uploads.
type HubConfig struct {
	Endpoint string `yaml:"endpoint"`
	Private  bool   `yaml:"private"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level"`
	ShowProgress bool   `yaml:"show_progress"`
}

// DefaultConfig returns the defaults the dataset was originally built
// with: gpt-4o at temperature 0.7, a 6000-rune prompt budget, three
// attempts with a fixed two second pause, and the 300-char/50-word
// substance thresholds.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "danish_wikipedia.db"},
		Cache:    CacheConfig{Dir: "qa_cache"},
		Generation: GenerationConfig{
			Model:           "gpt-4o",
			Temperature:     0.7,
			MaxContentRunes: 6000,
		},
		Retry: RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    2000,
			MaxDelayMs:        2000,
			BackoffMultiplier: 1.0,
		},
		Filter: FilterConfig{
			MinContentLength: 300,
			MinWordCount:     50,
		},
		Output: OutputConfig{Dir: "daqa", Format: "jsonl"},
		Hub:    HubConfig{Endpoint: "https://huggingface.co", Private: true},
		Logging: LoggingConfig{
			Level:        "info",
			ShowProgress: true,
		},
	}
}

// LoadConfig loads configuration from a YAML file layered over the
// defaults, so partial files only override what they mention.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return ErrMissingDatabasePath
	}

	if c.Cache.Dir == "" {
		return ErrMissingCacheDir
	}

	if c.Generation.Model == "" {
		return ErrMissingModel
	}

	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		return ErrInvalidTemperature
	}

	if c.Generation.MaxContentRunes < 1 {
		return ErrInvalidMaxContentRunes
	}

	if c.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Filter.MinContentLength < 0 {
		return ErrInvalidMinContentLength
	}

	if c.Filter.MinWordCount < 0 {
		return ErrInvalidMinWordCount
	}

	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	if c.Output.Format != "json" && c.Output.Format != "jsonl" {
		return ErrInvalidOutputFormat
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetRetryDelay calculates the backoff delay before the given attempt
// number. The first attempt has no delay.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 2; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	if rp.MaxDelayMs > 0 && int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// String returns a short description of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{DB: %s, Model: %s, MaxAttempts: %d, Output: %s}",
		c.Database.Path,
		c.Generation.Model,
		c.Retry.MaxAttempts,
		c.Output.Dir,
	)
}

// Secrets holds API credentials read from the environment.
type Secrets struct {
	OpenAIKey     string
	OpenAIBaseURL string
	HubToken      string
}

// LoadSecrets loads a .env file when present and reads the API
// credentials from the environment.
func LoadSecrets() Secrets {
	// A missing .env file is fine; the variables may already be set.
	_ = godotenv.Load()

	return Secrets{
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		HubToken:      os.Getenv("HF_TOKEN"),
	}
}
