package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	TLS     TLSConfig     `yaml:"tls"`
	LLM     LLMConfig     `yaml:"llm"`
	Images  ImagesConfig  `yaml:"images"`
	Render  RenderConfig  `yaml:"render"`
	Storage StorageConfig `yaml:"storage"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           string        `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

// TLSConfig holds TLS settings
type TLSConfig struct {
	Enabled    bool   `yaml:"enabled"`
	CertFile   string `yaml:"cert_file"`
	KeyFile    string `yaml:"key_file"`
	MinVersion string `yaml:"min_version"`
}

// LLMConfig selects and configures the content generation backend
type LLMConfig struct {
	Provider    string          `yaml:"provider"`
	Temperature float64         `yaml:"temperature"`
	MaxTokens   int64           `yaml:"max_tokens"`
	OpenAI      OpenAIConfig    `yaml:"openai"`
	Anthropic   AnthropicConfig `yaml:"anthropic"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// ImagesConfig holds stock photo search and fetch settings
type ImagesConfig struct {
	UnsplashAccessKey string        `yaml:"unsplash_access_key"`
	UnsplashBaseURL   string        `yaml:"unsplash_base_url"`
	Concurrency       int           `yaml:"concurrency"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	FetchTimeout      time.Duration `yaml:"fetch_timeout"`
	MaxBytes          int64         `yaml:"max_bytes"`
}

// RenderConfig holds document output settings
type RenderConfig struct {
	ChromeEnabled        bool          `yaml:"chrome_enabled"`
	ChromePath           string        `yaml:"chrome_path"`
	PDFTimeout           time.Duration `yaml:"pdf_timeout"`
	NativePDFFallback    bool          `yaml:"native_pdf_fallback"`
	ResolveMissingImages bool          `yaml:"resolve_missing_images"`
}

// StorageConfig holds deck history settings
type StorageConfig struct {
	Enabled  bool   `yaml:"enabled"`
	DBPath   string `yaml:"db_path"`
	DataPath string `yaml:"data_path"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "5000",
			RequestTimeout: 120 * time.Second,
			MaxBodyBytes:   20 << 20,
			AllowedOrigins: []string{"*"},
		},
		TLS: TLSConfig{
			MinVersion: "1.2",
		},
		LLM: LLMConfig{
			Provider:    "auto",
			Temperature: 0.7,
			MaxTokens:   4096,
			OpenAI: OpenAIConfig{
				Model:   "gpt-4o-mini",
				BaseURL: "https://api.openai.com/v1",
			},
			Anthropic: AnthropicConfig{
				Model: "claude-sonnet-4-20250514",
			},
		},
		Images: ImagesConfig{
			UnsplashBaseURL:   "https://api.unsplash.com",
			Concurrency:       4,
			RequestsPerSecond: 5,
			Burst:             10,
			FetchTimeout:      20 * time.Second,
			MaxBytes:          15 << 20,
		},
		Render: RenderConfig{
			ChromeEnabled:     true,
			PDFTimeout:        60 * time.Second,
			NativePDFFallback: true,
		},
		Storage: StorageConfig{
			Enabled:  true,
			DBPath:   "./data/decks.db",
			DataPath: "./data",
		},
	}
}

// LoadConfig loads configuration from CONFIG_PATH (default config.yaml) and
// the environment. A missing or unreadable file falls back to defaults.
func LoadConfig() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	cfg, err := Load(path)
	if err != nil {
		log.Printf("Failed to load config file %s, using defaults: %v", path, err)
		cfg = Default()
		applyEnv(cfg)
	}
	return cfg
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A path that does not exist is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Host, "HOST")
	setString(&cfg.Server.Port, "PORT")
	setDuration(&cfg.Server.RequestTimeout, "REQUEST_TIMEOUT")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Server.AllowedOrigins = origins
	}

	setBool(&cfg.TLS.Enabled, "TLS_ENABLED")
	setString(&cfg.TLS.CertFile, "TLS_CERT_FILE")
	setString(&cfg.TLS.KeyFile, "TLS_KEY_FILE")
	setString(&cfg.TLS.MinVersion, "TLS_MIN_VERSION")

	setString(&cfg.LLM.Provider, "LLM_PROVIDER")
	setString(&cfg.LLM.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&cfg.LLM.OpenAI.Model, "OPENAI_MODEL")
	setString(&cfg.LLM.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	setString(&cfg.LLM.Anthropic.Model, "ANTHROPIC_MODEL")

	setString(&cfg.Images.UnsplashAccessKey, "UNSPLASH_ACCESS_KEY")

	setBool(&cfg.Render.ChromeEnabled, "CHROME_ENABLED")
	setString(&cfg.Render.ChromePath, "CHROME_PATH")

	setBool(&cfg.Storage.Enabled, "STORAGE_ENABLED")
	setString(&cfg.Storage.DBPath, "DB_PATH")
	setString(&cfg.Storage.DataPath, "DATA_PATH")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Ignoring invalid %s=%q: %v", key, v, err)
		return
	}
	*dst = b
}

func setDuration(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Ignoring invalid %s=%q: %v", key, v, err)
		return
	}
	*dst = d
}
