package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendModelServer = "modelserver"
	BackendOllama      = "ollama"
	BackendGemini      = "gemini"
)

type Config struct {
	// Server configuration
	Port           string   `yaml:"port"`
	GinMode        string   `yaml:"gin_mode"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	TemplateDir    string   `yaml:"template_dir"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Generator GeneratorConfig `yaml:"generator"`
	TTS       TTSConfig       `yaml:"tts"`
}

type GeneratorConfig struct {
	Backend        string        `yaml:"backend"`
	ModelServerURL string        `yaml:"model_server_url"`
	OllamaURL      string        `yaml:"ollama_url"`
	OllamaModel    string        `yaml:"ollama_model"`
	GeminiAPIKey   string        `yaml:"gemini_api_key"`
	GeminiModel    string        `yaml:"gemini_model"`
	Timeout        time.Duration `yaml:"timeout"`
	Concurrency    int           `yaml:"concurrency"`
}

// Google Cloud Text-to-Speech 설정
type TTSConfig struct {
	Enabled         bool   `yaml:"enabled"`
	LanguageCode    string `yaml:"language_code"`
	Voice           string `yaml:"voice"`
	CredentialsFile string `yaml:"credentials_file"`
}

func Default() *Config {
	return &Config{
		Port:           "8080",
		GinMode:        "release",
		AllowedOrigins: []string{"*"},
		LogLevel:       "info",
		LogFormat:      "text",
		Generator: GeneratorConfig{
			Backend:        BackendModelServer,
			ModelServerURL: "http://localhost:8000",
			OllamaURL:      "http://localhost:11434",
			OllamaModel:    "gpt2",
			GeminiModel:    "gemini-2.0-flash",
			Timeout:        120 * time.Second,
		},
		TTS: TTSConfig{
			LanguageCode: "en-US",
			Voice:        "en-US-Wavenet-D",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// BIO_CONFIG_FILE and the environment, in that order. A .env file in the
// working directory is loaded into the environment first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("config.Load(): failed to read .env: %v", err)
	}

	cfg := Default()
	if path := os.Getenv("BIO_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config.Load(): failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config.Load(): failed to parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.TemplateDir = getEnv("TEMPLATE_DIR", c.TemplateDir)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = splitList(origins)
	}

	g := &c.Generator
	g.Backend = strings.ToLower(getEnv("GENERATOR_BACKEND", g.Backend))
	g.ModelServerURL = getEnv("MODEL_SERVER_URL", g.ModelServerURL)
	g.OllamaURL = getEnv("OLLAMA_URL", g.OllamaURL)
	g.OllamaModel = getEnv("OLLAMA_MODEL", g.OllamaModel)
	g.GeminiAPIKey = getEnv("GEMINI_API_KEY", g.GeminiAPIKey)
	g.GeminiModel = getEnv("GEMINI_MODEL", g.GeminiModel)
	if v := os.Getenv("GENERATION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config.Load(): invalid GENERATION_TIMEOUT %q: %w", v, err)
		}
		g.Timeout = d
	}
	if v := os.Getenv("GENERATION_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config.Load(): invalid GENERATION_CONCURRENCY %q: %w", v, err)
		}
		g.Concurrency = n
	}

	t := &c.TTS
	if v := os.Getenv("TTS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config.Load(): invalid TTS_ENABLED %q: %w", v, err)
		}
		t.Enabled = enabled
	}
	t.LanguageCode = getEnv("TTS_LANGUAGE", t.LanguageCode)
	t.Voice = getEnv("TTS_VOICE", t.Voice)
	t.CredentialsFile = getEnv("GOOGLE_APPLICATION_CREDENTIALS", t.CredentialsFile)
	return nil
}

func (c *Config) Validate() error {
	switch c.Generator.Backend {
	case BackendModelServer:
		if c.Generator.ModelServerURL == "" {
			return errors.New("MODEL_SERVER_URL is required for the modelserver backend")
		}
	case BackendOllama:
		if c.Generator.OllamaURL == "" || c.Generator.OllamaModel == "" {
			return errors.New("OLLAMA_URL and OLLAMA_MODEL are required for the ollama backend")
		}
	case BackendGemini:
		if c.Generator.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required for the gemini backend")
		}
	default:
		return fmt.Errorf("unknown GENERATOR_BACKEND %q", c.Generator.Backend)
	}
	if c.Generator.Concurrency < 0 {
		return errors.New("GENERATION_CONCURRENCY must not be negative")
	}
	if c.Generator.Timeout < 0 {
		return errors.New("GENERATION_TIMEOUT must not be negative")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
