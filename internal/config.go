// Package internal holds the application configuration.
package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Provider names accepted in AI configuration.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	AI     AIConfig          `yaml:"ai"`
	Paths  PathsConfig       `yaml:"paths"`
	Editor EditorConfig      `yaml:"editor"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.AI.Validate(); err != nil {
		return err
	}
	return c.Paths.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// AIConfig configures the provider gateway: which backend services a
// transform by default, the fallback preference order, and per-provider
// credentials and endpoints.
type AIConfig struct {
	DefaultProvider string          `yaml:"default_provider"`
	FallbackOrder   []string        `yaml:"fallback_order"`
	Temperature     float64         `yaml:"temperature"`
	TimeoutSeconds  int             `yaml:"timeout_seconds"`
	OpenAI          OpenAIConfig    `yaml:"openai"`
	Anthropic       AnthropicConfig `yaml:"anthropic"`
	Gemini          GeminiConfig    `yaml:"gemini"`
	Ollama          OllamaConfig    `yaml:"ollama"`
}

// Timeout returns the per-request provider timeout.
func (c *AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate validates the AI configuration.
func (c *AIConfig) Validate() error {
	known := validation.In(ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama)
	if err := validation.ValidateStruct(c,
		validation.Field(&c.DefaultProvider, validation.Required, known),
		validation.Field(&c.Temperature, validation.Min(0.0), validation.Max(2.0)),
		validation.Field(&c.TimeoutSeconds, validation.Min(1)),
	); err != nil {
		return err
	}
	for _, name := range c.FallbackOrder {
		switch name {
		case ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama:
		default:
			return fmt.Errorf("ai: unknown provider %q in fallback_order", name)
		}
	}
	return nil
}

// OpenAIConfig holds OpenAI credentials and model selection.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// AnthropicConfig holds Anthropic credentials and model selection.
type AnthropicConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// GeminiConfig holds Google Gemini credentials and model selection.
type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// OllamaConfig holds the local Ollama endpoint and model selection.
type OllamaConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// PathsConfig holds the on-disk locations of the note collection.
type PathsConfig struct {
	NotesDir     string `yaml:"notes_dir"`
	HistoryDB    string `yaml:"history_db"`
	TemplatesDir string `yaml:"templates_dir"`
}

// Validate validates the paths configuration.
func (c *PathsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.NotesDir, validation.Required),
		validation.Field(&c.HistoryDB, validation.Required),
		validation.Field(&c.TemplatesDir, validation.Required),
	)
}

// EditorConfig selects the editor used by `numen edit` and `numen config`.
// An empty command falls back to $EDITOR.
type EditorConfig struct {
	Command string `yaml:"command"`
}

// Resolve returns the editor command, falling back to $EDITOR then vi.
func (c *EditorConfig) Resolve() string {
	if c.Command != "" {
		return c.Command
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	return "vi"
}

// DefaultDir returns the base numen directory (~/.numen).
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".numen"
	}
	return filepath.Join(home, ".numen")
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	base := DefaultDir()
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelWarn,
		},
		AI: AIConfig{
			DefaultProvider: ProviderOpenAI,
			FallbackOrder:   []string{ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama},
			Temperature:     0.7,
			TimeoutSeconds:  60,
			OpenAI:          OpenAIConfig{APIKey: os.Getenv("OPENAI_API_KEY"), Model: "gpt-4o-mini"},
			Anthropic:       AnthropicConfig{APIKey: os.Getenv("ANTHROPIC_API_KEY"), Model: "claude-3-5-sonnet-latest"},
			Gemini:          GeminiConfig{APIKey: os.Getenv("GEMINI_API_KEY"), Model: "gemini-1.5-flash"},
			Ollama:          OllamaConfig{BaseURL: "http://localhost:11434", Model: "llama3"},
		},
		Paths: PathsConfig{
			NotesDir:     filepath.Join(base, "notes"),
			HistoryDB:    filepath.Join(base, "history.db"),
			TemplatesDir: filepath.Join(base, "templates"),
		},
		Editor: EditorConfig{},
	}
}

// EnsureDefaultConfig writes a starter config file when none exists, so that
// `numen config` has something to open on first run.
func EnsureDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	data, err := yaml.Marshal(starterConfig())
	if err != nil {
		return fmt.Errorf("config: marshal defaults: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write defaults: %w", err)
	}
	return nil
}

// starterConfig is what lands in the generated config file. API keys are
// left as env expansions so secrets stay out of the file.
func starterConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.AI.OpenAI.APIKey = "${OPENAI_API_KEY}"
	cfg.AI.Anthropic.APIKey = "${ANTHROPIC_API_KEY}"
	cfg.AI.Gemini.APIKey = "${GEMINI_API_KEY}"
	return cfg
}
