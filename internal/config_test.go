package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.AI.DefaultProvider != ProviderOpenAI {
		t.Errorf("default provider = %q", cfg.AI.DefaultProvider)
	}
	if len(cfg.AI.FallbackOrder) != 4 {
		t.Errorf("fallback order = %v", cfg.AI.FallbackOrder)
	}
}

func TestAIConfig_Timeout(t *testing.T) {
	c := AIConfig{TimeoutSeconds: 90}
	if c.Timeout() != 90*time.Second {
		t.Errorf("timeout = %v", c.Timeout())
	}
}

func TestAIConfig_ValidateRejectsUnknownProvider(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.AI.DefaultProvider = "skynet"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown default provider accepted")
	}

	cfg = NewDefaultConfig()
	cfg.AI.FallbackOrder = []string{"openai", "skynet"}
	if err := cfg.Validate(); err == nil {
		t.Error("unknown fallback provider accepted")
	}
}

func TestAIConfig_ValidateTemperatureRange(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.AI.Temperature = 3.5
	if err := cfg.Validate(); err == nil {
		t.Error("temperature 3.5 accepted")
	}
}

func TestPathsConfig_ValidateRequiresAll(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Paths.NotesDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty notes_dir accepted")
	}
}

func TestEditorConfig_Resolve(t *testing.T) {
	t.Setenv("EDITOR", "")
	c := EditorConfig{Command: "hx"}
	if got := c.Resolve(); got != "hx" {
		t.Errorf("Resolve = %q", got)
	}

	c = EditorConfig{}
	t.Setenv("EDITOR", "nano")
	if got := c.Resolve(); got != "nano" {
		t.Errorf("Resolve = %q", got)
	}

	t.Setenv("EDITOR", "")
	if got := c.Resolve(); got != "vi" {
		t.Errorf("Resolve = %q", got)
	}
}

func TestEnsureDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")
	if err := EnsureDefaultConfig(path); err != nil {
		t.Fatalf("EnsureDefaultConfig: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty config written")
	}
	// Secrets stay out of the generated file.
	if want := "${OPENAI_API_KEY}"; !strings.Contains(string(data), want) {
		t.Errorf("generated config missing %s placeholder", want)
	}

	// Idempotent: a second call must not clobber the file.
	if err := os.WriteFile(path, []byte("user: edited\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDefaultConfig(path); err != nil {
		t.Fatalf("second EnsureDefaultConfig: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "user: edited\n" {
		t.Errorf("existing config overwritten: %q", data)
	}
}
