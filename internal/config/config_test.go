package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/roboco-io/html2vega/internal/layout"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Render.FontSize != 14 {
		t.Errorf("expected font size 14, got %g", cfg.Render.FontSize)
	}
	if cfg.Render.MaxWidth != 400 {
		t.Errorf("expected max width 400, got %g", cfg.Render.MaxWidth)
	}
	if cfg.Render.Measurer != MeasurerApprox {
		t.Errorf("expected approx measurer, got %s", cfg.Render.Measurer)
	}
	if cfg.Parser.Registry != RegistryDefault {
		t.Errorf("expected default registry, got %s", cfg.Parser.Registry)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.FontSize = 0
	cfg.Render.MaxWidth = -1
	cfg.Render.Measurer = "laser"
	cfg.Parser.Registry = "huge"
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if n := len(multierr.Errors(err)); n != 5 {
		t.Errorf("expected 5 errors, got %d: %v", n, err)
	}
}

func TestLoader_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	loader := NewLoaderWithPath(configPath)

	cfg := DefaultConfig()
	cfg.Render.MaxWidth = 250
	cfg.Parser.Registry = RegistryMinimal

	if err := loader.Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	if !loader.Exists() {
		t.Error("expected config file to exist after save")
	}

	loaded, err := loader.LoadRaw()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if loaded.Render.MaxWidth != 250 {
		t.Errorf("expected max width 250, got %g", loaded.Render.MaxWidth)
	}
	if loaded.Parser.Registry != RegistryMinimal {
		t.Errorf("expected minimal registry, got %s", loaded.Parser.Registry)
	}
}

func TestLoader_LoadNonExistent(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nonexistent", "config.yaml")

	loader := NewLoaderWithPath(configPath)

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}
	if cfg.Render.FontSize != layout.DefaultOptions().FontSize {
		t.Errorf("expected default font size, got %g", cfg.Render.FontSize)
	}
}

func TestLoader_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `render:
  max_width: 120
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := NewLoaderWithPath(configPath).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Render.MaxWidth != 120 {
		t.Errorf("expected max width 120, got %g", cfg.Render.MaxWidth)
	}
	if cfg.Render.FontSize != 14 || cfg.Parser.Registry != RegistryDefault {
		t.Errorf("expected untouched keys to keep defaults, got %+v", cfg)
	}
}

func TestLoader_ExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_BACKGROUND", "#123456")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `render:
  background: "${TEST_BACKGROUND}"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := NewLoaderWithPath(configPath).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Render.Background != "#123456" {
		t.Errorf("expected expanded background, got %s", cfg.Render.Background)
	}
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv(EnvFontSize, "18")
	t.Setenv(EnvRegistry, RegistryMinimal)
	t.Setenv(EnvStrict, "yes")

	cfg, err := NewLoaderWithPath(filepath.Join(t.TempDir(), "config.yaml")).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Render.FontSize != 18 {
		t.Errorf("expected font size 18, got %g", cfg.Render.FontSize)
	}
	if cfg.Parser.Registry != RegistryMinimal || !cfg.Parser.Strict {
		t.Errorf("unexpected parser config %+v", cfg.Parser)
	}
}

func TestLoader_BadEnvNumber(t *testing.T) {
	t.Setenv(EnvMaxWidth, "wide")

	_, err := NewLoaderWithPath(filepath.Join(t.TempDir(), "config.yaml")).Load()
	if err == nil || !strings.Contains(err.Error(), EnvMaxWidth) {
		t.Errorf("expected error naming %s, got %v", EnvMaxWidth, err)
	}
}

func TestLoader_LoadInvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("parser:\n  registry: bogus\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := NewLoaderWithPath(configPath).Load(); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadDotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")
	if err := os.WriteFile(envPath, []byte("HTML2VEGA_TEST_DOTENV=loaded\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("HTML2VEGA_TEST_DOTENV") })

	if err := LoadDotEnv(envPath, filepath.Join(tmpDir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	if v := os.Getenv("HTML2VEGA_TEST_DOTENV"); v != "loaded" {
		t.Errorf("expected variable from .env, got %q", v)
	}
}

func TestLoader_PlaceholderFallback(t *testing.T) {
	t.Setenv("TEST_FAMILY", "")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `render:
  font_family: "${TEST_FAMILY:-Georgia, serif}"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := NewLoaderWithPath(configPath).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Render.FontFamily != "Georgia, serif" {
		t.Errorf("expected fallback font family, got %q", cfg.Render.FontFamily)
	}

	raw, err := NewLoaderWithPath(configPath).LoadRaw()
	if err != nil {
		t.Fatalf("failed to load raw config: %v", err)
	}
	if raw.Render.FontFamily != "${TEST_FAMILY:-Georgia, serif}" {
		t.Errorf("expected placeholder kept by LoadRaw, got %q", raw.Render.FontFamily)
	}
}

func TestLoader_InitRefusesExistingFile(t *testing.T) {
	loader := NewLoaderWithPath(filepath.Join(t.TempDir(), "nested", "config.yaml"))

	if err := loader.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !loader.Exists() {
		t.Fatal("expected config file to exist after Init")
	}
	if err := loader.Init(); !errors.Is(err, os.ErrExist) {
		t.Errorf("expected os.ErrExist on second Init, got %v", err)
	}
}

func TestNewLoader_EnvPath(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(EnvConfigPath, want)

	loader, err := NewLoader()
	if err != nil {
		t.Fatalf("NewLoader failed: %v", err)
	}
	if loader.ConfigPath() != want {
		t.Errorf("expected %s, got %s", want, loader.ConfigPath())
	}
}

func TestEnvString(t *testing.T) {
	t.Setenv("TEST_VAR", "test-value")

	if v := envString("TEST_VAR", "default"); v != "test-value" {
		t.Errorf("expected 'test-value', got %s", v)
	}
	if v := envString("NONEXISTENT_VAR", "default"); v != "default" {
		t.Errorf("expected 'default', got %s", v)
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		value  string
		want   bool
		wantOK bool
	}{
		{"true", true, true},
		{"TRUE", true, true},
		{"1", true, true},
		{"yes", true, true},
		{"false", false, true},
		{"0", false, true},
		{"no", false, true},
		{"", false, false},
		{"invalid", false, false},
	}

	for _, tc := range tests {
		t.Setenv("TEST_BOOL", tc.value)
		got, ok := envBool("TEST_BOOL")
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("envBool(%q) = (%v, %v), want (%v, %v)", tc.value, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestApplyEnv_StrictCanBeDisabled(t *testing.T) {
	t.Setenv(EnvStrict, "false")

	cfg := DefaultConfig()
	cfg.Parser.Strict = true
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if cfg.Parser.Strict {
		t.Error("expected HTML2VEGA_STRICT=false to disable strict mode")
	}
}

func TestNewLoader(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	loader, err := NewLoader()
	if err != nil {
		t.Fatalf("failed to create loader: %v", err)
	}

	path := loader.ConfigPath()
	if filepath.Base(path) != ConfigFileName {
		t.Errorf("expected config file name %s, got %s", ConfigFileName, filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ConfigDirName {
		t.Errorf("expected config dir %s, got %s", ConfigDirName, filepath.Dir(path))
	}
}

func TestLoader_LoadInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("{{{{invalid yaml"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := NewLoaderWithPath(configPath).Load(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestRenderConfig_Factories(t *testing.T) {
	r := DefaultConfig().Render

	m, err := r.NewMeasurer()
	if err != nil {
		t.Fatalf("NewMeasurer failed: %v", err)
	}
	if _, ok := m.(layout.ApproxMeasurer); !ok {
		t.Errorf("expected ApproxMeasurer, got %T", m)
	}

	r.Measurer = MeasurerFont
	if m, err = r.NewMeasurer(); err != nil {
		t.Fatalf("NewMeasurer failed: %v", err)
	}
	if _, ok := m.(*layout.FontMeasurer); !ok {
		t.Errorf("expected *FontMeasurer, got %T", m)
	}

	f := r.Format()
	if f.Background != r.Background || f.Width != 0 {
		t.Errorf("unexpected format %+v", f)
	}
}

func TestParserConfig_NewRegistry(t *testing.T) {
	reg, err := ParserConfig{Registry: RegistryMinimal}.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	if reg.Supports("p") {
		t.Error("expected minimal registry")
	}

	if _, err := (ParserConfig{Registry: "nope"}).NewRegistry(); err == nil {
		t.Error("expected error for unknown registry")
	}
}

func TestLoggingConfig_Prepare(t *testing.T) {
	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "html2vega.log")

	cfg := DefaultLoggingConfig()
	cfg.Level = "info"
	cfg.File = logFile

	log, err := cfg.Prepare(&buf)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	log.Debug("hidden")
	log.Info("visible")
	_ = log.Sync()

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "visible") {
		t.Errorf("unexpected console output %q", buf.String())
	}
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"visible"`) {
		t.Errorf("unexpected file output %q", data)
	}

	cfg.Level = "shout"
	if _, err := cfg.Prepare(&buf); err == nil {
		t.Error("expected error for invalid level")
	}
}
