package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/sentiscope/internal/config"
)

func TestConfigInit(t *testing.T) {
	resetGlobals(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, _, err := execute(t, "", "config", "init", "--file", path, "--no-emoji")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, "[OK] Configuration file created at: "+path) {
		t.Errorf("unexpected output: %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if string(data) != config.SampleConfig() {
		t.Error("written config does not match the full sample")
	}

	resetGlobals(t)
	if _, _, err := execute(t, "", "config", "init", "--file", path); err == nil {
		t.Error("expected error when the file exists")
	}

	resetGlobals(t)
	if _, _, err := execute(t, "", "config", "init", "--file", path, "--minimal", "--force"); err != nil {
		t.Fatalf("config init --force failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != config.MinimalSampleConfig() {
		t.Error("--minimal --force should overwrite with the minimal sample")
	}
}

func TestConfigShowMasksAPIKey(t *testing.T) {
	resetGlobals(t)
	cfgPath := writeConfig(t, "ai:\n  api_key: \"gsk_verysecretvalue1234\"\n")

	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			resetGlobals(t)
			out, _, err := execute(t, "", "--config", cfgPath, "config", "show", "--format", format)
			if err != nil {
				t.Fatalf("config show failed: %v", err)
			}
			if strings.Contains(out, "gsk_verysecretvalue1234") {
				t.Error("API key leaked in config show output")
			}
			if !strings.Contains(out, "********1234") {
				t.Errorf("expected masked key in output:\n%s", out)
			}
			if !strings.Contains(out, "qwen/qwen3-32b") {
				t.Errorf("expected default model in output:\n%s", out)
			}
		})
	}

	resetGlobals(t)
	if _, _, err := execute(t, "", "--config", cfgPath, "config", "show", "--format", "toml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestConfigValidate(t *testing.T) {
	resetGlobals(t)
	valid := writeConfig(t, "ai:\n  provider: vader\nui:\n  theme: minimal\n")

	out, _, err := execute(t, "", "--config", valid, "--no-emoji", "config", "validate")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	for _, want := range []string{"Configuration is valid", "AI Provider: vader", "Theme: minimal"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	resetGlobals(t)
	invalid := writeConfig(t, "ai:\n  provider: bogus\n")
	out, _, err = execute(t, "", "--config", invalid, "config", "validate")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(out, "Configuration validation failed") {
		t.Errorf("expected failure message, got %q", out)
	}
	if !strings.Contains(err.Error(), "invalid AI provider") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigPath(t *testing.T) {
	resetGlobals(t)

	out, _, err := execute(t, "", "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	for _, path := range config.GetConfigPaths() {
		if !strings.Contains(out, path) {
			t.Errorf("output missing search path %q", path)
		}
	}
	if !strings.Contains(out, config.APIKeyEnv) {
		t.Errorf("output should mention %s", config.APIKeyEnv)
	}
}

func TestMaskSecret(t *testing.T) {
	tests := map[string]string{
		"":                  "",
		"short":             "********",
		"exactly8":          "********",
		"sk-0123456789abcd": "********abcd",
	}
	for in, want := range tests {
		if got := maskSecret(in); got != want {
			t.Errorf("maskSecret(%q) = %q, want %q", in, got, want)
		}
	}
}
