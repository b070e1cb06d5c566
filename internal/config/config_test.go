package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadFrom_ClampsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	raw := `{
  "ui": {"refresh_interval_seconds": -5, "warn_threshold": 1.4, "crit_threshold": 0.1},
  "base_url": "",
  "token_env": ""
}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.UI.RefreshIntervalSeconds != 60 {
		t.Errorf("RefreshIntervalSeconds = %d, want 60", cfg.UI.RefreshIntervalSeconds)
	}
	if cfg.UI.WarnThreshold != 0.70 {
		t.Errorf("WarnThreshold = %v, want 0.70", cfg.UI.WarnThreshold)
	}
	if cfg.UI.CritThreshold != 0.90 {
		t.Errorf("CritThreshold = %v, want 0.90", cfg.UI.CritThreshold)
	}
	if cfg.BaseURL != "https://claude.ai" {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
	if cfg.TokenEnv != "USAGELENS_TOKEN" {
		t.Errorf("TokenEnv = %q, want default", cfg.TokenEnv)
	}
}

func TestLoadFrom_MalformedJSONFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg != DefaultConfig() {
		t.Fatalf("cfg = %+v, want defaults on parse failure", cfg)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	want := DefaultConfig()
	want.OrgID = "org-42"
	want.UI.RefreshIntervalSeconds = 120

	if err := SaveTo(path, want); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if got != want {
		t.Fatalf("roundtrip mismatch: got %+v, want %+v", got, want)
	}
}

func TestResolveToken(t *testing.T) {
	t.Setenv("USAGELENS_TEST_TOKEN", "sk-test")
	cfg := Config{TokenEnv: "USAGELENS_TEST_TOKEN"}
	if got := cfg.ResolveToken(); got != "sk-test" {
		t.Fatalf("ResolveToken() = %q, want sk-test", got)
	}
}
