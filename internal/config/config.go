package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

type UIConfig struct {
	RefreshIntervalSeconds int     `json:"refresh_interval_seconds"`
	WarnThreshold          float64 `json:"warn_threshold"` // fraction used, e.g. 0.70
	CritThreshold          float64 `json:"crit_threshold"` // fraction used, e.g. 0.90
}

type Config struct {
	UI       UIConfig `json:"ui"`
	BaseURL  string   `json:"base_url"`
	OrgID    string   `json:"org_id"`
	TokenEnv string   `json:"token_env"` // env var holding the session token
}

func DefaultConfig() Config {
	return Config{
		BaseURL:  "https://claude.ai",
		TokenEnv: "USAGELENS_TOKEN",
		UI: UIConfig{
			RefreshIntervalSeconds: 60,
			WarnThreshold:          0.70,
			CritThreshold:          0.90,
		},
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "usagelens")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "usagelens")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.UI.RefreshIntervalSeconds <= 0 {
		cfg.UI.RefreshIntervalSeconds = 60
	}
	if cfg.UI.WarnThreshold <= 0 || cfg.UI.WarnThreshold >= 1 {
		cfg.UI.WarnThreshold = 0.70
	}
	if cfg.UI.CritThreshold <= cfg.UI.WarnThreshold || cfg.UI.CritThreshold >= 1 {
		cfg.UI.CritThreshold = 0.90
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.TokenEnv == "" {
		cfg.TokenEnv = DefaultConfig().TokenEnv
	}

	return cfg, nil
}

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ResolveToken reads the session token from the configured env var.
func (c Config) ResolveToken() string {
	return os.Getenv(c.TokenEnv)
}
