package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything the client needs to reach the storefront
// gateway and place its local state.
type Config struct {
	APIBase  string
	UserID   string
	StateDir string
}

const (
	defaultConfigPath = "~/.config/basket/config.toml"
	defaultStateDir   = "~/.local/share/basket"
	defaultAPIBase    = "127.0.0.1:8080"
)

// Environment overrides, applied after the file. Useful for pointing a
// session at the development gateway without editing the config.
const (
	envAPIBase  = "BASKET_API_BASE"
	envUserID   = "BASKET_USER_ID"
	envStateDir = "BASKET_STATE_DIR"
)

// Load locates and parses the client config, falling back to defaults when
// the file is missing. A missing config is a normal first run, not an
// error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{APIBase: defaultAPIBase, StateDir: defaultStateDir}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg.finish(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase  string `toml:"api_base"`
		UserID   string `toml:"user_id"`
		StateDir string `toml:"state_dir"`
	}
	if err := toml.Unmarshal(content, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.UserID); v != "" {
		cfg.UserID = v
	}
	if v := strings.TrimSpace(raw.StateDir); v != "" {
		cfg.StateDir = v
	}

	return cfg.finish(), nil
}

// finish applies environment overrides and normalizes paths.
func (c Config) finish() Config {
	if v := strings.TrimSpace(os.Getenv(envAPIBase)); v != "" {
		c.APIBase = v
	}
	if v := strings.TrimSpace(os.Getenv(envUserID)); v != "" {
		c.UserID = v
	}
	if v := strings.TrimSpace(os.Getenv(envStateDir)); v != "" {
		c.StateDir = v
	}
	c.StateDir = mustExpand(c.StateDir)
	return c
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
