// Package config loads blu's configuration file and environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures what blu needs to reach a player.
type Config struct {
	// Player is the device address: host, host:port, or full URL.
	Player string
	// Timeout bounds each HTTP request to the player.
	Timeout time.Duration
	// PollInterval is the cadence for watch mode and the TUI.
	PollInterval time.Duration
}

const (
	defaultConfigPath   = "~/.config/blu/config.toml"
	defaultTimeout      = 10 * time.Second
	defaultPollInterval = time.Second

	// playerEnv overrides the configured player address. Pairs with the
	// godotenv autoload in cmd/blu so a .env file works too.
	playerEnv = "BLU_PLAYER"
)

// Load locates and parses the blu config, falling back to defaults when
// the file is missing. The BLU_PLAYER environment variable wins over
// the file's player entry.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{Timeout: defaultTimeout, PollInterval: defaultPollInterval}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Player              string `toml:"player"`
		TimeoutSeconds      int    `toml:"timeout_seconds"`
		PollIntervalSeconds int    `toml:"poll_interval_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Player = strings.TrimSpace(raw.Player)
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if raw.PollIntervalSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollIntervalSeconds) * time.Second
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(playerEnv)); v != "" {
		cfg.Player = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
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
