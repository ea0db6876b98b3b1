// Package config loads the optional TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultLogLimit   = 256
	defaultForgeLimit = 10
	defaultRemote     = "origin"
	defaultDebounceMS = 350
	tokenEnv          = "GITHUB_TOKEN"
)

type Config struct {
	Backend string        `toml:"backend,omitempty"` // "gitcli" or "native"
	Log     LogConfig     `toml:"log"`
	Display DisplayConfig `toml:"display"`
	Forge   ForgeConfig   `toml:"forge"`
	Watch   WatchConfig   `toml:"watch"`
}

type LogConfig struct {
	Limit int `toml:"limit,omitempty"`
}

type DisplayConfig struct {
	Theme string `toml:"theme,omitempty"` // auto, light or dark
	Color *bool  `toml:"color,omitempty"`
}

type ForgeConfig struct {
	Token     string `toml:"token,omitempty"`
	TokenFile string `toml:"token_file,omitempty"`
	Remote    string `toml:"remote,omitempty"`
	Limit     int    `toml:"limit,omitempty"`
}

type WatchConfig struct {
	DebounceMS int `toml:"debounce_ms,omitempty"`
}

// DefaultConfigPath returns ~/.config/bisect-go/config.toml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "bisect-go", "config.toml")
}

// Load reads path. A missing file is not an error and yields the zero Config,
// whose Resolved* accessors return the defaults.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("parsing config: unknown keys %v", undecoded)
	}

	if cfg.Forge.TokenFile != "" {
		cfg.Forge.TokenFile = expandHome(cfg.Forge.TokenFile)
		if !filepath.IsAbs(cfg.Forge.TokenFile) {
			cfg.Forge.TokenFile = filepath.Join(filepath.Dir(path), cfg.Forge.TokenFile)
		}
	}
	return cfg, nil
}

func expandHome(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

func (c Config) ResolvedLogLimit() int {
	if c.Log.Limit > 0 {
		return c.Log.Limit
	}
	return defaultLogLimit
}

func (c Config) ResolvedTheme() string {
	return pick(c.Display.Theme, "auto")
}

// ResolvedColor returns the configured color switch, true by default.
func (c Config) ResolvedColor() bool {
	if c.Display.Color != nil {
		return *c.Display.Color
	}
	return true
}

func (c Config) ResolvedRemote() string {
	return pick(c.Forge.Remote, defaultRemote)
}

func (c Config) ResolvedForgeLimit() int {
	if c.Forge.Limit > 0 {
		return c.Forge.Limit
	}
	return defaultForgeLimit
}

func (c Config) ResolvedDebounce() time.Duration {
	if c.Watch.DebounceMS > 0 {
		return time.Duration(c.Watch.DebounceMS) * time.Millisecond
	}
	return defaultDebounceMS * time.Millisecond
}

// ResolvedToken picks the GitHub token: $GITHUB_TOKEN, then the token key,
// then the contents of token_file. An empty token means anonymous access.
func (c Config) ResolvedToken() (string, error) {
	if tok := strings.TrimSpace(os.Getenv(tokenEnv)); tok != "" {
		return tok, nil
	}
	if c.Forge.Token != "" {
		return c.Forge.Token, nil
	}
	if c.Forge.TokenFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.Forge.TokenFile)
	if err != nil {
		return "", fmt.Errorf("reading token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
