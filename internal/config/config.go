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

// Config captures the zplpress settings file.
type Config struct {
	Printer       string // fixed target printer; empty means choose at print time
	BatchSize     int    // labels per job in full mode; 0 or 1 sends one job per label
	TestMode      bool
	Strict        bool
	LPCommand     string
	LpstatCommand string
	LogLevel      string
	LogFile       string
}

const (
	defaultConfigPath    = "~/.config/zplpress/config.toml"
	defaultLogFile       = "~/.local/state/zplpress/zplpress.log"
	defaultLPCommand     = "lp"
	defaultLpstatCommand = "lpstat"
	defaultLogLevel      = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		TestMode:      true,
		LPCommand:     defaultLPCommand,
		LpstatCommand: defaultLpstatCommand,
		LogLevel:      defaultLogLevel,
		LogFile:       mustExpand(defaultLogFile),
	}
}

// Load locates and parses the zplpress config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Printer       string `toml:"printer"`
		BatchSize     int    `toml:"batch_size"`
		TestMode      *bool  `toml:"test_mode"`
		Strict        bool   `toml:"strict"`
		LPCommand     string `toml:"lp_command"`
		LpstatCommand string `toml:"lpstat_command"`
		LogLevel      string `toml:"log_level"`
		LogFile       string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if raw.BatchSize < 0 {
		return Config{}, fmt.Errorf("parse config: batch_size must not be negative, got %d", raw.BatchSize)
	}

	cfg.Printer = strings.TrimSpace(raw.Printer)
	cfg.BatchSize = raw.BatchSize
	if raw.TestMode != nil {
		cfg.TestMode = *raw.TestMode
	}
	cfg.Strict = raw.Strict
	cfg.LPCommand = orDefault(raw.LPCommand, defaultLPCommand)
	cfg.LpstatCommand = orDefault(raw.LpstatCommand, defaultLpstatCommand)
	cfg.LogLevel = orDefault(raw.LogLevel, defaultLogLevel)
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))

	return cfg, nil
}

// LogPath returns the log file path, using the default when unset.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return mustExpand(defaultLogFile)
	}
	return c.LogFile
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
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
