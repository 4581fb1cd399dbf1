package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Telegram holds the Telegram transport settings.
type Telegram struct {
	Token              string `toml:"token"`
	DropPendingUpdates bool   `toml:"drop_pending_updates"`
}

// Discord holds the optional Discord transport settings. The transport runs
// only when Token is set.
type Discord struct {
	Token string `toml:"token"`
}

// Health holds the liveness endpoint settings.
type Health struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Download holds extraction and file handling settings.
type Download struct {
	Binary               string `toml:"binary"`
	Format               string `toml:"format"`
	AudioFormat          string `toml:"audio_format"`
	AudioQuality         string `toml:"audio_quality"`
	MaxBytes             int64  `toml:"max_bytes"`
	ScratchDir           string `toml:"scratch_dir"`
	StaleAfterMinutes    int    `toml:"stale_after_minutes"`
	SweepIntervalMinutes int    `toml:"sweep_interval_minutes"`
	TimeoutSeconds       int    `toml:"timeout_seconds"`
}

// Bot holds chat behaviour settings.
type Bot struct {
	Language string `toml:"language"`
	Workers  int    `toml:"workers"`
}

// Logging holds log output settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Dir    string `toml:"dir"`
}

// Config is the complete bot configuration.
type Config struct {
	Telegram Telegram `toml:"telegram"`
	Discord  Discord  `toml:"discord"`
	Health   Health   `toml:"health"`
	Download Download `toml:"download"`
	Bot      Bot      `toml:"bot"`
	Logging  Logging  `toml:"logging"`
}

// Load reads defaults, the optional config file and the environment, in
// that order. path may be empty. It returns the resolved file path and
// whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolved, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path == "" {
		path = DefaultConfigFile
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

func (c *Config) HealthAddr() string {
	return fmt.Sprintf("%s:%d", c.Health.Host, c.Health.Port)
}

// LogFile is the append-only operational log, or "" when file logging is off.
func (c *Config) LogFile() string {
	if c.Logging.Dir == "" {
		return ""
	}
	return filepath.Join(c.Logging.Dir, LogFileName)
}

// DownloadTimeout bounds one fetch; zero means unbounded.
func (c *Config) DownloadTimeout() time.Duration {
	return time.Duration(c.Download.TimeoutSeconds) * time.Second
}

// StaleAfter is the age after which an orphaned scratch dir is swept.
func (c *Config) StaleAfter() time.Duration {
	return time.Duration(c.Download.StaleAfterMinutes) * time.Minute
}

// SweepInterval is the period of the stale scratch sweeper.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Download.SweepIntervalMinutes) * time.Minute
}

// LockFile guards against two local processes polling the same token.
func (c *Config) LockFile() string {
	root := c.Download.ScratchDir
	if root == "" {
		root = os.TempDir()
	}
	return filepath.Join(root, "audiobot.lock")
}

func (c *Config) DiscordEnabled() bool {
	return strings.TrimSpace(c.Discord.Token) != ""
}

// ExpandPath resolves a leading tilde and makes the path absolute.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// CreateSample writes the commented sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
