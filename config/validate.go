package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required: set %s or telegram.token", EnvTelegramToken)
	}
	if c.Health.Port < 1 || c.Health.Port > 65535 {
		return fmt.Errorf("health.port must be between 1 and 65535, got %d", c.Health.Port)
	}
	if c.Download.MaxBytes <= 0 {
		return errors.New("download.max_bytes must be positive")
	}
	if c.Download.StaleAfterMinutes < 0 || c.Download.SweepIntervalMinutes < 0 || c.Download.TimeoutSeconds < 0 {
		return errors.New("download durations must not be negative")
	}
	if !slices.Contains(SupportedLanguages, c.Bot.Language) {
		return fmt.Errorf("bot.language %q is not supported (use one of %v)", c.Bot.Language, SupportedLanguages)
	}
	if c.Bot.Workers < 1 {
		return errors.New("bot.workers must be at least 1")
	}
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported", c.Logging.Format)
	}
	return nil
}
