package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) applyEnv() error {
	setFromEnv(&c.Telegram.Token, EnvTelegramToken)
	setFromEnv(&c.Discord.Token, EnvDiscordToken)
	setFromEnv(&c.Bot.Language, EnvLanguage)
	setFromEnv(&c.Logging.Level, EnvLogLevel)
	setFromEnv(&c.Logging.Format, EnvLogFormat)
	setFromEnv(&c.Logging.Dir, EnvLogDir)

	if value, ok := os.LookupEnv(EnvPort); ok && strings.TrimSpace(value) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", EnvPort, value)
		}
		c.Health.Port = port
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		*dst = value
	}
}

func (c *Config) normalize() error {
	c.Telegram.Token = strings.TrimSpace(c.Telegram.Token)
	c.Discord.Token = strings.TrimSpace(c.Discord.Token)
	c.Health.Host = strings.TrimSpace(c.Health.Host)

	c.Bot.Language = strings.ToLower(strings.TrimSpace(c.Bot.Language))
	if c.Bot.Language == "" {
		c.Bot.Language = "en"
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "auto"
	}

	var err error
	if c.Logging.Dir, err = ExpandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	if c.Download.ScratchDir, err = ExpandPath(strings.TrimSpace(c.Download.ScratchDir)); err != nil {
		return fmt.Errorf("download.scratch_dir: %w", err)
	}
	if c.Download.Binary != "" {
		if c.Download.Binary, err = ExpandPath(strings.TrimSpace(c.Download.Binary)); err != nil {
			return fmt.Errorf("download.binary: %w", err)
		}
	}
	return nil
}
