// Package config builds the single startup-time configuration value.
//
// Defaults are overlaid by an optional TOML file and then by environment
// variables (TELEGRAM_BOT_TOKEN, PORT, DISCORD_BOT_TOKEN, BOT_LANGUAGE,
// LOG_LEVEL, LOG_FORMAT, LOG_DIR). The resulting Config is passed explicitly
// to every component that needs a setting; nothing reads the environment
// after Load returns.
package config
