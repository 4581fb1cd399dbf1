package config

// Environment variables read by Load.
const (
	EnvConfigPath    = "AUDIOBOT_CONFIG"
	EnvTelegramToken = "TELEGRAM_BOT_TOKEN"
	EnvDiscordToken  = "DISCORD_BOT_TOKEN"
	EnvPort          = "PORT"
	EnvLanguage      = "BOT_LANGUAGE"
	EnvLogLevel      = "LOG_LEVEL"
	EnvLogFormat     = "LOG_FORMAT"
	EnvLogDir        = "LOG_DIR"
)

const (
	// DefaultConfigFile is looked up in the working directory.
	DefaultConfigFile = "audiobot.toml"
	// LogFileName is the operational log inside Logging.Dir.
	LogFileName = "bot.log"

	defaultPort     = 8080
	defaultMaxBytes = 50 * 1024 * 1024
)

// SupportedLanguages lists the message catalogs the bot ships.
var SupportedLanguages = []string{"en", "km"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Telegram: Telegram{
			DropPendingUpdates: true,
		},
		Health: Health{
			Host: "0.0.0.0",
			Port: defaultPort,
		},
		Download: Download{
			Binary:               "",
			Format:               "bestaudio/best",
			AudioFormat:          "mp3",
			AudioQuality:         "192K",
			MaxBytes:             defaultMaxBytes,
			StaleAfterMinutes:    60,
			SweepIntervalMinutes: 30,
		},
		Bot: Bot{
			Language: "en",
			Workers:  1,
		},
		Logging: Logging{
			Level:  "info",
			Format: "auto",
			Dir:    ".",
		},
	}
}
