package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Telegram TelegramConfig
	Catalog  CatalogConfig
	Matching MatchingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TelegramConfig holds the chat transport credential.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	Debug    bool   `mapstructure:"debug"`
}

// CatalogConfig holds the catalog source settings.
type CatalogConfig struct {
	SheetURL     string        `mapstructure:"sheet_url"`
	TTL          time.Duration `mapstructure:"ttl"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// MatchingConfig holds product-resolution tuning.
type MatchingConfig struct {
	FuzzyThreshold int `mapstructure:"fuzzy_threshold"`
	FuzzyLimit     int `mapstructure:"fuzzy_limit"`
	AmbiguityGap   int `mapstructure:"ambiguity_gap"`
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/florabot/")

	v.SetEnvPrefix("FLORABOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults carry the rest.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Required values default to empty so the keys are visible to
	// AutomaticEnv; validate() enforces their presence.
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.debug", false)

	v.SetDefault("catalog.sheet_url", "")
	v.SetDefault("catalog.ttl", "60s")
	v.SetDefault("catalog.fetch_timeout", "20s")

	v.SetDefault("matching.fuzzy_threshold", 75)
	v.SetDefault("matching.fuzzy_limit", 5)
	v.SetDefault("matching.ambiguity_gap", 5)
}

// validate checks the startup-fatal requirements: both the bot
// credential and the catalog URL must be present.
func validate(config *Config) error {
	if config.Telegram.BotToken == "" {
		return fmt.Errorf("Telegram bot token is required (set FLORABOT_TELEGRAM_BOT_TOKEN)")
	}

	if config.Catalog.SheetURL == "" {
		return fmt.Errorf("catalog sheet URL is required (set FLORABOT_CATALOG_SHEET_URL)")
	}

	return nil
}
