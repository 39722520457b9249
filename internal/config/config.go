package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DiscordToken          string   `env:"DISCORD_TOKEN"`
	CommandPrefix         string   `env:"COMMAND_PREFIX" envDefault:"::"`
	InitSlashCommands     bool     `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	DiscordGuildBlacklist []string `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`

	StorageDriver    string `env:"STORAGE_DRIVER" envDefault:"json"`
	StoragePath      string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	DatabasePath     string `env:"DATABASE_PATH" envDefault:"grace.db"`
	CommandCachePath string `env:"COMMAND_CACHE_PATH" envDefault:"data/commands.json"`
	SeedPath         string `env:"SEED_PATH"`

	NameTrigger    string `env:"NAME_TRIGGER" envDefault:"Grace"`
	KeywordTrigger string `env:"KEYWORD_TRIGGER" envDefault:"Linus"`
	EmbedColorHex  string `env:"EMBED_COLOR" envDefault:"0x3498db"`

	GitHubToken string `env:"GITHUB_TOKEN"`
	HTTPAddr    string `env:"HTTP_ADDR"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
	LogFile   string `env:"LOG_FILE"`
}

var ErrMissingToken = errors.New("DISCORD_TOKEN is not set")

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to read .env file")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that env tags cannot express.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case "json", "sqlite":
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: want json or sqlite", c.StorageDriver)
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: want console or json", c.LogFormat)
	}

	if _, err := c.EmbedColor(); err != nil {
		return err
	}
	if strings.TrimSpace(c.CommandPrefix) == "" {
		return errors.New("COMMAND_PREFIX must not be empty")
	}
	if c.NameTrigger == "" || c.KeywordTrigger == "" {
		return errors.New("NAME_TRIGGER and KEYWORD_TRIGGER must not be empty")
	}
	return nil
}

// ValidateBot additionally requires the credentials the Discord bot needs.
func (c *Config) ValidateBot() error {
	if c.DiscordToken == "" {
		return ErrMissingToken
	}
	return nil
}

// EmbedColor parses EMBED_COLOR, accepting hex (0x3498db, #3498db) or decimal.
func (c *Config) EmbedColor() (int, error) {
	s := strings.TrimSpace(c.EmbedColorHex)
	if strings.HasPrefix(s, "#") {
		s = "0x" + s[1:]
	}
	v, err := strconv.ParseInt(s, 0, 32)
	if err != nil || v < 0 || v > 0xffffff {
		return 0, fmt.Errorf("invalid EMBED_COLOR %q", c.EmbedColorHex)
	}
	return int(v), nil
}
