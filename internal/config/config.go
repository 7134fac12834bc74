package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Placeholder credentials that mean "not configured yet".
const (
	SentinelBotToken = "YOUR_BOT_TOKEN_HERE"
	SentinelChatID   = "YOUR_CHAT_ID_HERE"
)

// DefaultEnvFile is read when present and CONFIG_FILE is not set.
const DefaultEnvFile = ".env"

// Config holds all configuration for the application. It is loaded once at
// startup and treated as read-only afterwards.
type Config struct {
	TelegramBotToken string        `env:"TELEGRAM_BOT_TOKEN" env-default:"YOUR_BOT_TOKEN_HERE" env-description:"Telegram bot token from @BotFather"`
	TelegramChatID   string        `env:"TELEGRAM_CHAT_ID" env-default:"YOUR_CHAT_ID_HERE" env-description:"Chat that receives notifications"`
	TelegramAPIURL   string        `env:"TELEGRAM_API_URL" env-default:"https://api.telegram.org" env-description:"Bot API base URL"`
	TelegramTimeout  time.Duration `env:"TELEGRAM_TIMEOUT" env-default:"10s" env-description:"Timeout for one sendMessage call"`
	Port             string        `env:"PORT" env-default:"4567"`
	BindAddr         string        `env:"BIND_ADDR" env-default:"0.0.0.0"`
	AppName          string        `env:"APP_NAME" env-default:"ProofBox" env-description:"Product name shown in notifications"`
	MaxBodyBytes     int64         `env:"MAX_BODY_BYTES" env-default:"1048576"`
	LogLevel         string        `env:"LOG_LEVEL" env-default:"info"`
	LogFormat        string        `env:"LOG_FORMAT" env-default:"json"`
}

// Load reads configuration from environment variables. When CONFIG_FILE
// names a file, or a .env file exists in the working directory, that file is
// read as well. CONFIG_FILE pointing at a missing file is an error.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_FILE")
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, &cfg)
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, statErr)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.TelegramTimeout <= 0 {
		return fmt.Errorf("TELEGRAM_TIMEOUT must be positive, got %s", c.TelegramTimeout)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

// Configured reports whether real Telegram credentials were supplied. When it
// returns false the notifier refuses to send.
func (c *Config) Configured() bool {
	token := strings.TrimSpace(c.TelegramBotToken)
	chat := strings.TrimSpace(c.TelegramChatID)
	return token != "" && token != SentinelBotToken &&
		chat != "" && chat != SentinelChatID
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.BindAddr, c.Port)
}

// Level maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
