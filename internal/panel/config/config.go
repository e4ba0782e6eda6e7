// Package config loads the panel configuration from an optional .env file,
// the environment and command line flags, in that order of precedence (flags win).
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultEnvFile is loaded when present.
const DefaultEnvFile = "panel.env"

// Config holds the application configuration parameters.
// Each field corresponds to an expected environment variable.
type Config struct {
	EnvLogsLevel        string        `env:"LOG_LEVEL" envDefault:"info"`                        // Log level (e.g., debug, info)
	EnvLogFileName      string        `env:"LOG_FILE_NAME" envDefault:"panel.log"`               // Rotated log file, empty for stdout only
	PanelAddr           string        `env:"PANEL_ADDR" envDefault:":8080"`                      // Address the panel page listens on
	ControlAPIURL       string        `env:"CONTROL_API_URL" envDefault:"http://localhost:5000"` // Base URL of the bot control API
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`                   // Timeout of one control API call
	PollInterval        time.Duration `env:"POLL_INTERVAL" envDefault:"3s"`                      // Status polling period
	MessageTTL          time.Duration `env:"MESSAGE_TTL" envDefault:"5s"`                        // Banner visibility window
	PageRefresh         time.Duration `env:"PAGE_REFRESH" envDefault:"1s"`                       // How often the page reloads its state
	DefaultLanguage     string        `env:"DEFAULT_LANGUAGE" envDefault:"en"`                   // Language recorded before any change
	VerifyToken         bool          `env:"VERIFY_TOKEN" envDefault:"false"`                    // Check the bot token with Telegram getMe before start
	TelegramAPIEndpoint string        `env:"TELEGRAM_API_ENDPOINT"`                              // Bot API endpoint format, empty for api.telegram.org
}

// NewConfig initializes a new Config instance.
// Arguments:
//   - envFile: .env file to load; a missing file is not an error.
//   - args: command line arguments without the program name.
//
// Returns a pointer to the Config struct and an error if any value is invalid.
func NewConfig(envFile string, args []string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fsFlags := flag.NewFlagSet("panel", flag.ContinueOnError)
	fsFlags.StringVar(&cfg.EnvLogsLevel, "l", cfg.EnvLogsLevel, "Set logging level")
	fsFlags.StringVar(&cfg.PanelAddr, "a", cfg.PanelAddr, "Panel listen address")
	fsFlags.StringVar(&cfg.ControlAPIURL, "api", cfg.ControlAPIURL, "Control API base URL")
	if err := fsFlags.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		logrus.WithError(err).Error("Invalid configuration")
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.ControlAPIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CONTROL_API_URL must be an absolute URL: %q", c.ControlAPIURL)
	}
	if c.PollInterval <= 0 || c.MessageTTL <= 0 || c.RequestTimeout <= 0 || c.PageRefresh <= 0 {
		return errors.New("POLL_INTERVAL, MESSAGE_TTL, REQUEST_TIMEOUT and PAGE_REFRESH must be positive")
	}
	if c.DefaultLanguage == "" {
		return errors.New("DEFAULT_LANGUAGE must not be empty")
	}
	return nil
}
