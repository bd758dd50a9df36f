// Package config loads the server's connection and logging settings.
//
// Values come from (highest precedence first) command-line flags bound
// by the caller, SHORTCUT_* environment variables, an optional .env file
// and finally the defaults below. The settings are read once at startup
// and never change for the life of the process.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/HendryAvila/shortcut-mcp/internal/shortcut"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when reading the environment.
const EnvPrefix = "SHORTCUT"

// Keys understood by Load. Env names are EnvPrefix + "_" + upper(key).
const (
	KeyAPIToken  = "api_token"
	KeyAPIURL    = "api_url"
	KeyUserAgent = "user_agent"
	KeyTimeout   = "timeout"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
)

// ErrMissingToken is returned when SHORTCUT_API_TOKEN is not set.
var ErrMissingToken = errors.New("SHORTCUT_API_TOKEN environment variable not set")

// Config is the validated process configuration.
type Config struct {
	APIToken  string        `mapstructure:"api_token" validate:"required"`
	APIURL    string        `mapstructure:"api_url" validate:"required,url"`
	UserAgent string        `mapstructure:"user_agent" validate:"required"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	LogLevel  string        `mapstructure:"log_level" validate:"oneof=trace debug info warn warning error"`
	LogFormat string        `mapstructure:"log_format" validate:"oneof=text json"`
}

// SetDefaults registers default values and env bindings on v.
// version is embedded in the default User-Agent.
func SetDefaults(v *viper.Viper, version string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAPIURL, shortcut.DefaultBaseURL)
	v.SetDefault(KeyUserAgent, shortcut.DefaultUserAgent+"/"+version)
	v.SetDefault(KeyTimeout, shortcut.DefaultTimeout)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	// Unmarshal only sees keys viper already knows about, so the token
	// (which has no default) must be bound explicitly.
	for _, key := range []string{KeyAPIToken, KeyAPIURL, KeyUserAgent, KeyTimeout, KeyLogLevel, KeyLogFormat} {
		if err := v.BindEnv(key); err != nil {
			return errors.Wrapf(err, "binding %s", key)
		}
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding ones already set. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.Wrapf(err, "checking %s", p)
		}
		if err := godotenv.Load(p); err != nil {
			return errors.Wrapf(err, "loading %s", p)
		}
	}
	return nil
}

// Load reads and validates the configuration from v. SetDefaults must
// have been called on v first.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}

	cfg.APIToken = strings.TrimSpace(cfg.APIToken)
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if cfg.APIToken == "" {
		return nil, ErrMissingToken
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Shortcut returns the API client settings.
func (c *Config) Shortcut() shortcut.Config {
	return shortcut.Config{
		BaseURL:   c.APIURL,
		Token:     c.APIToken,
		UserAgent: c.UserAgent,
		Timeout:   c.Timeout,
	}
}
