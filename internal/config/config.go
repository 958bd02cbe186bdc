package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration decodes TOML duration strings like "5m" or "30s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Config holds application configuration.
type Config struct {
	Interval      Duration     `toml:"interval"`
	CheckDepth    int          `toml:"check_depth"`
	MaxHistory    int          `toml:"max_history"`
	FailThreshold int          `toml:"fail_threshold"`
	HistoryFile   string       `toml:"history_file"`
	HTTP          HTTPConfig   `toml:"http"`
	Search        SearchConfig `toml:"search"`
	Login         LoginConfig  `toml:"login"`
	Twilio        TwilioConfig `toml:"-"`
}

// HTTPConfig tunes the outbound HTTP client.
type HTTPConfig struct {
	Timeout   Duration `toml:"timeout"`
	UserAgent string   `toml:"user_agent"`
}

// SearchConfig describes the search request: the results endpoint and an
// opaque parameter map sent as the query string.
type SearchConfig struct {
	URL    string            `toml:"url"`
	Params map[string]string `toml:"params"`
}

// LoginConfig holds optional site credentials. When empty, no login request
// is made at startup.
type LoginConfig struct {
	Email    string `toml:"email"`
	Password string `toml:"password"`
}

// Enabled reports whether site login is configured.
func (l LoginConfig) Enabled() bool {
	return l.Email != "" && l.Password != ""
}

// TwilioConfig holds SMS delivery credentials, kept in a separate
// credentials file.
type TwilioConfig struct {
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	FromNumber string `toml:"from_number"`
	ToNumber   string `toml:"to_number"`
}

// credentialsFile is the top-level shape of the credentials TOML file.
type credentialsFile struct {
	Twilio TwilioConfig `toml:"twilio"`
}

// configDir returns the base config directory using XDG_CONFIG_HOME.
func configDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "rentwatch")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// DefaultCredentialsPath returns the default credentials file path.
func DefaultCredentialsPath() string {
	return filepath.Join(configDir(), "credentials.toml")
}

// DefaultHistoryPath returns the default history snapshot path using
// XDG_CACHE_HOME.
func DefaultHistoryPath() string {
	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home, _ := os.UserHomeDir()
		cacheDir = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheDir, "rentwatch", "history.json")
}

// Load parses flags and reads the config and credentials files.
func Load() (*Config, error) {
	configPath := flag.String("config", DefaultConfigPath(), "Config file path")
	credsPath := flag.String("credentials", DefaultCredentialsPath(), "Twilio credentials file path")
	flag.Parse()

	return Read(*configPath, *credsPath)
}

// Read loads configuration from the given files, applies defaults and env
// overrides, and validates the result. A missing credentials file is not an
// error as long as the environment provides the Twilio fields.
func Read(configPath, credsPath string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", configPath, err)
	}

	var creds credentialsFile
	if _, err := toml.DecodeFile(credsPath, &creds); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read credentials %s: %w", credsPath, err)
		}
	}
	cfg.Twilio = creds.Twilio

	applyDefaults(cfg)
	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Interval == 0 {
		cfg.Interval = Duration(5 * time.Minute)
	}
	if cfg.CheckDepth == 0 {
		cfg.CheckDepth = 10
	}
	if cfg.MaxHistory == 0 {
		cfg.MaxHistory = 75
	}
	if cfg.FailThreshold == 0 {
		cfg.FailThreshold = 3
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = DefaultHistoryPath()
	}
	if cfg.HTTP.Timeout == 0 {
		cfg.HTTP.Timeout = Duration(30 * time.Second)
	}
}

func applyEnv(cfg *Config) {
	if history := os.Getenv("RENTWATCH_HISTORY"); history != "" {
		cfg.HistoryFile = history
	}
	if sid := os.Getenv("TWILIO_ACCOUNT_SID"); sid != "" {
		cfg.Twilio.AccountSID = sid
	}
	if token := os.Getenv("TWILIO_AUTH_TOKEN"); token != "" {
		cfg.Twilio.AuthToken = token
	}
	if from := os.Getenv("TWILIO_FROM_NUMBER"); from != "" {
		cfg.Twilio.FromNumber = from
	}
	if to := os.Getenv("TWILIO_TO_NUMBER"); to != "" {
		cfg.Twilio.ToNumber = to
	}
}

func validate(cfg *Config) error {
	if cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", time.Duration(cfg.Interval))
	}
	if cfg.CheckDepth <= 0 {
		return fmt.Errorf("check_depth must be positive, got %d", cfg.CheckDepth)
	}
	if cfg.MaxHistory <= 0 {
		return fmt.Errorf("max_history must be positive, got %d", cfg.MaxHistory)
	}
	if cfg.FailThreshold <= 0 {
		return fmt.Errorf("fail_threshold must be positive, got %d", cfg.FailThreshold)
	}
	if cfg.Search.URL == "" {
		return errors.New("search.url is required")
	}
	tw := cfg.Twilio
	if tw.AccountSID == "" || tw.AuthToken == "" || tw.FromNumber == "" || tw.ToNumber == "" {
		return errors.New("incomplete twilio credentials: account_sid, auth_token, from_number and to_number are required")
	}
	return nil
}
