// Package config loads settings for the ltsv command: defaults, then an
// optional TOML file, then LTSV_* environment variables. Flags are applied by
// the caller on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	EnvLogger      = "LTSV_LOGGER"
	EnvLogLevel    = "LTSV_LOG_LEVEL"
	EnvSkipInvalid = "LTSV_SKIP_INVALID"
	EnvMaxLine     = "LTSV_MAX_LINE"

	defaultFrom    = "ltsv"
	defaultTo      = "json"
	defaultLogger  = "zap"
	defaultLevel   = "info"
	defaultMaxLine = 1 << 20
)

var (
	ErrUnknownLogger = errors.New("config: unknown logger")
	ErrUnknownLevel  = errors.New("config: unknown log level")
	ErrSameFormat    = errors.New("config: from and to must differ")
)

// Loggers lists the accepted logger backends.
var Loggers = []string{"zap", "logrus", "zerolog", "slog"}

type Config struct {
	From        string `toml:"from"`
	To          string `toml:"to"`
	Logger      string `toml:"logger"`
	Level       string `toml:"level"`
	SkipInvalid bool   `toml:"skip_invalid"`
	// MaxLine bounds the size of one input record in bytes. 0 selects the
	// default, a negative value disables the limit.
	MaxLine int `toml:"max_line"`
}

// Load reads path (if non-empty), fills defaults and applies environment
// overrides. It does not validate; call Validate after applying flags.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if err := loadToml(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	cfg.applyDefaults()
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	md, err := toml.Decode(string(data), out)
	if err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}
	return nil
}

func (c *Config) applyDefaults() {
	c.From = coalesce(c.From, defaultFrom)
	c.To = coalesce(c.To, defaultTo)
	c.Logger = coalesce(c.Logger, defaultLogger)
	c.Level = coalesce(c.Level, defaultLevel)
	c.MaxLine = coalesce(c.MaxLine, defaultMaxLine)
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvLogger)); v != "" {
		c.Logger = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvSkipInvalid)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvSkipInvalid, err)
		}
		c.SkipInvalid = b
	}
	if v := strings.TrimSpace(getenv(EnvMaxLine)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvMaxLine, err)
		}
		c.MaxLine = n
	}
	return nil
}

// Validate checks the logger, the level and that the formats differ. Formats are checked by
// transcode.CodecFor.
func (c Config) Validate() error {
	if !contains(Loggers, c.Logger) {
		return fmt.Errorf("%w: %q", ErrUnknownLogger, c.Logger)
	}
	if _, ok := ParseLevel(c.Level); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLevel, c.Level)
	}
	if c.From == c.To {
		return fmt.Errorf("%w: %q", ErrSameFormat, c.From)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
