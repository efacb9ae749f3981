// Package config loads the errcatalog command configuration from environment
// variables prefixed with ERRCATALOG_, optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/errcatalog/internal/logger"
	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"
)

// Prefix is prepended to every variable name.
const Prefix = "ERRCATALOG_"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")
	// ErrLoadingEnvFile is returned when an explicitly requested .env file cannot be read
	ErrLoadingEnvFile = errors.New("failed to load env file")
	// ErrInvalidConfig is returned when parsed values are inconsistent
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the complete command configuration.
type Config struct {
	// DefaultLocale is the locale every other locale falls back to.
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`
	// Dir is a directory of resource files. Empty means the embedded resources,
	// unless an S3 bucket is configured.
	Dir  string     `env:"DIR"`
	S3   S3Config   `envPrefix:"S3_"`
	HTTP HTTPConfig `envPrefix:"HTTP_"`
	Log  LogConfig  `envPrefix:"LOG_"`
}

// S3Config locates resources in an S3 bucket.
type S3Config struct {
	Bucket          string `env:"BUCKET"`
	Region          string `env:"REGION" envDefault:"us-east-1"`
	Prefix          string `env:"PREFIX"`
	Endpoint        string `env:"ENDPOINT"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	ForcePathStyle  bool   `env:"FORCE_PATH_STYLE" envDefault:"false"`
}

// Enabled reports whether resources should be loaded from S3.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// LogConfig configures the command logger.
type LogConfig struct {
	Format string `env:"FORMAT" envDefault:"text"`
	Level  string `env:"LEVEL" envDefault:"info"`
	// Quality enables logging of degraded resolutions.
	Quality bool `env:"QUALITY" envDefault:"false"`
}

// Load reads the given .env files, or ./.env when none is given, and parses
// the environment. Variables already set in the environment win over .env
// values. A missing ./.env is not an error; a missing explicit file is.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Join(ErrLoadingEnvFile, err)
		}
	}

	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: Prefix})
	if err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the parser cannot check on its own.
func (c Config) Validate() error {
	var errs []error
	if _, ok := errcatalog.CanonicalLocale(c.DefaultLocale); !ok {
		errs = append(errs, fmt.Errorf("malformed default locale %q", c.DefaultLocale))
	}
	if c.Dir != "" && c.S3.Enabled() {
		errs = append(errs, fmt.Errorf("%sDIR and %sS3_BUCKET are mutually exclusive", Prefix, Prefix))
	}
	if _, err := logger.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// LogLevel returns the parsed log level. Validate guarantees it parses.
func (c LogConfig) LogLevel() slog.Level {
	l, _ := logger.ParseLevel(c.Level)
	return l
}

// LogFormat returns the parsed log format. Validate guarantees it parses.
func (c LogConfig) LogFormat() logger.Format {
	f, err := logger.ParseFormat(c.Format)
	if err != nil {
		return logger.FormatText
	}
	return f
}
