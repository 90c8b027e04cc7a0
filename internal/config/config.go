// Package config loads process configuration from defaults, an optional YAML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Environment keys.
const (
	EnvConfigFile        = "JMA_CONFIG_FILE"
	EnvAppEnv            = "APP_ENV"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFormat         = "LOG_FORMAT"
	EnvBaseURL           = "JMA_BASE_URL"
	EnvHTTPTimeout       = "JMA_HTTP_TIMEOUT"
	EnvMaxRetries        = "JMA_MAX_RETRIES"
	EnvStationsFile      = "JMA_STATIONS_FILE"
	EnvSeriesConcurrency = "JMA_SERIES_CONCURRENCY"
	EnvHTTPAddr          = "HTTP_ADDR"
	EnvOTelEnabled       = "OTEL_ENABLED"
	EnvOTelEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

// Log output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config is the full process configuration.
type Config struct {
	Env       string          `yaml:"env"`
	Log       LogConfig       `yaml:"log"`
	JMA       JMAConfig       `yaml:"jma"`
	HTTP      HTTPConfig      `yaml:"http"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type JMAConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`

	// StationsFile replaces the bundled station dataset when set.
	StationsFile string `yaml:"stations_file"`

	// SeriesConcurrency bounds parallel fetches for one time series.
	SeriesConcurrency int `yaml:"series_concurrency"`
}

type HTTPConfig struct {
	// Addr is the listen address used by "serve --http" when no address
	// is given on the command line.
	Addr string `yaml:"addr"`
}

type TelemetryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Env: "development",
		Log: LogConfig{
			Level:  "info",
			Format: FormatJSON,
		},
		JMA: JMAConfig{
			BaseURL:           "https://www.jma.go.jp/bosai",
			Timeout:           30 * time.Second,
			MaxRetries:        2,
			SeriesConcurrency: 6,
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: "localhost:4317",
		},
	}
}

// Loader reads configuration. The zero value reads nothing but defaults.
type Loader struct {
	// DotEnvPath names an optional .env file. Missing files are ignored.
	DotEnvPath string

	// LookupEnv reads process variables; they take precedence over .env.
	LookupEnv func(string) (string, bool)
}

// Load reads configuration from ".env", JMA_CONFIG_FILE and the process
// environment.
func Load() (Config, error) {
	return Loader{DotEnvPath: ".env", LookupEnv: os.LookupEnv}.Load()
}

// Load builds and validates the configuration.
func (l Loader) Load() (Config, error) {
	cfg := Default()

	env, err := l.environment()
	if err != nil {
		return Config{}, err
	}

	if path := env(EnvConfigFile); path != "" {
		if err := readYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg, env); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// environment returns a lookup over the process environment layered on the
// .env file.
func (l Loader) environment() (func(string) string, error) {
	dotenv := map[string]string{}
	if l.DotEnvPath != "" {
		values, err := godotenv.Read(l.DotEnvPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", l.DotEnvPath, err)
		default:
			dotenv = values
		}
	}

	return func(key string) string {
		if l.LookupEnv != nil {
			if v, ok := l.LookupEnv(key); ok {
				return v
			}
		}
		return dotenv[key]
	}, nil
}

func readYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, env func(string) string) error {
	setString(&cfg.Env, env(EnvAppEnv))
	setString(&cfg.Log.Level, env(EnvLogLevel))
	setString(&cfg.Log.Format, env(EnvLogFormat))
	setString(&cfg.JMA.BaseURL, env(EnvBaseURL))
	setString(&cfg.JMA.StationsFile, env(EnvStationsFile))
	setString(&cfg.HTTP.Addr, env(EnvHTTPAddr))
	setString(&cfg.Telemetry.OTLPEndpoint, env(EnvOTelEndpoint))

	if v := env(EnvHTTPTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHTTPTimeout, err)
		}
		cfg.JMA.Timeout = d
	}
	if err := setInt(&cfg.JMA.MaxRetries, EnvMaxRetries, env(EnvMaxRetries)); err != nil {
		return err
	}
	if err := setInt(&cfg.JMA.SeriesConcurrency, EnvSeriesConcurrency, env(EnvSeriesConcurrency)); err != nil {
		return err
	}
	if v := env(EnvOTelEnabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvOTelEnabled, err)
		}
		cfg.Telemetry.Enabled = b
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, key, v string) error {
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level %q: %w", c.Log.Level, err)
	}
	if c.Log.Format != FormatJSON && c.Log.Format != FormatConsole {
		return fmt.Errorf("log format %q: must be %s or %s", c.Log.Format, FormatJSON, FormatConsole)
	}

	u, err := url.Parse(c.JMA.BaseURL)
	if err != nil {
		return fmt.Errorf("jma base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("jma base url %q: must be an absolute http(s) URL", c.JMA.BaseURL)
	}

	if c.JMA.Timeout <= 0 {
		return fmt.Errorf("jma timeout %s: must be positive", c.JMA.Timeout)
	}
	if c.JMA.MaxRetries < 0 {
		return fmt.Errorf("jma max retries %d: must not be negative", c.JMA.MaxRetries)
	}
	if c.JMA.SeriesConcurrency < 1 {
		return fmt.Errorf("series concurrency %d: must be at least 1", c.JMA.SeriesConcurrency)
	}
	return nil
}
