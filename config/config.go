// Package config loads the navroute server configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// variables from a .env file, then NAVROUTE_* environment variables. A
// variable already set in the environment wins over the same one in the
// .env file.
//
//	server:
//	  addr: ":8080"
//	  assets_dir: ./web
//	router:
//	  strict_slash: false
//	  max_redirects: 10
//	log:
//	  level: info
//	  format: json
//
// The equivalent environment override for server.addr is NAVROUTE_SERVER_ADDR.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/navroute/router"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "NAVROUTE_"

// Config is the complete server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" envPrefix:"SERVER_"`
	Router  RouterConfig  `yaml:"router" envPrefix:"ROUTER_"`
	Log     LogConfig     `yaml:"log" envPrefix:"LOG_"`
	Metrics MetricsConfig `yaml:"metrics" envPrefix:"METRICS_"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`
	// AssetsDir holds index.html and the application files. When empty
	// the built-in shell is served.
	AssetsDir         string        `yaml:"assets_dir" env:"ASSETS_DIR"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"READ_HEADER_TIMEOUT"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	RedirectCode      int           `yaml:"redirect_code" env:"REDIRECT_CODE"`
	HSTSMaxAge        int           `yaml:"hsts_max_age" env:"HSTS_MAX_AGE"`
	ContentSecurity   string        `yaml:"content_security_policy" env:"CONTENT_SECURITY_POLICY"`
	TrustRequestID    bool          `yaml:"trust_request_id" env:"TRUST_REQUEST_ID"`
}

// RouterConfig configures the route table.
type RouterConfig struct {
	StrictSlash  bool `yaml:"strict_slash" env:"STRICT_SLASH"`
	MaxRedirects int  `yaml:"max_redirects" env:"MAX_REDIRECTS"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Path    string `yaml:"path" env:"PATH"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RedirectCode:      302,
		},
		Router: RouterConfig{
			MaxRedirects: router.DefaultMaxRedirects,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load builds the configuration from the defaults, the YAML file at path,
// the dotenv file at envFile and the environment. Empty paths are skipped,
// and so is a dotenv file that does not exist.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		defer f.Close()

		if err := decodeYAML(f, cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("config: %s: %w", envFile, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decodeYAML rejects unknown keys so that typos do not pass silently.
func decodeYAML(r io.Reader, cfg *Config) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("config: server.addr must not be empty"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("config: server.shutdown_timeout must be positive"))
	}
	if c.Server.ReadHeaderTimeout < 0 {
		errs = append(errs, errors.New("config: server.read_header_timeout must not be negative"))
	}
	if c.Server.RedirectCode < 300 || c.Server.RedirectCode > 399 {
		errs = append(errs, fmt.Errorf("config: server.redirect_code %d is not a redirection status", c.Server.RedirectCode))
	}
	if c.Server.HSTSMaxAge < 0 {
		errs = append(errs, errors.New("config: server.hsts_max_age must not be negative"))
	}

	if c.Router.MaxRedirects < 0 {
		errs = append(errs, errors.New("config: router.max_redirects must not be negative"))
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("config: log.level: %w", err))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("config: log.format %q must be json or console", c.Log.Format))
	}

	if c.Metrics.Enabled {
		switch p := c.Metrics.Path; {
		case !strings.HasPrefix(p, "/"):
			errs = append(errs, fmt.Errorf("config: metrics.path %q must start with a slash", p))
		case p == "/" || strings.HasPrefix(p, "/api/"):
			// "/" and "/api/" are taken by the shell and the route API.
			errs = append(errs, fmt.Errorf("config: metrics.path %q overlaps the shell or the route API", p))
		case strings.ContainsAny(p, " {}"):
			errs = append(errs, fmt.Errorf("config: metrics.path %q must be a plain path", p))
		}
	}

	return errors.Join(errs...)
}

// RouterOptions converts the router section into table options.
func (c *Config) RouterOptions() []router.Option {
	opts := []router.Option{router.WithMaxRedirects(c.Router.MaxRedirects)}
	if c.Router.StrictSlash {
		opts = append(opts, router.WithStrictSlash())
	}
	return opts
}
