// In file: cmd/weather/config.go
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dileep-u-k/weather-alerts/internal/nws"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// AppConfig holds all configuration for the server, loaded from an optional
// config.yaml and then overridden by environment variables.
type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	NWS    NWSConfig    `yaml:"nws"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	// Transport is "stdio" (default) or "http".
	Transport string `yaml:"transport"`
	Port      string `yaml:"port"`
	// PublicURL is the origin MCP SSE clients use to reach the message endpoint.
	PublicURL string `yaml:"public_url"`
}

type NWSConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{Transport: TransportStdio, Port: "8080"},
		NWS:    NWSConfig{BaseURL: nws.DefaultBaseURL, Timeout: nws.DefaultTimeout},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig loads configuration from a .env file, config.yaml, and the
// environment, in increasing order of precedence.
func LoadConfig(path string) (*AppConfig, error) {
	// In release mode configuration comes straight from the environment.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.WithError(err).Warn("could not read .env file")
		}
	}

	cfg := defaultConfig()

	if path == "" {
		path = envOr("WEATHER_CONFIG", "config.yaml")
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// config.yaml is optional.
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *AppConfig) applyEnv() error {
	cfg.Server.Transport = envOr("WEATHER_TRANSPORT", cfg.Server.Transport)
	cfg.Server.Port = envOr("PORT", cfg.Server.Port)
	cfg.Server.PublicURL = envOr("PUBLIC_URL", cfg.Server.PublicURL)
	cfg.NWS.BaseURL = envOr("NWS_API_BASE", cfg.NWS.BaseURL)
	cfg.Log.Level = envOr("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envOr("LOG_FORMAT", cfg.Log.Format)

	if v := os.Getenv("NWS_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("NWS_TIMEOUT_SECONDS: %w", err)
		}
		cfg.NWS.Timeout = time.Duration(secs * float64(time.Second))
	}
	return nil
}

func (cfg *AppConfig) validate() error {
	cfg.Server.Transport = strings.ToLower(strings.TrimSpace(cfg.Server.Transport))
	switch cfg.Server.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("unknown transport %q (want %s or %s)", cfg.Server.Transport, TransportStdio, TransportHTTP)
	}
	if cfg.NWS.BaseURL == "" {
		return errors.New("nws base url is empty")
	}
	if cfg.NWS.Timeout <= 0 {
		return fmt.Errorf("nws timeout must be positive, got %s", cfg.NWS.Timeout)
	}
	if cfg.Server.PublicURL == "" {
		cfg.Server.PublicURL = "http://localhost:" + cfg.Server.Port
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
