package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEndpoint is set at build time:
//
//	go build -ldflags "-X github.com/DoyleJ11/ladders-display/internal/config.DefaultEndpoint=ws://host:8765"
var DefaultEndpoint = "ws://192.168.100.64:8765"

var (
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidEndpoint = errors.New("endpoint must be a ws:// or wss:// URL")
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Endpoint       string
	ReconnectDelay time.Duration
	StepInterval   time.Duration
	HTTPAddr       string // empty disables the local display API
	Locale         string
	LogLevel       string
	DevLog         bool
	TUI            bool
}

func Default() Config {
	return Config{
		Endpoint:       DefaultEndpoint,
		ReconnectDelay: 2 * time.Second,
		StepInterval:   200 * time.Millisecond,
		HTTPAddr:       "127.0.0.1:8080",
		Locale:         "es",
		LogLevel:       "info",
	}
}

func Load() (Config, error) {
	cfg := Default()
	if raw := os.Getenv("LADDERS_ENDPOINT"); raw != "" {
		cfg.Endpoint = raw
	}
	if err := checkEndpoint(cfg.Endpoint); err != nil {
		return Config{}, err
	}
	if raw := os.Getenv("LADDERS_RECONNECT_DELAY"); raw != "" {
		d, err := parseDuration("LADDERS_RECONNECT_DELAY", raw)
		if err != nil {
			return Config{}, err
		}
		cfg.ReconnectDelay = d
	}
	if raw := os.Getenv("LADDERS_STEP_INTERVAL"); raw != "" {
		d, err := parseDuration("LADDERS_STEP_INTERVAL", raw)
		if err != nil {
			return Config{}, err
		}
		cfg.StepInterval = d
	}
	if raw, ok := os.LookupEnv("LADDERS_HTTP_ADDR"); ok {
		cfg.HTTPAddr = raw
	}
	if raw := os.Getenv("LADDERS_LOCALE"); raw != "" {
		cfg.Locale = raw
	}
	if raw := os.Getenv("LADDERS_LOG_LEVEL"); raw != "" {
		cfg.LogLevel = raw
	}
	if raw := os.Getenv("LADDERS_DEV_LOG"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.DevLog = v
		}
	}
	if raw := os.Getenv("LADDERS_TUI"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.TUI = v
		}
	}
	return cfg, nil
}

func parseDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s=%q: %w", key, raw, ErrInvalidDuration)
	}
	return d, nil
}

func checkEndpoint(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "ws" && u.Scheme != "wss") {
		return fmt.Errorf("%q: %w", raw, ErrInvalidEndpoint)
	}
	return nil
}
