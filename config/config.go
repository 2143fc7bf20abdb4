package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const envPrefix = "REQSINK_"

var (
	ErrMissingRoutesFile = errors.New("an extra routes file is required when user templates are provided")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// Config holds everything the sink reads at startup
type Config struct {
	IPAddress        string
	Port             int
	RequestLimit     int
	SQLitePath       string // empty discards evicted requests
	UserTemplatesDir string
	ExtraRoutes      string
	MaxBodyBytes     int64
	ArchiveQueue     int
	LogLevel         string
	LogFormat        string
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		IPAddress:    "0.0.0.0",
		Port:         8000,
		RequestLimit: 1000,
		MaxBodyBytes: 10 << 20,
		ArchiveQueue: 16,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load reads an optional .env file and REQSINK_* environment variables on top
// of the defaults
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load the env vars: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv applies REQSINK_* variables from lookup to the defaults
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int64) error {
		v, ok := lookup(envPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a number", ErrInvalidConfig, envPrefix, key, v)
		}
		*dst = n
		return nil
	}

	str("IP_ADDRESS", &cfg.IPAddress)
	str("SQLITE", &cfg.SQLitePath)
	str("USER_TEMPLATES_DIR", &cfg.UserTemplatesDir)
	str("EXTRA_ROUTES", &cfg.ExtraRoutes)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)

	port, limit, queue := int64(cfg.Port), int64(cfg.RequestLimit), int64(cfg.ArchiveQueue)
	for key, dst := range map[string]*int64{
		"PORT":           &port,
		"REQ_LIMIT":      &limit,
		"ARCHIVE_QUEUE":  &queue,
		"MAX_BODY_BYTES": &cfg.MaxBodyBytes,
	} {
		if err := num(key, dst); err != nil {
			return Config{}, err
		}
	}
	cfg.Port, cfg.RequestLimit, cfg.ArchiveQueue = int(port), int(limit), int(queue)

	return cfg, nil
}

// Validate checks the configuration before anything is started
func (c Config) Validate() error {
	var problems []string

	if c.RequestLimit < 1 {
		problems = append(problems, "request limit must be at least 1")
	}
	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, "port must be between 1 and 65535")
	}
	if net.ParseIP(c.IPAddress) == nil {
		problems = append(problems, fmt.Sprintf("ip address %q is not valid", c.IPAddress))
	}
	if c.MaxBodyBytes < 0 {
		problems = append(problems, "max body bytes must not be negative")
	}
	if c.ArchiveQueue < 1 {
		problems = append(problems, "archive queue must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, ", "))
	}

	if c.UserTemplatesDir != "" && c.ExtraRoutes == "" {
		return ErrMissingRoutesFile
	}

	return nil
}

// Addr returns the listen address
func (c Config) Addr() string {
	return net.JoinHostPort(c.IPAddress, strconv.Itoa(c.Port))
}

// PersistenceEnabled reports whether evicted requests are archived
func (c Config) PersistenceEnabled() bool {
	return c.SQLitePath != ""
}
