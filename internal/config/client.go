package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"
)

// Client настройки интерактивного клиента
type Client struct {
	ServerURL      string
	DBPath         string
	Token          string
	LogLevel       string
	GraphDir       string
	BaseInterval   time.Duration
	FastInterval   time.Duration
	MaxInterval    time.Duration
	RequestTimeout time.Duration
	ShowVersion    bool
}

// DefaultClient значения по умолчанию
func DefaultClient() Client {
	return Client{
		ServerURL:      "http://localhost:8080",
		DBPath:         "docsync-client.db",
		LogLevel:       "warn",
		BaseInterval:   3 * time.Second,
		FastInterval:   500 * time.Millisecond,
		MaxInterval:    60 * time.Second,
		RequestTimeout: 30 * time.Second,
	}
}

// ParseClient собирает настройки клиента.
// getenv обычно os.Getenv; output получает usage при ошибке флагов.
func ParseClient(args []string, getenv func(string) string, output io.Writer) (*Client, error) {
	cfg := DefaultClient()

	env := &envReader{getenv: getenv}
	env.string("SERVER", &cfg.ServerURL)
	env.string("DB", &cfg.DBPath)
	env.string("TOKEN", &cfg.Token)
	env.string("LOG_LEVEL", &cfg.LogLevel)
	env.string("GRAPH_DIR", &cfg.GraphDir)
	env.duration("POLL_INTERVAL", &cfg.BaseInterval)
	env.duration("FAST_INTERVAL", &cfg.FastInterval)
	env.duration("MAX_INTERVAL", &cfg.MaxInterval)
	env.duration("REQUEST_TIMEOUT", &cfg.RequestTimeout)
	if err := env.err(); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("docsync", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Relay server URL")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to local database")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "Bearer token passed to the relay")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.GraphDir, "graph-dir", cfg.GraphDir, "Directory for change graph files (default: temp dir)")
	fs.DurationVar(&cfg.BaseInterval, "poll-interval", cfg.BaseInterval, "Base polling interval")
	fs.DurationVar(&cfg.FastInterval, "fast-interval", cfg.FastInterval, "Polling interval while peers are present")
	fs.DurationVar(&cfg.MaxInterval, "max-interval", cfg.MaxInterval, "Maximum polling interval after failures")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "Sync request timeout")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Client) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	err := errors.Join(
		positive("poll interval", c.BaseInterval),
		positive("fast interval", c.FastInterval),
		positive("max interval", c.MaxInterval),
		positive("request timeout", c.RequestTimeout),
	)
	if err != nil {
		return err
	}
	if c.MaxInterval < c.BaseInterval {
		return fmt.Errorf("max interval %s is less than poll interval %s", c.MaxInterval, c.BaseInterval)
	}
	if c.ServerURL == "" {
		return errors.New("server URL is required")
	}
	return nil
}
