package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"
)

// Server настройки relay сервера
type Server struct {
	Addr                string
	DBPath              string
	LogLevel            string
	Token               string
	AwarenessTTL        time.Duration
	CompactionTimeout   time.Duration
	ShutdownTimeout     time.Duration
	CompactionThreshold int
	RateLimit           int
	ShowVersion         bool
}

// DefaultServer значения по умолчанию
func DefaultServer() Server {
	return Server{
		Addr:                ":8080",
		DBPath:              "docsync-server.db",
		LogLevel:            "info",
		AwarenessTTL:        30 * time.Second,
		CompactionTimeout:   time.Minute,
		ShutdownTimeout:     10 * time.Second,
		CompactionThreshold: 50,
		RateLimit:           600,
	}
}

// ParseServer собирает настройки relay сервера
func ParseServer(args []string, getenv func(string) string, output io.Writer) (*Server, error) {
	cfg := DefaultServer()

	env := &envReader{getenv: getenv}
	env.string("ADDR", &cfg.Addr)
	env.string("DB", &cfg.DBPath)
	env.string("LOG_LEVEL", &cfg.LogLevel)
	env.string("TOKEN", &cfg.Token)
	env.duration("AWARENESS_TTL", &cfg.AwarenessTTL)
	env.duration("COMPACTION_TIMEOUT", &cfg.CompactionTimeout)
	env.duration("SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)
	env.int("COMPACTION_THRESHOLD", &cfg.CompactionThreshold)
	env.int("RATE_LIMIT", &cfg.RateLimit)
	if err := env.err(); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("docsync-server", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to sqlite database (:memory: for in-memory)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "Bearer token required from clients (empty disables auth)")
	fs.DurationVar(&cfg.AwarenessTTL, "awareness-ttl", cfg.AwarenessTTL, "Presence entry lifetime")
	fs.DurationVar(&cfg.CompactionTimeout, "compaction-timeout", cfg.CompactionTimeout, "Time to wait for a requested compaction")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	fs.IntVar(&cfg.CompactionThreshold, "compaction-threshold", cfg.CompactionThreshold, "Update records per room before compaction is requested")
	fs.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Requests per minute per client IP (0 disables)")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек
func (s *Server) Validate() error {
	if _, err := ParseLogLevel(s.LogLevel); err != nil {
		return err
	}
	if s.CompactionThreshold < 2 {
		return fmt.Errorf("compaction threshold must be at least 2, got %d", s.CompactionThreshold)
	}
	if s.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %d", s.RateLimit)
	}
	if s.Addr == "" {
		return errors.New("listen address is required")
	}
	return errors.Join(
		positive("awareness ttl", s.AwarenessTTL),
		positive("compaction timeout", s.CompactionTimeout),
		positive("shutdown timeout", s.ShutdownTimeout),
	)
}
