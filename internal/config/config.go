// Package config собирает настройки клиента и relay сервера из флагов,
// переменных окружения DOCSYNC_* и необязательного .env файла.
// Приоритет: флаг, затем окружение, затем значение по умолчанию.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "DOCSYNC_"

// LoadEnvFile загружает переменные из .env файла.
// Отсутствующий файл не ошибка; уже заданные переменные не перезаписываются.
func LoadEnvFile(paths ...string) error {
	err := godotenv.Load(paths...)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load env file: %w", err)
}

// ParseLogLevel разбирает уровень логирования
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// envReader читает DOCSYNC_* переменные и копит ошибки разбора
type envReader struct {
	getenv func(string) string
	errs   []error
}

func (e *envReader) lookup(name string) (string, bool) {
	v := e.getenv(EnvPrefix + name)
	return v, v != ""
}

func (e *envReader) string(name string, dst *string) {
	if v, ok := e.lookup(name); ok {
		*dst = v
	}
}

func (e *envReader) duration(name string, dst *time.Duration) {
	v, ok := e.lookup(name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
		return
	}
	*dst = d
}

func (e *envReader) int(name string, dst *int) {
	v, ok := e.lookup(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
		return
	}
	*dst = n
}

func (e *envReader) err() error {
	return errors.Join(e.errs...)
}

// parseFlags разбирает args; ошибки флагов возвращаются, а не завершают процесс
func parseFlags(flags *flag.FlagSet, args []string) error {
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	return nil
}

func positive(name string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %s", name, d)
	}
	return nil
}
