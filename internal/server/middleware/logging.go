package middleware

import (
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
)

// unmatchedRoute метка для запросов вне маршрутов роутера
const unmatchedRoute = "unmatched"

// LoggingMiddleware создает middleware для логирования HTTP запросов.
// Логирует метод, путь, статус, время выполнения, размер ответа;
// если observer задан, передает ему метрики запроса.
// Тело запроса и заголовок Authorization не логируются.
func LoggingMiddleware(logger *slog.Logger, observer RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)
			route := routeTemplate(r)

			if observer != nil {
				observer.ObserveHTTP(route, r.Method, m.Code, m.Duration)
			}

			logLevel := slog.LevelInfo
			if m.Code >= 500 {
				logLevel = slog.LevelError
			} else if m.Code >= 400 {
				logLevel = slog.LevelWarn
			}

			logger.Log(r.Context(), logLevel, "HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"status", m.Code,
				"duration_ms", m.Duration.Milliseconds(),
				"bytes_written", m.Written,
			)
		})
	}
}

// routeTemplate возвращает шаблон маршрута mux, чтобы метки метрик
// не зависели от конкретных значений в пути
func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unmatchedRoute
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return unmatchedRoute
	}
	return tpl
}

// LoggingWithSkip создает middleware с возможностью пропуска определенных путей.
// Для пропущенных путей не пишется ни лог, ни метрика.
func LoggingWithSkip(logger *slog.Logger, observer RequestObserver, skipPaths []string) func(http.Handler) http.Handler {
	skipMap := make(map[string]bool)
	for _, path := range skipPaths {
		skipMap[path] = true
	}

	return func(next http.Handler) http.Handler {
		logged := LoggingMiddleware(logger, observer)(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipMap[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			logged.ServeHTTP(w, r)
		})
	}
}
