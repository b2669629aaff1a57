package middleware

import "time"

//go:generate moq -out observer_mock.go . RequestObserver LimitObserver

// RequestObserver получает метрики каждого обработанного запроса
type RequestObserver interface {
	ObserveHTTP(route, method string, code int, d time.Duration)
}

// LimitObserver уведомляется об отклоненных rate limiter запросах
type LimitObserver interface {
	RateLimited()
}
