package rfms

import (
	"context"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics метрики обращений к RFMS
type Metrics interface {
	ObserveCRMRequest(endpoint, outcome string, duration time.Duration)
	IncCRMSessionRefresh(outcome string)
}

// TokenSource источник токена сессии. Пустая строка означает "RFMS временно недоступна"
type TokenSource interface {
	Token(ctx context.Context) string
}
