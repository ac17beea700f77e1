package rfms

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL = "https://api.rfms.online/v2"
	DefaultTimeout = 30 * time.Second
)

// Config параметры подключения к RFMS
type Config struct {
	BaseURL     string
	StoreQueue  string
	APIKey      string
	StoreNumber int
	Salesperson string
	Disabled    bool
	Timeout     time.Duration
}

// Enabled интеграция включена, только если заданы и очередь магазина, и ключ API
func (c Config) Enabled() bool {
	return !c.Disabled && c.StoreQueue != "" && c.APIKey != ""
}

func (c Config) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

// NewHTTPClient HTTP клиент с фиксированным таймаутом и трассировкой исходящих запросов
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
