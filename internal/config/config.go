package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/estimate-scheduler/internal/infra/storage/dialect"
	"github.com/m04kA/estimate-scheduler/internal/integrations/rfms"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Tracing  TracingConfig  `toml:"tracing"`
	RFMS     RFMSConfig     `toml:"rfms"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры хранилища
// Для postgres используется DSN или Host/Port/..., для sqlite Path
type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	DSNOverride     string `toml:"dsn"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	Path            string `toml:"path"`
	BusyTimeoutMS   int    `toml:"busy_timeout_ms"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// TracingConfig параметры OpenTelemetry, пустой Endpoint выключает трассировку
type TracingConfig struct {
	Endpoint string `toml:"endpoint"`
	Insecure bool   `toml:"insecure"`
}

// RFMSConfig параметры интеграции с RFMS
// Секреты обычно приходят из окружения: RFMS_STORE_QUEUE, RFMS_API_KEY
type RFMSConfig struct {
	BaseURL            string `toml:"base_url"`
	StoreQueue         string `toml:"store_queue"`
	APIKey             string `toml:"api_key"`
	DefaultStoreNumber int    `toml:"default_store_number"`
	DefaultSalesperson string `toml:"default_salesperson"`
	Disabled           bool   `toml:"disabled"`
	TimeoutSeconds     int    `toml:"timeout_seconds"`
}

// BookingConfig параметры расписания
type BookingConfig struct {
	TimeSlots []string `toml:"time_slots"`
}

var defaultTimeSlots = []string{"9:00 AM-11:00 AM", "11:00 AM-1:00 PM", "1:00 PM-3:00 PM", "3:00 PM-5:00 PM"}

// Load читает .env (если есть), затем TOML файл, затем переопределения из окружения
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	setString("RFMS_STORE_QUEUE", &cfg.RFMS.StoreQueue)
	setString("RFMS_API_KEY", &cfg.RFMS.APIKey)
	setString("RFMS_BASE_URL", &cfg.RFMS.BaseURL)
	setString("RFMS_DEFAULT_SALESPERSON", &cfg.RFMS.DefaultSalesperson)
	setString("DB_PASSWORD", &cfg.Database.Password)
	setString("DB_DSN", &cfg.Database.DSNOverride)

	if v, ok := os.LookupEnv("RFMS_DEFAULT_STORE_NUMBER"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: RFMS_DEFAULT_STORE_NUMBER must be an integer: %w", err)
		}
		cfg.RFMS.DefaultStoreNumber = n
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		// Создание бронирования ждет RFMS до 30 секунд на запрос
		c.Server.WriteTimeout = 120
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30
	}

	if c.Database.Driver == "" {
		c.Database.Driver = string(dialect.SQLite)
	}
	if c.Database.Path == "" {
		c.Database.Path = "estimates.db"
	}
	if c.Database.BusyTimeoutMS == 0 {
		c.Database.BusyTimeoutMS = int(dialect.DefaultBusyTimeout.Milliseconds())
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "estimate-scheduler"
	}

	if c.RFMS.BaseURL == "" {
		c.RFMS.BaseURL = rfms.DefaultBaseURL
	}
	if c.RFMS.DefaultStoreNumber == 0 {
		c.RFMS.DefaultStoreNumber = 1
	}
	if c.RFMS.TimeoutSeconds == 0 {
		c.RFMS.TimeoutSeconds = int(rfms.DefaultTimeout.Seconds())
	}

	if len(c.Booking.TimeSlots) == 0 {
		c.Booking.TimeSlots = append([]string(nil), defaultTimeSlots...)
	}
}

// Validate проверяет значения после применения умолчаний
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort))
	}

	if _, err := dialect.New(dialect.Name(c.Database.Driver)); err != nil {
		errs = append(errs, fmt.Errorf("database.driver: %w", err))
	}
	if c.Database.Driver == string(dialect.Postgres) && c.Database.DSNOverride == "" && c.Database.Host == "" {
		errs = append(errs, errors.New("database: postgres requires dsn or host"))
	}

	if c.RFMS.TimeoutSeconds < 0 {
		errs = append(errs, errors.New("rfms.timeout_seconds must not be negative"))
	}

	seen := make(map[string]bool, len(c.Booking.TimeSlots))
	for _, slot := range c.Booking.TimeSlots {
		slot = strings.TrimSpace(slot)
		if slot == "" {
			errs = append(errs, errors.New("booking.time_slots contains an empty label"))
			continue
		}
		if seen[slot] {
			errs = append(errs, fmt.Errorf("booking.time_slots has duplicate %q", slot))
		}
		seen[slot] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Dialect диалект хранилища
func (d DatabaseConfig) Dialect() (dialect.Dialect, error) {
	return dialect.New(dialect.Name(d.Driver))
}

// DSN строка подключения для выбранного драйвера
func (d DatabaseConfig) DSN() string {
	if d.DSNOverride != "" {
		return d.DSNOverride
	}
	if d.Driver == string(dialect.SQLite) {
		return dialect.SQLiteDSN(d.Path, time.Duration(d.BusyTimeoutMS)*time.Millisecond)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Enabled интеграция включена, только если заданы очередь магазина и ключ API
func (r RFMSConfig) Enabled() bool {
	return r.ToClientConfig().Enabled()
}

// ToClientConfig конвертирует в конфигурацию клиента RFMS
func (r RFMSConfig) ToClientConfig() rfms.Config {
	return rfms.Config{
		BaseURL:     r.BaseURL,
		StoreQueue:  r.StoreQueue,
		APIKey:      r.APIKey,
		StoreNumber: r.DefaultStoreNumber,
		Salesperson: r.DefaultSalesperson,
		Disabled:    r.Disabled,
		Timeout:     time.Duration(r.TimeoutSeconds) * time.Second,
	}
}
