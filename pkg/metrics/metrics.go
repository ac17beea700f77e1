package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "estimate_scheduler"

// Metrics набор prometheus-коллекторов сервиса
// Все методы безопасны для nil-получателя: выключенные метрики = nil *Metrics
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration    *prometheus.HistogramVec
	dbQueryErrorsTotal *prometheus.CounterVec
	dbConnections      *prometheus.GaugeVec

	crmRequestsTotal       *prometheus.CounterVec
	crmRequestDuration     *prometheus.HistogramVec
	crmSessionRefreshTotal *prometheus.CounterVec
	crmSyncStepsTotal      *prometheus.CounterVec

	bookingOperationsTotal *prometheus.CounterVec
}

// New создает и регистрирует коллекторы в reg
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 5},
		}, []string{"operation"}),
		dbQueryErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "db_query_errors_total",
			Help:        "Database queries that returned an error.",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_connections",
			Help:        "Connection pool state.",
			ConstLabels: constLabels,
		}, []string{"state"}),
		crmRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "crm_requests_total",
			Help:        "Calls made to the external CRM.",
			ConstLabels: constLabels,
		}, []string{"endpoint", "outcome"}),
		crmRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "crm_request_duration_seconds",
			Help:        "External CRM call latency.",
			ConstLabels: constLabels,
			Buckets:     []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30},
		}, []string{"endpoint"}),
		crmSessionRefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "crm_session_refresh_total",
			Help:        "CRM session/begin round-trips.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		crmSyncStepsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "crm_sync_steps_total",
			Help:        "Booking CRM sync steps by outcome.",
			ConstLabels: constLabels,
		}, []string{"step", "outcome"}),
		bookingOperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "booking_operations_total",
			Help:        "Booking create/edit/cancel operations by outcome.",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbQueryErrorsTotal,
		m.dbConnections,
		m.crmRequestsTotal,
		m.crmRequestDuration,
		m.crmSessionRefreshTotal,
		m.crmSyncStepsTotal,
		m.bookingOperationsTotal,
	)

	return m
}

// ObserveHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery учитывает выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.dbQueryErrorsTotal.WithLabelValues(operation).Inc()
	}
}

// SetDBStats публикует состояние пула соединений
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
	m.dbConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(stats.Idle))
}

// ObserveCRMRequest учитывает вызов CRM
func (m *Metrics) ObserveCRMRequest(endpoint, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.crmRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.crmRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// IncCRMSessionRefresh учитывает попытку открыть сессию CRM
func (m *Metrics) IncCRMSessionRefresh(outcome string) {
	if m == nil {
		return
	}
	m.crmSessionRefreshTotal.WithLabelValues(outcome).Inc()
}

// IncCRMSyncStep учитывает шаг синхронизации бронирования с CRM
func (m *Metrics) IncCRMSyncStep(step, outcome string) {
	if m == nil {
		return
	}
	m.crmSyncStepsTotal.WithLabelValues(step, outcome).Inc()
}

// IncBookingOperation учитывает операцию над бронированием
func (m *Metrics) IncBookingOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.bookingOperationsTotal.WithLabelValues(operation, outcome).Inc()
}
