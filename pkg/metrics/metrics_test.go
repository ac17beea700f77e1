package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/x", 200, time.Millisecond)
		m.ObserveDBQuery("select", time.Millisecond, nil)
		m.SetDBStats(sql.DBStats{})
		m.ObserveCRMRequest("customer", "ok", time.Millisecond)
		m.IncCRMSessionRefresh("ok")
		m.IncCRMSyncStep("customer", "created")
		m.IncBookingOperation("create", "created")
	})
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("test", reg)

	m.IncBookingOperation("create", "conflict")
	m.IncBookingOperation("create", "conflict")
	m.IncCRMSessionRefresh("failed")
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("boom"))
	m.ObserveDBQuery("query_row", time.Millisecond, sql.ErrNoRows)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingOperationsTotal.WithLabelValues("create", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.crmSessionRefreshTotal.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrorsTotal.WithLabelValues("exec")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.dbQueryErrorsTotal.WithLabelValues("query_row")))
}

func TestMetrics_DBStats(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("test", reg)

	m.SetDBStats(sql.DBStats{OpenConnections: 5, InUse: 2, Idle: 3})

	assert.Equal(t, 5.0, testutil.ToFloat64(m.dbConnections.WithLabelValues("open")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dbConnections.WithLabelValues("in_use")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.dbConnections.WithLabelValues("idle")))
}
