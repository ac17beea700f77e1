package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/m04kA/estimate-scheduler/internal/infra/storage/dialect"
	"github.com/m04kA/estimate-scheduler/internal/infra/storage/migrations"
	"github.com/m04kA/estimate-scheduler/pkg/dbmetrics"
)

// SQLiteHarness временная мигрированная SQLite база для интеграционных тестов хранилища
type SQLiteHarness struct {
	DB      *dbmetrics.DB
	Dialect dialect.Dialect
}

// NewSQLiteHarness открывает файл в tb.TempDir(), применяет миграции и регистрирует закрытие
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	d := dialect.MustNew(dialect.SQLite)
	path := filepath.Join(tb.TempDir(), "scheduler.db")

	raw, err := dialect.Open(d, dialect.SQLiteDSN(path, dialect.DefaultBusyTimeout))
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := migrations.Up(context.Background(), raw, d, nil); err != nil {
		_ = raw.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	tb.Cleanup(func() {
		_ = raw.Close()
	})

	return &SQLiteHarness{
		DB:      dbmetrics.Wrap(raw, nil),
		Dialect: d,
	}
}

// SeedEstimator добавляет активного оценщика и возвращает его ID
func (h *SQLiteHarness) SeedEstimator(tb testing.TB, name string) int64 {
	tb.Helper()
	return h.seedEstimator(tb, name, true)
}

// SeedInactiveEstimator добавляет неактивного оценщика
func (h *SQLiteHarness) SeedInactiveEstimator(tb testing.TB, name string) int64 {
	tb.Helper()
	return h.seedEstimator(tb, name, false)
}

func (h *SQLiteHarness) seedEstimator(tb testing.TB, name string, active bool) int64 {
	var id int64
	err := h.DB.QueryRowContext(context.Background(),
		"INSERT INTO estimators (name, active) VALUES (?, ?) RETURNING id", name, active,
	).Scan(&id)
	if err != nil {
		tb.Fatalf("failed to seed estimator %q: %v", name, err)
	}
	return id
}
