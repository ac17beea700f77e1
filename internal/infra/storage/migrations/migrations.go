package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/m04kA/estimate-scheduler/internal/infra/storage/dialect"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// goose хранит диалект и FS в глобальном состоянии
var gooseMu sync.Mutex

// Logger интерфейс логгера, совместимый с goose.Logger
type Logger interface {
	Fatalf(format string, v ...interface{})
	Printf(format string, v ...interface{})
}

// Up применяет все непримененные миграции для указанного диалекта
func Up(ctx context.Context, db *sql.DB, d dialect.Dialect, log Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	defer goose.SetBaseFS(nil)

	if log != nil {
		goose.SetLogger(log)
	}

	if err := goose.SetDialect(d.GooseDialect()); err != nil {
		return fmt.Errorf("migrations: set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, string(d.Name())); err != nil {
		return fmt.Errorf("migrations: apply: %w", err)
	}

	return nil
}

// Version возвращает текущую версию схемы
func Version(ctx context.Context, db *sql.DB, d dialect.Dialect) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := goose.SetDialect(d.GooseDialect()); err != nil {
		return 0, fmt.Errorf("migrations: set goose dialect: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("migrations: get version: %w", err)
	}
	return version, nil
}
