package dialect

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Name поддерживаемый тип хранилища
type Name string

const (
	Postgres Name = "postgres"
	SQLite   Name = "sqlite"
)

// pgUniqueViolation код ошибки unique_violation в PostgreSQL
const pgUniqueViolation = "23505"

// DefaultBusyTimeout ожидание блокировки записи в SQLite
const DefaultBusyTimeout = 5 * time.Second

// ErrUnknownDialect возвращается для неподдерживаемого драйвера
var ErrUnknownDialect = errors.New("dialect: unknown database driver")

// Dialect различия между хранилищами, о которых должны знать репозитории
type Dialect struct {
	name    Name
	builder squirrel.StatementBuilderType
}

// New возвращает диалект по имени драйвера
func New(name Name) (Dialect, error) {
	switch name {
	case Postgres:
		return Dialect{name: Postgres, builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}, nil
	case SQLite:
		return Dialect{name: SQLite, builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)}, nil
	default:
		return Dialect{}, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
}

// MustNew как New, но паникует на неизвестном имени
func MustNew(name Name) Dialect {
	d, err := New(name)
	if err != nil {
		panic(err)
	}
	return d
}

// Name имя диалекта
func (d Dialect) Name() Name {
	return d.name
}

// Builder построитель запросов с нужным форматом плейсхолдеров
func (d Dialect) Builder() squirrel.StatementBuilderType {
	return d.builder
}

func (d Dialect) Select(columns ...string) squirrel.SelectBuilder {
	return d.builder.Select(columns...)
}

func (d Dialect) Insert(table string) squirrel.InsertBuilder {
	return d.builder.Insert(table)
}

func (d Dialect) Update(table string) squirrel.UpdateBuilder {
	return d.builder.Update(table)
}

func (d Dialect) Delete(table string) squirrel.DeleteBuilder {
	return d.builder.Delete(table)
}

// IsUniqueViolation сообщает, что ошибка вызвана нарушением UNIQUE-ограничения
func (d Dialect) IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}

	// modernc.org/sqlite не экспортирует расширенные коды в удобном виде,
	// текст сообщения стабилен: "constraint failed: UNIQUE constraint failed: ..."
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// DriverName имя драйвера для sql.Open
func (d Dialect) DriverName() string {
	switch d.name {
	case SQLite:
		return "sqlite"
	default:
		return "postgres"
	}
}

// GooseDialect имя диалекта для goose
func (d Dialect) GooseDialect() string {
	switch d.name {
	case SQLite:
		return "sqlite3"
	default:
		return "postgres"
	}
}

// SQLiteDSN строит DSN для modernc.org/sqlite с busy_timeout и внешними ключами
func SQLiteDSN(path string, busyTimeout time.Duration) string {
	if busyTimeout <= 0 {
		busyTimeout = DefaultBusyTimeout
	}

	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_time_format", "sqlite")

	return "file:" + path + "?" + params.Encode()
}

// Open открывает соединение с хранилищем
func Open(d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("dialect: open %s: %w", d.name, err)
	}

	// SQLite допускает одного писателя: одно соединение исключает SQLITE_BUSY при апгрейде блокировки в транзакции
	if d.name == SQLite {
		db.SetMaxOpenConns(1)
	}

	return db, nil
}
