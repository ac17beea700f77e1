package timeoff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/estimate-scheduler/internal/domain"
	"github.com/m04kA/estimate-scheduler/internal/infra/storage/dialect"
	"github.com/m04kA/estimate-scheduler/pkg/dbmetrics"
)

const tableTimeOff = "time_off"

var timeOffColumns = []string{"id", "estimator_id", "off_date", "day_of_week", "recurring", "label"}

// Repository репозиторий отсутствий оценщиков
type Repository struct {
	db      DBExecutor
	dialect dialect.Dialect
}

// NewRepository создает новый экземпляр репозитория отсутствий
func NewRepository(db DBExecutor, d dialect.Dialect) *Repository {
	return &Repository{db: db, dialect: d}
}

// exclusionFor условие "разовое отсутствие на дату ИЛИ еженедельное на этот день недели"
func exclusionFor(date string, weekday int) squirrel.Or {
	return squirrel.Or{
		squirrel.And{squirrel.Eq{"recurring": false}, squirrel.Eq{"off_date": date}},
		squirrel.And{squirrel.Eq{"recurring": true}, squirrel.Eq{"day_of_week": weekday}},
	}
}

// IsExcluded проверяет, отсутствует ли оценщик в указанную дату
func (r *Repository) IsExcluded(ctx context.Context, estimatorID int64, date string, weekday int) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select("COUNT(*)").
		From(tableTimeOff).
		Where(squirrel.Eq{"estimator_id": estimatorID}).
		Where(exclusionFor(date, weekday)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsExcluded - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: IsExcluded - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// ListForDate возвращает все отсутствия, действующие в указанную дату (по всем оценщикам)
func (r *Repository) ListForDate(ctx context.Context, date string, weekday int) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select(timeOffColumns...).
		From(tableTimeOff).
		Where(exclusionFor(date, weekday)).
		OrderBy("estimator_id ASC", "recurring ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, query, args)
}

// ListByEstimator возвращает все отсутствия оценщика: сначала еженедельные, затем разовые по дате
func (r *Repository) ListByEstimator(ctx context.Context, estimatorID int64) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select(timeOffColumns...).
		From(tableTimeOff).
		Where(squirrel.Eq{"estimator_id": estimatorID}).
		OrderBy("recurring DESC", "day_of_week ASC", "off_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEstimator - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, query, args)
}

// GetOneOff ищет разовое отсутствие оценщика на дату
func (r *Repository) GetOneOff(ctx context.Context, estimatorID int64, date string) (*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select(timeOffColumns...).
		From(tableTimeOff).
		Where(squirrel.Eq{"estimator_id": estimatorID, "recurring": false, "off_date": date}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOneOff - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanTimeOff(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTimeOffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOneOff - scan row: %v", ErrScanRow, err)
	}
	return entry, nil
}

// CreateOneOff добавляет разовое отсутствие
// Повторное добавление той же пары (оценщик, дата) ничего не меняет и возвращает существующую запись
func (r *Repository) CreateOneOff(ctx context.Context, estimatorID int64, date string, label string) (*domain.TimeOff, bool, error) {
	existing, err := r.GetOneOff(ctx, estimatorID, date)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrTimeOffNotFound) {
		return nil, false, err
	}

	entry := &domain.TimeOff{
		EstimatorID: estimatorID,
		Date:        &date,
		Recurring:   false,
		Label:       label,
	}

	if err := r.insert(ctx, entry); err != nil {
		// Параллельная вставка той же пары: уникальный индекс уже сработал
		if r.dialect.IsUniqueViolation(err) {
			existing, getErr := r.GetOneOff(ctx, estimatorID, date)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("%w: CreateOneOff - execute insert: %v", ErrExecQuery, err)
	}

	return entry, true, nil
}

// ReplaceRecurring заменяет еженедельное отсутствие оценщика на день недели (delete-then-insert)
// Вызывать внутри транзакции
func (r *Repository) ReplaceRecurring(ctx context.Context, estimatorID int64, dayOfWeek int, label string) (*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Delete(tableTimeOff).
		Where(squirrel.Eq{"estimator_id": estimatorID, "recurring": true, "day_of_week": dayOfWeek}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceRecurring - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceRecurring - execute delete: %v", ErrExecQuery, err)
	}

	entry := &domain.TimeOff{
		EstimatorID: estimatorID,
		DayOfWeek:   &dayOfWeek,
		Recurring:   true,
		Label:       label,
	}

	if err := r.insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: ReplaceRecurring - execute insert: %v", ErrExecQuery, err)
	}

	return entry, nil
}

// Delete удаляет запись об отсутствии
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Delete(tableTimeOff).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTimeOffNotFound
	}

	return nil
}

func (r *Repository) insert(ctx context.Context, entry *domain.TimeOff) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Insert(tableTimeOff).
		Columns("estimator_id", "off_date", "day_of_week", "recurring", "label").
		Values(entry.EstimatorID, entry.Date, entry.DayOfWeek, entry.Recurring, entry.Label).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: insert - build insert query: %v", ErrBuildQuery, err)
	}

	return executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID)
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, query string, args []interface{}) ([]*domain.TimeOff, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.TimeOff, 0)
	for rows.Next() {
		entry, err := scanTimeOff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTimeOff(row rowScanner) (*domain.TimeOff, error) {
	var entry domain.TimeOff
	var offDate sql.NullString
	var dayOfWeek sql.NullInt64

	if err := row.Scan(&entry.ID, &entry.EstimatorID, &offDate, &dayOfWeek, &entry.Recurring, &entry.Label); err != nil {
		return nil, err
	}

	if offDate.Valid {
		entry.Date = &offDate.String
	}
	if dayOfWeek.Valid {
		day := int(dayOfWeek.Int64)
		entry.DayOfWeek = &day
	}

	return &entry, nil
}
