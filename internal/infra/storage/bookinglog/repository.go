package bookinglog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/estimate-scheduler/internal/domain"
	"github.com/m04kA/estimate-scheduler/internal/infra/storage/dialect"
	"github.com/m04kA/estimate-scheduler/pkg/dbmetrics"
)

const tableBookingLog = "booking_log"

// Repository журнал изменений бронирований (только INSERT и SELECT)
type Repository struct {
	db      DBExecutor
	dialect dialect.Dialect
	now     func() time.Time
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor, d dialect.Dialect) *Repository {
	return &Repository{
		db:      db,
		dialect: d,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Append добавляет запись в журнал
func (r *Repository) Append(ctx context.Context, entry *domain.BookingLogEntry) (*domain.BookingLogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	entry.ChangedBy = domain.ActorOrDefault(entry.ChangedBy)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now()
	}

	query, args, err := r.dialect.Insert(tableBookingLog).
		Columns("booking_id", "action", "changed_by", "details", "created_at").
		Values(entry.BookingID, string(entry.Action), entry.ChangedBy, entry.Details, entry.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID); err != nil {
		return nil, fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return entry, nil
}

// ListByBooking возвращает журнал бронирования, новые записи первыми
// Журнал доступен и после удаления самого бронирования
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.BookingLogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select("id", "booking_id", "action", "changed_by", "details", "created_at").
		From(tableBookingLog).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.BookingLogEntry, 0)
	for rows.Next() {
		var entry domain.BookingLogEntry
		var action string
		var createdAt sql.NullTime

		if err := rows.Scan(&entry.ID, &entry.BookingID, &action, &entry.ChangedBy, &entry.Details, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %v", ErrScanRow, err)
		}

		entry.Action = domain.BookingAction(action)
		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
