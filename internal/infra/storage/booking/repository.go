package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/estimate-scheduler/internal/domain"
	"github.com/m04kA/estimate-scheduler/internal/infra/storage/dialect"
	"github.com/m04kA/estimate-scheduler/pkg/dbmetrics"
)

const tableBookings = "bookings"

var bookingColumns = []string{
	"id",
	"booking_date",
	"time_slot",
	"estimator_id",
	"first_name",
	"last_name",
	"phone",
	"email",
	"address",
	"city",
	"state",
	"zip",
	"flooring_type",
	"rooms",
	"notes",
	"created_by",
	"rfms_customer_id",
	"rfms_opportunity_id",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db      DBExecutor
	dialect dialect.Dialect
	now     func() time.Time
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, d dialect.Dialect) *Repository {
	return &Repository{
		db:      db,
		dialect: d,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Create создает новое бронирование
// Уникальность слота гарантируется ограничением в БД: при нарушении возвращается ErrSlotAlreadyBooked.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = r.now()
	}

	query, args, err := r.dialect.Insert(tableBookings).
		Columns(
			"booking_date",
			"time_slot",
			"estimator_id",
			"first_name",
			"last_name",
			"phone",
			"email",
			"address",
			"city",
			"state",
			"zip",
			"flooring_type",
			"rooms",
			"notes",
			"created_by",
			"rfms_customer_id",
			"rfms_opportunity_id",
			"created_at",
		).
		Values(
			booking.Date,
			booking.TimeSlot,
			booking.EstimatorID,
			booking.Contact.FirstName,
			booking.Contact.LastName,
			booking.Contact.Phone,
			booking.Contact.Email,
			booking.Contact.Address,
			booking.Contact.City,
			booking.Contact.State,
			booking.Contact.Zip,
			booking.Job.FlooringType,
			booking.Job.Rooms,
			booking.Job.Notes,
			booking.CreatedBy,
			booking.RFMSCustomerID,
			booking.RFMSOpportunityID,
			booking.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID)
	if err != nil {
		if r.dialect.IsUniqueViolation(err) {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetBySlot получает бронирование, занимающее слот
// Возвращает ErrBookingNotFound, если слот свободен
func (r *Repository) GetBySlot(ctx context.Context, slot domain.Slot) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{
			"booking_date": slot.Date,
			"time_slot":    slot.TimeSlot,
			"estimator_id": slot.EstimatorID,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlot - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlot - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования с фильтрацией по периоду и оценщику
// Сортировка: по дате, затем по слоту и оценщику
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.dialect.Select(bookingColumns...).From(tableBookings)

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}
	if filter.EstimatorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"estimator_id": *filter.EstimatorID})
	}

	query, args, err := selectBuilder.
		OrderBy("booking_date ASC", "time_slot ASC", "estimator_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateDetails обновляет контактные данные и описание работ
// Дата, слот и оценщик никогда не меняются: перенос = отмена + новое бронирование
func (r *Repository) UpdateDetails(ctx context.Context, id int64, contact domain.Contact, job domain.Job) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Update(tableBookings).
		Set("first_name", contact.FirstName).
		Set("last_name", contact.LastName).
		Set("phone", contact.Phone).
		Set("email", contact.Email).
		Set("address", contact.Address).
		Set("city", contact.City).
		Set("state", contact.State).
		Set("zip", contact.Zip).
		Set("flooring_type", job.FlooringType).
		Set("rooms", job.Rooms).
		Set("notes", job.Notes).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete удаляет бронирование (отмена освобождает слот)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Delete(tableBookings).
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
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Date,
		&booking.TimeSlot,
		&booking.EstimatorID,
		&booking.Contact.FirstName,
		&booking.Contact.LastName,
		&booking.Contact.Phone,
		&booking.Contact.Email,
		&booking.Contact.Address,
		&booking.Contact.City,
		&booking.Contact.State,
		&booking.Contact.Zip,
		&booking.Job.FlooringType,
		&booking.Job.Rooms,
		&booking.Job.Notes,
		&booking.CreatedBy,
		&booking.RFMSCustomerID,
		&booking.RFMSOpportunityID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
