package bookings

import (
	"context"

	"github.com/m04kA/estimate-scheduler/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// BookingLogRepository интерфейс журнала бронирований
type BookingLogRepository interface {
	Append(ctx context.Context, entry *domain.BookingLogEntry) (*domain.BookingLogEntry, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.BookingLogEntry, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики исходов
type Metrics interface {
	IncBookingOperation(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
