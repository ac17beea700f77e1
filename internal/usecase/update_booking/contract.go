package update_booking

import (
	"context"

	"github.com/m04kA/estimate-scheduler/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateDetails(ctx context.Context, id int64, contact domain.Contact, job domain.Job) error
}

// BookingLogRepository интерфейс журнала бронирований
type BookingLogRepository interface {
	Append(ctx context.Context, entry *domain.BookingLogEntry) (*domain.BookingLogEntry, error)
}

// CRMClient интерфейс клиента RFMS
type CRMClient interface {
	Enabled() bool
	UpdateCustomer(ctx context.Context, customerID string, contact domain.Contact) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики исходов
type Metrics interface {
	IncBookingOperation(operation, outcome string)
	IncCRMSyncStep(step, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
