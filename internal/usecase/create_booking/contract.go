package create_booking

import (
	"context"

	"github.com/m04kA/estimate-scheduler/internal/domain"
	"github.com/m04kA/estimate-scheduler/internal/integrations/rfms"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetBySlot(ctx context.Context, slot domain.Slot) (*domain.Booking, error)
}

// BookingLogRepository интерфейс журнала бронирований
type BookingLogRepository interface {
	Append(ctx context.Context, entry *domain.BookingLogEntry) (*domain.BookingLogEntry, error)
}

// EstimatorRepository интерфейс справочника оценщиков
type EstimatorRepository interface {
	GetEstimator(ctx context.Context, id int64) (*domain.Estimator, error)
}

// TimeOffRepository интерфейс проверки отсутствий оценщика
type TimeOffRepository interface {
	IsExcluded(ctx context.Context, estimatorID int64, date string, weekday int) (bool, error)
}

// CRMClient интерфейс клиента RFMS
type CRMClient interface {
	Enabled() bool
	ResolveCustomer(ctx context.Context, contact domain.Contact) (rfms.Resolution, error)
	CreateOpportunity(ctx context.Context, customerID string, details rfms.OpportunityDetails) (string, error)
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
