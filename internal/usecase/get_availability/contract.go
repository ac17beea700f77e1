package get_availability

import (
	"context"

	"github.com/m04kA/estimate-scheduler/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// EstimatorRepository интерфейс справочника оценщиков
type EstimatorRepository interface {
	ListEstimators(ctx context.Context, activeOnly bool) ([]*domain.Estimator, error)
}

// TimeOffRepository интерфейс репозитория отсутствий
type TimeOffRepository interface {
	// ListForDate отсутствия всех оценщиков, действующие в дату
	ListForDate(ctx context.Context, date string, weekday int) ([]*domain.TimeOff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
