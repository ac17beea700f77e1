package timeoff

import (
	"context"

	"github.com/m04kA/estimate-scheduler/internal/domain"
)

// TimeOffRepository интерфейс репозитория отсутствий
type TimeOffRepository interface {
	IsExcluded(ctx context.Context, estimatorID int64, date string, weekday int) (bool, error)
	ListByEstimator(ctx context.Context, estimatorID int64) ([]*domain.TimeOff, error)
	CreateOneOff(ctx context.Context, estimatorID int64, date string, label string) (*domain.TimeOff, bool, error)
	ReplaceRecurring(ctx context.Context, estimatorID int64, dayOfWeek int, label string) (*domain.TimeOff, error)
	Delete(ctx context.Context, id int64) error
}

// EstimatorRepository интерфейс справочника оценщиков
type EstimatorRepository interface {
	GetEstimator(ctx context.Context, id int64) (*domain.Estimator, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
