package time_off

import (
	"context"

	"github.com/m04kA/estimate-scheduler/internal/service/timeoff/models"
)

type TimeOffService interface {
	IsTimeOff(ctx context.Context, estimatorID int64, date string) (*models.CheckTimeOffResponse, error)
	Upsert(ctx context.Context, req *models.UpsertTimeOffRequest) (*models.UpsertTimeOffResponse, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, estimatorID int64) (*models.TimeOffListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
