package get_booking_log

import (
	"context"

	"github.com/m04kA/estimate-scheduler/internal/service/bookings/models"
)

type BookingService interface {
	ListLog(ctx context.Context, bookingID int64) (*models.LogListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
