package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/estimate-scheduler/internal/domain"
)

// UseCase use case для получения доступности оценщиков на дату
type UseCase struct {
	bookingRepo   BookingRepository
	estimatorRepo EstimatorRepository
	timeOffRepo   TimeOffRepository
	slotLabels    []string
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// slotLabels список слотов дня в порядке отображения
func NewUseCase(
	bookingRepo BookingRepository,
	estimatorRepo EstimatorRepository,
	timeOffRepo TimeOffRepository,
	slotLabels []string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		estimatorRepo: estimatorRepo,
		timeOffRepo:   timeOffRepo,
		slotLabels:    slotLabels,
		logger:        logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%s", req.Date)

	parsed, err := domain.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailability: invalid date=%s", req.Date)
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	date := parsed.Format(domain.DateFormat)

	estimators, err := uc.estimatorRepo.ListEstimators(ctx, true)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list estimators: %v", err)
		return nil, fmt.Errorf("%w: failed to list estimators: %v", ErrInternal, err)
	}

	timeOff, err := uc.timeOffRepo.ListForDate(ctx, date, domain.Weekday(parsed))
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list time off: %v", err)
		return nil, fmt.Errorf("%w: failed to list time off: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{StartDate: &date, EndDate: &date})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	occupied := make(map[domain.Slot]int64, len(bookings))
	for _, b := range bookings {
		occupied[b.Slot()] = b.ID
	}
	offLabels := offByEstimator(timeOff)

	result := make([]EstimatorAvailability, 0, len(estimators))
	for _, estimator := range estimators {
		label, off := offLabels[estimator.ID]
		result = append(result, EstimatorAvailability{
			Estimator: estimator,
			Off:       off,
			OffLabel:  label,
			Slots:     buildSlots(uc.slotLabels, estimator.ID, occupied, date),
		})
	}

	uc.logger.Info("GetAvailability: date=%s, estimators=%d, bookings=%d", date, len(result), len(bookings))

	return &Response{Date: date, Estimators: result}, nil
}
