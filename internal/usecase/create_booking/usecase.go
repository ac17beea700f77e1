package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/estimate-scheduler/internal/domain"
	bookingRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/booking"
	rosterRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/roster"
)

const operationCreate = "create"

// UseCase распределитель бронирований: создание
// Validating -> Checking-Conflict -> Syncing-CRM -> Persisting -> Logging -> Done
type UseCase struct {
	bookingRepo   BookingRepository
	logRepo       BookingLogRepository
	estimatorRepo EstimatorRepository
	timeOffRepo   TimeOffRepository
	crm           CRMClient
	txManager     TransactionManager
	metrics       Metrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	logRepo BookingLogRepository,
	estimatorRepo EstimatorRepository,
	timeOffRepo TimeOffRepository,
	crm CRMClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		logRepo:       logRepo,
		estimatorRepo: estimatorRepo,
		timeOffRepo:   timeOffRepo,
		crm:           crm,
		txManager:     txManager,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	normalizeRequest(req)

	uc.logger.Info("CreateBooking: date=%s, slot=%s, estimator=%d, actor=%s",
		req.Date, req.TimeSlot, req.EstimatorID, domain.ActorOrDefault(req.CreatedBy))

	// 1. Validating
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBookingOperation(operationCreate, "rejected")
		return nil, err
	}

	// 2. Checking-Conflict: оценщик, его отсутствия и занятость слота
	estimator, err := uc.checkEstimator(ctx, req)
	if err != nil {
		uc.metrics.IncBookingOperation(operationCreate, "rejected")
		return nil, err
	}

	slot := domain.Slot{Date: req.Date, TimeSlot: req.TimeSlot, EstimatorID: req.EstimatorID}

	// Предпроверка только экономит лишний поход в RFMS,
	// гарантию дает ограничение уникальности при вставке
	_, err = uc.bookingRepo.GetBySlot(ctx, slot)
	switch {
	case err == nil:
		uc.logger.Warn("CreateBooking: slot already booked date=%s, slot=%s, estimator=%d", req.Date, req.TimeSlot, req.EstimatorID)
		uc.metrics.IncBookingOperation(operationCreate, "conflict")
		return nil, ErrSlotAlreadyBooked
	case !errors.Is(err, bookingRepo.ErrBookingNotFound):
		uc.logger.Error("CreateBooking: failed to check slot: %v", err)
		return nil, fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
	}

	// 3. Syncing-CRM: не влияет на успех бронирования
	crm := uc.syncCRM(ctx, req, estimator)

	booking := &domain.Booking{
		Date:              req.Date,
		TimeSlot:          req.TimeSlot,
		EstimatorID:       req.EstimatorID,
		Contact:           req.Contact,
		Job:               req.Job,
		CreatedBy:         domain.ActorOrDefault(req.CreatedBy),
		RFMSCustomerID:    crm.CustomerID,
		RFMSOpportunityID: crm.OpportunityID,
	}

	// 4-5. Persisting + Logging в одной транзакции: у каждого бронирования ровно одна запись Created
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotAlreadyBooked) {
				return ErrSlotAlreadyBooked
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		_, err := uc.logRepo.Append(txCtx, &domain.BookingLogEntry{
			BookingID: booking.ID,
			Action:    domain.ActionCreated,
			ChangedBy: booking.CreatedBy,
			Details:   createdDetails(crm.Fragments),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to append log entry: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotAlreadyBooked) {
			// Параллельный запрос успел занять слот между предпроверкой и вставкой
			uc.logger.Warn("CreateBooking: slot claimed concurrently date=%s, slot=%s, estimator=%d, rfms_customer=%s",
				req.Date, req.TimeSlot, req.EstimatorID, crm.CustomerID)
			uc.metrics.IncBookingOperation(operationCreate, "conflict")
			return nil, ErrSlotAlreadyBooked
		}
		uc.logger.Error("CreateBooking: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, rfms_customer=%s, rfms_opportunity=%s",
		booking.ID, booking.RFMSCustomerID, booking.RFMSOpportunityID)
	uc.metrics.IncBookingOperation(operationCreate, "created")

	fragments := crm.Fragments
	if fragments == nil {
		fragments = []string{}
	}

	return &Response{
		Booking:           booking,
		ID:                booking.ID,
		RFMSCustomerID:    booking.RFMSCustomerID,
		RFMSOpportunityID: booking.RFMSOpportunityID,
		Log:               fragments,
	}, nil
}

func (uc *UseCase) checkEstimator(ctx context.Context, req *Request) (*domain.Estimator, error) {
	estimator, err := uc.estimatorRepo.GetEstimator(ctx, req.EstimatorID)
	if err != nil {
		if errors.Is(err, rosterRepo.ErrEstimatorNotFound) {
			uc.logger.Warn("CreateBooking: estimator id=%d not found", req.EstimatorID)
			return nil, ErrEstimatorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get estimator id=%d: %v", req.EstimatorID, err)
		return nil, fmt.Errorf("%w: failed to get estimator: %v", ErrInternal, err)
	}

	date, _ := domain.ParseDate(req.Date)
	excluded, err := uc.timeOffRepo.IsExcluded(ctx, req.EstimatorID, req.Date, domain.Weekday(date))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check time off estimator=%d: %v", req.EstimatorID, err)
		return nil, fmt.Errorf("%w: failed to check time off: %v", ErrInternal, err)
	}
	if excluded {
		uc.logger.Warn("CreateBooking: estimator id=%d is off on %s", req.EstimatorID, req.Date)
		return nil, ErrEstimatorUnavailable
	}

	return estimator, nil
}
