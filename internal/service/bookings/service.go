package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/estimate-scheduler/internal/domain"
	bookingRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/booking"
	"github.com/m04kA/estimate-scheduler/internal/service/bookings/models"
)

const operationCancel = "cancel"

// Service сервис для чтения, отмены бронирований и их журнала
type Service struct {
	bookingRepo BookingRepository
	logRepo     BookingLogRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	logRepo BookingLogRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logRepo:     logRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования за период и/или по оценщику
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.From != nil {
		logMsg += fmt.Sprintf(", from=%s", *req.From)
	}
	if req.To != nil {
		logMsg += fmt.Sprintf(", to=%s", *req.To)
	}
	if req.EstimatorID != nil {
		logMsg += fmt.Sprintf(", estimator=%d", *req.EstimatorID)
	}
	s.logger.Info(logMsg)

	for _, date := range []*string{req.From, req.To} {
		if date == nil {
			continue
		}
		if _, err := domain.ParseDate(*date); err != nil {
			s.logger.Warn("List: invalid date=%s", *date)
			return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
		}
	}

	if req.From != nil && req.To != nil && *req.From > *req.To {
		return nil, fmt.Errorf("%w: from is after to", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		StartDate:   req.From,
		EndDate:     req.To,
		EstimatorID: req.EstimatorID,
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование: запись Cancelled в журнал, затем удаление
// Обе операции в одной транзакции, удаление несуществующего бронирования откатывает запись журнала
func (s *Service) Cancel(ctx context.Context, bookingID int64, actor string) error {
	actor = domain.ActorOrDefault(actor)
	s.logger.Info("Cancel: cancelling booking id=%d by actor=%s", bookingID, actor)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return err
		}

		_, err = s.logRepo.Append(txCtx, &domain.BookingLogEntry{
			BookingID: bookingID,
			Action:    domain.ActionCancelled,
			ChangedBy: actor,
			Details:   cancelledDetails(booking),
		})
		if err != nil {
			return err
		}

		return s.bookingRepo.Delete(txCtx, bookingID)
	})

	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	s.metrics.IncBookingOperation(operationCancel, "cancelled")
	return nil
}

// ListLog возвращает журнал бронирования, новые записи первыми
// Журнал доступен и после отмены
func (s *Service) ListLog(ctx context.Context, bookingID int64) (*models.LogListResponse, error) {
	s.logger.Info("ListLog: fetching log for booking id=%d", bookingID)

	entries, err := s.logRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		s.logger.Error("ListLog: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ListLog - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLog(entries), nil
}

func cancelledDetails(b *domain.Booking) string {
	return fmt.Sprintf("%s: %s %s (%s)", domain.DetailsCancelled, b.Date, b.TimeSlot, b.Contact.FullName())
}
