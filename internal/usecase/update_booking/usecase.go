package update_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/estimate-scheduler/internal/domain"
	bookingRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/booking"
)

const operationUpdate = "update"

// UseCase редактирование контактных данных и описания работ бронирования
type UseCase struct {
	bookingRepo BookingRepository
	logRepo     BookingLogRepository
	crm         CRMClient
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	logRepo BookingLogRepository,
	crm CRMClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		logRepo:     logRepo,
		crm:         crm,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case редактирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	normalizeRequest(req)

	uc.logger.Info("UpdateBooking: id=%d, actor=%s", req.ID, domain.ActorOrDefault(req.ChangedBy))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		uc.metrics.IncBookingOperation(operationUpdate, "rejected")
		return nil, err
	}

	existing, err := uc.bookingRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%d not found", req.ID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	fragments := diffFields(existing, req.Contact, req.Job)
	pushCRM := len(fragments) > 0 && existing.HasRFMSCustomer() && uc.crm.Enabled()
	if pushCRM {
		// Фрагмент пишется независимо от исхода запроса в RFMS
		fragments = append(fragments, domain.DetailsCRMCustomerUpdated)
	}

	details := domain.DetailsNoChanges
	if len(fragments) > 0 {
		details = strings.Join(fragments, "; ")
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.UpdateDetails(txCtx, req.ID, req.Contact, req.Job); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		_, err := uc.logRepo.Append(txCtx, &domain.BookingLogEntry{
			BookingID: req.ID,
			Action:    domain.ActionEdited,
			ChangedBy: req.ChangedBy,
			Details:   details,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to append log entry: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("UpdateBooking: id=%d: %v", req.ID, err)
		return nil, err
	}

	if pushCRM {
		uc.pushCustomer(ctx, existing.RFMSCustomerID, req.Contact)
	}

	updated := *existing
	updated.Contact = req.Contact
	updated.Job = req.Job

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d, changes=%d", req.ID, len(fragments))
	uc.metrics.IncBookingOperation(operationUpdate, "updated")

	return &Response{Booking: &updated, Details: details}, nil
}

// pushCustomer обновление клиента в RFMS: результат только логируется
func (uc *UseCase) pushCustomer(ctx context.Context, customerID string, contact domain.Contact) {
	if err := uc.crm.UpdateCustomer(ctx, customerID, contact); err != nil {
		uc.logger.Warn("UpdateBooking: RFMS customer update failed customer_id=%s: %v", customerID, err)
		uc.metrics.IncCRMSyncStep("customer_update", "failed")
		return
	}
	uc.metrics.IncCRMSyncStep("customer_update", "updated")
}

func normalizeRequest(req *Request) {
	req.Contact = domain.Contact{
		FirstName: strings.TrimSpace(req.Contact.FirstName),
		LastName:  strings.TrimSpace(req.Contact.LastName),
		Phone:     strings.TrimSpace(req.Contact.Phone),
		Email:     strings.TrimSpace(req.Contact.Email),
		Address:   strings.TrimSpace(req.Contact.Address),
		City:      strings.TrimSpace(req.Contact.City),
		State:     strings.TrimSpace(req.Contact.State),
		Zip:       strings.TrimSpace(req.Contact.Zip),
	}
	req.Job = domain.Job{
		FlooringType: strings.TrimSpace(req.Job.FlooringType),
		Rooms:        strings.TrimSpace(req.Job.Rooms),
		Notes:        strings.TrimSpace(req.Job.Notes),
	}
	req.ChangedBy = domain.ActorOrDefault(strings.TrimSpace(req.ChangedBy))
}

func validateRequest(req *Request) error {
	if req.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	missing := make([]string, 0)
	if req.Contact.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if req.Contact.LastName == "" {
		missing = append(missing, "last_name")
	}
	if req.Contact.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}

	if len([]rune(req.Job.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}
