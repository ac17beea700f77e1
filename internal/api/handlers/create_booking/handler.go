package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/estimate-scheduler/internal/api/handlers"
	"github.com/m04kA/estimate-scheduler/internal/api/middleware"
	createBooking "github.com/m04kA/estimate-scheduler/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgSlotAlreadyBooked    = "this time slot was just booked by someone else, please refresh and retry"
	msgEstimatorNotFound    = "estimator not found"
	msgEstimatorUnavailable = "estimator is off on this date"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(middleware.ActorFromContext(r.Context())))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings - Slot already booked: date=%s, slot=%s, estimator_id=%d",
				req.Date, req.TimeSlot, req.EstimatorID)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, createBooking.ErrEstimatorNotFound):
			h.logger.Warn("POST /bookings - Estimator not found: estimator_id=%d", req.EstimatorID)
			handlers.RespondBadRequest(w, msgEstimatorNotFound)

		case errors.Is(err, createBooking.ErrEstimatorUnavailable):
			h.logger.Warn("POST /bookings - Estimator unavailable: estimator_id=%d, date=%s", req.EstimatorID, req.Date)
			handlers.RespondBadRequest(w, msgEstimatorUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, slot=%s, estimator_id=%d, error=%v",
				req.Date, req.TimeSlot, req.EstimatorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, estimator_id=%d",
		result.ID, req.EstimatorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
