package get_booking_log

import (
	"net/http"

	"github.com/m04kA/estimate-scheduler/internal/api/handlers"
)

const msgInvalidBookingID = "invalid booking id"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/log
// Журнал отдается и для отмененных бронирований
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/log - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.ListLog(r.Context(), bookingID)
	if err != nil {
		h.logger.Error("GET /bookings/{id}/log - Failed to get log: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
