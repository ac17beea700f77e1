package time_off

import (
	"errors"
	"net/http"

	"github.com/m04kA/estimate-scheduler/internal/api/handlers"
	"github.com/m04kA/estimate-scheduler/internal/service/timeoff"
)

const (
	msgInvalidEstimatorID = "invalid estimator id"
	msgInvalidTimeOffID   = "invalid time off id"
	msgInvalidRequestBody = "invalid request body"
	msgMissingDate        = "date is required"
	msgEstimatorNotFound  = "estimator not found"
	msgTimeOffNotFound    = "time off not found"
)

// Handler обработчики отсутствий оценщиков
type Handler struct {
	service TimeOffService
	logger  Logger
}

func NewHandler(service TimeOffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/estimators/{estimatorId}/time-off
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	estimatorID, err := handlers.PathInt64(r, "estimatorId")
	if err != nil {
		h.logger.Warn("GET /estimators/{id}/time-off - Invalid estimator ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstimatorID)
		return
	}

	result, err := h.service.List(r.Context(), estimatorID)
	if err != nil {
		h.logger.Error("GET /estimators/{id}/time-off - Failed to list: estimator_id=%d, error=%v", estimatorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Check GET /api/v1/estimators/{estimatorId}/time-off/check?date=
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	estimatorID, err := handlers.PathInt64(r, "estimatorId")
	if err != nil {
		h.logger.Warn("GET /estimators/{id}/time-off/check - Invalid estimator ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstimatorID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.service.IsTimeOff(r.Context(), estimatorID, date)
	if err != nil {
		switch {
		case errors.Is(err, timeoff.ErrInvalidInput):
			h.logger.Warn("GET /estimators/{id}/time-off/check - Invalid date: %s", date)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /estimators/{id}/time-off/check - Failed to check: estimator_id=%d, error=%v",
				estimatorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Upsert POST /api/v1/estimators/{estimatorId}/time-off
// 201 для новой записи, 200 если разовое отсутствие уже было
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	estimatorID, err := handlers.PathInt64(r, "estimatorId")
	if err != nil {
		h.logger.Warn("POST /estimators/{id}/time-off - Invalid estimator ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEstimatorID)
		return
	}

	var req UpsertTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /estimators/{id}/time-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(estimatorID))
	if err != nil {
		switch {
		case errors.Is(err, timeoff.ErrInvalidInput):
			h.logger.Warn("POST /estimators/{id}/time-off - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, timeoff.ErrEstimatorNotFound):
			h.logger.Warn("POST /estimators/{id}/time-off - Estimator not found: estimator_id=%d", estimatorID)
			handlers.RespondNotFound(w, msgEstimatorNotFound)

		default:
			h.logger.Error("POST /estimators/{id}/time-off - Failed to upsert: estimator_id=%d, error=%v",
				estimatorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	h.logger.Info("POST /estimators/{id}/time-off - Saved: time_off_id=%d, estimator_id=%d, created=%t",
		result.TimeOff.ID, estimatorID, result.Created)
	handlers.RespondJSON(w, status, result)
}

// Delete DELETE /api/v1/time-off/{timeOffId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	timeOffID, err := handlers.PathInt64(r, "timeOffId")
	if err != nil {
		h.logger.Warn("DELETE /time-off/{id} - Invalid time off ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeOffID)
		return
	}

	if err := h.service.Delete(r.Context(), timeOffID); err != nil {
		switch {
		case errors.Is(err, timeoff.ErrTimeOffNotFound):
			h.logger.Warn("DELETE /time-off/{id} - Not found: time_off_id=%d", timeOffID)
			handlers.RespondNotFound(w, msgTimeOffNotFound)

		default:
			h.logger.Error("DELETE /time-off/{id} - Failed to delete: time_off_id=%d, error=%v", timeOffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /time-off/{id} - Deleted: time_off_id=%d", timeOffID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
