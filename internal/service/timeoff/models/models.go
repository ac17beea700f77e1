package models

import "github.com/m04kA/estimate-scheduler/internal/domain"

// Request модели

// UpsertTimeOffRequest запрос на добавление отсутствия
// Для еженедельного отсутствия задается DayOfWeek, для разового Date
type UpsertTimeOffRequest struct {
	EstimatorID int64
	Recurring   bool
	Date        *string // YYYY-MM-DD
	DayOfWeek   *int    // 0=Monday..6=Sunday
	Label       string
}

// Response модели

// TimeOffResponse запись об отсутствии
type TimeOffResponse struct {
	ID          int64   `json:"id"`
	EstimatorID int64   `json:"estimatorId"`
	Recurring   bool    `json:"recurring"`
	Date        *string `json:"date,omitempty"`
	DayOfWeek   *int    `json:"dayOfWeek,omitempty"`
	Label       string  `json:"label"`
}

// UpsertTimeOffResponse результат добавления
// Created=false, если разовое отсутствие на эту дату уже было
type UpsertTimeOffResponse struct {
	TimeOff TimeOffResponse `json:"timeOff"`
	Created bool            `json:"created"`
}

// TimeOffListResponse список отсутствий оценщика
type TimeOffListResponse struct {
	TimeOff []TimeOffResponse `json:"timeOff"`
}

// CheckTimeOffResponse результат проверки даты
type CheckTimeOffResponse struct {
	EstimatorID int64  `json:"estimatorId"`
	Date        string `json:"date"`
	Off         bool   `json:"off"`
}

// Методы конвертации

// FromDomainTimeOff конвертирует domain модель в DTO
func FromDomainTimeOff(t *domain.TimeOff) TimeOffResponse {
	return TimeOffResponse{
		ID:          t.ID,
		EstimatorID: t.EstimatorID,
		Recurring:   t.Recurring,
		Date:        t.Date,
		DayOfWeek:   t.DayOfWeek,
		Label:       t.Label,
	}
}

// FromDomainTimeOffList конвертирует список domain моделей в DTO
func FromDomainTimeOffList(entries []*domain.TimeOff) *TimeOffListResponse {
	resp := &TimeOffListResponse{
		TimeOff: make([]TimeOffResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.TimeOff = append(resp.TimeOff, FromDomainTimeOff(e))
	}
	return resp
}
