package time_off

import "github.com/m04kA/estimate-scheduler/internal/service/timeoff/models"

// UpsertTimeOffRequest HTTP request model
type UpsertTimeOffRequest struct {
	Recurring bool    `json:"recurring"`
	Date      *string `json:"date,omitempty"`
	DayOfWeek *int    `json:"dayOfWeek,omitempty"`
	Label     string  `json:"label"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpsertTimeOffRequest) ToServiceRequest(estimatorID int64) *models.UpsertTimeOffRequest {
	return &models.UpsertTimeOffRequest{
		EstimatorID: estimatorID,
		Recurring:   r.Recurring,
		Date:        r.Date,
		DayOfWeek:   r.DayOfWeek,
		Label:       r.Label,
	}
}
