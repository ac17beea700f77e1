package get_availability

import getAvailability "github.com/m04kA/estimate-scheduler/internal/usecase/get_availability"

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date       string                  `json:"date"`
	Estimators []EstimatorAvailability `json:"estimators"`
}

// EstimatorAvailability доступность оценщика
type EstimatorAvailability struct {
	EstimatorID int64  `json:"estimatorId"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	RegionID    *int64 `json:"regionId,omitempty"`
	Off         bool   `json:"off"`
	OffLabel    string `json:"offLabel,omitempty"`
	Slots       []Slot `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	TimeSlot  string `json:"timeSlot"`
	Free      bool   `json:"free"`
	BookingID *int64 `json:"bookingId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	estimators := make([]EstimatorAvailability, len(resp.Estimators))
	for i, e := range resp.Estimators {
		slots := make([]Slot, len(e.Slots))
		for j, s := range e.Slots {
			slots[j] = Slot{TimeSlot: s.TimeSlot, Free: s.Free, BookingID: s.BookingID}
		}
		estimators[i] = EstimatorAvailability{
			EstimatorID: e.Estimator.ID,
			Name:        e.Estimator.Name,
			Color:       e.Estimator.Color,
			RegionID:    e.Estimator.RegionID,
			Off:         e.Off,
			OffLabel:    e.OffLabel,
			Slots:       slots,
		}
	}

	return &AvailabilityResponse{Date: resp.Date, Estimators: estimators}
}
