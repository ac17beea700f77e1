package get_availability

import "github.com/m04kA/estimate-scheduler/internal/domain"

// Request модель запроса доступности на дату
type Request struct {
	Date string // YYYY-MM-DD
}

// Response доступность всех активных оценщиков на дату
type Response struct {
	Date       string
	Estimators []EstimatorAvailability
}

// EstimatorAvailability доступность одного оценщика
type EstimatorAvailability struct {
	Estimator *domain.Estimator
	Off       bool   // оценщик исключен на эту дату
	OffLabel  string // метка отсутствия, если Off
	Slots     []Slot
}

// Slot состояние одного слота
type Slot struct {
	TimeSlot  string
	Free      bool   // нет бронирования на (дата, слот, оценщик)
	BookingID *int64 // бронирование, занимающее слот
}
