package update_booking

import "github.com/m04kA/estimate-scheduler/internal/domain"

// Request модель запроса на редактирование
// Дата, слот и оценщик не редактируются: их в запросе нет
type Request struct {
	ID        int64
	Contact   domain.Contact
	Job       domain.Job
	ChangedBy string
}

// Response модель ответа
type Response struct {
	Booking *domain.Booking
	Details string // текст записи журнала
}
