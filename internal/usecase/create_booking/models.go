package create_booking

import "github.com/m04kA/estimate-scheduler/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	Date        string // YYYY-MM-DD
	TimeSlot    string
	EstimatorID int64
	Contact     domain.Contact
	Job         domain.Job
	CreatedBy   string // метка автора, пустая -> "Unknown"
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking           *domain.Booking
	ID                int64
	RFMSCustomerID    string
	RFMSOpportunityID string
	Log               []string // фрагменты синхронизации с RFMS в порядке выполнения
}
