package update_booking

import (
	"github.com/m04kA/estimate-scheduler/internal/domain"
	"github.com/m04kA/estimate-scheduler/internal/service/bookings/models"
	updateBooking "github.com/m04kA/estimate-scheduler/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	// Клиент может прислать бронирование целиком, эти поля принимаются и игнорируются
	Date        string `json:"date,omitempty"`
	TimeSlot    string `json:"timeSlot,omitempty"`
	EstimatorID int64  `json:"estimatorId,omitempty"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`

	FlooringType string `json:"flooringType"`
	Rooms        string `json:"rooms"`
	Notes        string `json:"notes"`

	// Поля ответа GET, которые клиент тоже может вернуть как есть
	ID                int64  `json:"id,omitempty"`
	RFMSCustomerID    string `json:"rfmsCustomerId,omitempty"`
	RFMSOpportunityID string `json:"rfmsOpportunityId,omitempty"`
	CreatedBy         string `json:"createdBy,omitempty"`
	CreatedAt         string `json:"createdAt,omitempty"`

	ChangedBy string `json:"changedBy,omitempty"`
}

// UpdateBookingResponse HTTP response model
type UpdateBookingResponse struct {
	Booking *models.BookingResponse `json:"booking"`
	Details string                  `json:"details"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(id int64, actor string) *updateBooking.Request {
	changedBy := r.ChangedBy
	if changedBy == "" {
		changedBy = actor
	}

	return &updateBooking.Request{
		ID: id,
		Contact: domain.Contact{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Phone:     r.Phone,
			Email:     r.Email,
			Address:   r.Address,
			City:      r.City,
			State:     r.State,
			Zip:       r.Zip,
		},
		Job: domain.Job{
			FlooringType: r.FlooringType,
			Rooms:        r.Rooms,
			Notes:        r.Notes,
		},
		ChangedBy: changedBy,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *UpdateBookingResponse {
	return &UpdateBookingResponse{
		Booking: models.FromDomainBooking(resp.Booking),
		Details: resp.Details,
	}
}
