package create_booking

import (
	"github.com/m04kA/estimate-scheduler/internal/domain"
	"github.com/m04kA/estimate-scheduler/internal/service/bookings/models"
	createBooking "github.com/m04kA/estimate-scheduler/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date        string `json:"date"`     // "2024-06-01"
	TimeSlot    string `json:"timeSlot"` // "9:00 AM-11:00 AM"
	EstimatorID int64  `json:"estimatorId"`

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

	CreatedBy string `json:"createdBy,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking *models.BookingResponse `json:"booking"`
	SyncLog []string                `json:"syncLog"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// actor используется, если createdBy не передан в теле
func (r *CreateBookingRequest) ToUseCaseRequest(actor string) *createBooking.Request {
	createdBy := r.CreatedBy
	if createdBy == "" {
		createdBy = actor
	}

	return &createBooking.Request{
		Date:        r.Date,
		TimeSlot:    r.TimeSlot,
		EstimatorID: r.EstimatorID,
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
		CreatedBy: createdBy,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	syncLog := resp.Log
	if syncLog == nil {
		syncLog = []string{}
	}
	return &CreateBookingResponse{
		Booking: models.FromDomainBooking(resp.Booking),
		SyncLog: syncLog,
	}
}
