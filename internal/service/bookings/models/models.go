package models

import (
	"time"

	"github.com/m04kA/estimate-scheduler/internal/domain"
)

// Request модели

// ListBookingsRequest фильтр списка бронирований
type ListBookingsRequest struct {
	From        *string // YYYY-MM-DD, включительно
	To          *string // YYYY-MM-DD, включительно
	EstimatorID *int64
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
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

	RFMSCustomerID    string `json:"rfmsCustomerId"`
	RFMSOpportunityID string `json:"rfmsOpportunityId"`

	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// LogEntryResponse запись журнала
type LogEntryResponse struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"bookingId"`
	Action    string    `json:"action"`
	ChangedBy string    `json:"changedBy"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}

// LogListResponse журнал бронирования, новые записи первыми
type LogListResponse struct {
	Entries []LogEntryResponse `json:"entries"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                b.ID,
		Date:              b.Date,
		TimeSlot:          b.TimeSlot,
		EstimatorID:       b.EstimatorID,
		FirstName:         b.Contact.FirstName,
		LastName:          b.Contact.LastName,
		Phone:             b.Contact.Phone,
		Email:             b.Contact.Email,
		Address:           b.Contact.Address,
		City:              b.Contact.City,
		State:             b.Contact.State,
		Zip:               b.Contact.Zip,
		FlooringType:      b.Job.FlooringType,
		Rooms:             b.Job.Rooms,
		Notes:             b.Job.Notes,
		RFMSCustomerID:    b.RFMSCustomerID,
		RFMSOpportunityID: b.RFMSOpportunityID,
		CreatedBy:         b.CreatedBy,
		CreatedAt:         b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainLog конвертирует журнал в DTO
func FromDomainLog(entries []*domain.BookingLogEntry) *LogListResponse {
	resp := &LogListResponse{
		Entries: make([]LogEntryResponse, 0, len(entries)),
	}

	for _, e := range entries {
		resp.Entries = append(resp.Entries, LogEntryResponse{
			ID:        e.ID,
			BookingID: e.BookingID,
			Action:    string(e.Action),
			ChangedBy: e.ChangedBy,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		})
	}

	return resp
}
