package domain

import (
	"strings"
	"time"
)

// Booking выезд оценщика к клиенту в конкретный слот
// Тройка (Date, TimeSlot, EstimatorID) уникальна среди существующих бронирований
type Booking struct {
	ID          int64
	Date        string // YYYY-MM-DD
	TimeSlot    string // непрозрачная метка слота, например "9:00 AM-11:00 AM"
	EstimatorID int64

	Contact Contact
	Job     Job

	CreatedAt time.Time
	CreatedBy string

	// Пустые строки, пока синхронизация с RFMS не удалась
	RFMSCustomerID    string
	RFMSOpportunityID string
}

// Contact контактные данные клиента
type Contact struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Address   string
	City      string
	State     string
	Zip       string
}

// FullName имя и фамилия через пробел
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// FullAddress адрес одной строкой: "1 Main St, Springfield, IL 62701"
func (c Contact) FullAddress() string {
	parts := make([]string, 0, 3)
	if s := strings.TrimSpace(c.Address); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(c.City); s != "" {
		parts = append(parts, s)
	}
	stateZip := strings.TrimSpace(strings.TrimSpace(c.State) + " " + strings.TrimSpace(c.Zip))
	if stateZip != "" {
		parts = append(parts, stateZip)
	}
	return strings.Join(parts, ", ")
}

// Job описание работ
type Job struct {
	FlooringType string
	Rooms        string
	Notes        string
}

// Slot ключ уникальности бронирования
type Slot struct {
	Date        string
	TimeSlot    string
	EstimatorID int64
}

// Slot возвращает слот, который занимает бронирование
func (b *Booking) Slot() Slot {
	return Slot{Date: b.Date, TimeSlot: b.TimeSlot, EstimatorID: b.EstimatorID}
}

// HasRFMSCustomer есть ли у бронирования связанный клиент в RFMS
func (b *Booking) HasRFMSCustomer() bool {
	return b.RFMSCustomerID != ""
}

// BookingsFilter фильтр списка бронирований
type BookingsFilter struct {
	StartDate   *string // включительно, YYYY-MM-DD
	EndDate     *string // включительно, YYYY-MM-DD
	EstimatorID *int64
}

// ParseDate разбирает календарную дату в формате DateFormat
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateFormat, strings.TrimSpace(value))
}

// Weekday день недели с понедельника: 0=Monday..6=Sunday
func Weekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}
