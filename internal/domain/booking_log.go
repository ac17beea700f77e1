package domain

import "time"

// BookingAction тип события в журнале бронирования
type BookingAction string

const (
	ActionCreated   BookingAction = "Created"
	ActionEdited    BookingAction = "Edited"
	ActionCancelled BookingAction = "Cancelled"
)

// BookingLogEntry запись журнала изменений бронирования
// Журнал только дополняется, записи не меняются и не удаляются
type BookingLogEntry struct {
	ID        int64
	BookingID int64
	Action    BookingAction
	ChangedBy string
	Details   string
	CreatedAt time.Time
}

// ActorOrDefault подставляет DefaultActor для пустой метки
func ActorOrDefault(actor string) string {
	if actor == "" {
		return DefaultActor
	}
	return actor
}

// Фиксированные тексты записей журнала
const (
	DetailsCreated            = "Estimate created"
	DetailsNoChanges          = "Opened and saved (no changes)"
	DetailsCRMCustomerUpdated = "RFMS customer record updated"
	DetailsCancelled          = "Estimate cancelled"
)
