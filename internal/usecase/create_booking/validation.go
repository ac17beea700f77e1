package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/estimate-scheduler/internal/domain"
)

// normalizeRequest обрезает пробелы во всех строковых полях
func normalizeRequest(req *Request) {
	req.Date = strings.TrimSpace(req.Date)
	req.TimeSlot = strings.TrimSpace(req.TimeSlot)
	req.Contact = domain.Contact{
		FirstName: strings.TrimSpace(req.Contact.FirstName),
		LastName:  strings.TrimSpace(req.Contact.LastName),
		Phone:     strings.TrimSpace(req.Contact.Phone),
		Email:     strings.TrimSpace(req.Contact.Email),
		Address:   strings.TrimSpace(req.Contact.Address),
		City:      strings.TrimSpace(req.Contact.City),
		State:     strings.TrimSpace(req.Contact.State),
		Zip:       strings.TrimSpace(req.Contact.Zip),
	}
	req.Job = domain.Job{
		FlooringType: strings.TrimSpace(req.Job.FlooringType),
		Rooms:        strings.TrimSpace(req.Job.Rooms),
		Notes:        strings.TrimSpace(req.Job.Notes),
	}
	req.CreatedBy = strings.TrimSpace(req.CreatedBy)
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	missing := make([]string, 0)
	if req.Date == "" {
		missing = append(missing, "date")
	}
	if req.TimeSlot == "" {
		missing = append(missing, "time_slot")
	}
	if req.EstimatorID <= 0 {
		missing = append(missing, "estimator_id")
	}
	if req.Contact.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if req.Contact.LastName == "" {
		missing = append(missing, "last_name")
	}
	if req.Contact.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}

	if _, err := domain.ParseDate(req.Date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.TimeSlot) > domain.MaxTimeSlotLength {
		return fmt.Errorf("%w: time_slot is too long", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.Contact.FirstName) > domain.MaxNameLength ||
		utf8.RuneCountInString(req.Contact.LastName) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.Job.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}
