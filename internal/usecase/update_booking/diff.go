package update_booking

import (
	"fmt"

	"github.com/m04kA/estimate-scheduler/internal/domain"
)

type field struct {
	label string
	value func(c domain.Contact, j domain.Job) string
}

// editableFields фиксированный список полей для журнала изменений
var editableFields = []field{
	{"First Name", func(c domain.Contact, _ domain.Job) string { return c.FirstName }},
	{"Last Name", func(c domain.Contact, _ domain.Job) string { return c.LastName }},
	{"Phone", func(c domain.Contact, _ domain.Job) string { return c.Phone }},
	{"Email", func(c domain.Contact, _ domain.Job) string { return c.Email }},
	{"Address", func(c domain.Contact, _ domain.Job) string { return c.Address }},
	{"City", func(c domain.Contact, _ domain.Job) string { return c.City }},
	{"State", func(c domain.Contact, _ domain.Job) string { return c.State }},
	{"Zip", func(c domain.Contact, _ domain.Job) string { return c.Zip }},
	{"Flooring Type", func(_ domain.Contact, j domain.Job) string { return j.FlooringType }},
	{"Rooms", func(_ domain.Contact, j domain.Job) string { return j.Rooms }},
	{"Notes", func(_ domain.Contact, j domain.Job) string { return j.Notes }},
}

// diffFields фрагменты `Label: "old" -> "new"` для каждого измененного поля
func diffFields(old *domain.Booking, contact domain.Contact, job domain.Job) []string {
	fragments := make([]string, 0)
	for _, f := range editableFields {
		before := f.value(old.Contact, old.Job)
		after := f.value(contact, job)
		if before != after {
			fragments = append(fragments, fmt.Sprintf("%s: \"%s\" -> \"%s\"", f.label, before, after))
		}
	}
	return fragments
}
