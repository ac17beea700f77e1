package domain

// Значения по умолчанию
const (
	DefaultActor        = "Unknown"
	DefaultTimeOffLabel = "Off"
	DefaultColor        = "#3b82f6"
)

// Ограничения на входные данные
const (
	MaxNameLength     = 255
	MaxTimeSlotLength = 64
	MaxNotesLength    = 4000
	MaxLabelLength    = 255
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
