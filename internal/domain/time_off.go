package domain

// TimeOff период, когда оценщик недоступен
// Либо разовый (Date), либо еженедельный (DayOfWeek), в зависимости от Recurring
type TimeOff struct {
	ID          int64
	EstimatorID int64
	Date        *string // YYYY-MM-DD, только для разовых
	DayOfWeek   *int    // 0=Monday..6=Sunday, только для еженедельных
	Recurring   bool
	Label       string
}

// IsValidDayOfWeek проверяет диапазон 0..6
func IsValidDayOfWeek(day int) bool {
	return day >= 0 && day <= 6
}
