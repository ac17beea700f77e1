package get_availability

import "github.com/m04kA/estimate-scheduler/internal/domain"

// buildSlots раскладывает бронирования оценщика по настроенным слотам
// Бронирования на метки вне списка в сетку не попадают
func buildSlots(slotLabels []string, estimatorID int64, occupied map[domain.Slot]int64, date string) []Slot {
	slots := make([]Slot, 0, len(slotLabels))
	for _, label := range slotLabels {
		slot := Slot{TimeSlot: label, Free: true}
		if id, ok := occupied[domain.Slot{Date: date, TimeSlot: label, EstimatorID: estimatorID}]; ok {
			bookingID := id
			slot.Free = false
			slot.BookingID = &bookingID
		}
		slots = append(slots, slot)
	}
	return slots
}

// offByEstimator первая метка отсутствия для каждого оценщика
func offByEstimator(entries []*domain.TimeOff) map[int64]string {
	result := make(map[int64]string, len(entries))
	for _, e := range entries {
		if _, ok := result[e.EstimatorID]; !ok {
			result[e.EstimatorID] = e.Label
		}
	}
	return result
}
