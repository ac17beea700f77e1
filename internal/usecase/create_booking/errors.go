package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных или неполных входных данных
	ErrInvalidInput = errors.New("create_booking: missing required fields")

	// ErrSlotAlreadyBooked возвращается, когда слот занят (предпроверкой или ограничением уникальности в БД)
	ErrSlotAlreadyBooked = errors.New("create_booking: slot already booked, please refresh and retry")

	// ErrEstimatorNotFound возвращается, когда оценщик не найден
	ErrEstimatorNotFound = errors.New("create_booking: estimator not found")

	// ErrEstimatorUnavailable возвращается, когда у оценщика отсутствие в эту дату
	ErrEstimatorUnavailable = errors.New("create_booking: estimator is off on this date")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
