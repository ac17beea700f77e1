package timeoff

import "errors"

var (
	// ErrTimeOffNotFound возвращается, когда запись об отсутствии не найдена
	ErrTimeOffNotFound = errors.New("time off not found")

	// ErrEstimatorNotFound возвращается, когда оценщик не найден
	ErrEstimatorNotFound = errors.New("estimator not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
