package roster

import "errors"

var (
	// ErrEstimatorNotFound возвращается, когда оценщик не найден
	ErrEstimatorNotFound = errors.New("roster.repository: estimator not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("roster.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("roster.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("roster.repository: failed to scan row")
)
