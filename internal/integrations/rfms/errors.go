package rfms

import (
	"errors"
	"fmt"
)

var (
	// ErrDisabled интеграция не настроена: нет учетных данных или выключена в конфиге
	ErrDisabled = errors.New("RFMS not configured")

	// ErrNoSession не удалось получить токен сессии
	ErrNoSession = errors.New("could not get RFMS session")

	// ErrRequestFailed транспортная ошибка: таймаут, DNS, обрыв соединения, битый JSON
	ErrRequestFailed = errors.New("RFMS request failed")

	// ErrDataShape в ответе нет ни одного из ожидаемых полей идентификатора
	ErrDataShape = errors.New("RFMS response has no identifier")
)

// StatusError ответ RFMS с кодом вне 2xx
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("RFMS error %d: %s", e.StatusCode, e.Message)
}

// IsUnavailable сообщает, что RFMS недоступна: выключена, без сессии, транспортная ошибка или не-2xx ответ
// ErrDataShape сюда не входит, хотя обрабатывается вызывающим кодом так же
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *StatusError
	return errors.Is(err, ErrDisabled) ||
		errors.Is(err, ErrNoSession) ||
		errors.Is(err, ErrRequestFailed) ||
		errors.As(err, &statusErr)
}
