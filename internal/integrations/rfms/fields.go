package rfms

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Порядок перебора полей фиксирован: RFMS возвращает идентификаторы под разными именами
var (
	customerIDFields    = []string{"customerId", "customerID", "CustomerId", "id", "Id"}
	opportunityIDFields = []string{"opportunityId", "opportunityID", "OpportunityId", "id", "Id", "number"}

	// errorMessageFields поля с текстом ошибки в не-2xx ответе
	errorMessageFields = []string{"Message", "message", "error", "detail", "title"}

	// resultListFields где искать список результатов поиска
	resultListFields = []string{"detail", "result", "customers", "data"}

	// nestedObjectFields куда RFMS иногда заворачивает созданную запись
	nestedObjectFields = []string{"result", "detail"}
)

// Body разобранный ответ RFMS: объект, массив или {"raw": text} для не-JSON ответа
type Body struct {
	value any
}

// NewBody оборачивает уже разобранное значение
func NewBody(value any) Body {
	return Body{value: value}
}

// Value исходное значение
func (b Body) Value() any {
	return b.value
}

// Object тело как JSON объект
func (b Body) Object() (map[string]any, bool) {
	obj, ok := b.value.(map[string]any)
	return obj, ok
}

// Array тело как JSON массив
func (b Body) Array() ([]any, bool) {
	arr, ok := b.value.([]any)
	return arr, ok
}

// Raw текст не-JSON ответа
func (b Body) Raw() string {
	obj, ok := b.Object()
	if !ok {
		return ""
	}
	raw, _ := obj["raw"].(string)
	return raw
}

// ErrorMessage человекочитаемое сообщение об ошибке из общепринятых полей
func (b Body) ErrorMessage() string {
	obj, ok := b.Object()
	if !ok {
		return ""
	}
	return firstString(obj, errorMessageFields)
}

// ExtractID ищет идентификатор по полям в порядке приоритета:
// сначала на верхнем уровне, затем во вложенных result и detail
func (b Body) ExtractID(fields []string) (string, bool) {
	obj, ok := b.Object()
	if !ok {
		return "", false
	}
	return extractID(obj, fields)
}

// ResultList список записей из ответа поиска: массив верхнего уровня или под одним из известных ключей
func (b Body) ResultList() []any {
	if arr, ok := b.Array(); ok {
		return arr
	}

	obj, ok := b.Object()
	if !ok {
		return nil
	}

	for _, key := range resultListFields {
		switch v := obj[key].(type) {
		case []any:
			return v
		case map[string]any:
			// {"detail": {"customers": [...]}}
			for _, nestedKey := range resultListFields {
				if arr, ok := v[nestedKey].([]any); ok {
					return arr
				}
			}
		}
	}

	return nil
}

func extractID(obj map[string]any, fields []string) (string, bool) {
	if id := firstString(obj, fields); id != "" {
		return id, true
	}

	for _, key := range nestedObjectFields {
		if nested, ok := obj[key].(map[string]any); ok {
			if id := firstString(nested, fields); id != "" {
				return id, true
			}
		}
	}

	return "", false
}

// firstString первое непустое скалярное значение среди полей
func firstString(obj map[string]any, fields []string) string {
	for _, field := range fields {
		if s := scalarString(obj[field]); s != "" {
			return s
		}
	}
	return ""
}

func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int, int64:
		return fmt.Sprintf("%d", v)
	default:
		return ""
	}
}
