package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/estimate-scheduler/internal/service/bookings/models"
)

// ToServiceRequest создает запрос к сервису из query параметров
// Все параметры опциональны: from, to (YYYY-MM-DD), estimatorId
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if from := query.Get("from"); from != "" {
		req.From = &from
	}
	if to := query.Get("to"); to != "" {
		req.To = &to
	}

	if raw := query.Get("estimatorId"); raw != "" {
		estimatorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || estimatorID <= 0 {
			return nil, fmt.Errorf("invalid estimatorId %q", raw)
		}
		req.EstimatorID = &estimatorID
	}

	return req, nil
}
