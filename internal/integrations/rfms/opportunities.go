package rfms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	opportunityEndpoint = "opportunity"

	// opportunityAltEndpoint имя эндпоинта в части версий API
	opportunityAltEndpoint = "opportunities"
)

// CreateOpportunity создает сделку для клиента с заметкой о замере
// При ошибке повторяет запрос один раз на альтернативный эндпоинт
func (c *Client) CreateOpportunity(ctx context.Context, customerID string, details OpportunityDetails) (string, error) {
	payload := opportunityRequest{
		CustomerID:   customerID,
		Title:        opportunityTitle(details),
		Note:         BuildOpportunityNote(details),
		StoreNumber:  c.cfg.StoreNumber,
		Salesperson1: c.cfg.Salesperson,
	}

	body, err := c.Call(ctx, http.MethodPost, opportunityEndpoint, payload)
	if err != nil && !errors.Is(err, ErrDisabled) && !errors.Is(err, ErrNoSession) {
		c.log.Warn("Client.CreateOpportunity: retrying with alternate endpoint customer_id=%s: %v", customerID, err)
		body, err = c.Call(ctx, http.MethodPost, opportunityAltEndpoint, payload)
	}
	if err != nil {
		return "", err
	}

	opportunityID, ok := body.ExtractID(opportunityIDFields)
	if !ok {
		return "", fmt.Errorf("%w: opportunity create", ErrDataShape)
	}

	c.log.Info("Client.CreateOpportunity: opportunity created customer_id=%s, opportunity_id=%s", customerID, opportunityID)
	return opportunityID, nil
}

// BuildOpportunityNote заметка сделки: единственный канал, по которому детали замера попадают в RFMS
func BuildOpportunityNote(d OpportunityDetails) string {
	lines := []string{
		fmt.Sprintf("Estimate appointment: %s %s", d.Date, d.TimeSlot),
		"Estimator: " + d.EstimatorName,
		"Flooring: " + d.Job.FlooringType,
		"Rooms: " + d.Job.Rooms,
		"Address: " + d.Contact.FullAddress(),
		"Notes: " + d.Job.Notes,
	}
	return strings.Join(lines, "\n")
}

func opportunityTitle(d OpportunityDetails) string {
	return strings.TrimSpace(fmt.Sprintf("Estimate %s %s", d.Contact.FullName(), d.Date))
}
