package rfms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/m04kA/estimate-scheduler/internal/domain"
)

const (
	customerSearchEndpoint = "customers/find"
	customerEndpoint       = "customer"
)

// ResolveCustomer находит клиента по телефону или создает нового
// Первое совпадение выигрывает. Одна попытка на каждый шаг, без повторов
func (c *Client) ResolveCustomer(ctx context.Context, contact domain.Contact) (Resolution, error) {
	customerID, found, err := c.findCustomer(ctx, contact.Phone)
	if err != nil {
		return Resolution{}, err
	}
	if found {
		c.log.Info("Client.ResolveCustomer: customer found customer_id=%s", customerID)
		return Resolution{CustomerID: customerID}, nil
	}

	body, err := c.Call(ctx, http.MethodPost, customerEndpoint, c.customerRequest("", contact))
	if err != nil {
		return Resolution{}, err
	}

	customerID, ok := body.ExtractID(customerIDFields)
	if !ok {
		return Resolution{}, fmt.Errorf("%w: customer create", ErrDataShape)
	}

	c.log.Info("Client.ResolveCustomer: customer created customer_id=%s", customerID)
	return Resolution{CustomerID: customerID, Created: true}, nil
}

// UpdateCustomer отправляет новые контактные данные в существующую запись клиента
func (c *Client) UpdateCustomer(ctx context.Context, customerID string, contact domain.Contact) error {
	endpoint := customerEndpoint + "/" + url.PathEscape(customerID)
	if _, err := c.Call(ctx, http.MethodPut, endpoint, c.customerRequest(customerID, contact)); err != nil {
		return err
	}
	return nil
}

func (c *Client) findCustomer(ctx context.Context, phone string) (string, bool, error) {
	body, err := c.Call(ctx, http.MethodPost, customerSearchEndpoint, customerSearchRequest{
		SearchText:       strings.TrimSpace(phone),
		IncludeCustomers: true,
		IncludeProspects: true,
	})
	if err != nil {
		return "", false, err
	}

	matches := body.ResultList()
	if len(matches) == 0 {
		return "", false, nil
	}

	first, ok := matches[0].(map[string]any)
	if !ok {
		return "", false, fmt.Errorf("%w: customer search match is not an object", ErrDataShape)
	}

	customerID, ok := extractID(first, customerIDFields)
	if !ok {
		return "", false, fmt.Errorf("%w: customer search", ErrDataShape)
	}

	return customerID, true, nil
}

func (c *Client) customerRequest(customerID string, contact domain.Contact) customerRequest {
	address := customerAddress{
		FirstName:  strings.TrimSpace(contact.FirstName),
		LastName:   strings.TrimSpace(contact.LastName),
		Address1:   strings.TrimSpace(contact.Address),
		City:       strings.TrimSpace(contact.City),
		State:      strings.TrimSpace(contact.State),
		PostalCode: strings.TrimSpace(contact.Zip),
	}

	return customerRequest{
		CustomerID:            customerID,
		CustomerType:          defaultCustomerType,
		EntryType:             defaultEntryType,
		CustomerAddress:       address,
		ShipToAddress:         address,
		Phone1:                strings.TrimSpace(contact.Phone),
		Email:                 strings.TrimSpace(contact.Email),
		TaxStatus:             defaultTaxStatus,
		TaxMethod:             defaultTaxMethod,
		PreferredSalesperson1: c.cfg.Salesperson,
		StoreNumber:           c.cfg.StoreNumber,
	}
}
