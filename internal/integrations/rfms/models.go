package rfms

import "github.com/m04kA/estimate-scheduler/internal/domain"

// Классификация нового клиента по умолчанию
const (
	defaultCustomerType = "RESIDENTIAL"
	defaultEntryType    = "Customer"
	defaultTaxStatus    = "Tax"
	defaultTaxMethod    = "SalesTax"
)

// Resolution результат поиска или создания клиента
type Resolution struct {
	CustomerID string
	Created    bool
}

// OpportunityDetails данные бронирования для заметки в сделке
type OpportunityDetails struct {
	Date          string
	TimeSlot      string
	EstimatorName string
	Contact       domain.Contact
	Job           domain.Job
}

type customerSearchRequest struct {
	SearchText       string `json:"searchText"`
	IncludeCustomers bool   `json:"includeCustomers"`
	IncludeProspects bool   `json:"includeProspects"`
}

type customerAddress struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Address1   string `json:"address1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

type customerRequest struct {
	CustomerID            string          `json:"customerId,omitempty"`
	CustomerType          string          `json:"customerType"`
	EntryType             string          `json:"entryType"`
	CustomerAddress       customerAddress `json:"customerAddress"`
	ShipToAddress         customerAddress `json:"shipToAddress"`
	Phone1                string          `json:"phone1"`
	Email                 string          `json:"email"`
	TaxStatus             string          `json:"taxStatus"`
	TaxMethod             string          `json:"taxMethod"`
	PreferredSalesperson1 string          `json:"preferredSalesperson1,omitempty"`
	StoreNumber           int             `json:"storeNumber"`
}

type opportunityRequest struct {
	CustomerID   string `json:"customerId"`
	Title        string `json:"title"`
	Note         string `json:"note"`
	StoreNumber  int    `json:"storeNumber"`
	Salesperson1 string `json:"salesperson1,omitempty"`
}
