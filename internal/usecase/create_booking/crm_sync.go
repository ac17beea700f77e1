package create_booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/estimate-scheduler/internal/domain"
	"github.com/m04kA/estimate-scheduler/internal/integrations/rfms"
)

// crmOutcome накопленный результат синхронизации с RFMS
// Идентификаторы пустые, если соответствующий шаг не удался
type crmOutcome struct {
	CustomerID    string
	OpportunityID string
	Fragments     []string
}

func (o *crmOutcome) add(format string, v ...interface{}) {
	o.Fragments = append(o.Fragments, fmt.Sprintf(format, v...))
}

// syncCRM клиент, затем сделка. Ошибки RFMS не прерывают бронирование,
// а превращаются в строки журнала
func (uc *UseCase) syncCRM(ctx context.Context, req *Request, estimator *domain.Estimator) crmOutcome {
	var outcome crmOutcome

	if !uc.crm.Enabled() {
		outcome.add("RFMS sync skipped: %v", rfms.ErrDisabled)
		uc.metrics.IncCRMSyncStep("customer", "skipped")
		return outcome
	}

	resolution, err := uc.crm.ResolveCustomer(ctx, req.Contact)
	if err != nil {
		uc.logger.Warn("CreateBooking: RFMS customer failed phone=%s: %v", req.Contact.Phone, err)
		outcome.add("RFMS customer failed: %v", err)
		uc.metrics.IncCRMSyncStep("customer", "failed")
		return outcome
	}

	outcome.CustomerID = resolution.CustomerID
	if resolution.Created {
		outcome.add("RFMS customer created: %s", resolution.CustomerID)
		uc.metrics.IncCRMSyncStep("customer", "created")
	} else {
		outcome.add("RFMS customer found: %s", resolution.CustomerID)
		uc.metrics.IncCRMSyncStep("customer", "found")
	}

	opportunityID, err := uc.crm.CreateOpportunity(ctx, resolution.CustomerID, rfms.OpportunityDetails{
		Date:          req.Date,
		TimeSlot:      req.TimeSlot,
		EstimatorName: estimator.Name,
		Contact:       req.Contact,
		Job:           req.Job,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: RFMS opportunity failed customer_id=%s: %v", resolution.CustomerID, err)
		outcome.add("RFMS opportunity failed: %v", err)
		uc.metrics.IncCRMSyncStep("opportunity", "failed")
		return outcome
	}

	outcome.OpportunityID = opportunityID
	outcome.add("RFMS opportunity created: %s", opportunityID)
	uc.metrics.IncCRMSyncStep("opportunity", "created")

	return outcome
}

// createdDetails "Estimate created" и фрагменты синхронизации
func createdDetails(fragments []string) string {
	if len(fragments) == 0 {
		return domain.DetailsCreated
	}
	return domain.DetailsCreated + " | " + strings.Join(fragments, "; ")
}
