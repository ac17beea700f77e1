package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/estimate-scheduler/internal/domain"
	bookingRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/booking"
	bookingLogRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/bookinglog"
	rosterRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/roster"
	timeOffRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/timeoff"
	"github.com/m04kA/estimate-scheduler/internal/integrations/rfms"
	"github.com/m04kA/estimate-scheduler/internal/service/bookings/models"
	"github.com/m04kA/estimate-scheduler/internal/testfixtures"
	"github.com/m04kA/estimate-scheduler/internal/usecase/create_booking"
	"github.com/m04kA/estimate-scheduler/internal/usecase/update_booking"
	"github.com/m04kA/estimate-scheduler/pkg/logger"
	"github.com/m04kA/estimate-scheduler/pkg/metrics"
	"github.com/m04kA/estimate-scheduler/pkg/txmanager"
)

type fixture struct {
	harness     *testfixtures.SQLiteHarness
	bookings    *bookingRepo.Repository
	log         *bookingLogRepo.Repository
	tx          *txmanager.TransactionManager
	service     *Service
	estimatorID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	h := testfixtures.NewSQLiteHarness(t)

	f := &fixture{
		harness:     h,
		bookings:    bookingRepo.NewRepository(h.DB, h.Dialect),
		log:         bookingLogRepo.NewRepository(h.DB, h.Dialect),
		tx:          txmanager.NewTransactionManager(h.DB),
		estimatorID: h.SeedEstimator(t, "Bob"),
	}

	var m *metrics.Metrics
	f.service = NewService(f.bookings, f.log, f.tx, m, logger.NewNop())
	return f
}

func (f *fixture) seedBooking(t *testing.T, date, slot string) *domain.Booking {
	t.Helper()
	b, err := f.bookings.Create(context.Background(), &domain.Booking{
		Date:        date,
		TimeSlot:    slot,
		EstimatorID: f.estimatorID,
		Contact:     domain.Contact{FirstName: "Jane", LastName: "Doe", Phone: "555-0100"},
		CreatedBy:   "dispatcher",
	})
	require.NoError(t, err)
	return b
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)
	b := f.seedBooking(t, "2024-06-01", "9-11")

	resp, err := f.service.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, resp.ID)
	assert.Equal(t, "Jane", resp.FirstName)
	assert.Equal(t, "9-11", resp.TimeSlot)

	_, err = f.service.GetByID(context.Background(), b.ID+100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_FiltersAndValidation(t *testing.T) {
	f := newFixture(t)
	f.seedBooking(t, "2024-06-01", "9-11")
	f.seedBooking(t, "2024-06-03", "9-11")
	f.seedBooking(t, "2024-06-10", "9-11")

	from, to := "2024-06-01", "2024-06-05"
	resp, err := f.service.List(context.Background(), &models.ListBookingsRequest{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, "2024-06-01", resp.Bookings[0].Date)
	assert.Equal(t, "2024-06-03", resp.Bookings[1].Date)

	bad := "06/01/2024"
	_, err = f.service.List(context.Background(), &models.ListBookingsRequest{From: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.service.List(context.Background(), &models.ListBookingsRequest{From: &to, To: &from})
	assert.ErrorIs(t, err, ErrInvalidInput)

	other := int64(999)
	resp, err = f.service.List(context.Background(), &models.ListBookingsRequest{EstimatorID: &other})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
}

func TestCancel_LogsBeforeDelete(t *testing.T) {
	f := newFixture(t)
	b := f.seedBooking(t, "2024-06-01", "9-11")

	require.NoError(t, f.service.Cancel(context.Background(), b.ID, ""))

	_, err := f.service.GetByID(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	logResp, err := f.service.ListLog(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, logResp.Entries, 1)
	assert.Equal(t, "Cancelled", logResp.Entries[0].Action)
	assert.Equal(t, domain.DefaultActor, logResp.Entries[0].ChangedBy)
	assert.Equal(t, "Estimate cancelled: 2024-06-01 9-11 (Jane Doe)", logResp.Entries[0].Details)

	// Слот снова свободен
	f.seedBooking(t, "2024-06-01", "9-11")
}

func TestCancel_MissingBookingLeavesNoLogEntry(t *testing.T) {
	f := newFixture(t)

	err := f.service.Cancel(context.Background(), 42, "office")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	logResp, err := f.service.ListLog(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, logResp.Entries)
}

func TestListLog_EmptyForUnknownBooking(t *testing.T) {
	f := newFixture(t)

	logResp, err := f.service.ListLog(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, logResp.Entries)
	assert.Empty(t, logResp.Entries)
}

type noCRM struct{}

func (noCRM) Enabled() bool { return false }

func (noCRM) ResolveCustomer(context.Context, domain.Contact) (rfms.Resolution, error) {
	return rfms.Resolution{}, rfms.ErrDisabled
}

func (noCRM) CreateOpportunity(context.Context, string, rfms.OpportunityDetails) (string, error) {
	return "", nil
}

func (noCRM) UpdateCustomer(context.Context, string, domain.Contact) error { return nil }

// Полный жизненный цикл: создание, конфликт, правка, отмена, журнал
func TestBookingLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	h := f.harness
	var m *metrics.Metrics
	nop := logger.NewNop()

	createUC := create_booking.NewUseCase(
		f.bookings, f.log,
		rosterRepo.NewRepository(h.DB, h.Dialect), timeOffRepo.NewRepository(h.DB, h.Dialect),
		noCRM{}, f.tx, m, nop,
	)
	updateUC := update_booking.NewUseCase(f.bookings, f.log, noCRM{}, f.tx, m, nop)

	created, err := createUC.Execute(ctx, &create_booking.Request{
		Date:        "2024-06-01",
		TimeSlot:    "9-11",
		EstimatorID: f.estimatorID,
		Contact:     domain.Contact{FirstName: "Jane", LastName: "Doe", Phone: "555-0100"},
		CreatedBy:   "dispatcher",
	})
	require.NoError(t, err)

	_, err = createUC.Execute(ctx, &create_booking.Request{
		Date:        "2024-06-01",
		TimeSlot:    "9-11",
		EstimatorID: f.estimatorID,
		Contact:     domain.Contact{FirstName: "John", LastName: "Roe", Phone: "555-0199"},
	})
	assert.ErrorIs(t, err, create_booking.ErrSlotAlreadyBooked)

	_, err = updateUC.Execute(ctx, &update_booking.Request{
		ID:        created.ID,
		Contact:   created.Booking.Contact,
		Job:       domain.Job{Notes: "bring samples"},
		ChangedBy: "office",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Cancel(ctx, created.ID, "office"))

	logResp, err := f.service.ListLog(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, logResp.Entries, 3)
	assert.Equal(t, "Cancelled", logResp.Entries[0].Action)
	assert.Equal(t, "Edited", logResp.Entries[1].Action)
	assert.Equal(t, `Notes: "" -> "bring samples"`, logResp.Entries[1].Details)
	assert.Equal(t, "Created", logResp.Entries[2].Action)

	_, err = f.service.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
