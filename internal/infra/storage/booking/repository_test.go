package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/estimate-scheduler/internal/domain"
	"github.com/m04kA/estimate-scheduler/internal/testfixtures"
)

func newBooking(date, slot string, estimatorID int64) *domain.Booking {
	return &domain.Booking{
		Date:        date,
		TimeSlot:    slot,
		EstimatorID: estimatorID,
		Contact: domain.Contact{
			FirstName: "Jane",
			LastName:  "Doe",
			Phone:     "555-0100",
			Address:   "1 Main St",
			City:      "Springfield",
			State:     "IL",
			Zip:       "62701",
		},
		Job:       domain.Job{FlooringType: "Carpet", Rooms: "3"},
		CreatedBy: "dispatcher",
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewSQLiteHarness(t)
	estimatorID := h.SeedEstimator(t, "Bob")
	repo := NewRepository(h.DB, h.Dialect)

	created, err := repo.Create(ctx, newBooking("2024-06-03", "9:00 AM-11:00 AM", estimatorID))
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", fetched.Date)
	assert.Equal(t, "9:00 AM-11:00 AM", fetched.TimeSlot)
	assert.Equal(t, estimatorID, fetched.EstimatorID)
	assert.Equal(t, "Jane Doe", fetched.Contact.FullName())
	assert.Equal(t, "Carpet", fetched.Job.FlooringType)
	assert.Equal(t, "dispatcher", fetched.CreatedBy)
	assert.Empty(t, fetched.RFMSCustomerID)

	bySlot, err := repo.GetBySlot(ctx, fetched.Slot())
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlot.ID)
}

func TestRepository_Create_DuplicateSlot(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewSQLiteHarness(t)
	bob := h.SeedEstimator(t, "Bob")
	alice := h.SeedEstimator(t, "Alice")
	repo := NewRepository(h.DB, h.Dialect)

	_, err := repo.Create(ctx, newBooking("2024-06-03", "9:00 AM-11:00 AM", bob))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking("2024-06-03", "9:00 AM-11:00 AM", bob))
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)

	// Тот же слот у другого оценщика свободен
	_, err = repo.Create(ctx, newBooking("2024-06-03", "9:00 AM-11:00 AM", alice))
	assert.NoError(t, err)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	h := testfixtures.NewSQLiteHarness(t)
	repo := NewRepository(h.DB, h.Dialect)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = repo.GetBySlot(context.Background(), domain.Slot{Date: "2024-06-03", TimeSlot: "x", EstimatorID: 1})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewSQLiteHarness(t)
	bob := h.SeedEstimator(t, "Bob")
	alice := h.SeedEstimator(t, "Alice")
	repo := NewRepository(h.DB, h.Dialect)

	for _, b := range []*domain.Booking{
		newBooking("2024-06-04", "1:00 PM-3:00 PM", bob),
		newBooking("2024-06-03", "9:00 AM-11:00 AM", alice),
		newBooking("2024-06-03", "9:00 AM-11:00 AM", bob),
		newBooking("2024-06-10", "9:00 AM-11:00 AM", bob),
	} {
		_, err := repo.Create(ctx, b)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, domain.BookingsFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "2024-06-03", all[0].Date)
	assert.Equal(t, "2024-06-10", all[3].Date)

	start, end := "2024-06-03", "2024-06-04"
	ranged, err := repo.List(ctx, domain.BookingsFilter{StartDate: &start, EndDate: &end, EstimatorID: &bob})
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	for _, b := range ranged {
		assert.Equal(t, bob, b.EstimatorID)
	}
}

func TestRepository_UpdateDetails(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewSQLiteHarness(t)
	bob := h.SeedEstimator(t, "Bob")
	repo := NewRepository(h.DB, h.Dialect)

	created, err := repo.Create(ctx, newBooking("2024-06-03", "9:00 AM-11:00 AM", bob))
	require.NoError(t, err)

	contact := created.Contact
	contact.Phone = "555-0199"
	job := domain.Job{FlooringType: "Tile", Rooms: "2", Notes: "gate code 1234"}
	require.NoError(t, repo.UpdateDetails(ctx, created.ID, contact, job))

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0199", fetched.Contact.Phone)
	assert.Equal(t, job, fetched.Job)
	assert.Equal(t, created.Slot(), fetched.Slot())

	assert.ErrorIs(t, repo.UpdateDetails(ctx, 999, contact, job), ErrBookingNotFound)
}

func TestRepository_Delete_FreesSlot(t *testing.T) {
	ctx := context.Background()
	h := testfixtures.NewSQLiteHarness(t)
	bob := h.SeedEstimator(t, "Bob")
	repo := NewRepository(h.DB, h.Dialect)

	created, err := repo.Create(ctx, newBooking("2024-06-03", "9:00 AM-11:00 AM", bob))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrBookingNotFound)

	_, err = repo.Create(ctx, newBooking("2024-06-03", "9:00 AM-11:00 AM", bob))
	assert.NoError(t, err)
}
