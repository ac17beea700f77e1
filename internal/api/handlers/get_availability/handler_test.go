package get_availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/estimate-scheduler/internal/domain"
	getAvailability "github.com/m04kA/estimate-scheduler/internal/usecase/get_availability"
	"github.com/m04kA/estimate-scheduler/pkg/logger"
)

type fakeUseCase struct {
	date string
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	f.date = req.Date
	if f.err != nil {
		return nil, f.err
	}
	bookingID := int64(5)
	return &getAvailability.Response{
		Date: req.Date,
		Estimators: []getAvailability.EstimatorAvailability{
			{
				Estimator: &domain.Estimator{ID: 1, Name: "Alice", Color: domain.DefaultColor},
				Slots: []getAvailability.Slot{
					{TimeSlot: "9-11", Free: true},
					{TimeSlot: "11-1", Free: false, BookingID: &bookingID},
				},
			},
			{
				Estimator: &domain.Estimator{ID: 2, Name: "Bob"},
				Off:       true,
				OffLabel:  "Office day",
				Slots:     []getAvailability.Slot{},
			},
		},
	}, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/api/v1/availability?date=2024-06-04")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-06-04", uc.date)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Estimators, 2)

	alice := resp.Estimators[0]
	assert.Equal(t, "Alice", alice.Name)
	require.Len(t, alice.Slots, 2)
	assert.True(t, alice.Slots[0].Free)
	require.NotNil(t, alice.Slots[1].BookingID)
	assert.Equal(t, int64(5), *alice.Slots[1].BookingID)

	bob := resp.Estimators[1]
	assert.True(t, bob.Off)
	assert.Equal(t, "Office day", bob.OffLabel)
}

func TestHandle_Errors(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/api/v1/availability")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, uc.date)

	rec = serve(&fakeUseCase{err: fmt.Errorf("%w: bad date", getAvailability.ErrInvalidInput)}, "/api/v1/availability?date=x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeUseCase{err: getAvailability.ErrInternal}, "/api/v1/availability?date=2024-06-04")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
