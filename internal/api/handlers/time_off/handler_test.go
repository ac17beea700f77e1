package time_off

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/estimate-scheduler/internal/service/timeoff"
	"github.com/m04kA/estimate-scheduler/internal/service/timeoff/models"
	"github.com/m04kA/estimate-scheduler/pkg/logger"
)

type fakeService struct {
	upserted *models.UpsertTimeOffRequest
	created  bool
	err      error
}

func (f *fakeService) IsTimeOff(_ context.Context, estimatorID int64, date string) (*models.CheckTimeOffResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.CheckTimeOffResponse{EstimatorID: estimatorID, Date: date, Off: true}, nil
}

func (f *fakeService) Upsert(_ context.Context, req *models.UpsertTimeOffRequest) (*models.UpsertTimeOffResponse, error) {
	f.upserted = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.UpsertTimeOffResponse{TimeOff: models.TimeOffResponse{ID: 1}, Created: f.created}, nil
}

func (f *fakeService) Delete(context.Context, int64) error { return f.err }

func (f *fakeService) List(context.Context, int64) (*models.TimeOffListResponse, error) {
	return &models.TimeOffListResponse{TimeOff: []models.TimeOffResponse{}}, f.err
}

func newRouter(svc *fakeService) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/estimators/{estimatorId}/time-off", h.List).Methods(http.MethodGet)
	r.HandleFunc("/estimators/{estimatorId}/time-off/check", h.Check).Methods(http.MethodGet)
	r.HandleFunc("/estimators/{estimatorId}/time-off", h.Upsert).Methods(http.MethodPost)
	r.HandleFunc("/time-off/{timeOffId}", h.Delete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestUpsert_StatusByCreated(t *testing.T) {
	svc := &fakeService{created: true}
	rec := do(newRouter(svc), http.MethodPost, "/estimators/3/time-off", `{"recurring":true,"dayOfWeek":2}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.upserted)
	assert.Equal(t, int64(3), svc.upserted.EstimatorID)
	assert.Equal(t, 2, *svc.upserted.DayOfWeek)

	svc = &fakeService{created: false}
	rec = do(newRouter(svc), http.MethodPost, "/estimators/3/time-off", `{"date":"2024-06-05"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpsert_Errors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: day_of_week must be between 0 and 6", timeoff.ErrInvalidInput), http.StatusBadRequest},
		{timeoff.ErrEstimatorNotFound, http.StatusNotFound},
		{timeoff.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := do(newRouter(&fakeService{err: tc.err}), http.MethodPost, "/estimators/3/time-off", `{"recurring":true}`)
		assert.Equal(t, tc.status, rec.Code)
	}

	rec := do(newRouter(&fakeService{}), http.MethodPost, "/estimators/abc/time-off", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheck(t *testing.T) {
	rec := do(newRouter(&fakeService{}), http.MethodGet, "/estimators/3/time-off/check?date=2024-06-05", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"estimatorId":3,"date":"2024-06-05","off":true}`, rec.Body.String())

	rec = do(newRouter(&fakeService{}), http.MethodGet, "/estimators/3/time-off/check", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDelete(t *testing.T) {
	rec := do(newRouter(&fakeService{}), http.MethodDelete, "/time-off/9", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(newRouter(&fakeService{err: timeoff.ErrTimeOffNotFound}), http.MethodDelete, "/time-off/9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
