package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/estimate-scheduler/internal/api/middleware"
	"github.com/m04kA/estimate-scheduler/internal/service/bookings"
	"github.com/m04kA/estimate-scheduler/pkg/logger"
)

type fakeService struct {
	id    int64
	actor string
	err   error
}

func (f *fakeService) Cancel(_ context.Context, id int64, actor string) error {
	f.id, f.actor = id, actor
	return f.err
}

func serve(svc *fakeService, target, actor string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Actor)
	r.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, target, nil)
	req.Header.Set(middleware.HeaderActor, actor)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/bookings/12", "office")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(12), svc.id)
	assert.Equal(t, "office", svc.actor)

	svc = &fakeService{}
	serve(svc, "/api/v1/bookings/12", "")
	assert.Equal(t, "Unknown", svc.actor)
}

func TestHandle_Errors(t *testing.T) {
	rec := serve(&fakeService{err: bookings.ErrBookingNotFound}, "/api/v1/bookings/12", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(&fakeService{err: bookings.ErrInternal}, "/api/v1/bookings/12", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	svc := &fakeService{}
	rec = serve(svc, "/api/v1/bookings/0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.id)
}
