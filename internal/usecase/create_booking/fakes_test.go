package create_booking

import (
	"context"
	"sync"

	"github.com/m04kA/estimate-scheduler/internal/domain"
	bookingRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/booking"
	rosterRepo "github.com/m04kA/estimate-scheduler/internal/infra/storage/roster"
	"github.com/m04kA/estimate-scheduler/internal/integrations/rfms"
	"github.com/m04kA/estimate-scheduler/pkg/logger"
	"github.com/m04kA/estimate-scheduler/pkg/metrics"
)

// memoryBookings хранилище в памяти с уникальностью слота
type memoryBookings struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[domain.Slot]*domain.Booking
	// hidePrecheck имитирует гонку: предпроверка не видит уже занятый слот
	hidePrecheck bool
}

func newMemoryBookings() *memoryBookings {
	return &memoryBookings{bookings: make(map[domain.Slot]*domain.Booking)}
}

func (m *memoryBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[b.Slot()]; ok {
		return nil, bookingRepo.ErrSlotAlreadyBooked
	}
	m.nextID++
	b.ID = m.nextID
	m.bookings[b.Slot()] = b
	return b, nil
}

func (m *memoryBookings) GetBySlot(_ context.Context, slot domain.Slot) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.bookings[slot]; ok && !m.hidePrecheck {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *memoryBookings) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

type memoryLog struct {
	mu      sync.Mutex
	entries []*domain.BookingLogEntry
}

func (m *memoryLog) Append(_ context.Context, e *domain.BookingLogEntry) (*domain.BookingLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, e)
	return e, nil
}

type memoryEstimators map[int64]*domain.Estimator

func (m memoryEstimators) GetEstimator(_ context.Context, id int64) (*domain.Estimator, error) {
	if e, ok := m[id]; ok {
		return e, nil
	}
	return nil, rosterRepo.ErrEstimatorNotFound
}

type fakeTimeOff struct {
	offDates map[string]bool
}

func (f fakeTimeOff) IsExcluded(_ context.Context, _ int64, date string, _ int) (bool, error) {
	return f.offDates[date], nil
}

type fakeCRM struct {
	enabled        bool
	resolution     rfms.Resolution
	resolveErr     error
	opportunityID  string
	opportunityErr error

	mu            sync.Mutex
	resolveCalls  int
	opportunities []rfms.OpportunityDetails
}

func (f *fakeCRM) Enabled() bool { return f.enabled }

func (f *fakeCRM) ResolveCustomer(_ context.Context, _ domain.Contact) (rfms.Resolution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolveCalls++
	return f.resolution, f.resolveErr
}

func (f *fakeCRM) CreateOpportunity(_ context.Context, _ string, d rfms.OpportunityDetails) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opportunities = append(f.opportunities, d)
	return f.opportunityID, f.opportunityErr
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	bookings *memoryBookings
	log      *memoryLog
	crm      *fakeCRM
	uc       *UseCase
}

func newFixture(crm *fakeCRM) *fixture {
	f := &fixture{
		bookings: newMemoryBookings(),
		log:      &memoryLog{},
		crm:      crm,
	}
	estimators := memoryEstimators{7: {ID: 7, Name: "Bob Smith", Active: true}}
	var m *metrics.Metrics
	f.uc = NewUseCase(f.bookings, f.log, estimators, fakeTimeOff{offDates: map[string]bool{"2024-06-02": true}}, crm, passthroughTx{}, m, logger.NewNop())
	return f
}

func validRequest() *Request {
	return &Request{
		Date:        "2024-06-01",
		TimeSlot:    "9-11",
		EstimatorID: 7,
		Contact:     domain.Contact{FirstName: "Jane", LastName: "Doe", Phone: "555-0100"},
		CreatedBy:   "dispatcher",
	}
}
