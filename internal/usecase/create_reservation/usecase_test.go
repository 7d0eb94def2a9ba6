package create_reservation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	catalogClient "github.com/m04kA/SMC-ReservationService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// memoryRepo хранилище в памяти; проверка пересечений как в ExistsOverlapping
type memoryRepo struct {
	mu        sync.Mutex
	items     []*domain.Reservation
	createErr error
}

func (r *memoryRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.items = append(r.items, res.Clone())
	return res, nil
}

func (r *memoryRepo) ExistsOverlapping(_ context.Context, tenantID, resourceID uuid.UUID, rng domain.TimeRange, excludeID *uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if excludeID != nil && it.ID() == *excludeID {
			continue
		}
		if it.TenantID() == tenantID && it.ResourceID() == resourceID && it.BlocksSlot() && it.Range().Overlaps(rng) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ID() == id {
			return it.Clone(), nil
		}
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (r *memoryRepo) ListByFilter(_ context.Context, f domain.ReservationFilter) ([]*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Reservation, 0)
	for _, it := range r.items {
		if it.TenantID() != f.TenantID {
			continue
		}
		if f.ResourceID != nil && it.ResourceID() != *f.ResourceID {
			continue
		}
		if f.UserID != nil && it.UserID() != *f.UserID {
			continue
		}
		if f.Window != nil && !it.Range().Overlaps(*f.Window) {
			continue
		}
		out = append(out, it.Clone())
	}
	return out, nil
}

func (r *memoryRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.ReservationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ID() == id {
			return it.SetStatus(status)
		}
	}
	return reservationRepo.ErrReservationNotFound
}

func (r *memoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// serialTx выполняет транзакции строго по очереди
type serialTx struct {
	mu sync.Mutex
}

func (tx *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return fn(ctx)
}

func (tx *serialTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return tx.DoSerializable(ctx, fn)
}

func (tx *serialTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return tx.DoSerializable(ctx, fn)
}

type fakeCatalog struct {
	resources map[uuid.UUID]domain.ResourceRef
	err       error
}

func (c *fakeCatalog) GetResource(_ context.Context, _ uuid.UUID, resourceID uuid.UUID) (*domain.ResourceRef, error) {
	if c.err != nil {
		return nil, c.err
	}
	r, ok := c.resources[resourceID]
	if !ok {
		return nil, catalogClient.ErrResourceNotFound
	}
	return &r, nil
}

func (c *fakeCatalog) ListResources(_ context.Context, tenantID uuid.UUID) ([]domain.ResourceRef, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make([]domain.ResourceRef, 0, len(c.resources))
	for _, r := range c.resources {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeSink struct {
	mu   sync.Mutex
	sent []domain.Notification
	err  error
}

func (s *fakeSink) Send(_ context.Context, n domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, n)
	return nil
}

type fakeMetrics struct {
	created, conflicts, cancelled, notifyFailed atomic.Int32
}

func (m *fakeMetrics) ReservationCreated()   { m.created.Add(1) }
func (m *fakeMetrics) ReservationConflict()  { m.conflicts.Add(1) }
func (m *fakeMetrics) ReservationCancelled() { m.cancelled.Add(1) }
func (m *fakeMetrics) NotificationFailed()   { m.notifyFailed.Add(1) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc       *UseCase
	svc      *reservations.Service
	repo     *memoryRepo
	sink     *fakeSink
	catalog  *fakeCatalog
	metrics  *fakeMetrics
	tenant   uuid.UUID
	resource uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		repo:     &memoryRepo{},
		sink:     &fakeSink{},
		metrics:  &fakeMetrics{},
		tenant:   uuid.New(),
		resource: uuid.New(),
	}
	f.catalog = &fakeCatalog{resources: map[uuid.UUID]domain.ResourceRef{
		f.resource: {ID: f.resource, TenantID: f.tenant, Name: "R1"},
	}}
	tx := &serialTx{}
	f.uc = NewUseCase(f.repo, f.catalog, f.sink, tx, f.metrics, nopLogger{}, "")
	f.svc = reservations.NewService(f.repo, f.catalog, f.sink, tx, f.metrics, nopLogger{}, "")
	return f
}

func (f *fixture) request(user uuid.UUID, start, end time.Time) *Request {
	return &Request{TenantID: f.tenant, ResourceID: f.resource, UserID: user, Start: start, End: end}
}

func ts(hour, min int) time.Time {
	return time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
}

func TestExecute_ConflictScenario(t *testing.T) {
	f := newFixture()
	u1, u2 := uuid.New(), uuid.New()

	first, err := f.uc.Execute(context.Background(), f.request(u1, ts(9, 0), ts(10, 0)))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), first.Status)
	assert.Equal(t, "R1", first.ResourceName)

	_, err = f.uc.Execute(context.Background(), f.request(u2, ts(9, 30), ts(10, 30)))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, f.repo.count(), "rejected booking must not be persisted")

	require.NoError(t, f.svc.Cancel(context.Background(), f.tenant, first.ID))

	second, err := f.uc.Execute(context.Background(), f.request(u2, ts(9, 30), ts(10, 30)))
	require.NoError(t, err)
	assert.Equal(t, u2, second.UserID)

	assert.EqualValues(t, 2, f.metrics.created.Load())
	assert.EqualValues(t, 1, f.metrics.conflicts.Load())
	assert.EqualValues(t, 1, f.metrics.cancelled.Load())

	day, err := f.svc.GetAvailability(context.Background(), &models.GetAvailabilityRequest{
		TenantID:   f.tenant,
		ResourceID: f.resource,
		StartDate:  ts(0, 0),
		EndDate:    ts(0, 0),
	})
	require.NoError(t, err)
	require.Len(t, day.Reservations, 2)
	assert.Equal(t, first.ID, day.Reservations[0].ID)
	assert.Equal(t, string(domain.StatusCancelled), day.Reservations[0].Status)
	assert.Equal(t, second.ID, day.Reservations[1].ID)
	assert.Equal(t, string(domain.StatusConfirmed), day.Reservations[1].Status)
}

func TestExecute_NewReservationVisibleInAvailabilityOnce(t *testing.T) {
	f := newFixture()

	created, err := f.uc.Execute(context.Background(), f.request(uuid.New(), ts(9, 0), ts(10, 0)))
	require.NoError(t, err)

	resp, err := f.svc.GetAvailability(context.Background(), &models.GetAvailabilityRequest{
		TenantID:   f.tenant,
		ResourceID: f.resource,
		StartDate:  ts(0, 0),
		EndDate:    ts(0, 0),
	})
	require.NoError(t, err)

	found := 0
	for _, r := range resp.Reservations {
		if r.ID == created.ID {
			found++
			assert.True(t, r.Start.Equal(ts(9, 0)))
			assert.True(t, r.End.Equal(ts(10, 0)))
		}
	}
	assert.Equal(t, 1, found)
	assert.Len(t, resp.Reservations, 1)
}

func TestExecute_AdjacentRangesDoNotConflict(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), f.request(uuid.New(), ts(10, 0), ts(11, 0)))
	require.NoError(t, err)
	_, err = f.uc.Execute(context.Background(), f.request(uuid.New(), ts(11, 0), ts(12, 0)))
	require.NoError(t, err)
}

func TestExecute_OtherResourceDoesNotConflict(t *testing.T) {
	f := newFixture()
	other := uuid.New()
	f.catalog.resources[other] = domain.ResourceRef{ID: other, TenantID: f.tenant, Name: "R2"}

	_, err := f.uc.Execute(context.Background(), f.request(uuid.New(), ts(10, 0), ts(11, 0)))
	require.NoError(t, err)

	req := f.request(uuid.New(), ts(10, 0), ts(11, 0))
	req.ResourceID = other
	_, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_ConcurrentOverlappingCreates(t *testing.T) {
	f := newFixture()

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)
	start := make(chan struct{})

	for _, rng := range [][2]time.Time{{ts(9, 0), ts(10, 0)}, {ts(9, 30), ts(10, 30)}} {
		wg.Add(1)
		go func(s, e time.Time) {
			defer wg.Done()
			<-start
			_, err := f.uc.Execute(context.Background(), f.request(uuid.New(), s, e))
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, ErrConflict):
				conflicts.Add(1)
			}
		}(rng[0], rng[1])
	}

	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, successes.Load())
	assert.EqualValues(t, 1, conflicts.Load())
	assert.Equal(t, 1, f.repo.count())
}

func TestExecute_ResourceNotFound(t *testing.T) {
	f := newFixture()
	req := f.request(uuid.New(), ts(9, 0), ts(10, 0))
	req.ResourceID = uuid.New()

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.Zero(t, f.repo.count())
}

func TestExecute_InvalidRange(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), f.request(uuid.New(), ts(10, 0), ts(10, 0)))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = f.uc.Execute(context.Background(), f.request(uuid.New(), ts(11, 0), ts(10, 0)))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.Zero(t, f.repo.count())
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{TenantID: f.tenant, ResourceID: f.resource, Start: ts(9, 0), End: ts(10, 0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_StorageOverlapMapsToConflict(t *testing.T) {
	f := newFixture()
	f.repo.createErr = errors.Join(reservationRepo.ErrOverlap, errors.New("23P01"))

	_, err := f.uc.Execute(context.Background(), f.request(uuid.New(), ts(9, 0), ts(10, 0)))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestExecute_StorageFailureIsInternal(t *testing.T) {
	f := newFixture()
	f.repo.createErr = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), f.request(uuid.New(), ts(9, 0), ts(10, 0)))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.sink.sent)
}

func TestExecute_CatalogFailureIsInternal(t *testing.T) {
	f := newFixture()
	f.catalog.err = errors.New("timeout")

	_, err := f.uc.Execute(context.Background(), f.request(uuid.New(), ts(9, 0), ts(10, 0)))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_SendsConfirmedNotification(t *testing.T) {
	f := newFixture()
	user := uuid.New()

	_, err := f.uc.Execute(context.Background(), f.request(user, ts(9, 0), ts(10, 0)))
	require.NoError(t, err)

	require.Len(t, f.sink.sent, 1)
	n := f.sink.sent[0]
	assert.Equal(t, domain.SubjectReservationConfirmed, n.Subject)
	assert.Equal(t, domain.DefaultNotificationChannel, n.Channel)
	assert.Equal(t, user, n.UserID)
	assert.Equal(t, f.tenant, n.TenantID)
	assert.Contains(t, n.Body, "R1")
}

func TestExecute_NotificationFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture()
	f.sink.err = errors.New("broker down")

	res, err := f.uc.Execute(context.Background(), f.request(uuid.New(), ts(9, 0), ts(10, 0)))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.ID)
	assert.Equal(t, 1, f.repo.count())
	assert.EqualValues(t, 1, f.metrics.notifyFailed.Load())
}
