package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"detailify/models"
	"detailify/services/availability"
)

// memRepo is an in-memory BookingRepository. onCreate, when set, runs just
// before an insert, which lets tests inject a concurrent writer between the
// advisory check and the commit.
type memRepo struct {
	bookings map[string]*models.Booking
	onCreate func(r *memRepo)
}

func newMemRepo() *memRepo {
	return &memRepo{bookings: map[string]*models.Booking{}}
}

func (r *memRepo) insert(b models.Booking) string {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.EndTime = b.End()
	r.bookings[b.ID] = &b
	return b.ID
}

func (r *memRepo) Create(ctx context.Context, b *models.Booking) (string, error) {
	if r.onCreate != nil {
		r.onCreate(r)
		r.onCreate = nil
	}
	b.ID = r.insert(*b)
	b.EndTime = b.End()
	return b.ID, nil
}

func (r *memRepo) GetByID(ctx context.Context, tenantID, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok || b.TenantID != tenantID {
		return nil, mongo.ErrNoDocuments
	}
	copied := *b
	return &copied, nil
}

func (r *memRepo) ListByTenant(ctx context.Context, tenantID string, from, to time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.TenantID == tenantID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memRepo) ListScheduledInRange(ctx context.Context, tenantID string, from, to time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.TenantID != tenantID || b.Status != models.BookingScheduled {
			continue
		}
		if b.DateTime.Before(to) && b.EndTime.After(from) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memRepo) Reschedule(ctx context.Context, tenantID, id string, dateTime, endTime time.Time) error {
	b, ok := r.bookings[id]
	if !ok || b.TenantID != tenantID {
		return mongo.ErrNoDocuments
	}
	b.DateTime = dateTime
	b.EndTime = endTime
	return nil
}

func (r *memRepo) UpdateStatus(ctx context.Context, tenantID, id string, status models.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok || b.TenantID != tenantID {
		return mongo.ErrNoDocuments
	}
	b.Status = status
	return nil
}

func (r *memRepo) UpdateNotes(ctx context.Context, tenantID, id, notes string) error {
	b, ok := r.bookings[id]
	if !ok || b.TenantID != tenantID {
		return mongo.ErrNoDocuments
	}
	b.Notes = notes
	return nil
}

func (r *memRepo) Delete(ctx context.Context, tenantID, id string) error {
	b, ok := r.bookings[id]
	if !ok || b.TenantID != tenantID {
		return mongo.ErrNoDocuments
	}
	delete(r.bookings, id)
	return nil
}

func (r *memRepo) EnsureIndexes() error { return nil }

// memCatalog is an in-memory CatalogService with a fixed 09:00-17:00 window.
type memCatalog struct {
	services map[string]models.ServiceDefinition
}

func newMemCatalog() *memCatalog {
	return &memCatalog{services: map[string]models.ServiceDefinition{
		"Basic Wash":     {Name: "Basic Wash", DurationMinutes: 30, Price: 25},
		"Full Detailing": {Name: "Full Detailing", DurationMinutes: 120, Price: 180},
	}}
}

func (m *memCatalog) CreateTenant(ctx context.Context, t *models.Tenant) (string, error) {
	return t.ID, nil
}

func (m *memCatalog) GetTenant(ctx context.Context, tenantID string) (*models.Tenant, error) {
	return &models.Tenant{ID: tenantID, Timezone: "UTC"}, nil
}

func (m *memCatalog) UpdateProfile(ctx context.Context, tenantID, name, timezone string) error {
	return nil
}

func (m *memCatalog) GetService(ctx context.Context, tenantID, name string) (*models.ServiceDefinition, error) {
	svc, ok := m.services[name]
	if !ok {
		return nil, availability.ErrServiceNotFound
	}
	return &svc, nil
}

func (m *memCatalog) ListServices(ctx context.Context, tenantID string) ([]models.ServiceDefinition, error) {
	var out []models.ServiceDefinition
	for _, svc := range m.services {
		out = append(out, svc)
	}
	return out, nil
}

func (m *memCatalog) UpsertService(ctx context.Context, tenantID string, svc models.ServiceDefinition) error {
	m.services[svc.Name] = svc
	return nil
}

func (m *memCatalog) DeleteService(ctx context.Context, tenantID, name string) error {
	delete(m.services, name)
	return nil
}

func (m *memCatalog) SetHours(ctx context.Context, tenantID string, hours models.WeeklyHours) error {
	return nil
}

func (m *memCatalog) AddClosedDate(ctx context.Context, tenantID, date string) error    { return nil }
func (m *memCatalog) RemoveClosedDate(ctx context.Context, tenantID, date string) error { return nil }

func (m *memCatalog) ServiceDuration(ctx context.Context, tenantID, service string) (int, error) {
	svc, err := m.GetService(ctx, tenantID, service)
	if err != nil {
		return 0, err
	}
	return svc.DurationMinutes, nil
}

func (m *memCatalog) OperatingHours(ctx context.Context, tenantID, date string) (*models.DayHours, error) {
	return &models.DayHours{OpenMinute: 9 * 60, CloseMinute: 17 * 60}, nil
}

func (m *memCatalog) Location(ctx context.Context, tenantID string) (*time.Location, error) {
	return time.UTC, nil
}

type recordingScheduler struct {
	scheduled []string
}

func (r *recordingScheduler) ScheduleReminder(ctx context.Context, b *models.Booking) error {
	r.scheduled = append(r.scheduled, b.ID)
	return nil
}

func newTestService(repo *memRepo) (*DefaultBookingService, *recordingScheduler) {
	cat := newMemCatalog()
	sched := &recordingScheduler{}
	return &DefaultBookingService{
		Repo:      repo,
		Engine:    availability.NewEngine(repo, cat),
		Catalog:   cat,
		Reminders: sched,
	}, sched
}

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 10, hour, min, 0, 0, time.UTC)
}

func validInput(hour, min int) models.BookingInput {
	return models.BookingInput{
		TenantID:   "T1",
		ClientName: "Ada",
		DateTime:   at(hour, min),
		Service:    "Basic Wash",
	}
}

func TestCreate_Success(t *testing.T) {
	repo := newMemRepo()
	svc, sched := newTestService(repo)

	b, err := svc.Create(context.Background(), validInput(10, 0))
	require.NoError(t, err)

	assert.Equal(t, models.BookingScheduled, b.Status)
	assert.Equal(t, 30, b.DurationMinutes)
	assert.Equal(t, 25.0, b.Price)
	assert.Equal(t, at(10, 30), b.End())
	assert.Len(t, repo.bookings, 1)
	assert.Equal(t, []string{b.ID}, sched.scheduled)
}

func TestCreate_ConflictIsHardStop(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Create(context.Background(), validInput(10, 0))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validInput(10, 15))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Len(t, repo.bookings, 1)
}

func TestCreate_AdjacentBookingAllowed(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput(10, 0))
	require.NoError(t, err)

	// 10:30 starts exactly when the 10:00 wash ends.
	_, err = svc.Create(ctx, validInput(10, 30))
	require.NoError(t, err)
	assert.Len(t, repo.bookings, 2)
}

func TestCreate_UnknownService(t *testing.T) {
	svc, _ := newTestService(newMemRepo())

	input := validInput(10, 0)
	input.Service = "Ceramic Coating"
	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, availability.ErrServiceNotFound)
}

func TestCreate_RequiresClientIdentity(t *testing.T) {
	svc, _ := newTestService(newMemRepo())

	input := validInput(10, 0)
	input.ClientName = ""
	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, availability.ErrInvalidInput)
}

func TestCreate_ConcurrentWriterRollsBack(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)

	// A competing booking lands after the advisory check but before ours.
	repo.onCreate = func(r *memRepo) {
		r.insert(models.Booking{
			TenantID:        "T1",
			DateTime:        at(10, 0),
			Service:         "Basic Wash",
			DurationMinutes: 30,
			Status:          models.BookingScheduled,
		})
	}

	_, err := svc.Create(context.Background(), validInput(10, 0))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	// Only the competitor survives; our write was rolled back.
	assert.Len(t, repo.bookings, 1)
}

func TestReschedule_ToOwnSlot(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, validInput(10, 0))
	require.NoError(t, err)

	moved, err := svc.Reschedule(ctx, "T1", b.ID, at(10, 0))
	require.NoError(t, err)
	assert.Equal(t, at(10, 0), moved.DateTime)
}

func TestReschedule_IntoOtherBookingConflicts(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput(10, 0))
	require.NoError(t, err)
	b2, err := svc.Create(ctx, validInput(11, 0))
	require.NoError(t, err)

	_, err = svc.Reschedule(ctx, "T1", b2.ID, at(10, 15))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	// The original time is untouched.
	got, err := svc.Get(ctx, "T1", b2.ID)
	require.NoError(t, err)
	assert.Equal(t, at(11, 0), got.DateTime)
}

func TestReschedule_TerminalBookingRejected(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, validInput(10, 0))
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, "T1", b.ID))

	_, err = svc.Reschedule(ctx, "T1", b.ID, at(12, 0))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, validInput(10, 0))
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, "T1", b.ID))

	_, err = svc.Create(ctx, validInput(10, 0))
	require.NoError(t, err)
}

func TestTerminalTransitionsAreFinal(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, validInput(10, 0))
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, "T1", b.ID))

	assert.ErrorIs(t, svc.Cancel(ctx, "T1", b.ID), ErrInvalidTransition)
	assert.ErrorIs(t, svc.Complete(ctx, "T1", b.ID), ErrInvalidTransition)
}

func TestGet_WrongTenant(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	b, err := svc.Create(ctx, validInput(10, 0))
	require.NoError(t, err)

	_, err = svc.Get(ctx, "T2", b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
