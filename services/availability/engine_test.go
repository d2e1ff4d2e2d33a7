package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"detailify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	bookings map[string][]models.Booking // tenantID -> bookings
	err      error
}

func (f *fakeStore) ListScheduledInRange(ctx context.Context, tenantID string, from, to time.Time) ([]models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Booking
	for _, b := range f.bookings[tenantID] {
		if b.Status != models.BookingScheduled {
			continue
		}
		if b.DateTime.Before(to) && b.End().After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeCatalog struct {
	services map[string]int // name -> duration minutes
	hours    *models.DayHours
	closed   map[string]bool // date -> closed
	loc      *time.Location
	err      error
}

func (f *fakeCatalog) ServiceDuration(ctx context.Context, tenantID, service string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	d, ok := f.services[service]
	if !ok {
		return 0, ErrServiceNotFound
	}
	return d, nil
}

func (f *fakeCatalog) OperatingHours(ctx context.Context, tenantID, date string) (*models.DayHours, error) {
	if f.closed[date] {
		return nil, nil
	}
	return f.hours, nil
}

func (f *fakeCatalog) Location(ctx context.Context, tenantID string) (*time.Location, error) {
	if f.loc == nil {
		return time.UTC, nil
	}
	return f.loc, nil
}

func newTestEngine(store *fakeStore, catalog *fakeCatalog) *Engine {
	if store.bookings == nil {
		store.bookings = map[string][]models.Booking{}
	}
	if catalog.services == nil {
		catalog.services = map[string]int{"Basic Wash": 30, "Full Detailing": 120}
	}
	if catalog.hours == nil {
		catalog.hours = &models.DayHours{OpenMinute: 9 * 60, CloseMinute: 17 * 60} // 09:00-17:00
	}
	return NewEngine(store, catalog)
}

func scheduledAt(id, tenantID string, hour, min, duration int) models.Booking {
	start := time.Date(2025, 6, 10, hour, min, 0, 0, time.UTC)
	return models.Booking{
		ID:              id,
		TenantID:        tenantID,
		DateTime:        start,
		EndTime:         start.Add(time.Duration(duration) * time.Minute),
		Service:         "Basic Wash",
		DurationMinutes: duration,
		Status:          models.BookingScheduled,
	}
}

func TestAvailableTimeSlots_EmptyDay(t *testing.T) {
	eng := newTestEngine(&fakeStore{}, &fakeCatalog{})

	slots, err := eng.AvailableTimeSlots(context.Background(), "T1", "2025-06-10", "Basic Wash")
	require.NoError(t, err)

	// 09:00 through 16:30 in 30-minute steps.
	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "16:30", slots[15].Time)
	for _, s := range slots {
		assert.True(t, s.Available, "slot %s should be available", s.Time)
	}
}

func TestAvailableTimeSlots_ExistingBookingBlocksOverlap(t *testing.T) {
	store := &fakeStore{bookings: map[string][]models.Booking{
		"T1": {scheduledAt("b1", "T1", 10, 0, 30)}, // 10:00-10:30
	}}
	eng := newTestEngine(store, &fakeCatalog{})

	slots, err := eng.AvailableTimeSlots(context.Background(), "T1", "2025-06-10", "Basic Wash")
	require.NoError(t, err)

	byTime := map[string]bool{}
	for _, s := range slots {
		byTime[s.Time] = s.Available
	}
	assert.False(t, byTime["10:00"])
	// Ends exactly at 10:00, half-open intervals do not touch.
	assert.True(t, byTime["09:30"])
	assert.True(t, byTime["10:30"])
}

func TestAvailableTimeSlots_ClosedDayReturnsEmptyList(t *testing.T) {
	eng := newTestEngine(&fakeStore{}, &fakeCatalog{closed: map[string]bool{"2025-06-10": true}})

	slots, err := eng.AvailableTimeSlots(context.Background(), "T1", "2025-06-10", "Basic Wash")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableTimeSlots_DurationExceedsWindow(t *testing.T) {
	catalog := &fakeCatalog{
		services: map[string]int{"Marathon Detail": 600},
		hours:    &models.DayHours{OpenMinute: 9 * 60, CloseMinute: 17 * 60},
	}
	eng := newTestEngine(&fakeStore{}, catalog)

	slots, err := eng.AvailableTimeSlots(context.Background(), "T1", "2025-06-10", "Marathon Detail")
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.False(t, s.Available, "slot %s cannot fit a 600-minute service", s.Time)
	}
}

func TestAvailableTimeSlots_UnknownService(t *testing.T) {
	eng := newTestEngine(&fakeStore{}, &fakeCatalog{})

	_, err := eng.AvailableTimeSlots(context.Background(), "T1", "2025-06-10", "Ceramic Coating")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestAvailableTimeSlots_InvalidInput(t *testing.T) {
	eng := newTestEngine(&fakeStore{}, &fakeCatalog{})

	_, err := eng.AvailableTimeSlots(context.Background(), "", "2025-06-10", "Basic Wash")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = eng.AvailableTimeSlots(context.Background(), "T1", "June 10th", "Basic Wash")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAvailableTimeSlots_FetchErrorPropagates(t *testing.T) {
	eng := newTestEngine(&fakeStore{err: errors.New("connection refused")}, &fakeCatalog{})

	_, err := eng.AvailableTimeSlots(context.Background(), "T1", "2025-06-10", "Basic Wash")
	assert.Error(t, err)
}

func TestAvailableTimeSlots_TenantIsolation(t *testing.T) {
	store := &fakeStore{bookings: map[string][]models.Booking{
		"T1": {scheduledAt("b1", "T1", 10, 0, 30)},
	}}
	eng := newTestEngine(store, &fakeCatalog{})

	slots, err := eng.AvailableTimeSlots(context.Background(), "T2", "2025-06-10", "Basic Wash")
	require.NoError(t, err)
	for _, s := range slots {
		assert.True(t, s.Available, "tenant T1's booking must not affect T2")
	}
}

func TestCheckBookingConflict_Overlap(t *testing.T) {
	store := &fakeStore{bookings: map[string][]models.Booking{
		"T1": {scheduledAt("b1", "T1", 10, 0, 30)}, // 10:00-10:30
	}}
	eng := newTestEngine(store, &fakeCatalog{})

	// 10:15-10:45 overlaps 10:00-10:30.
	proposed := time.Date(2025, 6, 10, 10, 15, 0, 0, time.UTC)
	res, err := eng.CheckBookingConflict(context.Background(), "T1", proposed, "Basic Wash", "")
	require.NoError(t, err)
	assert.True(t, res.HasConflict)
	assert.NotEmpty(t, res.Message)
}

func TestCheckBookingConflict_BoundaryExactness(t *testing.T) {
	store := &fakeStore{bookings: map[string][]models.Booking{
		"T1": {scheduledAt("b1", "T1", 10, 0, 30)}, // 10:00-10:30
	}}
	eng := newTestEngine(store, &fakeCatalog{})
	ctx := context.Background()

	// Starting exactly at the end of the existing interval is allowed.
	atBoundary := time.Date(2025, 6, 10, 10, 30, 0, 0, time.UTC)
	res, err := eng.CheckBookingConflict(ctx, "T1", atBoundary, "Basic Wash", "")
	require.NoError(t, err)
	assert.False(t, res.HasConflict)

	// One minute earlier still overlaps.
	justBefore := atBoundary.Add(-time.Minute)
	res, err = eng.CheckBookingConflict(ctx, "T1", justBefore, "Basic Wash", "")
	require.NoError(t, err)
	assert.True(t, res.HasConflict)

	// Ending exactly when the existing booking starts is allowed.
	endsAtStart := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	res, err = eng.CheckBookingConflict(ctx, "T1", endsAtStart, "Basic Wash", "")
	require.NoError(t, err)
	assert.False(t, res.HasConflict)
}

func TestCheckBookingConflict_SelfExclusionOnReschedule(t *testing.T) {
	store := &fakeStore{bookings: map[string][]models.Booking{
		"T1": {scheduledAt("b1", "T1", 10, 0, 30)},
	}}
	eng := newTestEngine(store, &fakeCatalog{})

	// Rescheduling b1 to its own current slot must not conflict with itself.
	same := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	res, err := eng.CheckBookingConflict(context.Background(), "T1", same, "Basic Wash", "b1")
	require.NoError(t, err)
	assert.False(t, res.HasConflict)
}

func TestCheckBookingConflict_PastClosingTime(t *testing.T) {
	eng := newTestEngine(&fakeStore{}, &fakeCatalog{})

	// Full Detailing (120 min) at 16:00 would end at 18:00, past 17:00 close.
	late := time.Date(2025, 6, 10, 16, 0, 0, 0, time.UTC)
	res, err := eng.CheckBookingConflict(context.Background(), "T1", late, "Full Detailing", "")
	require.NoError(t, err)
	assert.True(t, res.HasConflict)
}

func TestCheckBookingConflict_ClosedDay(t *testing.T) {
	eng := newTestEngine(&fakeStore{}, &fakeCatalog{closed: map[string]bool{"2025-06-10": true}})

	proposed := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	res, err := eng.CheckBookingConflict(context.Background(), "T1", proposed, "Basic Wash", "")
	require.NoError(t, err)
	assert.True(t, res.HasConflict)
}

func TestCheckBookingConflict_FailsClosedOnFetchError(t *testing.T) {
	eng := newTestEngine(&fakeStore{err: errors.New("i/o timeout")}, &fakeCatalog{})

	proposed := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	res, err := eng.CheckBookingConflict(context.Background(), "T1", proposed, "Basic Wash", "")
	require.NoError(t, err)
	assert.True(t, res.HasConflict)
	assert.Contains(t, res.Message, "Unable to verify")
}

func TestCheckBookingConflict_UnknownService(t *testing.T) {
	eng := newTestEngine(&fakeStore{}, &fakeCatalog{})

	proposed := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	_, err := eng.CheckBookingConflict(context.Background(), "T1", proposed, "Ceramic Coating", "")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCheckBookingConflict_TenantIsolation(t *testing.T) {
	store := &fakeStore{bookings: map[string][]models.Booking{
		"T1": {scheduledAt("b1", "T1", 10, 0, 30)},
	}}
	eng := newTestEngine(store, &fakeCatalog{})

	proposed := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	res, err := eng.CheckBookingConflict(context.Background(), "T2", proposed, "Basic Wash", "")
	require.NoError(t, err)
	assert.False(t, res.HasConflict)
}

func TestCheckBookingConflict_TimezoneHandling(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	eng := newTestEngine(&fakeStore{}, &fakeCatalog{loc: loc})

	// 14:00 UTC is 10:00 in New York on this date, inside business hours.
	proposed := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	res, err := eng.CheckBookingConflict(context.Background(), "T1", proposed, "Basic Wash", "")
	require.NoError(t, err)
	assert.False(t, res.HasConflict)

	// 10:00 UTC is 06:00 in New York, before opening.
	early := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	res, err = eng.CheckBookingConflict(context.Background(), "T1", early, "Basic Wash", "")
	require.NoError(t, err)
	assert.True(t, res.HasConflict)
}
