// File: services/availability/interface.go
package availability

import (
	"context"
	"time"

	"detailify/models"
)

// BookingStore provides read access to persisted bookings. Implementations
// must return only scheduled bookings whose occupied interval intersects
// [from, to), scoped strictly to tenantID.
type BookingStore interface {
	ListScheduledInRange(ctx context.Context, tenantID string, from, to time.Time) ([]models.Booking, error)
}

// ServiceCatalog resolves service durations and tenant operating hours.
type ServiceCatalog interface {
	// ServiceDuration returns the fixed duration in minutes for a service
	// name, or ErrServiceNotFound if the tenant offers no such service.
	ServiceDuration(ctx context.Context, tenantID, service string) (int, error)

	// OperatingHours returns the tenant's operating window for the given
	// calendar date ("YYYY-MM-DD" in the tenant's timezone). A nil result
	// with nil error means the business is closed that day.
	OperatingHours(ctx context.Context, tenantID, date string) (*models.DayHours, error)

	// Location returns the tenant's configured timezone.
	Location(ctx context.Context, tenantID string) (*time.Location, error)
}

// Engine computes bookable time slots and detects booking conflicts. It is a
// stateless, side-effect-free computation over data fetched from its
// collaborators; every call is independent and safe to run concurrently.
//
// The conflict check is a best-effort advisory gate, not a reservation
// primitive: it reads a snapshot, and the actual write happens afterward in a
// separate step, so two concurrent requests can both pass the check before
// either commits. Callers needing stronger guarantees must re-verify at the
// storage layer after the write.
type Engine struct {
	Store       BookingStore
	Catalog     ServiceCatalog
	StepMinutes int // slot grid step; zero means DefaultStepMinutes
}

// DefaultStepMinutes is the reference slot grid step.
const DefaultStepMinutes = 30

func NewEngine(store BookingStore, catalog ServiceCatalog) *Engine {
	return &Engine{Store: store, Catalog: catalog, StepMinutes: DefaultStepMinutes}
}

func (e *Engine) step() time.Duration {
	if e.StepMinutes <= 0 {
		return DefaultStepMinutes * time.Minute
	}
	return time.Duration(e.StepMinutes) * time.Minute
}
