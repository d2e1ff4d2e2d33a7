// File: services/booking/interface.go
package booking

import (
	"context"
	"time"

	bookingRepo "detailify/database/repository/booking"
	"detailify/models"
	"detailify/services/availability"
	"detailify/services/billing"
	"detailify/services/catalog"
)

// BookingService is the write-side booking flow. Every mutation that produces
// a scheduled interval runs the availability engine's conflict check first
// and treats a conflict as a hard stop.
type BookingService interface {
	Create(ctx context.Context, input models.BookingInput) (*models.Booking, error)
	Get(ctx context.Context, tenantID, id string) (*models.Booking, error)
	List(ctx context.Context, tenantID string, from, to time.Time) ([]models.Booking, error)
	Reschedule(ctx context.Context, tenantID, id string, newDateTime time.Time) (*models.Booking, error)
	Cancel(ctx context.Context, tenantID, id string) error
	Complete(ctx context.Context, tenantID, id string) error
	CreateDepositIntent(ctx context.Context, tenantID, id string) (string, error)
}

// ReminderScheduler enqueues an appointment reminder for a booking.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, b *models.Booking) error
}

// DefaultBookingService is the production BookingService.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Engine    *availability.Engine
	Catalog   catalog.CatalogService
	Reminders ReminderScheduler       // optional
	Payments  billing.PaymentProvider // optional
}
