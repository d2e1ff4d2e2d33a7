// File: services/booking/service.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"detailify/models"
	"detailify/services/availability"
	"detailify/utils"
)

// Create validates the input, runs the advisory conflict check, persists the
// booking, then re-verifies the interval against the committed store. The
// conflict check reads a snapshot, so two concurrent requests can both pass
// it; the post-write re-verification with a compensating delete closes most
// of that window.
func (svc *DefaultBookingService) Create(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	if input.TenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", availability.ErrInvalidInput)
	}
	if input.Service == "" {
		return nil, fmt.Errorf("%w: service is required", availability.ErrInvalidInput)
	}
	if input.DateTime.IsZero() {
		return nil, fmt.Errorf("%w: date-time is required", availability.ErrInvalidInput)
	}
	if input.ClientID == "" && input.ClientName == "" {
		return nil, fmt.Errorf("%w: a client id or an inline client name is required", availability.ErrInvalidInput)
	}

	svcDef, err := svc.Catalog.GetService(ctx, input.TenantID, input.Service)
	if err != nil {
		return nil, err
	}

	res, err := svc.Engine.CheckBookingConflict(ctx, input.TenantID, input.DateTime, input.Service, "")
	if err != nil {
		return nil, err
	}
	if res.HasConflict {
		return nil, &ConflictError{Message: res.Message}
	}

	b := &models.Booking{
		TenantID:        input.TenantID,
		ClientID:        input.ClientID,
		ClientName:      input.ClientName,
		ClientEmail:     input.ClientEmail,
		ClientPhone:     input.ClientPhone,
		DateTime:        input.DateTime,
		Service:         svcDef.Name,
		DurationMinutes: svcDef.DurationMinutes,
		Price:           svcDef.Price,
		Status:          models.BookingScheduled,
		Notes:           input.Notes,
	}

	if _, err := svc.Repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	if err := svc.verifyCommitted(ctx, b); err != nil {
		if delErr := svc.Repo.Delete(ctx, b.TenantID, b.ID); delErr != nil {
			logger.Error("failed to roll back double-booked record",
				zap.String("bookingID", b.ID), zap.Error(delErr))
		}
		return nil, err
	}

	if svc.Reminders != nil {
		if err := svc.Reminders.ScheduleReminder(ctx, b); err != nil {
			// A missed reminder must not fail the booking.
			logger.Warn("failed to schedule booking reminder",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}

	return b, nil
}

// verifyCommitted re-reads the committed store and reports a conflict if any
// other scheduled booking overlaps b's interval.
func (svc *DefaultBookingService) verifyCommitted(ctx context.Context, b *models.Booking) error {
	existing, err := svc.Repo.ListScheduledInRange(ctx, b.TenantID, b.DateTime, b.End())
	if err != nil {
		// Fail closed: an unverifiable write is treated as a conflict.
		return &ConflictError{Message: "Unable to verify time slot availability, please try again."}
	}
	for i := range existing {
		if existing[i].ID == b.ID {
			continue
		}
		return &ConflictError{Message: "This time slot is not available, please choose another."}
	}
	return nil
}

func (svc *DefaultBookingService) Get(ctx context.Context, tenantID, id string) (*models.Booking, error) {
	b, err := svc.Repo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (svc *DefaultBookingService) List(ctx context.Context, tenantID string, from, to time.Time) ([]models.Booking, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", availability.ErrInvalidInput)
	}
	return svc.Repo.ListByTenant(ctx, tenantID, from, to)
}

// Reschedule moves a scheduled booking to a new start time. The booking's own
// interval is excluded from the conflict set so it can keep or shift within
// its current slot. The duration snapshot is refreshed from the current
// catalog, since only future computations use the current catalog.
func (svc *DefaultBookingService) Reschedule(ctx context.Context, tenantID, id string, newDateTime time.Time) (*models.Booking, error) {
	if newDateTime.IsZero() {
		return nil, fmt.Errorf("%w: date-time is required", availability.ErrInvalidInput)
	}

	b, err := svc.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingScheduled {
		return nil, fmt.Errorf("%w: only scheduled bookings can be rescheduled", ErrInvalidTransition)
	}

	res, err := svc.Engine.CheckBookingConflict(ctx, tenantID, newDateTime, b.Service, id)
	if err != nil {
		return nil, err
	}
	if res.HasConflict {
		return nil, &ConflictError{Message: res.Message}
	}

	duration, err := svc.Catalog.ServiceDuration(ctx, tenantID, b.Service)
	if err != nil {
		return nil, err
	}

	oldStart, oldEnd := b.DateTime, b.EndTime
	b.DateTime = newDateTime
	b.DurationMinutes = duration
	b.EndTime = newDateTime.Add(time.Duration(duration) * time.Minute)

	if err := svc.Repo.Reschedule(ctx, tenantID, id, b.DateTime, b.EndTime); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to reschedule booking: %w", err)
	}

	if err := svc.verifyCommitted(ctx, b); err != nil {
		if revertErr := svc.Repo.Reschedule(ctx, tenantID, id, oldStart, oldEnd); revertErr != nil {
			utils.GetLogger().Error("failed to revert conflicting reschedule",
				zap.String("bookingID", id), zap.Error(revertErr))
		}
		return nil, err
	}

	if svc.Reminders != nil {
		if err := svc.Reminders.ScheduleReminder(ctx, b); err != nil {
			utils.GetLogger().Warn("failed to reschedule booking reminder",
				zap.String("bookingID", id), zap.Error(err))
		}
	}

	return b, nil
}

func (svc *DefaultBookingService) Cancel(ctx context.Context, tenantID, id string) error {
	return svc.transition(ctx, tenantID, id, models.BookingCancelled)
}

func (svc *DefaultBookingService) Complete(ctx context.Context, tenantID, id string) error {
	return svc.transition(ctx, tenantID, id, models.BookingCompleted)
}

// transition moves a scheduled booking into a terminal state. Terminal states
// never transition again.
func (svc *DefaultBookingService) transition(ctx context.Context, tenantID, id string, to models.BookingStatus) error {
	b, err := svc.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if b.Status.Terminal() {
		return fmt.Errorf("%w: booking is already %s", ErrInvalidTransition, b.Status)
	}
	if err := svc.Repo.UpdateStatus(ctx, tenantID, id, to); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBookingNotFound
		}
		return err
	}
	return nil
}

// CreateDepositIntent creates a payment intent for the booking's price via
// the configured payment provider.
func (svc *DefaultBookingService) CreateDepositIntent(ctx context.Context, tenantID, id string) (string, error) {
	if svc.Payments == nil {
		return "", errors.New("payments are not configured")
	}
	b, err := svc.Get(ctx, tenantID, id)
	if err != nil {
		return "", err
	}
	if b.Status != models.BookingScheduled {
		return "", fmt.Errorf("%w: deposits apply to scheduled bookings only", ErrInvalidTransition)
	}
	return svc.Payments.CreateDepositIntent(ctx, b)
}
