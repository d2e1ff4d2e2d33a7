// File: services/availability/engine.go
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"detailify/models"
	"detailify/utils"

	"go.uber.org/zap"
)

const slotTimeLayout = "15:04"

// unavailableMessage is the user-facing text for any blocked proposal. The
// underlying cause is logged, never exposed, so internal errors do not leak
// to end users.
const unavailableMessage = "This time slot is not available, please choose another."

// verifyFailedMessage is returned when availability could not be verified.
const verifyFailedMessage = "Unable to verify time slot availability, please try again."

// AvailableTimeSlots computes the ordered slot grid for a tenant's date and
// service. A closed day yields an empty list, not an error. A fetch failure
// propagates as an error rather than returning a possibly-wrong "all
// available" result.
func (e *Engine) AvailableTimeSlots(ctx context.Context, tenantID, date, service string) ([]models.TimeSlot, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	if service == "" {
		return nil, fmt.Errorf("%w: service is required", ErrInvalidInput)
	}

	loc, err := e.Catalog.Location(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant timezone: %w", err)
	}

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, date)
	}

	duration, err := e.Catalog.ServiceDuration(ctx, tenantID, service)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: service %q has non-positive duration", ErrInvalidInput, service)
	}

	hours, err := e.Catalog.OperatingHours(ctx, tenantID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve operating hours: %w", err)
	}
	if hours == nil {
		// Closed that day.
		return []models.TimeSlot{}, nil
	}

	open := day.Add(time.Duration(hours.OpenMinute) * time.Minute)
	close := day.Add(time.Duration(hours.CloseMinute) * time.Minute)

	bookings, err := e.Store.ListScheduledInRange(ctx, tenantID, open, close)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	svcLen := time.Duration(duration) * time.Minute
	var slots []models.TimeSlot
	for start := open; start.Before(close); start = start.Add(e.step()) {
		end := start.Add(svcLen)
		available := !end.After(close) && !overlapsAny(start, end, bookings, "")
		slots = append(slots, models.TimeSlot{
			Time:      start.In(loc).Format(slotTimeLayout),
			Available: available,
		})
	}
	return slots, nil
}

// CheckBookingConflict validates a proposed booking interval against existing
// scheduled bookings. excludeBookingID, when non-empty, removes that booking
// from the conflict set so a reschedule does not conflict with itself.
//
// Unknown services and malformed input surface as errors; a fetch failure
// does not: the check fails closed and reports a conflict, because silently
// permitting a double-booking is worse than asking the caller to retry.
func (e *Engine) CheckBookingConflict(ctx context.Context, tenantID string, dateTime time.Time, service, excludeBookingID string) (models.ConflictResult, error) {
	logger := utils.GetLogger()

	if tenantID == "" {
		return models.ConflictResult{}, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	if service == "" {
		return models.ConflictResult{}, fmt.Errorf("%w: service is required", ErrInvalidInput)
	}
	if dateTime.IsZero() {
		return models.ConflictResult{}, fmt.Errorf("%w: date-time is required", ErrInvalidInput)
	}

	duration, err := e.Catalog.ServiceDuration(ctx, tenantID, service)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return models.ConflictResult{}, err
		}
		logger.Warn("conflict check: failed to resolve service duration, failing closed",
			zap.String("tenantID", tenantID), zap.String("service", service), zap.Error(err))
		return models.ConflictResult{HasConflict: true, Message: verifyFailedMessage}, nil
	}
	if duration <= 0 {
		return models.ConflictResult{}, fmt.Errorf("%w: service %q has non-positive duration", ErrInvalidInput, service)
	}

	loc, err := e.Catalog.Location(ctx, tenantID)
	if err != nil {
		logger.Warn("conflict check: failed to resolve tenant timezone, failing closed",
			zap.String("tenantID", tenantID), zap.Error(err))
		return models.ConflictResult{HasConflict: true, Message: verifyFailedMessage}, nil
	}

	local := dateTime.In(loc)
	date := local.Format("2006-01-02")
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	hours, err := e.Catalog.OperatingHours(ctx, tenantID, date)
	if err != nil {
		logger.Warn("conflict check: failed to resolve operating hours, failing closed",
			zap.String("tenantID", tenantID), zap.String("date", date), zap.Error(err))
		return models.ConflictResult{HasConflict: true, Message: verifyFailedMessage}, nil
	}
	if hours == nil {
		return models.ConflictResult{HasConflict: true, Message: unavailableMessage}, nil
	}

	open := day.Add(time.Duration(hours.OpenMinute) * time.Minute)
	close := day.Add(time.Duration(hours.CloseMinute) * time.Minute)

	start := dateTime
	end := start.Add(time.Duration(duration) * time.Minute)
	if start.Before(open) || end.After(close) {
		return models.ConflictResult{HasConflict: true, Message: unavailableMessage}, nil
	}

	bookings, err := e.Store.ListScheduledInRange(ctx, tenantID, open, close)
	if err != nil {
		logger.Warn("conflict check: failed to fetch bookings, failing closed",
			zap.String("tenantID", tenantID), zap.String("date", date), zap.Error(err))
		return models.ConflictResult{HasConflict: true, Message: verifyFailedMessage}, nil
	}

	if overlapsAny(start, end, bookings, excludeBookingID) {
		return models.ConflictResult{HasConflict: true, Message: unavailableMessage}, nil
	}
	return models.ConflictResult{HasConflict: false}, nil
}
