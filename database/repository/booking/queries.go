// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"detailify/models"
)

func (r *mongoBookingRepo) ListByTenant(ctx context.Context, tenantID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"tenantId": tenantID}
	if !from.IsZero() || !to.IsZero() {
		rangeFilter := bson.M{}
		if !from.IsZero() {
			rangeFilter["$gte"] = from
		}
		if !to.IsZero() {
			rangeFilter["$lt"] = to
		}
		filter["dateTime"] = rangeFilter
	}

	opts := options.Find().SetSort(bson.D{{Key: "dateTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// ListScheduledInRange returns scheduled bookings whose occupied interval
// intersects [from, to), scoped to the tenant. The denormalized endTime field
// makes the intersection expressible as a plain range filter.
func (r *mongoBookingRepo) ListScheduledInRange(ctx context.Context, tenantID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"tenantId": tenantID,
		"status":   models.BookingScheduled,
		"dateTime": bson.M{"$lt": to},
		"endTime":  bson.M{"$gt": from},
	}

	opts := options.Find().SetSort(bson.D{{Key: "dateTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scheduled bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding scheduled bookings: %w", err)
	}
	return bookings, nil
}
