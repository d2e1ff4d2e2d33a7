// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"detailify/config"
	"detailify/database"
	"detailify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) (string, error)
	GetByID(ctx context.Context, tenantID, id string) (*models.Booking, error)
	ListByTenant(ctx context.Context, tenantID string, from, to time.Time) ([]models.Booking, error)
	ListScheduledInRange(ctx context.Context, tenantID string, from, to time.Time) ([]models.Booking, error)
	Reschedule(ctx context.Context, tenantID, id string, dateTime, endTime time.Time) error
	UpdateStatus(ctx context.Context, tenantID, id string, status models.BookingStatus) error
	UpdateNotes(ctx context.Context, tenantID, id, notes string) error
	Delete(ctx context.Context, tenantID, id string) error
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
