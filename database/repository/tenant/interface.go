// File: database/repository/tenant/interface.go
package tenantRepo

import (
	"context"

	"detailify/config"
	"detailify/database"
	"detailify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) (string, error)
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
	GetByEmail(ctx context.Context, email string) (*models.Tenant, error)
	UpdateProfile(ctx context.Context, id, name, timezone string) error
	SetHours(ctx context.Context, id string, hours models.WeeklyHours) error
	AddClosedDate(ctx context.Context, id, date string) error
	RemoveClosedDate(ctx context.Context, id, date string) error
	UpsertService(ctx context.Context, tenantID string, svc models.ServiceDefinition) error
	DeleteService(ctx context.Context, tenantID, name string) error
	EnsureIndexes() error
}

type mongoTenantRepo struct {
	coll *mongo.Collection
}

// NewMongoTenantRepo constructs a new MongoDB TenantRepository.
func NewMongoTenantRepo() TenantRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoTenantRepo{
		coll: db.Collection("tenants"),
	}
}
