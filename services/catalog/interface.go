// File: services/catalog/interface.go
package catalog

import (
	"context"
	"time"

	"detailify/models"
)

// CatalogService manages tenant profiles, service definitions, and operating
// hours. It also implements availability.ServiceCatalog so the engine reads
// durations and hours through the same cached path.
type CatalogService interface {
	CreateTenant(ctx context.Context, t *models.Tenant) (string, error)
	GetTenant(ctx context.Context, tenantID string) (*models.Tenant, error)
	UpdateProfile(ctx context.Context, tenantID, name, timezone string) error

	GetService(ctx context.Context, tenantID, name string) (*models.ServiceDefinition, error)
	ListServices(ctx context.Context, tenantID string) ([]models.ServiceDefinition, error)
	UpsertService(ctx context.Context, tenantID string, svc models.ServiceDefinition) error
	DeleteService(ctx context.Context, tenantID, name string) error

	SetHours(ctx context.Context, tenantID string, hours models.WeeklyHours) error
	AddClosedDate(ctx context.Context, tenantID, date string) error
	RemoveClosedDate(ctx context.Context, tenantID, date string) error

	// availability.ServiceCatalog
	ServiceDuration(ctx context.Context, tenantID, service string) (int, error)
	OperatingHours(ctx context.Context, tenantID, date string) (*models.DayHours, error)
	Location(ctx context.Context, tenantID string) (*time.Location, error)
}
