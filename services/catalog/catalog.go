// File: services/catalog/catalog.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	tenantRepo "detailify/database/repository/tenant"
	"detailify/models"
	"detailify/services/availability"
)

var ErrTenantNotFound = errors.New("tenant not found")

// tenantCacheTTL bounds staleness of cached tenant documents. Writes
// invalidate eagerly; the TTL only covers invalidation misses.
const tenantCacheTTL = 60 * time.Second

// DefaultCatalogService is the production CatalogService backed by the tenant
// repository with a Redis read-through cache.
type DefaultCatalogService struct {
	Repo  tenantRepo.TenantRepository
	Cache *redis.Client
}

func cacheKey(tenantID string) string {
	return "tenant:" + tenantID
}

func (s *DefaultCatalogService) getTenant(ctx context.Context, tenantID string) (*models.Tenant, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", availability.ErrInvalidInput)
	}

	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, cacheKey(tenantID)).Result(); err == nil {
			var t models.Tenant
			if err := json.Unmarshal([]byte(data), &t); err == nil {
				return &t, nil
			}
		}
	}

	t, err := s.Repo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to fetch tenant %s: %w", tenantID, err)
	}

	if s.Cache != nil {
		if data, err := json.Marshal(t); err == nil {
			s.Cache.Set(ctx, cacheKey(tenantID), data, tenantCacheTTL)
		}
	}
	return t, nil
}

func (s *DefaultCatalogService) invalidate(ctx context.Context, tenantID string) {
	if s.Cache != nil {
		s.Cache.Del(ctx, cacheKey(tenantID))
	}
}

func (s *DefaultCatalogService) CreateTenant(ctx context.Context, t *models.Tenant) (string, error) {
	if t.Name == "" || t.Email == "" {
		return "", fmt.Errorf("%w: tenant name and email are required", availability.ErrInvalidInput)
	}
	if t.Timezone == "" {
		t.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(t.Timezone); err != nil {
		return "", fmt.Errorf("%w: invalid timezone %q", availability.ErrInvalidInput, t.Timezone)
	}
	if t.SecretHash != "" {
		// Callers pass the raw secret through SecretHash; store only the hash.
		hash, err := bcrypt.GenerateFromPassword([]byte(t.SecretHash), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash tenant secret: %w", err)
		}
		t.SecretHash = string(hash)
	}
	return s.Repo.Create(ctx, t)
}

func (s *DefaultCatalogService) GetTenant(ctx context.Context, tenantID string) (*models.Tenant, error) {
	return s.getTenant(ctx, tenantID)
}

func (s *DefaultCatalogService) UpdateProfile(ctx context.Context, tenantID, name, timezone string) error {
	if err := s.Repo.UpdateProfile(ctx, tenantID, name, timezone); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTenantNotFound
		}
		return err
	}
	s.invalidate(ctx, tenantID)
	return nil
}

func (s *DefaultCatalogService) GetService(ctx context.Context, tenantID, name string) (*models.ServiceDefinition, error) {
	t, err := s.getTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for i := range t.Services {
		if t.Services[i].Name == name {
			return &t.Services[i], nil
		}
	}
	return nil, availability.ErrServiceNotFound
}

func (s *DefaultCatalogService) ListServices(ctx context.Context, tenantID string) ([]models.ServiceDefinition, error) {
	t, err := s.getTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return t.Services, nil
}

func (s *DefaultCatalogService) UpsertService(ctx context.Context, tenantID string, svc models.ServiceDefinition) error {
	if svc.Name == "" {
		return fmt.Errorf("%w: service name is required", availability.ErrInvalidInput)
	}
	if svc.DurationMinutes <= 0 {
		return fmt.Errorf("%w: service duration must be positive", availability.ErrInvalidInput)
	}
	if svc.Price < 0 {
		return fmt.Errorf("%w: service price cannot be negative", availability.ErrInvalidInput)
	}
	if err := s.Repo.UpsertService(ctx, tenantID, svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTenantNotFound
		}
		return err
	}
	s.invalidate(ctx, tenantID)
	return nil
}

func (s *DefaultCatalogService) DeleteService(ctx context.Context, tenantID, name string) error {
	if err := s.Repo.DeleteService(ctx, tenantID, name); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTenantNotFound
		}
		return err
	}
	s.invalidate(ctx, tenantID)
	return nil
}

func (s *DefaultCatalogService) SetHours(ctx context.Context, tenantID string, hours models.WeeklyHours) error {
	for day, h := range hours {
		if day < 0 || day > 6 {
			return fmt.Errorf("%w: weekday index %d out of range", availability.ErrInvalidInput, day)
		}
		if h == nil {
			continue
		}
		if h.OpenMinute < 0 || h.CloseMinute > 24*60 || h.OpenMinute >= h.CloseMinute {
			return fmt.Errorf("%w: invalid operating window %d-%d for weekday %d",
				availability.ErrInvalidInput, h.OpenMinute, h.CloseMinute, day)
		}
	}
	if err := s.Repo.SetHours(ctx, tenantID, hours); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTenantNotFound
		}
		return err
	}
	s.invalidate(ctx, tenantID)
	return nil
}

func (s *DefaultCatalogService) AddClosedDate(ctx context.Context, tenantID, date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: invalid date %q", availability.ErrInvalidInput, date)
	}
	if err := s.Repo.AddClosedDate(ctx, tenantID, date); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTenantNotFound
		}
		return err
	}
	s.invalidate(ctx, tenantID)
	return nil
}

func (s *DefaultCatalogService) RemoveClosedDate(ctx context.Context, tenantID, date string) error {
	if err := s.Repo.RemoveClosedDate(ctx, tenantID, date); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTenantNotFound
		}
		return err
	}
	s.invalidate(ctx, tenantID)
	return nil
}

// ServiceDuration implements availability.ServiceCatalog.
func (s *DefaultCatalogService) ServiceDuration(ctx context.Context, tenantID, service string) (int, error) {
	svc, err := s.GetService(ctx, tenantID, service)
	if err != nil {
		return 0, err
	}
	return svc.DurationMinutes, nil
}

// OperatingHours implements availability.ServiceCatalog. A nil result with
// nil error means the business is closed on that date.
func (s *DefaultCatalogService) OperatingHours(ctx context.Context, tenantID, date string) (*models.DayHours, error) {
	t, err := s.getTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	loc, err := s.locationOf(t)
	if err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", availability.ErrInvalidInput, date)
	}
	return t.HoursFor(int(day.Weekday()), date), nil
}

// Location implements availability.ServiceCatalog.
func (s *DefaultCatalogService) Location(ctx context.Context, tenantID string) (*time.Location, error) {
	t, err := s.getTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return s.locationOf(t)
}

func (s *DefaultCatalogService) locationOf(t *models.Tenant) (*time.Location, error) {
	if t.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return nil, fmt.Errorf("tenant %s has invalid timezone %q: %w", t.ID, t.Timezone, err)
	}
	return loc, nil
}
