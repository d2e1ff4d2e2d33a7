// File: services/client/client.go
package client

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	clientRepo "detailify/database/repository/client"
	"detailify/models"
	"detailify/services/availability"
)

var ErrClientNotFound = errors.New("client not found")

// ClientService manages a tenant's customer records.
type ClientService interface {
	Create(ctx context.Context, c *models.Client) (*models.Client, error)
	Get(ctx context.Context, tenantID, id string) (*models.Client, error)
	List(ctx context.Context, tenantID, search string) ([]models.Client, error)
	Update(ctx context.Context, tenantID, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, tenantID, id string) error
}

// DefaultClientService is the production ClientService.
type DefaultClientService struct {
	Repo clientRepo.ClientRepository
}

func (s *DefaultClientService) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	if c.TenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", availability.ErrInvalidInput)
	}
	if c.Name == "" {
		return nil, fmt.Errorf("%w: client name is required", availability.ErrInvalidInput)
	}
	if _, err := s.Repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}

func (s *DefaultClientService) Get(ctx context.Context, tenantID, id string) (*models.Client, error) {
	c, err := s.Repo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *DefaultClientService) List(ctx context.Context, tenantID, search string) ([]models.Client, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", availability.ErrInvalidInput)
	}
	return s.Repo.List(ctx, tenantID, search)
}

// Update applies a whitelisted field set so callers cannot rewrite the tenant
// or id columns.
func (s *DefaultClientService) Update(ctx context.Context, tenantID, id string, fields map[string]interface{}) error {
	allowed := map[string]bool{"name": true, "email": true, "phone": true, "vehicle": true, "notes": true}
	filtered := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if allowed[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return fmt.Errorf("%w: no updatable fields provided", availability.ErrInvalidInput)
	}
	if err := s.Repo.Update(ctx, tenantID, id, filtered); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrClientNotFound
		}
		return err
	}
	return nil
}

func (s *DefaultClientService) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.Repo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrClientNotFound
		}
		return err
	}
	return nil
}
