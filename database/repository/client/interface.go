// File: database/repository/client/interface.go
package clientRepo

import (
	"context"

	"detailify/config"
	"detailify/database"
	"detailify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ClientRepository interface {
	Create(ctx context.Context, c *models.Client) (string, error)
	GetByID(ctx context.Context, tenantID, id string) (*models.Client, error)
	List(ctx context.Context, tenantID, search string) ([]models.Client, error)
	Update(ctx context.Context, tenantID, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, tenantID, id string) error
	EnsureIndexes() error
}

type mongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo constructs a new MongoDB ClientRepository.
func NewMongoClientRepo() ClientRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoClientRepo{
		coll: db.Collection("clients"),
	}
}
