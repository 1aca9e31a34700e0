package repository

import (
	"context"
	"fmt"
	"time"

	"beautify/pkg/config"
	mongox "beautify/pkg/db/mongo"
	"beautify/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "services"

// ServiceRepository reads the treatment catalog. The catalog is maintained
// outside this server and is never written here.
type ServiceRepository interface {
	FindAll(ctx context.Context) ([]*model.Service, error)
	FindNames(ctx context.Context) ([]*model.ServiceName, error)
}

type mongoServiceRepository struct {
	collection  *mongo.Collection
	readTimeout time.Duration
}

func NewMongoServiceRepository(cfg *config.Config) ServiceRepository {
	return newMongoServiceRepository(cfg.Database(), cfg.ReadTimeout)
}

func newMongoServiceRepository(db *mongo.Database, readTimeout time.Duration) *mongoServiceRepository {
	return &mongoServiceRepository{
		collection:  db.Collection(CollectionName),
		readTimeout: readTimeout,
	}
}

func (r *mongoServiceRepository) FindAll(ctx context.Context) ([]*model.Service, error) {
	services := make([]*model.Service, 0)
	if err := r.find(ctx, options.Find(), &services); err != nil {
		return nil, err
	}
	return services, nil
}

// FindNames returns the id and name of every service.
func (r *mongoServiceRepository) FindNames(ctx context.Context) ([]*model.ServiceName, error) {
	names := make([]*model.ServiceName, 0)
	if err := r.find(ctx, options.Find().SetProjection(bson.M{"name": 1}), &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (r *mongoServiceRepository) find(ctx context.Context, opts *options.FindOptions, results any) error {
	ctx, cancel := mongox.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("failed to query services: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, results); err != nil {
		return fmt.Errorf("failed to decode services: %w", err)
	}
	return nil
}
