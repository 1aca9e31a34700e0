package repository

import (
	"context"
	"fmt"
	"time"

	barberserrors "beautify/internal/barbers/errors"
	"beautify/pkg/config"
	mongox "beautify/pkg/db/mongo"
	"beautify/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "barber"

type BarberRepository interface {
	Create(ctx context.Context, barber *model.Barber) error
	FindAll(ctx context.Context) ([]*model.Barber, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type mongoBarberRepository struct {
	collection   *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoBarberRepository(cfg *config.Config) BarberRepository {
	return newMongoBarberRepository(cfg.Database(), cfg.ReadTimeout, cfg.WriteTimeout)
}

func newMongoBarberRepository(db *mongo.Database, readTimeout, writeTimeout time.Duration) *mongoBarberRepository {
	return &mongoBarberRepository{
		collection:   db.Collection(CollectionName),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (r *mongoBarberRepository) Create(ctx context.Context, barber *model.Barber) error {
	ctx, cancel := mongox.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	barber.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, barber)
	if err != nil {
		if mongox.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s", barberserrors.ErrDuplicate, barber.Email)
		}
		return fmt.Errorf("failed to create barber: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		barber.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBarberRepository) FindAll(ctx context.Context) ([]*model.Barber, error) {
	ctx, cancel := mongox.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query barbers: %w", err)
	}
	defer cursor.Close(ctx)

	barbers := make([]*model.Barber, 0)
	if err = cursor.All(ctx, &barbers); err != nil {
		return nil, fmt.Errorf("failed to decode barbers: %w", err)
	}
	return barbers, nil
}

func (r *mongoBarberRepository) DeleteByEmail(ctx context.Context, email string) error {
	ctx, cancel := mongox.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("failed to delete barber: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", barberserrors.ErrNotFound, email)
	}
	return nil
}
