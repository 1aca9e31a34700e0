package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	userserrors "beautify/internal/users/errors"
	"beautify/pkg/config"
	mongox "beautify/pkg/db/mongo"
	"beautify/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "user"

type UserRepository interface {
	Upsert(ctx context.Context, email string, profile map[string]any) (model.UpsertResult, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	SetRole(ctx context.Context, email, role string) error
	Delete(ctx context.Context, email string) error
}

type mongoUserRepository struct {
	collection   *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoUserRepository(cfg *config.Config) UserRepository {
	return newMongoUserRepository(cfg.Database(), cfg.ReadTimeout, cfg.WriteTimeout)
}

func newMongoUserRepository(db *mongo.Database, readTimeout, writeTimeout time.Duration) *mongoUserRepository {
	return &mongoUserRepository{
		collection:   db.Collection(CollectionName),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Upsert replaces the profile sub-document of the user keyed by email. Only
// email, profile and the timestamps are ever written, so role survives.
func (r *mongoUserRepository) Upsert(ctx context.Context, email string, profile map[string]any) (model.UpsertResult, error) {
	ctx, cancel := mongox.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	if profile == nil {
		profile = map[string]any{}
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"email":      email,
			"profile":    profile,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongox.IsDuplicateKey(err) {
			return model.UpsertResult{}, fmt.Errorf("%w: %s", userserrors.ErrDuplicate, email)
		}
		return model.UpsertResult{}, fmt.Errorf("failed to upsert user: %w", err)
	}

	return model.UpsertResult{
		Inserted: result.UpsertedCount > 0,
		Updated:  result.MatchedCount > 0,
	}, nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := mongox.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", userserrors.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *mongoUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	ctx, cancel := mongox.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]*model.User, 0)
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *mongoUserRepository) SetRole(ctx context.Context, email, role string) error {
	ctx, cancel := mongox.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"role":       role,
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to set user role: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", userserrors.ErrNotFound, email)
	}
	return nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, email string) error {
	ctx, cancel := mongox.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", userserrors.ErrNotFound, email)
	}
	return nil
}
