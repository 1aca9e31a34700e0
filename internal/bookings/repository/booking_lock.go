package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "beautify/internal/bookings/errors"
	"beautify/pkg/config"
	mongox "beautify/pkg/db/mongo"
	"beautify/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const LockCollectionName = "booking_locks"

// BookingLockRepository stores advisory locks. A lock is a document whose _id
// is the lock key; a second insert of the same key fails on the _id index.
// Abandoned locks are reaped by a TTL index on expires_at.
type BookingLockRepository interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

type mongoBookingLockRepository struct {
	collection   *mongo.Collection
	writeTimeout time.Duration
}

func NewBookingLockRepository(cfg *config.Config) BookingLockRepository {
	return newBookingLockRepository(cfg.Database(), cfg.WriteTimeout)
}

func newBookingLockRepository(db *mongo.Database, writeTimeout time.Duration) *mongoBookingLockRepository {
	return &mongoBookingLockRepository{
		collection:   db.Collection(LockCollectionName),
		writeTimeout: writeTimeout,
	}
}

func (r *mongoBookingLockRepository) Acquire(ctx context.Context, key string, ttl time.Duration) error {
	ctx, cancel := mongox.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	now := time.Now().UTC()
	lock := &model.BookingLock{
		ID:        key,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongox.IsDuplicateKey(err) {
			// The TTL monitor runs about once a minute, so a lock past its
			// expiry may still be present. Take it over if so.
			if r.takeOverExpired(ctx, key, ttl) {
				return nil
			}
			return fmt.Errorf("%w: %s", bookingserrors.ErrLockHeld, key)
		}
		return fmt.Errorf("failed to acquire booking lock: %w", err)
	}
	return nil
}

func (r *mongoBookingLockRepository) takeOverExpired(ctx context.Context, key string, ttl time.Duration) bool {
	now := time.Now().UTC()
	filter := bson.M{"_id": key, "expires_at": bson.M{"$lte": now}}
	update := bson.M{"$set": bson.M{"expires_at": now.Add(ttl), "created_at": now}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	return err == nil && result.ModifiedCount == 1
}

func (r *mongoBookingLockRepository) Release(ctx context.Context, key string) error {
	ctx, cancel := mongox.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to release booking lock: %w", err)
	}
	return nil
}
