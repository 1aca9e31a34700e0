package repository

import (
	"context"
	"fmt"
	"time"

	"beautify/pkg/config"
	mongox "beautify/pkg/db/mongo"
	"beautify/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "payments"

// PaymentRepository is append-only.
type PaymentRepository interface {
	Insert(ctx context.Context, payment *model.Payment) error
}

type mongoPaymentRepository struct {
	collection   *mongo.Collection
	writeTimeout time.Duration
}

func NewMongoPaymentRepository(cfg *config.Config) PaymentRepository {
	return newMongoPaymentRepository(cfg.Database(), cfg.WriteTimeout)
}

func newMongoPaymentRepository(db *mongo.Database, writeTimeout time.Duration) *mongoPaymentRepository {
	return &mongoPaymentRepository{
		collection:   db.Collection(CollectionName),
		writeTimeout: writeTimeout,
	}
}

func (r *mongoPaymentRepository) Insert(ctx context.Context, payment *model.Payment) error {
	ctx, cancel := mongox.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	payment.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return fmt.Errorf("failed to record payment for booking %s: %w", payment.BookingID, err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		payment.ID = oid.Hex()
	}
	return nil
}
