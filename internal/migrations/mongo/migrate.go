package mongo

import (
	"context"
	"fmt"

	barbers "beautify/internal/barbers/repository"
	bookings "beautify/internal/bookings/repository"
	catalog "beautify/internal/catalog/repository"
	"beautify/internal/migrations/mongo/validators"
	payments "beautify/internal/payments/repository"
	users "beautify/internal/users/repository"
	"beautify/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collection struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

var (
	ServiceIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	BookingIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "treatment", Value: 1},
				{Key: "date", Value: 1},
				{Key: "patient", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("treatment_date_patient"),
		},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "patient", Value: 1}, {Key: "_id", Value: 1}}},
	}

	BookingLockIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	}

	UserIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	BarberIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	PaymentIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
		{Keys: bson.D{{Key: "transaction_id", Value: 1}}},
	}
)

// Collections lists every collection the server uses, in creation order.
func Collections() []Collection {
	return []Collection{
		{Name: catalog.CollectionName, Indexes: ServiceIndexes, Validator: validators.ServiceValidator},
		{Name: bookings.CollectionName, Indexes: BookingIndexes, Validator: validators.BookingValidator},
		{Name: bookings.LockCollectionName, Indexes: BookingLockIndexes, Validator: validators.BookingLockValidator},
		{Name: users.CollectionName, Indexes: UserIndexes, Validator: validators.UserValidator},
		{Name: barbers.CollectionName, Indexes: BarberIndexes, Validator: validators.BarberValidator},
		{Name: payments.CollectionName, Indexes: PaymentIndexes, Validator: validators.PaymentValidator},
	}
}

// RunMigration creates missing collections, refreshes their validators and
// ensures indexes. It is safe to run repeatedly.
func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, c := range Collections() {
		if err := ensureCollection(ctx, db, c.Name, c.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", c.Name, err)
		}
		if err := ensureIndexes(ctx, db, c.Name, c.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", c.Name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
