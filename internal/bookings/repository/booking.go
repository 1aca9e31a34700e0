package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "beautify/internal/bookings/errors"
	"beautify/pkg/config"
	mongox "beautify/pkg/db/mongo"
	"beautify/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "booking"

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	Exists(ctx context.Context, treatment, date, patient string) (bool, error)
	FindByPatient(ctx context.Context, patient string) ([]*model.Booking, error)
	FindByDate(ctx context.Context, date string) ([]*model.Booking, error)
	MarkPaid(ctx context.Context, id, transactionID string) error
	SetReview(ctx context.Context, id, review string) error
}

type mongoBookingRepository struct {
	collection   *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	return newMongoBookingRepository(cfg.Database(), cfg.ReadTimeout, cfg.WriteTimeout)
}

func newMongoBookingRepository(db *mongo.Database, readTimeout, writeTimeout time.Duration) *mongoBookingRepository {
	return &mongoBookingRepository{
		collection:   db.Collection(CollectionName),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := mongox.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if mongox.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s/%s/%s", bookingserrors.ErrDuplicate, booking.Treatment, booking.Date, booking.Patient)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := mongox.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) Exists(ctx context.Context, treatment, date, patient string) (bool, error) {
	ctx, cancel := mongox.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	filter := bson.M{"treatment": treatment, "date": date, "patient": patient}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check booking existence: %w", err)
	}
	return count > 0, nil
}

func (r *mongoBookingRepository) FindByPatient(ctx context.Context, patient string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"patient": patient})
}

func (r *mongoBookingRepository) FindByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"date": date})
}

// find returns matches in insertion order.
func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M) ([]*model.Booking, error) {
	ctx, cancel := mongox.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := make([]*model.Booking, 0)
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// MarkPaid overwrites paid and transactionId unconditionally.
func (r *mongoBookingRepository) MarkPaid(ctx context.Context, id, transactionID string) error {
	return r.set(ctx, id, bson.M{"paid": true, "transactionId": transactionID})
}

func (r *mongoBookingRepository) SetReview(ctx context.Context, id, review string) error {
	return r.set(ctx, id, bson.M{"review": review})
}

func (r *mongoBookingRepository) set(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := mongox.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
	}
	return nil
}
