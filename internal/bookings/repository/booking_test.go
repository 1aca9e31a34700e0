package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingserrors "beautify/internal/bookings/errors"
	"beautify/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const ns = "beautify_me.booking"

func newTestRepo(mt *mtest.T) *mongoBookingRepository {
	return newMongoBookingRepository(mt.DB, time.Second, time.Second)
}

func TestCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		booking := &model.Booking{Treatment: "Haircut", Date: "2024-06-01", Slot: "9am", Patient: "a@x.com"}
		require.NoError(t, newTestRepo(mt).Create(context.Background(), booking))

		_, err := primitive.ObjectIDFromHex(booking.ID)
		assert.NoError(t, err)
		assert.False(t, booking.CreatedAt.IsZero())
	})

	mt.Run("unique index violation", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: beautify_me.booking index: treatment_date_patient",
		}))

		booking := &model.Booking{Treatment: "Haircut", Date: "2024-06-01", Slot: "9am", Patient: "a@x.com"}
		err := newTestRepo(mt).Create(context.Background(), booking)
		assert.True(t, errors.Is(err, bookingserrors.ErrDuplicate))
	})
}

func TestFindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("invalid id", func(mt *mtest.T) {
		_, err := newTestRepo(mt).FindByID(context.Background(), "not-hex")
		assert.True(t, errors.Is(err, bookingserrors.ErrInvalidID))
	})

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "treatment", Value: "Haircut"},
			{Key: "paid", Value: true},
			{Key: "transactionId", Value: "tx123"},
		}))

		booking, err := newTestRepo(mt).FindByID(context.Background(), id.Hex())
		require.NoError(t, err)
		assert.Equal(t, id.Hex(), booking.ID)
		assert.True(t, booking.Paid)
		assert.Equal(t, "tx123", booking.TransactionID)
	})

	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := newTestRepo(mt).FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.True(t, errors.Is(err, bookingserrors.ErrNotFound))
	})
}

func TestExists(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("hit", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}))

		exists, err := newTestRepo(mt).Exists(context.Background(), "Haircut", "2024-01-01", "a@x.com")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	mt.Run("miss", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		exists, err := newTestRepo(mt).Exists(context.Background(), "Haircut", "2024-01-01", "a@x.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestFindByDate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes every booking", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "treatment", Value: "Haircut"}, {Key: "slot", Value: "9am"}, {Key: "date", Value: "2024-06-01"}},
			bson.D{{Key: "treatment", Value: "Shave"}, {Key: "slot", Value: "1pm"}, {Key: "date", Value: "2024-06-01"}},
		))

		bookings, err := newTestRepo(mt).FindByDate(context.Background(), "2024-06-01")
		require.NoError(t, err)
		require.Len(t, bookings, 2)
		assert.Equal(t, "9am", bookings[0].Slot)
		assert.Equal(t, "Shave", bookings[1].Treatment)
	})
}

func TestMarkPaid(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("matched", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})

		assert.NoError(t, newTestRepo(mt).MarkPaid(context.Background(), primitive.NewObjectID().Hex(), "tx123"))
	})

	mt.Run("repeat call is still a match", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 0}})

		assert.NoError(t, newTestRepo(mt).MarkPaid(context.Background(), primitive.NewObjectID().Hex(), "tx123"))
	})

	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})

		err := newTestRepo(mt).SetReview(context.Background(), primitive.NewObjectID().Hex(), "great")
		assert.True(t, errors.Is(err, bookingserrors.ErrNotFound))
	})
}

func TestBookingLock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("acquire", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := newBookingLockRepository(mt.DB, time.Second)
		assert.NoError(t, repo.Acquire(context.Background(), "k", 10*time.Second))
	})

	mt.Run("held", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}},
		)

		repo := newBookingLockRepository(mt.DB, time.Second)
		err := repo.Acquire(context.Background(), "k", 10*time.Second)
		assert.True(t, errors.Is(err, bookingserrors.ErrLockHeld))
	})

	mt.Run("expired lock taken over", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}},
		)

		repo := newBookingLockRepository(mt.DB, time.Second)
		assert.NoError(t, repo.Acquire(context.Background(), "k", 10*time.Second))
	})
}
