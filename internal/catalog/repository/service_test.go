package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestFindAllKeepsSlotOrder(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("catalog", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "beautify_me.services", mtest.FirstBatch,
			bson.D{{Key: "name", Value: "Haircut"}, {Key: "slots", Value: bson.A{"9am", "10am", "11am"}}},
			bson.D{{Key: "name", Value: "Shave"}, {Key: "slots", Value: bson.A{"1pm"}}},
		))

		services, err := newMongoServiceRepository(mt.DB, time.Second).FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, services, 2)
		assert.Equal(t, []string{"9am", "10am", "11am"}, services[0].Slots)
		assert.Equal(t, "Shave", services[1].Name)
	})

	mt.Run("names", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "beautify_me.services", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "s1"}, {Key: "name", Value: "Haircut"}},
		))

		names, err := newMongoServiceRepository(mt.DB, time.Second).FindNames(context.Background())
		require.NoError(t, err)
		require.Len(t, names, 1)
		assert.Equal(t, "s1", names[0].ID)
		assert.Equal(t, "Haircut", names[0].Name)
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    91,
			Message: "shutdown in progress",
		}))

		_, err := newMongoServiceRepository(mt.DB, time.Second).FindNames(context.Background())
		assert.Error(t, err)
	})
}
