package validators

import "go.mongodb.org/mongo-driver/bson"

// ServiceValidator covers catalog entries, which are maintained outside the
// server.
var ServiceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "slots"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":  bson.M{"bsonType": "objectId"},
			"name": bson.M{"bsonType": "string", "minLength": 1},
			"slots": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "string"},
			},
			"price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},
		},
	},
}

var PaymentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"booking_id", "transaction_id", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":            bson.M{"bsonType": "objectId"},
			"booking_id":     bson.M{"bsonType": "string"},
			"transaction_id": bson.M{"bsonType": "string", "minLength": 1},
			"payload":        bson.M{"bsonType": "object"},
			"created_at":     bson.M{"bsonType": "date"},
		},
	},
}
