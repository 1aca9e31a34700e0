package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"email"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":   bson.M{"bsonType": "objectId"},
			"email": bson.M{"bsonType": "string", "maxLength": 254},
			"role": bson.M{
				"bsonType": "string",
				"enum":     []string{"admin"},
			},
			"profile":    bson.M{"bsonType": "object"},
			"created_at": bson.M{"bsonType": "date"},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}

var BarberValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"email", "name"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "objectId"},
			"email":      bson.M{"bsonType": "string", "maxLength": 254},
			"name":       bson.M{"bsonType": "string", "minLength": 2, "maxLength": 100},
			"specialty":  bson.M{"bsonType": "string"},
			"img":        bson.M{"bsonType": "string"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
