package validators

import "go.mongodb.org/mongo-driver/bson"

var PropertyValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"description",
			"price",
			"location",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 100,
			},

			"description": bson.M{
				"bsonType":  "string",
				"minLength": 10,
			},

			"price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"availability": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "date",
				},
			},

			"images": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"location": bson.M{
				"bsonType": "object",
				"required": []string{"city", "state"},
				"properties": bson.M{
					"city":  bson.M{"bsonType": "string"},
					"state": bson.M{"bsonType": "string"},
				},
			},

			"age_restriction": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},
		},
	},
}
