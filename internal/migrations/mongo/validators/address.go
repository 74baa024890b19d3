package validators

import "go.mongodb.org/mongo-driver/bson"

var AddressValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"components", "single_line", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id": bson.M{"bsonType": "objectId"},
			"components": bson.M{
				"bsonType":             "object",
				"additionalProperties": bson.M{"bsonType": "string"},
			},
			"single_line": bson.M{"bsonType": "string"},
			"city_key":    bson.M{"bsonType": "string"},
			"state_kind": bson.M{
				"enum": []string{"us_state_code", "canadian_province", "other"},
			},
			"country_kind": bson.M{
				"enum": []string{"iso2", "iso3", "name"},
			},
			"source":     bson.M{"bsonType": "string", "maxLength": 64},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
