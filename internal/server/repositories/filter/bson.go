package filter

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mongoIDField is the document key FieldID is stored under.
const mongoIDField = "_id"

// BSON compiles f into a MongoDB query document. FieldID values are hex
// object ids; malformed ones simply match nothing.
func BSON(f Filter) (bson.M, error) {
	switch f := f.(type) {
	case nil:
		return bson.M{}, nil
	case EqFilter:
		if f.Field == FieldID {
			oid, err := primitive.ObjectIDFromHex(fmt.Sprint(f.Value))
			if err != nil {
				return matchNothing(), nil
			}
			return bson.M{mongoIDField: oid}, nil
		}
		return bson.M{f.Field: f.Value}, nil
	case ContainsFilter:
		return bson.M{f.Field: primitive.Regex{Pattern: regexp.QuoteMeta(f.Substr), Options: "i"}}, nil
	case InFilter:
		if f.Field == FieldID {
			oids := make(bson.A, 0, len(f.Values))
			for _, v := range f.Values {
				if oid, err := primitive.ObjectIDFromHex(v); err == nil {
					oids = append(oids, oid)
				}
			}
			return bson.M{mongoIDField: bson.M{"$in": oids}}, nil
		}
		values := make(bson.A, 0, len(f.Values))
		for _, v := range f.Values {
			values = append(values, v)
		}
		return bson.M{f.Field: bson.M{"$in": values}}, nil
	case AndFilter:
		if len(f.Filters) == 0 {
			return bson.M{}, nil
		}
		parts, err := bsonAll(f.Filters)
		if err != nil {
			return nil, err
		}
		return bson.M{"$and": parts}, nil
	case OrFilter:
		if len(f.Filters) == 0 {
			return matchNothing(), nil
		}
		parts, err := bsonAll(f.Filters)
		if err != nil {
			return nil, err
		}
		return bson.M{"$or": parts}, nil
	default:
		return nil, fmt.Errorf("unsupported filter %T", f)
	}
}

// BSONSort compiles sorts into a find sort document.
func BSONSort(sorts ...Sort) bson.D {
	d := make(bson.D, 0, len(sorts))
	for _, s := range sorts {
		field := s.Field
		if field == FieldID {
			field = mongoIDField
		}
		dir := 1
		if s.Desc {
			dir = -1
		}
		d = append(d, bson.E{Key: field, Value: dir})
	}
	return d
}

func bsonAll(filters []Filter) (bson.A, error) {
	parts := make(bson.A, 0, len(filters))
	for _, child := range filters {
		m, err := BSON(child)
		if err != nil {
			return nil, err
		}
		parts = append(parts, m)
	}
	return parts, nil
}

func matchNothing() bson.M {
	return bson.M{mongoIDField: bson.M{"$exists": false}}
}
