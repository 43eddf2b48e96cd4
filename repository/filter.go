package repository

import (
	"github.com/jonascoder/surf-shop/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// earthRadiusMeters converts a distance to the radians $centerSphere takes.
const earthRadiusMeters = 6378100.0

// FilterToBSON translates a typed filter into a MongoDB query document.
//
// Proximity uses $geoWithin/$centerSphere rather than $near so that the same
// document works for CountDocuments and for an explicit newest-first sort.
func FilterToBSON(f query.Filter) bson.M {
	if f.MatchAll() {
		return bson.M{}
	}

	andConditions := make(bson.A, 0, len(f.Clauses))
	for _, c := range f.Clauses {
		switch c := c.(type) {
		case query.TextMatch:
			re := primitive.Regex{Pattern: c.Pattern, Options: "i"}
			orClauses := make(bson.A, 0, len(c.Fields))
			for _, field := range c.Fields {
				orClauses = append(orClauses, bson.M{field: re})
			}
			andConditions = append(andConditions, bson.M{"$or": orClauses})
		case query.Range:
			op := "$gte"
			if c.Op == query.Lte {
				op = "$lte"
			}
			andConditions = append(andConditions, bson.M{c.Field: bson.M{op: c.Value}})
		case query.In:
			andConditions = append(andConditions, bson.M{c.Field: bson.M{"$in": c.Values}})
		case query.Near:
			andConditions = append(andConditions, bson.M{c.Field: bson.M{
				"$geoWithin": bson.M{
					"$centerSphere": bson.A{
						bson.A{c.Center[0], c.Center[1]},
						c.MaxMeters / earthRadiusMeters,
					},
				},
			}})
		}
	}
	return bson.M{"$and": andConditions}
}
