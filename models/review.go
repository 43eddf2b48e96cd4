package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Body      string             `bson:"body" json:"body"`
	Rating    int                `bson:"rating" json:"rating"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	Post      primitive.ObjectID `bson:"post" json:"post"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type ReviewDetail struct {
	Review         `bson:",inline"`
	AuthorUsername string `bson:"authorUsername" json:"authorUsername"`
}

// RoundRating rounds a mean rating to one decimal and returns the whole-star
// bucket the listing filter matches on.
func RoundRating(avg float64) (float64, int) {
	rounded := math.Round(avg*10) / 10
	return rounded, int(math.Floor(rounded))
}
