package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MaxImagesPerPost = 4

type Image struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"publicId" json:"publicId"`
}

// Point is a GeoJSON point. Coordinates are [longitude, latitude].
type Point struct {
	Type        string     `bson:"type" json:"type"`
	Coordinates [2]float64 `bson:"coordinates" json:"coordinates"`
}

func NewPoint(lng, lat float64) Point {
	return Point{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

type Post struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title        string               `bson:"title" json:"title"`
	Price        float64              `bson:"price" json:"price"`
	Description  string               `bson:"description" json:"description"`
	Images       []Image              `bson:"images" json:"images"`
	Location     string               `bson:"location" json:"location"`
	Geometry     Point                `bson:"geometry" json:"geometry"`
	Author       primitive.ObjectID   `bson:"author" json:"author"`
	Reviews      []primitive.ObjectID `bson:"reviews" json:"reviews"`
	AvgRating    float64              `bson:"avgRating" json:"avgRating"`
	RatingBucket int                  `bson:"ratingBucket" json:"-"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
}

// PostPage is one page of a filtered listing.
type PostPage struct {
	Posts []Post `json:"posts"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
	Limit int    `json:"limit"`
}

// PostDetail is a post with its reviews resolved.
type PostDetail struct {
	Post
	ReviewList []ReviewDetail `json:"reviewList"`
}
