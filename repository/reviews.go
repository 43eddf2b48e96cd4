package repository

import (
	"context"
	"time"

	"github.com/jonascoder/surf-shop/config"
	"github.com/jonascoder/surf-shop/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoReviewRepository struct {
	reviews *mongo.Collection
}

func NewReviewRepository(c config.Collections) *MongoReviewRepository {
	return &MongoReviewRepository{reviews: c.Reviews}
}

func (r *MongoReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	_, err := r.reviews.InsertOne(ctx, review)
	return translate(err, "create review")
}

func (r *MongoReviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	if err := r.reviews.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		return nil, translate(err, "find review")
	}
	return &review, nil
}

func (r *MongoReviewRepository) Update(ctx context.Context, review *models.Review) error {
	filter := bson.M{"_id": review.ID, "author": review.Author}
	update := bson.M{"$set": bson.M{"body": review.Body, "rating": review.Rating}}

	res, err := r.reviews.UpdateOne(ctx, filter, update)
	if err != nil {
		return translate(err, "update review")
	}
	if res.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments, "update review")
	}
	return nil
}

func (r *MongoReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.reviews.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "delete review")
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments, "delete review")
	}
	return nil
}

func (r *MongoReviewRepository) DeleteByPost(ctx context.Context, postID primitive.ObjectID) error {
	_, err := r.reviews.DeleteMany(ctx, bson.M{"post": postID})
	return translate(err, "delete post reviews")
}

func (r *MongoReviewRepository) ExistsForAuthor(ctx context.Context, postID, author primitive.ObjectID) (bool, error) {
	n, err := r.reviews.CountDocuments(ctx, bson.M{"post": postID, "author": author})
	if err != nil {
		return false, translate(err, "count reviews")
	}
	return n > 0, nil
}

// Average is the mean rating of the post's reviews, 0 when there are none.
func (r *MongoReviewRepository) Average(ctx context.Context, postID primitive.ObjectID) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"post": postID}}},
		{{Key: "$group", Value: bson.M{
			"_id": "$post",
			"avg": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.reviews.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, translate(err, "average rating")
	}
	defer cursor.Close(ctx)

	var result []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, translate(err, "decode average rating")
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Avg, nil
}
