package repository

import (
	"context"
	"math"
	"time"

	"github.com/jonascoder/surf-shop/config"
	"github.com/jonascoder/surf-shop/models"
	"github.com/jonascoder/surf-shop/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoPostRepository struct {
	posts   *mongo.Collection
	reviews *mongo.Collection
}

func NewPostRepository(c config.Collections) *MongoPostRepository {
	return &MongoPostRepository{posts: c.Posts, reviews: c.Reviews}
}

var newestFirst = bson.D{{Key: "_id", Value: -1}}

func (r *MongoPostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	if post.Images == nil {
		post.Images = []models.Image{}
	}
	if post.Reviews == nil {
		post.Reviews = []primitive.ObjectID{}
	}
	_, err := r.posts.InsertOne(ctx, post)
	return translate(err, "create post")
}

func (r *MongoPostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, translate(err, "find post")
	}
	return &post, nil
}

// Detail loads a post with its reviews, newest first, each carrying its
// author's username.
func (r *MongoPostRepository) Detail(ctx context.Context, id primitive.ObjectID) (*models.PostDetail, error) {
	post, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"post": id}}},
		{{Key: "$sort", Value: newestFirst}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "author",
			"foreignField": "_id",
			"as":           "authorDocs",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"authorUsername": bson.M{"$arrayElemAt": bson.A{"$authorDocs.username", 0}},
		}}},
		{{Key: "$project", Value: bson.M{"authorDocs": 0}}},
	}

	cursor, err := r.reviews.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err, "load reviews")
	}
	defer cursor.Close(ctx)

	detail := &models.PostDetail{Post: *post, ReviewList: []models.ReviewDetail{}}
	if err := cursor.All(ctx, &detail.ReviewList); err != nil {
		return nil, translate(err, "decode reviews")
	}
	return detail, nil
}

func (r *MongoPostRepository) Paginate(ctx context.Context, f query.Filter, p query.Pagination) (models.PostPage, error) {
	filter := FilterToBSON(f)

	total, err := r.posts.CountDocuments(ctx, filter)
	if err != nil {
		return models.PostPage{}, translate(err, "count posts")
	}

	findOptions := options.Find().
		SetSort(newestFirst).
		SetSkip(int64(p.Skip)).
		SetLimit(int64(p.Limit))

	cursor, err := r.posts.Find(ctx, filter, findOptions)
	if err != nil {
		return models.PostPage{}, translate(err, "find posts")
	}
	defer cursor.Close(ctx)

	page := models.PostPage{
		Posts: []models.Post{},
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
		Pages: int(math.Ceil(float64(total) / float64(p.Limit))),
	}
	if err := cursor.All(ctx, &page.Posts); err != nil {
		return models.PostPage{}, translate(err, "decode posts")
	}
	return page, nil
}

func (r *MongoPostRepository) All(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetProjection(bson.M{"title": 1, "location": 1, "geometry": 1, "description": 1})
	cursor, err := r.posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate(err, "find posts")
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, translate(err, "decode posts")
	}
	return posts, nil
}

func (r *MongoPostRepository) ByAuthor(ctx context.Context, author primitive.ObjectID, limit int64) ([]models.Post, error) {
	opts := options.Find().SetSort(newestFirst).SetLimit(limit)
	cursor, err := r.posts.Find(ctx, bson.M{"author": author}, opts)
	if err != nil {
		return nil, translate(err, "find posts")
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, translate(err, "decode posts")
	}
	return posts, nil
}

// Update writes the editable fields. The author must match.
func (r *MongoPostRepository) Update(ctx context.Context, post *models.Post) error {
	filter := bson.M{"_id": post.ID, "author": post.Author}
	update := bson.M{"$set": bson.M{
		"title":       post.Title,
		"price":       post.Price,
		"description": post.Description,
		"images":      post.Images,
		"location":    post.Location,
		"geometry":    post.Geometry,
	}}

	res, err := r.posts.UpdateOne(ctx, filter, update)
	if err != nil {
		return translate(err, "update post")
	}
	if res.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments, "update post")
	}
	return nil
}

func (r *MongoPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "delete post")
	}
	if res.DeletedCount == 0 {
		return translate(mongo.ErrNoDocuments, "delete post")
	}
	return nil
}

func (r *MongoPostRepository) DeleteAll(ctx context.Context) error {
	_, err := r.posts.DeleteMany(ctx, bson.M{})
	return translate(err, "delete posts")
}

func (r *MongoPostRepository) PushReview(ctx context.Context, postID, reviewID primitive.ObjectID) error {
	_, err := r.posts.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$push": bson.M{"reviews": reviewID}})
	return translate(err, "add review to post")
}

func (r *MongoPostRepository) PullReview(ctx context.Context, postID, reviewID primitive.ObjectID) error {
	_, err := r.posts.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$pull": bson.M{"reviews": reviewID}})
	return translate(err, "remove review from post")
}

func (r *MongoPostRepository) SetRating(ctx context.Context, postID primitive.ObjectID, avg float64, bucket int) error {
	_, err := r.posts.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$set": bson.M{
		"avgRating":    avg,
		"ratingBucket": bucket,
	}})
	return translate(err, "set post rating")
}
