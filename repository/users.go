package repository

import (
	"context"
	"time"

	"github.com/jonascoder/surf-shop/config"
	"github.com/jonascoder/surf-shop/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoUserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(c config.Collections) *MongoUserRepository {
	return &MongoUserRepository{users: c.Users}
}

// Create inserts the user. Username and email uniqueness is enforced by
// the collection's unique indexes.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	_, err := r.users.InsertOne(ctx, user)
	return translate(err, "create user")
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.users.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translate(err, "find user")
	}
	return &user, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// First is the oldest account.
func (r *MongoUserRepository) First(ctx context.Context) (*models.User, error) {
	var user models.User
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	if err := r.users.FindOne(ctx, bson.M{}, opts).Decode(&user); err != nil {
		return nil, translate(err, "find first user")
	}
	return &user, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, user *models.User) error {
	update := bson.M{"$set": bson.M{
		"username": user.Username,
		"email":    user.Email,
		"image":    user.Image,
		"password": user.Password,
	}}
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		return translate(err, "update user")
	}
	if res.MatchedCount == 0 {
		return translate(mongo.ErrNoDocuments, "update user")
	}
	return nil
}
