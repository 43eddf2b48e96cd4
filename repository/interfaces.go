package repository

import (
	"context"
	"time"

	"github.com/jonascoder/surf-shop/models"
	"github.com/jonascoder/surf-shop/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Detail(ctx context.Context, id primitive.ObjectID) (*models.PostDetail, error)
	Paginate(ctx context.Context, f query.Filter, p query.Pagination) (models.PostPage, error)
	All(ctx context.Context) ([]models.Post, error)
	ByAuthor(ctx context.Context, author primitive.ObjectID, limit int64) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteAll(ctx context.Context) error
	PushReview(ctx context.Context, postID, reviewID primitive.ObjectID) error
	PullReview(ctx context.Context, postID, reviewID primitive.ObjectID) error
	SetRating(ctx context.Context, postID primitive.ObjectID, avg float64, bucket int) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByPost(ctx context.Context, postID primitive.ObjectID) error
	ExistsForAuthor(ctx context.Context, postID, author primitive.ObjectID) (bool, error)
	Average(ctx context.Context, postID primitive.ObjectID) (float64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	First(ctx context.Context) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// TokenRepository holds short-lived password reset tokens.
type TokenRepository interface {
	Put(ctx context.Context, token, userID string, ttl time.Duration) error
	UserID(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}
