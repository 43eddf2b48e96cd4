// Package mocks holds testify mocks of the repositories and external
// services, shared by the handler and middleware tests.
package mocks

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/jonascoder/surf-shop/models"
	"github.com/jonascoder/surf-shop/query"
	"github.com/jonascoder/surf-shop/repository"
	"github.com/jonascoder/surf-shop/storage"
	"github.com/jonascoder/surf-shop/utils"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ repository.PostRepository   = (*PostRepository)(nil)
	_ repository.ReviewRepository = (*ReviewRepository)(nil)
	_ repository.UserRepository   = (*UserRepository)(nil)
	_ repository.TokenRepository  = (*TokenRepository)(nil)
	_ storage.ImageStore          = (*ImageStore)(nil)
	_ query.Geocoder              = (*Geocoder)(nil)
	_ utils.Mailer                = (*Mailer)(nil)
)

type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *PostRepository) Detail(ctx context.Context, id primitive.ObjectID) (*models.PostDetail, error) {
	args := m.Called(ctx, id)
	detail, _ := args.Get(0).(*models.PostDetail)
	return detail, args.Error(1)
}

func (m *PostRepository) Paginate(ctx context.Context, f query.Filter, p query.Pagination) (models.PostPage, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(models.PostPage), args.Error(1)
}

func (m *PostRepository) All(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

func (m *PostRepository) ByAuthor(ctx context.Context, author primitive.ObjectID, limit int64) ([]models.Post, error) {
	args := m.Called(ctx, author, limit)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

func (m *PostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PostRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *PostRepository) PushReview(ctx context.Context, postID, reviewID primitive.ObjectID) error {
	args := m.Called(ctx, postID, reviewID)
	return args.Error(0)
}

func (m *PostRepository) PullReview(ctx context.Context, postID, reviewID primitive.ObjectID) error {
	args := m.Called(ctx, postID, reviewID)
	return args.Error(0)
}

func (m *PostRepository) SetRating(ctx context.Context, postID primitive.ObjectID, avg float64, bucket int) error {
	args := m.Called(ctx, postID, avg, bucket)
	return args.Error(0)
}

type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *ReviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	args := m.Called(ctx, id)
	review, _ := args.Get(0).(*models.Review)
	return review, args.Error(1)
}

func (m *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *ReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ReviewRepository) DeleteByPost(ctx context.Context, postID primitive.ObjectID) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *ReviewRepository) ExistsForAuthor(ctx context.Context, postID, author primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, postID, author)
	return args.Bool(0), args.Error(1)
}

func (m *ReviewRepository) Average(ctx context.Context, postID primitive.ObjectID) (float64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(float64), args.Error(1)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) First(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type TokenRepository struct {
	mock.Mock
}

func (m *TokenRepository) Put(ctx context.Context, token, userID string, ttl time.Duration) error {
	args := m.Called(ctx, token, userID, ttl)
	return args.Error(0)
}

func (m *TokenRepository) UserID(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *TokenRepository) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type ImageStore struct {
	mock.Mock
}

func (m *ImageStore) Upload(ctx context.Context, file *multipart.FileHeader) (models.Image, error) {
	args := m.Called(ctx, file)
	return args.Get(0).(models.Image), args.Error(1)
}

func (m *ImageStore) Destroy(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

type Geocoder struct {
	mock.Mock
}

func (m *Geocoder) Forward(ctx context.Context, place string) ([2]float64, error) {
	args := m.Called(ctx, place)
	return args.Get(0).([2]float64), args.Error(1)
}

type Mailer struct {
	mock.Mock
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
