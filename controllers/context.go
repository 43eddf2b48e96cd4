package controllers

import (
	"context"

	"github.com/jonascoder/surf-shop/models"
)

type ContextKey string

const (
	UserKey   = ContextKey("user")
	PostKey   = ContextKey("post")
	ReviewKey = ContextKey("review")
)

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// CurrentUser is the authenticated user, or nil for anonymous requests.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserKey).(*models.User)
	return user
}

func WithPost(ctx context.Context, post *models.Post) context.Context {
	return context.WithValue(ctx, PostKey, post)
}

func PostFrom(ctx context.Context) *models.Post {
	post, _ := ctx.Value(PostKey).(*models.Post)
	return post
}

func WithReview(ctx context.Context, review *models.Review) context.Context {
	return context.WithValue(ctx, ReviewKey, review)
}

func ReviewFrom(ctx context.Context) *models.Review {
	review, _ := ctx.Value(ReviewKey).(*models.Review)
	return review
}
