package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jonascoder/surf-shop/models"
	"github.com/jonascoder/surf-shop/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// refreshRating recomputes the post's average rating after a review write.
func (h *Handler) refreshRating(ctx context.Context, postID primitive.ObjectID) error {
	avg, err := h.Reviews.Average(ctx, postID)
	if err != nil {
		return err
	}
	rounded, bucket := models.RoundRating(avg)
	return h.Posts.SetRating(ctx, postID, rounded, bucket)
}

func errOneReview(err error) error {
	return utils.Wrap(http.StatusConflict, "Sorry, you can only create one review per post.", err)
}

func (h *Handler) ReviewCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r.Context())

		postID, err := objectID(mux.Vars(r)["id"])
		if err != nil {
			h.fail(w, r, err)
			return
		}
		back := "/posts/" + postID.Hex()

		post, err := h.Posts.FindByID(r.Context(), postID)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		exists, err := h.Reviews.ExistsForAuthor(r.Context(), post.ID, user.ID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if exists {
			h.failTo(w, r, errOneReview(utils.ErrConflict), back)
			return
		}

		var form reviewForm
		if err := h.bind(r, &form); err != nil {
			h.failTo(w, r, err, back)
			return
		}

		review := &models.Review{
			Body:   form.Body,
			Rating: form.Rating,
			Author: user.ID,
			Post:   post.ID,
		}
		if err := h.Reviews.Create(r.Context(), review); err != nil {
			if errors.Is(err, utils.ErrConflict) {
				err = errOneReview(err)
			}
			h.failTo(w, r, err, back)
			return
		}
		if err := h.Posts.PushReview(r.Context(), post.ID, review.ID); err != nil {
			h.failTo(w, r, err, back)
			return
		}
		if err := h.refreshRating(r.Context(), post.ID); err != nil {
			h.failTo(w, r, err, back)
			return
		}

		h.Logger.Info("review created", zap.String("post", post.ID.Hex()), zap.String("review", review.ID.Hex()))
		h.done(w, r, http.StatusCreated, review, back, "Review created successfully!")
	}
}

func (h *Handler) ReviewUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		review := ReviewFrom(r.Context())
		back := "/posts/" + review.Post.Hex()

		var form reviewForm
		if err := h.bind(r, &form); err != nil {
			h.failTo(w, r, err, back)
			return
		}

		review.Body = form.Body
		review.Rating = form.Rating
		if err := h.Reviews.Update(r.Context(), review); err != nil {
			h.failTo(w, r, err, back)
			return
		}
		if err := h.refreshRating(r.Context(), review.Post); err != nil {
			h.failTo(w, r, err, back)
			return
		}

		h.done(w, r, http.StatusOK, review, back, "Review updated successfully!")
	}
}

func (h *Handler) ReviewDestroy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		review := ReviewFrom(r.Context())
		back := "/posts/" + review.Post.Hex()

		if err := h.Reviews.Delete(r.Context(), review.ID); err != nil {
			h.failTo(w, r, err, back)
			return
		}
		if err := h.Posts.PullReview(r.Context(), review.Post, review.ID); err != nil {
			h.failTo(w, r, err, back)
			return
		}
		if err := h.refreshRating(r.Context(), review.Post); err != nil {
			h.failTo(w, r, err, back)
			return
		}

		h.done(w, r, http.StatusOK, map[string]string{"message": "Review deleted successfully!"}, back, "Review deleted successfully!")
	}
}
