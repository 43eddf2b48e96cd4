package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jonascoder/surf-shop/models"
	"github.com/jonascoder/surf-shop/query"
	"github.com/jonascoder/surf-shop/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type postIndexData struct {
	query.Listing
	MapBoxToken string `json:"mapBoxToken"`
}

type postShowData struct {
	Post        *models.PostDetail `json:"post"`
	MapBoxToken string             `json:"mapBoxToken"`
}

func objectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return id, utils.Wrap(http.StatusNotFound, "Post not found", utils.ErrNotFound)
	}
	return id, nil
}

func (h *Handler) PostIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listing, err := h.Listing.List(r.Context(), r.URL)
		if err != nil {
			var geoErr *query.GeocodeError
			if errors.As(err, &geoErr) {
				err = utils.Wrap(http.StatusBadGateway, fmt.Sprintf("Unable to locate %q", geoErr.Place), err)
			}
			h.fail(w, r, err)
			return
		}

		h.render(w, r, "Posts Index", postIndexData{Listing: listing, MapBoxToken: h.MapboxToken})
	}
}

func (h *Handler) PostNew() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, "New Post", nil)
	}
}

func (h *Handler) PostCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r.Context())

		var form postForm
		if err := h.bind(r, &form); err != nil {
			h.fail(w, r, err)
			return
		}

		files := uploadedFiles(r, "images")
		if len(files) > models.MaxImagesPerPost {
			h.fail(w, r, utils.NewAppError(http.StatusBadRequest,
				fmt.Sprintf("A post can have at most %d images", models.MaxImagesPerPost)))
			return
		}

		geometry, err := h.geocode(r, form.Location)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		images, err := h.uploadAll(r, files)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		post := &models.Post{
			Title:       form.Title,
			Price:       form.Price,
			Description: form.Description,
			Images:      images,
			Location:    form.Location,
			Geometry:    geometry,
			Author:      user.ID,
		}
		if err := h.Posts.Create(r.Context(), post); err != nil {
			h.destroyAll(r, images)
			h.fail(w, r, err)
			return
		}

		h.Logger.Info("post created", zap.String("post", post.ID.Hex()), zap.String("author", user.ID.Hex()))
		h.done(w, r, http.StatusCreated, post, "/posts/"+post.ID.Hex(), "Post created successfully!")
	}
}

func (h *Handler) PostShow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := objectID(mux.Vars(r)["id"])
		if err != nil {
			h.fail(w, r, err)
			return
		}

		post, err := h.Posts.Detail(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		h.render(w, r, post.Title, postShowData{Post: post, MapBoxToken: h.MapboxToken})
	}
}

func (h *Handler) PostEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, "Edit Post", PostFrom(r.Context()))
	}
}

func (h *Handler) PostUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post := PostFrom(r.Context())
		back := "/posts/" + post.ID.Hex()

		var form postForm
		if err := h.bind(r, &form); err != nil {
			h.failTo(w, r, err, back+"/edit")
			return
		}

		doomed := make(map[string]bool, len(form.DeleteImages))
		for _, id := range form.DeleteImages {
			doomed[id] = true
		}
		var kept, removed []models.Image
		for _, img := range post.Images {
			if doomed[img.PublicID] {
				removed = append(removed, img)
			} else {
				kept = append(kept, img)
			}
		}

		files := uploadedFiles(r, "images")
		if len(kept)+len(files) > models.MaxImagesPerPost {
			h.failTo(w, r, utils.NewAppError(http.StatusBadRequest,
				fmt.Sprintf("A post can have at most %d images", models.MaxImagesPerPost)), back+"/edit")
			return
		}

		if form.Location != post.Location {
			geometry, err := h.geocode(r, form.Location)
			if err != nil {
				h.failTo(w, r, err, back+"/edit")
				return
			}
			post.Location = form.Location
			post.Geometry = geometry
		}

		added, err := h.uploadAll(r, files)
		if err != nil {
			h.failTo(w, r, err, back+"/edit")
			return
		}

		post.Title = form.Title
		post.Price = form.Price
		post.Description = form.Description
		post.Images = append(append([]models.Image{}, kept...), added...)

		if err := h.Posts.Update(r.Context(), post); err != nil {
			h.destroyAll(r, added)
			h.failTo(w, r, err, back+"/edit")
			return
		}
		h.destroyAll(r, removed)

		h.done(w, r, http.StatusOK, post, back, "Post updated successfully!")
	}
}

func (h *Handler) PostDestroy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post := PostFrom(r.Context())

		if err := h.Posts.Delete(r.Context(), post.ID); err != nil {
			h.fail(w, r, err)
			return
		}
		if err := h.Reviews.DeleteByPost(r.Context(), post.ID); err != nil {
			h.fail(w, r, err)
			return
		}
		h.destroyAll(r, post.Images)

		h.Logger.Info("post deleted", zap.String("post", post.ID.Hex()))
		h.done(w, r, http.StatusOK, map[string]string{"message": "Post deleted successfully!"}, "/posts", "Post deleted successfully!")
	}
}
