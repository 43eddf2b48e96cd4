package routes

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jonascoder/surf-shop/models"
	"github.com/jonascoder/surf-shop/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func multipartRequest(t *testing.T, method, target string, fields url.Values, fileField string, files ...string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, vals := range fields {
		for _, v := range vals {
			require.NoError(t, mw.WriteField(key, v))
		}
	}
	for _, name := range files {
		fw, err := mw.CreateFormFile(fileField, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("\x89PNG fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(method, target, &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	r.Header.Set("Accept", "application/json")
	return r
}

func fileNamed(name string) any {
	return mock.MatchedBy(func(fh *multipart.FileHeader) bool { return fh.Filename == name })
}

func image(id string) models.Image {
	return models.Image{URL: "/uploads/" + id, PublicID: id}
}

var postFields = url.Values{
	"title":       {"Vintage single fin"},
	"price":       {"350"},
	"description": {"Glassed in 1972, minor dings"},
	"location":    {"Malibu, CA"},
}

func TestPostCreate(t *testing.T) {
	a := newApp(t)
	user := testUser(t, "phil", "rincon123")

	a.geocoder.On("Forward", mock.Anything, "Malibu, CA").Return([2]float64{-118.78, 34.03}, nil)
	a.images.On("Upload", mock.Anything, fileNamed("a.png")).Return(image("surf-shop/a.png"), nil)
	a.images.On("Upload", mock.Anything, fileNamed("b.png")).Return(image("surf-shop/b.png"), nil)
	a.posts.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
		return p.Author == user.ID &&
			p.Title == "Vintage single fin" &&
			p.Price == 350 &&
			p.Geometry == models.NewPoint(-118.78, 34.03) &&
			len(p.Images) == 2 && p.Images[0].PublicID == "surf-shop/a.png"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Post).ID = primitive.NewObjectID()
	}).Return(nil)

	r := a.bearer(t, multipartRequest(t, "POST", "/posts", postFields, "images", "a.png", "b.png"), user)
	w := a.do(r)
	require.Equal(t, http.StatusCreated, w.Code)
	var post models.Post
	decode(t, w, &post)
	assert.Equal(t, user.ID, post.Author)
	assert.Len(t, post.Images, 2)
}

func TestPostCreateRejectsTooManyImages(t *testing.T) {
	a := newApp(t)
	user := testUser(t, "phil", "rincon123")

	r := a.bearer(t, multipartRequest(t, "POST", "/posts", postFields, "images", "1.png", "2.png", "3.png", "4.png", "5.png"), user)
	w := a.do(r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at most 4 images")
	a.geocoder.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything)
	a.images.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestPostCreateDestroysUploadsWhenSaveFails(t *testing.T) {
	a := newApp(t)
	user := testUser(t, "phil", "rincon123")

	a.geocoder.On("Forward", mock.Anything, "Malibu, CA").Return([2]float64{-118.78, 34.03}, nil)
	a.images.On("Upload", mock.Anything, fileNamed("a.png")).Return(image("surf-shop/a.png"), nil)
	a.posts.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
	a.images.On("Destroy", mock.Anything, "surf-shop/a.png").Return(nil).Once()

	w := a.do(a.bearer(t, multipartRequest(t, "POST", "/posts", postFields, "images", "a.png"), user))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func ownedPost(author primitive.ObjectID, images ...string) *models.Post {
	p := &models.Post{
		ID:       primitive.NewObjectID(),
		Title:    "Old title",
		Location: "Malibu, CA",
		Geometry: models.NewPoint(-118.78, 34.03),
		Author:   author,
	}
	for _, id := range images {
		p.Images = append(p.Images, image(id))
	}
	return p
}

func TestPostUpdateReplacesImagesWithoutRegeocoding(t *testing.T) {
	a := newApp(t)
	user := testUser(t, "phil", "rincon123")
	post := ownedPost(user.ID, "A", "B", "C")

	a.posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)
	a.images.On("Upload", mock.Anything, fileNamed("d.png")).Return(image("D"), nil)
	a.images.On("Upload", mock.Anything, fileNamed("e.png")).Return(image("E"), nil)
	a.posts.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
		ids := make([]string, 0, len(p.Images))
		for _, img := range p.Images {
			ids = append(ids, img.PublicID)
		}
		return assert.ObjectsAreEqual([]string{"B", "C", "D", "E"}, ids) &&
			p.Title == "Vintage single fin" &&
			p.Geometry == models.NewPoint(-118.78, 34.03)
	})).Return(nil)
	a.images.On("Destroy", mock.Anything, "A").Return(nil).Once()

	fields := url.Values{"deleteImages[]": {"A"}}
	for k, v := range postFields {
		fields[k] = v
	}
	w := a.do(a.bearer(t, multipartRequest(t, "PUT", "/posts/"+post.ID.Hex(), fields, "images", "d.png", "e.png"), user))
	require.Equal(t, http.StatusOK, w.Code)
	a.geocoder.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything)
}

func TestPostUpdateEnforcesImageTotal(t *testing.T) {
	a := newApp(t)
	user := testUser(t, "phil", "rincon123")
	post := ownedPost(user.ID, "A", "B", "C")
	a.posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)

	w := a.do(a.bearer(t, multipartRequest(t, "PUT", "/posts/"+post.ID.Hex(), postFields, "images", "d.png", "e.png"), user))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	a.images.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	a.posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPostUpdateRegeocodesAndRollsBackUploads(t *testing.T) {
	a := newApp(t)
	user := testUser(t, "phil", "rincon123")
	post := ownedPost(user.ID, "A")
	a.posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)

	fields := url.Values{}
	for k, v := range postFields {
		fields[k] = v
	}
	fields.Set("location", "Cocoa Beach, FL")

	a.geocoder.On("Forward", mock.Anything, "Cocoa Beach, FL").Return([2]float64{-80.61, 28.32}, nil).Once()
	a.images.On("Upload", mock.Anything, fileNamed("d.png")).Return(image("D"), nil)
	a.posts.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
		return p.Location == "Cocoa Beach, FL" && p.Geometry == models.NewPoint(-80.61, 28.32)
	})).Return(utils.ErrNotFound)
	a.images.On("Destroy", mock.Anything, "D").Return(nil).Once()

	w := a.do(a.bearer(t, multipartRequest(t, "PUT", "/posts/"+post.ID.Hex(), fields, "images", "d.png"), user))
	assert.Equal(t, http.StatusNotFound, w.Code)
	a.images.AssertNotCalled(t, "Destroy", mock.Anything, "A")
}

func TestPostDestroyKeepsReviewsWhenPostDeleteFails(t *testing.T) {
	a := newApp(t)
	user := testUser(t, "phil", "rincon123")
	post := ownedPost(user.ID, "A")
	a.posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)
	a.posts.On("Delete", mock.Anything, post.ID).Return(errors.New("connection reset"))

	w := a.do(a.bearer(t, httptest.NewRequest("DELETE", "/posts/"+post.ID.Hex(), nil), user))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	a.reviews.AssertNotCalled(t, "DeleteByPost", mock.Anything, mock.Anything)
	a.images.AssertNotCalled(t, "Destroy", mock.Anything, mock.Anything)
}

func TestReviewCreateDuplicateKeyIsConflict(t *testing.T) {
	a := newApp(t)
	user := testUser(t, "bethany", "pipeline1")
	post := &models.Post{ID: primitive.NewObjectID(), Author: primitive.NewObjectID()}

	// A concurrent submit got past the existence check first.
	a.posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)
	a.reviews.On("ExistsForAuthor", mock.Anything, post.ID, user.ID).Return(false, nil)
	a.reviews.On("Create", mock.Anything, mock.Anything).Return(utils.ErrConflict)

	w := a.do(a.bearer(t, jsonRequest("POST", "/posts/"+post.ID.Hex()+"/reviews", `{"body":"Twice","rating":5}`), user))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Sorry, you can only create one review per post.")
	a.posts.AssertNotCalled(t, "PushReview", mock.Anything, mock.Anything, mock.Anything)
}

func ownReview(user *models.User) *models.Review {
	return &models.Review{ID: primitive.NewObjectID(), Post: primitive.NewObjectID(), Author: user.ID, Body: "Mushy", Rating: 2}
}

func TestReviewUpdateRecomputesRating(t *testing.T) {
	a := newApp(t)
	user := testUser(t, "bethany", "pipeline1")
	review := ownReview(user)

	a.reviews.On("FindByID", mock.Anything, review.ID).Return(review, nil)
	a.reviews.On("Update", mock.Anything, mock.MatchedBy(func(rv *models.Review) bool {
		return rv.Body == "Cleaned up" && rv.Rating == 5
	})).Return(nil)
	a.reviews.On("Average", mock.Anything, review.Post).Return(4.5, nil)
	a.posts.On("SetRating", mock.Anything, review.Post, 4.5, 4).Return(nil)

	target := "/posts/" + review.Post.Hex() + "/reviews/" + review.ID.Hex()
	w := a.do(a.bearer(t, jsonRequest("PUT", target, `{"body":"Cleaned up","rating":5}`), user))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestReviewDestroyRecomputesRating(t *testing.T) {
	a := newApp(t)
	user := testUser(t, "bethany", "pipeline1")
	review := ownReview(user)

	a.reviews.On("FindByID", mock.Anything, review.ID).Return(review, nil)
	a.reviews.On("Delete", mock.Anything, review.ID).Return(nil)
	a.posts.On("PullReview", mock.Anything, review.Post, review.ID).Return(nil)
	a.reviews.On("Average", mock.Anything, review.Post).Return(0.0, nil)
	a.posts.On("SetRating", mock.Anything, review.Post, 0.0, 0).Return(nil)

	target := "/posts/" + review.Post.Hex() + "/reviews/" + review.ID.Hex()
	w := a.do(a.bearer(t, httptest.NewRequest("DELETE", target, nil), user))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestReviewDestroyKeepsReferenceWhenDeleteFails(t *testing.T) {
	a := newApp(t)
	user := testUser(t, "bethany", "pipeline1")
	review := ownReview(user)

	a.reviews.On("FindByID", mock.Anything, review.ID).Return(review, nil)
	a.reviews.On("Delete", mock.Anything, review.ID).Return(errors.New("connection reset"))

	target := "/posts/" + review.Post.Hex() + "/reviews/" + review.ID.Hex()
	w := a.do(a.bearer(t, httptest.NewRequest("DELETE", target, nil), user))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	a.posts.AssertNotCalled(t, "PullReview", mock.Anything, mock.Anything, mock.Anything)
}

var profileFields = url.Values{
	"username":        {"carissa"},
	"email":           {"carissa@example.com"},
	"currentPassword": {"tube1234"},
}

func TestUpdateProfileAvatarRollback(t *testing.T) {
	a := newApp(t)
	user := testUser(t, "carissa", "tube1234")
	old := image("avatars/old.png")
	user.Image = &old

	a.images.On("Upload", mock.Anything, fileNamed("new.png")).Return(image("avatars/new.png"), nil)
	a.users.On("Update", mock.Anything, mock.Anything).Return(utils.ErrConflict).Once()
	a.images.On("Destroy", mock.Anything, "avatars/new.png").Return(nil).Once()

	w := a.do(a.bearer(t, multipartRequest(t, "PUT", "/profile", profileFields, "image", "new.png"), user))
	assert.Equal(t, http.StatusConflict, w.Code)
	a.images.AssertNotCalled(t, "Destroy", mock.Anything, "avatars/old.png")
}

func TestUpdateProfileReplacesAvatar(t *testing.T) {
	a := newApp(t)
	user := testUser(t, "carissa", "tube1234")
	old := image("avatars/old.png")
	user.Image = &old

	a.images.On("Upload", mock.Anything, fileNamed("new.png")).Return(image("avatars/new.png"), nil)
	a.users.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Image != nil && u.Image.PublicID == "avatars/new.png"
	})).Return(nil)
	a.images.On("Destroy", mock.Anything, "avatars/old.png").Return(nil).Once()

	w := a.do(a.bearer(t, multipartRequest(t, "PUT", "/profile", profileFields, "image", "new.png"), user))
	require.Equal(t, http.StatusOK, w.Code)
	a.images.AssertNotCalled(t, "Destroy", mock.Anything, "avatars/new.png")
}
