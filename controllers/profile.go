package controllers

import (
	"errors"
	"net/http"

	"github.com/jonascoder/surf-shop/models"
	"github.com/jonascoder/surf-shop/utils"
)

type profileData struct {
	User  *models.User  `json:"user"`
	Posts []models.Post `json:"posts"`
}

func (h *Handler) GetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r.Context())

		posts, err := h.Posts.ByAuthor(r.Context(), user.ID, 10)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.render(w, r, "Profile", profileData{User: user, Posts: posts})
	}
}

func (h *Handler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := CurrentUser(r.Context())

		var form profileForm
		if err := h.bind(r, &form); err != nil {
			h.failTo(w, r, err, "/profile")
			return
		}

		if !utils.CheckPasswordHash(form.CurrentPassword, current.Password) {
			h.failTo(w, r, utils.NewAppError(http.StatusUnauthorized, "Incorrect current password!"), "/profile")
			return
		}

		updated := *current
		updated.Username = form.Username
		updated.Email = form.Email

		switch {
		case form.NewPassword != "" && form.PasswordConfirmation == "":
			h.failTo(w, r, utils.NewAppError(http.StatusBadRequest, "Missing password confirmation!"), "/profile")
			return
		case form.NewPassword != "" && form.NewPassword != form.PasswordConfirmation:
			h.failTo(w, r, utils.NewAppError(http.StatusBadRequest, "New passwords must match!"), "/profile")
			return
		case form.NewPassword != "":
			hashed, err := utils.HashPassword(form.NewPassword)
			if err != nil {
				h.failTo(w, r, err, "/profile")
				return
			}
			updated.Password = hashed
		}

		var uploaded *models.Image
		if files := uploadedFiles(r, "image"); len(files) > 0 {
			images, err := h.uploadAll(r, files[:1])
			if err != nil {
				h.failTo(w, r, err, "/profile")
				return
			}
			uploaded = &images[0]
			updated.Image = uploaded
		}

		if err := h.Users.Update(r.Context(), &updated); err != nil {
			if uploaded != nil {
				h.destroyAll(r, []models.Image{*uploaded})
			}
			if errors.Is(err, utils.ErrConflict) {
				err = utils.Wrap(http.StatusConflict, "That username or email is already taken", err)
			}
			h.failTo(w, r, err, "/profile")
			return
		}
		if uploaded != nil && current.Image != nil {
			h.destroyAll(r, []models.Image{*current.Image})
		}

		h.done(w, r, http.StatusOK, &updated, "/profile", "Profile successfully updated!")
	}
}
