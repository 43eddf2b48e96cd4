package controllers

import (
	"errors"
	"net/http"

	"github.com/jonascoder/surf-shop/models"
	"github.com/jonascoder/surf-shop/session"
	"github.com/jonascoder/surf-shop/utils"
	"go.uber.org/zap"
)

type Response struct {
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

type landingData struct {
	Posts       []models.Post `json:"posts"`
	MapBoxToken string        `json:"mapBoxToken"`
}

func (h *Handler) Landing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.Posts.All(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.render(w, r, "Surf Shop - Home", landingData{Posts: posts, MapBoxToken: h.MapboxToken})
	}
}

// redirectIfLoggedIn sends logged in users away from the register and login
// pages.
func redirectIfLoggedIn(w http.ResponseWriter, r *http.Request) bool {
	if CurrentUser(r.Context()) == nil || utils.WantsJSON(r) {
		return false
	}
	http.Redirect(w, r, "/", http.StatusFound)
	return true
}

func (h *Handler) GetRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if redirectIfLoggedIn(w, r) {
			return
		}
		h.render(w, r, "Register", nil)
	}
}

// login binds the user to the session and, for API clients, answers with a
// bearer token.
func (h *Handler) login(w http.ResponseWriter, r *http.Request, user *models.User, status int, to, message string) {
	if err := session.From(r.Context()).SetUserID(r.Context(), user.ID.Hex()); err != nil {
		h.fail(w, r, err)
		return
	}

	if utils.WantsJSON(r) {
		token, err := h.Tokens.GenerateJWT(user.ID.Hex())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		utils.WriteJSON(w, status, Response{Message: message, Token: token, User: user})
		return
	}
	h.done(w, r, status, nil, to, message)
}

func (h *Handler) PostRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form registerForm
		if err := h.bind(r, &form); err != nil {
			h.failTo(w, r, err, "/register")
			return
		}

		hashedPwd, err := utils.HashPassword(form.Password)
		if err != nil {
			h.failTo(w, r, err, "/register")
			return
		}

		user := &models.User{
			Username: form.Username,
			Email:    form.Email,
			Password: hashedPwd,
		}

		if files := uploadedFiles(r, "image"); len(files) > 0 {
			images, err := h.uploadAll(r, files[:1])
			if err != nil {
				h.failTo(w, r, err, "/register")
				return
			}
			user.Image = &images[0]
		}

		if err := h.Users.Create(r.Context(), user); err != nil {
			if user.Image != nil {
				h.destroyAll(r, []models.Image{*user.Image})
			}
			if errors.Is(err, utils.ErrConflict) {
				err = utils.Wrap(http.StatusConflict, "A user with the given username or email is already registered", err)
			}
			h.failTo(w, r, err, "/register")
			return
		}

		h.Logger.Info("user registered", zap.String("user", user.ID.Hex()))
		h.login(w, r, user, http.StatusCreated, "/", "Welcome to Surf Shop, "+user.Username+"!")
	}
}

func (h *Handler) GetLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if redirectIfLoggedIn(w, r) {
			return
		}
		h.render(w, r, "Login", nil)
	}
}

func (h *Handler) PostLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form loginForm
		if err := h.bind(r, &form); err != nil {
			h.failTo(w, r, err, "/login")
			return
		}

		invalid := utils.Wrap(http.StatusUnauthorized, "Incorrect username or password", utils.ErrUnauthorized)

		user, err := h.Users.FindByUsername(r.Context(), form.Username)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				err = invalid
			}
			h.failTo(w, r, err, "/login")
			return
		}
		if !utils.CheckPasswordHash(form.Password, user.Password) {
			h.failTo(w, r, invalid, "/login")
			return
		}

		to, err := session.From(r.Context()).TakeRedirectTo(r.Context())
		if err != nil || to == "" {
			to = "/"
		}
		h.login(w, r, user, http.StatusOK, to, "Welcome back, "+user.Username+"!")
	}
}

func (h *Handler) GetLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := session.From(r.Context()).Destroy(r.Context()); err != nil {
			h.fail(w, r, err)
			return
		}
		h.done(w, r, http.StatusOK, Response{Message: "Logged out"}, "/", "")
	}
}
