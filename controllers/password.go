package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jonascoder/surf-shop/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var errResetToken = utils.Wrap(http.StatusNotFound, "Password reset token is invalid or has expired.", utils.ErrNotFound)

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (h *Handler) GetForgot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, "Forgot Password", nil)
	}
}

func (h *Handler) PutForgot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form forgotForm
		if err := h.bind(r, &form); err != nil {
			h.failTo(w, r, err, "/forgot-password")
			return
		}

		user, err := h.Users.FindByEmail(r.Context(), form.Email)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				err = utils.Wrap(http.StatusNotFound, "No account with that email.", err)
			}
			h.failTo(w, r, err, "/forgot-password")
			return
		}

		token := strings.ReplaceAll(uuid.NewString(), "-", "")
		if err := h.ResetTokens.Put(r.Context(), token, user.ID.Hex(), h.ResetTTL); err != nil {
			h.failTo(w, r, err, "/forgot-password")
			return
		}

		body := fmt.Sprintf("You are receiving this because you (or someone else) have requested the reset of the password for your account.\n\n"+
			"Please click on the following link, or copy and paste it into your browser to complete the process:\n\n"+
			"%s/reset/%s\n\n"+
			"If you did not request this, please ignore this email and your password will remain unchanged.\n", baseURL(r), token)
		if err := h.Mailer.Send(r.Context(), user.Email, "Surf Shop - Forgot Password / Reset", body); err != nil {
			h.Logger.Error("failed to send reset mail", zap.String("user", user.ID.Hex()), zap.Error(err))
			h.failTo(w, r, utils.Wrap(http.StatusBadGateway, "Unable to send the reset e-mail, please try again.", err), "/forgot-password")
			return
		}

		msg := fmt.Sprintf("An e-mail has been sent to %s with further instructions.", user.Email)
		h.done(w, r, http.StatusOK, Response{Message: msg}, "/forgot-password", msg)
	}
}

func (h *Handler) GetReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := mux.Vars(r)["token"]
		if _, err := h.ResetTokens.UserID(r.Context(), token); err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				err = errResetToken
			}
			h.failTo(w, r, err, "/forgot-password")
			return
		}
		h.render(w, r, "Reset Password", map[string]string{"token": token})
	}
}

func (h *Handler) PutReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := mux.Vars(r)["token"]

		userID, err := h.ResetTokens.UserID(r.Context(), token)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				err = errResetToken
			}
			h.failTo(w, r, err, "/forgot-password")
			return
		}

		var form resetForm
		if err := h.bind(r, &form); err != nil {
			h.failTo(w, r, err, "/reset/"+token)
			return
		}
		if form.Password != form.Confirm {
			h.failTo(w, r, utils.NewAppError(http.StatusBadRequest, "Passwords do not match."), "/reset/"+token)
			return
		}

		id, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			h.failTo(w, r, errResetToken, "/forgot-password")
			return
		}
		user, err := h.Users.FindByID(r.Context(), id)
		if err != nil {
			h.failTo(w, r, err, "/forgot-password")
			return
		}

		user.Password, err = utils.HashPassword(form.Password)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if err := h.Users.Update(r.Context(), user); err != nil {
			h.fail(w, r, err)
			return
		}
		if err := h.ResetTokens.Delete(r.Context(), token); err != nil {
			h.Logger.Warn("failed to delete reset token", zap.Error(err))
		}

		body := fmt.Sprintf("Hello,\n\nThis is a confirmation that the password for your account %s has just been changed.\n", user.Email)
		if err := h.Mailer.Send(r.Context(), user.Email, "Surf Shop - Password Changed", body); err != nil {
			h.Logger.Warn("failed to send password change confirmation", zap.Error(err))
		}

		h.login(w, r, user, http.StatusOK, "/", "Password successfully updated!")
	}
}
