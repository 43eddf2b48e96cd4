package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/jonascoder/surf-shop/models"
	"github.com/jonascoder/surf-shop/query"
	"github.com/jonascoder/surf-shop/repository"
	"github.com/jonascoder/surf-shop/session"
	"github.com/jonascoder/surf-shop/storage"
	"github.com/jonascoder/surf-shop/utils"
	"go.uber.org/zap"
)

const maxUploadBytes = 32 << 20

type Handler struct {
	Posts       repository.PostRepository
	Reviews     repository.ReviewRepository
	Users       repository.UserRepository
	ResetTokens repository.TokenRepository
	Images      storage.ImageStore
	Geocoder    query.Geocoder
	Listing     *query.Pipeline
	Tokens      *utils.TokenIssuer
	Mailer      utils.Mailer
	Validate    *validator.Validate
	Logger      *zap.Logger
	MapboxToken string
	ResetTTL    time.Duration
}

// Page mirrors what a rendered view receives: title, pending flash
// messages, the logged in user and the page data.
type Page struct {
	Title       string       `json:"title"`
	Success     string       `json:"success,omitempty"`
	Error       string       `json:"error,omitempty"`
	CurrentUser *models.User `json:"currentUser,omitempty"`
	Data        any          `json:"data,omitempty"`
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, title string, data any) {
	success, failure := session.From(r.Context()).Flashes(r.Context())
	utils.WriteJSON(w, http.StatusOK, Page{
		Title:       title,
		Success:     success,
		Error:       failure,
		CurrentUser: CurrentUser(r.Context()),
		Data:        data,
	})
}

// Fail is the request-failure handler. API clients get a JSON error; browsers
// get the message flashed and are sent back to the page they came from.
func Fail(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	failTo(w, r, logger, err, utils.Back(r))
}

func failTo(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error, to string) {
	status := utils.StatusOf(err)
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Info("request rejected", fields...)
	}

	if utils.WantsJSON(r) {
		utils.WriteError(w, err)
		return
	}
	session.From(r.Context()).Flash(r.Context(), session.Error, utils.MessageOf(err))
	http.Redirect(w, r, to, http.StatusFound)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	Fail(w, r, h.Logger, err)
}

func (h *Handler) failTo(w http.ResponseWriter, r *http.Request, err error, to string) {
	failTo(w, r, h.Logger, err, to)
}

// done finishes a successful write: JSON clients get data, browsers get a
// flash message and a redirect.
func (h *Handler) done(w http.ResponseWriter, r *http.Request, status int, data any, to, message string) {
	if utils.WantsJSON(r) {
		utils.WriteJSON(w, status, data)
		return
	}
	if message != "" {
		session.From(r.Context()).Flash(r.Context(), session.Success, message)
	}
	http.Redirect(w, r, to, http.StatusFound)
}

var formDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// bind decodes a JSON, urlencoded or multipart body into dst and validates it.
func (h *Handler) bind(r *http.Request, dst any) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return utils.Wrap(http.StatusBadRequest, "Invalid request payload", err)
		}
	} else {
		err := r.ParseMultipartForm(maxUploadBytes)
		if err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return utils.Wrap(http.StatusBadRequest, "Invalid form data", err)
		}
		if err := formDecoder.Decode(dst, r.PostForm); err != nil {
			return utils.Wrap(http.StatusBadRequest, "Invalid form data", err)
		}
	}

	if err := h.Validate.Struct(dst); err != nil {
		return utils.Wrap(http.StatusBadRequest, validationMessage(err), utils.ErrValidation)
	}
	return nil
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Invalid input"
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid e-mail address", fe.Field())
	case "min", "max", "gte", "lte":
		return fmt.Sprintf("%s must be %s %s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func uploadedFiles(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[field]
}

// uploadAll uploads files in order, removing what was already stored if one
// of them fails.
func (h *Handler) uploadAll(r *http.Request, files []*multipart.FileHeader) ([]models.Image, error) {
	images := make([]models.Image, 0, len(files))
	for _, file := range files {
		img, err := h.Images.Upload(r.Context(), file)
		if err != nil {
			h.destroyAll(r, images)
			if errors.Is(err, storage.ErrUnsupportedFormat) {
				return nil, utils.Wrap(http.StatusBadRequest, err.Error(), utils.ErrValidation)
			}
			return nil, utils.Wrap(http.StatusBadGateway, "Image upload failed", err)
		}
		images = append(images, img)
	}
	return images, nil
}

// destroyAll removes hosted images, logging failures rather than failing the
// request.
func (h *Handler) destroyAll(r *http.Request, images []models.Image) {
	for _, img := range images {
		if err := h.Images.Destroy(r.Context(), img.PublicID); err != nil {
			h.Logger.Warn("failed to destroy image", zap.String("publicId", img.PublicID), zap.Error(err))
		}
	}
}

func (h *Handler) geocode(r *http.Request, location string) (models.Point, error) {
	lngLat, err := h.Geocoder.Forward(r.Context(), location)
	if err != nil {
		return models.Point{}, utils.Wrap(http.StatusBadGateway, fmt.Sprintf("Unable to locate %q", location), err)
	}
	return models.NewPoint(lngLat[0], lngLat[1]), nil
}
