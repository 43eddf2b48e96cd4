package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jonascoder/surf-shop/controllers"
	"github.com/jonascoder/surf-shop/repository"
	"github.com/jonascoder/surf-shop/session"
	"github.com/jonascoder/surf-shop/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Middleware carries the collaborators the auth guards need.
type Middleware struct {
	Users   repository.UserRepository
	Posts   repository.PostRepository
	Reviews repository.ReviewRepository
	Tokens  *utils.TokenIssuer
	Logger  *zap.Logger
}

// Authenticate resolves the current user from a bearer token or the session
// and stores it in the request context. Anonymous requests pass through.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var userID string

		if tokenHeader := r.Header.Get("Authorization"); tokenHeader != "" {
			tokenParts := strings.Split(tokenHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				m.Logger.Info("invalid authorization header", zap.String("method", r.Method), zap.String("path", r.URL.Path))
				utils.WriteError(w, utils.Wrap(http.StatusUnauthorized, "Invalid Authorization header format", utils.ErrUnauthorized))
				return
			}

			claims, err := m.Tokens.ValidateJWT(tokenParts[1])
			if err != nil {
				m.Logger.Info("invalid or expired token", zap.Error(err))
				utils.WriteError(w, utils.Wrap(http.StatusUnauthorized, "Invalid or expired token", utils.ErrUnauthorized))
				return
			}
			userID = claims.UserID
		} else if id, err := session.From(r.Context()).UserID(r.Context()); err == nil {
			userID = id
		}

		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		user, err := m.Users.FindByID(r.Context(), id)
		if err != nil {
			// A deleted account leaves a dangling session; treat it as anonymous.
			m.Logger.Warn("failed to load current user", zap.String("user", userID), zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(controllers.WithUser(r.Context(), user)))
	})
}

func (m *Middleware) IsLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if controllers.CurrentUser(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}

		if utils.WantsJSON(r) {
			utils.WriteError(w, utils.Wrap(http.StatusUnauthorized, "You need to be logged in to do that!", utils.ErrUnauthorized))
			return
		}

		sess := session.From(r.Context())
		sess.Flash(r.Context(), session.Error, "You need to be logged in to do that!")
		if err := sess.SetRedirectTo(r.Context(), r.URL.RequestURI()); err != nil {
			m.Logger.Warn("failed to store redirect target", zap.Error(err))
		}
		http.Redirect(w, r, "/login", http.StatusFound)
	})
}

var errAccessDenied = utils.Wrap(http.StatusForbidden, "Access denied!", utils.ErrForbidden)

func notFound(what string) error {
	return utils.Wrap(http.StatusNotFound, what+" not found", utils.ErrNotFound)
}

// IsAuthor only lets the post's author through and hands the loaded post to
// the handler.
func (m *Middleware) IsAuthor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := controllers.CurrentUser(r.Context())

		id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			controllers.Fail(w, r, m.Logger, notFound("Post"))
			return
		}
		post, err := m.Posts.FindByID(r.Context(), id)
		if err != nil {
			controllers.Fail(w, r, m.Logger, err)
			return
		}
		if user == nil || post.Author != user.ID {
			controllers.Fail(w, r, m.Logger, errAccessDenied)
			return
		}

		next.ServeHTTP(w, r.WithContext(controllers.WithPost(r.Context(), post)))
	})
}

// IsReviewAuthor is IsAuthor for reviews. The review must also belong to the
// post named in the path.
func (m *Middleware) IsReviewAuthor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := controllers.CurrentUser(r.Context())
		vars := mux.Vars(r)

		id, err := primitive.ObjectIDFromHex(vars["review_id"])
		if err != nil {
			controllers.Fail(w, r, m.Logger, notFound("Review"))
			return
		}
		review, err := m.Reviews.FindByID(r.Context(), id)
		if err != nil {
			controllers.Fail(w, r, m.Logger, err)
			return
		}
		if review.Post.Hex() != vars["id"] {
			controllers.Fail(w, r, m.Logger, notFound("Review"))
			return
		}
		if user == nil || review.Author != user.ID {
			controllers.Fail(w, r, m.Logger, errAccessDenied)
			return
		}

		next.ServeHTTP(w, r.WithContext(controllers.WithReview(r.Context(), review)))
	})
}
