package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jonascoder/surf-shop/controllers"
	"github.com/jonascoder/surf-shop/middleware"
)

func Routes(router *mux.Router, h *controllers.Handler, m *middleware.Middleware) {
	loggedIn := func(f http.HandlerFunc) http.Handler { return m.IsLoggedIn(f) }
	author := func(f http.HandlerFunc) http.Handler { return m.IsLoggedIn(m.IsAuthor(f)) }
	reviewAuthor := func(f http.HandlerFunc) http.Handler { return m.IsLoggedIn(m.IsReviewAuthor(f)) }

	router.HandleFunc("/", h.Landing()).Methods("GET")

	// Account routes
	router.HandleFunc("/register", h.GetRegister()).Methods("GET")
	router.HandleFunc("/register", h.PostRegister()).Methods("POST")
	router.HandleFunc("/login", h.GetLogin()).Methods("GET")
	router.HandleFunc("/login", h.PostLogin()).Methods("POST")
	router.HandleFunc("/logout", h.GetLogout()).Methods("GET")
	router.Handle("/profile", loggedIn(h.GetProfile())).Methods("GET")
	router.Handle("/profile", loggedIn(h.UpdateProfile())).Methods("PUT")
	router.HandleFunc("/forgot-password", h.GetForgot()).Methods("GET")
	router.HandleFunc("/forgot-password", h.PutForgot()).Methods("PUT")
	router.HandleFunc("/reset/{token}", h.GetReset()).Methods("GET")
	router.HandleFunc("/reset/{token}", h.PutReset()).Methods("PUT")

	// Post routes; /posts/new must be registered before /posts/{id}
	router.HandleFunc("/posts", h.PostIndex()).Methods("GET")
	router.Handle("/posts/new", loggedIn(h.PostNew())).Methods("GET")
	router.Handle("/posts", loggedIn(h.PostCreate())).Methods("POST")
	router.HandleFunc("/posts/{id}", h.PostShow()).Methods("GET")
	router.Handle("/posts/{id}/edit", author(h.PostEdit())).Methods("GET")
	router.Handle("/posts/{id}", author(h.PostUpdate())).Methods("PUT")
	router.Handle("/posts/{id}", author(h.PostDestroy())).Methods("DELETE")

	// Review routes
	router.Handle("/posts/{id}/reviews", loggedIn(h.ReviewCreate())).Methods("POST")
	router.Handle("/posts/{id}/reviews/{review_id}", reviewAuthor(h.ReviewUpdate())).Methods("PUT")
	router.Handle("/posts/{id}/reviews/{review_id}", reviewAuthor(h.ReviewDestroy())).Methods("DELETE")
}
