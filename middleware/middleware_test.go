package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonascoder/surf-shop/controllers"
	"github.com/jonascoder/surf-shop/mocks"
	"github.com/jonascoder/surf-shop/models"
	"github.com/jonascoder/surf-shop/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newMiddleware() (*Middleware, *mocks.UserRepository) {
	users := new(mocks.UserRepository)
	return &Middleware{
		Users:  users,
		Tokens: utils.NewTokenIssuer("test-key", time.Hour),
		Logger: zap.NewNop(),
	}, users
}

func TestAuthenticateBearer(t *testing.T) {
	m, users := newMiddleware()
	user := &models.User{ID: primitive.NewObjectID(), Username: "duke"}
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	token, err := m.Tokens.GenerateJWT(user.ID.Hex())
	require.NoError(t, err)

	var got *models.User
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = controllers.CurrentUser(r.Context())
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), r)

	require.NotNil(t, got)
	assert.Equal(t, "duke", got.Username)
	users.AssertExpectations(t)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	m, _ := newMiddleware()
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	for _, header := range []string{"Bearer nonsense", "Token abc", "Bearer"} {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestAuthenticateAnonymous(t *testing.T) {
	m, users := newMiddleware()
	called := false
	h := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Nil(t, controllers.CurrentUser(r.Context()))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.True(t, called)
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestIsLoggedInWithoutSession(t *testing.T) {
	m, _ := newMiddleware()
	h := m.IsLoggedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/posts/new", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := AccessLog(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("DELETE", "/posts/1", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "DELETE", fields["method"])
	assert.Equal(t, "/posts/1", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := Recovery(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("wipeout")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.Len())
}

func TestMethodOverride(t *testing.T) {
	var method string
	h := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
	}))

	cases := []struct {
		method, target, want string
	}{
		{"POST", "/posts/1?_method=DELETE", "DELETE"},
		{"POST", "/posts/1?_method=put", "PUT"},
		{"POST", "/posts/1?_method=GET", "POST"},
		{"GET", "/posts/1?_method=DELETE", "GET"},
		{"POST", "/posts", "POST"},
	}
	for _, tc := range cases {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tc.method, tc.target, nil))
		assert.Equal(t, tc.want, method, tc.target)
	}
}
