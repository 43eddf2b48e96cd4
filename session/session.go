package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const CookieName = "surf_shop_sid"

const (
	fieldUserID     = "userId"
	fieldRedirectTo = "redirectTo"
	flashPrefix     = "flash:"
)

// Flash kinds.
const (
	Success = "success"
	Error   = "error"
)

// Store keeps session state in redis hashes keyed by a random session id.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	secure bool
	logger *zap.Logger
}

func NewStore(rdb *redis.Client, ttl time.Duration, secure bool, logger *zap.Logger) *Store {
	return &Store{rdb: rdb, ttl: ttl, secure: secure, logger: logger}
}

func key(id string) string { return "session:" + id }

type ctxKey struct{}

// Session is the request-scoped handle on one session.
type Session struct {
	store *Store
	id    string
}

// From returns the session attached by Middleware, or nil.
func From(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}

func (st *Store) attach(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, &Session{store: st, id: id}))
}

// Middleware makes sure every request carries a session cookie.
func (st *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(CookieName); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
		}
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			Secure:   st.secure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(st.ttl.Seconds()),
		})
		next.ServeHTTP(w, st.attach(r, id))
	})
}

func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

func (s *Session) set(ctx context.Context, field, value string) error {
	if s == nil {
		return nil
	}
	_, err := s.store.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key(s.id), field, value)
		pipe.Expire(ctx, key(s.id), s.store.ttl)
		return nil
	})
	return err
}

func (s *Session) get(ctx context.Context, field string) (string, error) {
	if s == nil {
		return "", nil
	}
	v, err := s.store.rdb.HGet(ctx, key(s.id), field).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

// take reads and removes field in one transaction.
func (s *Session) take(ctx context.Context, fields ...string) ([]string, error) {
	out := make([]string, len(fields))
	if s == nil {
		return out, nil
	}
	var get *redis.SliceCmd
	_, err := s.store.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.HMGet(ctx, key(s.id), fields...)
		pipe.HDel(ctx, key(s.id), fields...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i, v := range get.Val() {
		if str, ok := v.(string); ok {
			out[i] = str
		}
	}
	return out, nil
}

// Flash stores a one-shot message shown on the next rendered page.
func (s *Session) Flash(ctx context.Context, kind, message string) {
	if err := s.set(ctx, flashPrefix+kind, message); err != nil {
		s.store.logger.Warn("failed to store flash message", zap.String("kind", kind), zap.Error(err))
	}
}

// Flashes returns and clears the pending success and error messages.
func (s *Session) Flashes(ctx context.Context) (success, failure string) {
	vals, err := s.take(ctx, flashPrefix+Success, flashPrefix+Error)
	if err != nil {
		s.store.logger.Warn("failed to read flash messages", zap.Error(err))
		return "", ""
	}
	return vals[0], vals[1]
}

func (s *Session) SetUserID(ctx context.Context, userID string) error {
	return s.set(ctx, fieldUserID, userID)
}

func (s *Session) UserID(ctx context.Context) (string, error) {
	return s.get(ctx, fieldUserID)
}

func (s *Session) SetRedirectTo(ctx context.Context, to string) error {
	return s.set(ctx, fieldRedirectTo, to)
}

// TakeRedirectTo returns and clears the page to go back to after login.
func (s *Session) TakeRedirectTo(ctx context.Context) (string, error) {
	vals, err := s.take(ctx, fieldRedirectTo)
	if err != nil {
		return "", err
	}
	return vals[0], nil
}

// Destroy removes every field of the session, logging the user out.
func (s *Session) Destroy(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.store.rdb.Del(ctx, key(s.id)).Err()
}
