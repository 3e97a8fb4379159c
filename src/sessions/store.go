package sessions

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session id does not resolve to a live session.
var ErrNotFound = errors.New("session not found")

// Session is the server-held proof of a successful login. The ID is an opaque
// bearer token, treat listings of it as sensitive.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store holds live sessions keyed by their opaque id. Expiry beyond the
// configured TTL is the store's concern, callers only create, resolve and
// destroy.
type Store interface {
	Create(ctx context.Context, username string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Session, error)
}

type sessionContextKey struct{}

// WithSession stores the authenticated session in the context, the gate
// middleware calls this once per request.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// FromContext returns the authenticated session for the request, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*Session)
	return s, ok
}
