package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

type contextKey string

const sessionIDKey contextKey = "session_id"

// sessionValueKey is the key under which the cart session id is stored in
// the signed cookie.
const sessionValueKey = "sid"

// SessionConfig configures the storefront session cookie.
type SessionConfig struct {
	CookieName string
	Secret     string
	MaxAge     int
	Secure     bool
}

// NewCookieStore builds a signed cookie store for cfg.
func NewCookieStore(cfg SessionConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Session resolves the visitor's session id from the signed cookie, minting
// and setting a new one when the cookie is absent, tampered or unreadable.
// The id is available to handlers through SessionIDFromContext.
func Session(store sessions.Store, cookieName string, l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := store.Get(r, cookieName)
			if err != nil {
				l.DebugContext(r.Context(), "discarding unreadable session cookie",
					slog.String("error", err.Error()),
				)
			}

			id, _ := sess.Values[sessionValueKey].(string)
			if _, perr := uuid.Parse(id); perr != nil {
				id = uuid.NewString()
				sess.Values[sessionValueKey] = id
				if err := sess.Save(r, w); err != nil {
					l.ErrorContext(r.Context(), "failed to save session cookie",
						slog.String("error", err.Error()),
					)
				}
			}

			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
		})
	}
}

// WithSessionID returns a context carrying the visitor's session id.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext returns the session id set by Session, or "".
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}
