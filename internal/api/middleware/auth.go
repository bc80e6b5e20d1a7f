package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/everbloom/weddings/internal/api/response"
)

type contextKey string

const sessionKey contextKey = "admin_session"

// Session is the authenticated admin identity. WeddingID is nil for staff
// sessions, which may act on any wedding. Session rows are created by the
// magic-link login service; this API only validates them.
type Session struct {
	WeddingID *string
}

// SessionDB is the single query the auth middleware needs.
type SessionDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Auth returns a middleware that validates the X-Session-Token header
// against the admin_sessions table.
func Auth(db SessionDB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Session-Token")
			if token == "" {
				response.WriteError(w, http.StatusUnauthorized, "missing session token")
				return
			}

			hash := sha256.Sum256([]byte(token))
			tokenHash := hex.EncodeToString(hash[:])

			var session Session
			err := db.QueryRow(r.Context(),
				`SELECT wedding_id FROM admin_sessions WHERE token_hash = $1 AND expires_at > now()`, tokenHash,
			).Scan(&session.WeddingID)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, &session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession returns the authenticated session, or nil outside the auth
// middleware.
func GetSession(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey).(*Session)
	return s
}

// WithSession injects a session into the request context; used by tests.
func WithSession(r *http.Request, s *Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionKey, s))
}

// CanAccessWedding reports whether the session may act on the wedding.
func CanAccessWedding(s *Session, weddingID string) bool {
	if s == nil {
		return false
	}
	return s.WeddingID == nil || *s.WeddingID == weddingID
}
