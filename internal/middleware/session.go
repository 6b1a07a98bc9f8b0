package middleware

import (
	"context"
	"fmt"

	"github.com/mmynk/ticketapp/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// SessionKey is the context key for storing the authenticated session.
	SessionKey contextKey = "session"
	// OperationIDKey is the context key for the current operation ID.
	OperationIDKey contextKey = "operation_id"
)

// SessionReader is the part of the session store the guard needs.
type SessionReader interface {
	Current(ctx context.Context) (*models.Session, error)
}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// SessionFrom extracts the session from the context, or nil.
func SessionFrom(ctx context.Context) *models.Session {
	s, _ := ctx.Value(SessionKey).(*models.Session)
	return s
}

// GetEmail extracts the logged-in email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	if s := SessionFrom(ctx); s != nil {
		return s.Email
	}
	return ""
}

// RequireSession returns an interceptor that loads the current session and
// refuses to run the operation without one. The session is passed on in the
// context so the operation never reads it from storage itself.
func RequireSession(sessions SessionReader) Interceptor {
	return func(name string, next Operation) Operation {
		return func(ctx context.Context) error {
			session, err := sessions.Current(ctx)
			if err != nil {
				return fmt.Errorf("failed to check session: %w", err)
			}
			if session == nil {
				return models.NewLoginRequiredError()
			}
			return next(WithSession(ctx, session))
		}
	}
}
