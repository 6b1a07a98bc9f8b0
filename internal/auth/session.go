package auth

import (
	"context"
	"fmt"

	"github.com/mmynk/ticketapp/internal/models"
	"github.com/mmynk/ticketapp/internal/storage"
)

// SessionStore holds the single logged-in identity under storage.SessionKey.
type SessionStore struct {
	store storage.Store
}

// NewSessionStore creates a session store over store.
func NewSessionStore(store storage.Store) *SessionStore {
	return &SessionStore{store: store}
}

// Start sets the session, replacing any previous one.
func (s *SessionStore) Start(ctx context.Context, email string) error {
	return storage.SaveJSON(ctx, s.store, storage.SessionKey, models.Session{Email: email})
}

// End clears the session. Ending without a session is not an error.
func (s *SessionStore) End(ctx context.Context) error {
	if err := s.store.RemoveItem(ctx, storage.SessionKey); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// Current returns the active session, or nil if nobody is logged in.
func (s *SessionStore) Current(ctx context.Context) (*models.Session, error) {
	var session models.Session
	ok, err := storage.LoadJSON(ctx, s.store, storage.SessionKey, &session)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok || session.Email == "" {
		return nil, nil
	}
	return &session, nil
}
