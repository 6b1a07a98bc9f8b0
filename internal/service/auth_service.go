// Package service implements the application operations the front-ends call.
package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/ticketapp/internal/auth"
	"github.com/mmynk/ticketapp/internal/metrics"
	"github.com/mmynk/ticketapp/internal/middleware"
	"github.com/mmynk/ticketapp/internal/models"
)

// AuthService handles signup, login and logout.
type AuthService struct {
	registry *auth.Registry
	sessions *auth.SessionStore
	recorder metrics.Recorder
	logger   *slog.Logger
	wrap     middleware.Interceptor
}

// NewAuthService creates a new authentication service.
func NewAuthService(registry *auth.Registry, sessions *auth.SessionStore, recorder metrics.Recorder, logger *slog.Logger) *AuthService {
	return &AuthService{
		registry: registry,
		sessions: sessions,
		recorder: recorder,
		logger:   logger,
		wrap: middleware.Chain(
			middleware.OperationID(),
			middleware.Logging(logger),
			middleware.Metrics(recorder),
		),
	}
}

// SignUp creates a new account from the signup form fields.
func (s *AuthService) SignUp(ctx context.Context, email, password, confirm string) error {
	return s.wrap("auth.signup", func(ctx context.Context) error {
		if err := s.registry.SignUp(ctx, email, password, confirm); err != nil {
			return err
		}
		s.logger.Info("User registered successfully", "email", email)
		return nil
	})(ctx)
}

// Login authenticates the user and starts the session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	var session *models.Session
	err := s.wrap("auth.login", func(ctx context.Context) error {
		var err error
		session, err = s.registry.Authenticate(ctx, email, password)
		if err != nil {
			s.recorder.RecordLogin(false)
			return err
		}
		if err := s.sessions.Start(ctx, session.Email); err != nil {
			s.recorder.RecordLogin(false)
			return err
		}
		s.recorder.RecordLogin(true)
		s.logger.Info("User logged in successfully", "email", session.Email)
		return nil
	})(ctx)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Logout ends the current session. Logging out twice is not an error.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.wrap("auth.logout", func(ctx context.Context) error {
		current, err := s.sessions.Current(ctx)
		if err != nil {
			return err
		}
		if err := s.sessions.End(ctx); err != nil {
			return err
		}
		if current != nil {
			s.logger.Info("User logged out", "email", current.Email)
		}
		return nil
	})(ctx)
}

// CurrentUser returns the logged-in session, or a login-required error.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.Session, error) {
	var session *models.Session
	err := s.wrap("auth.current_user", middleware.RequireSession(s.sessions)("auth.current_user",
		func(ctx context.Context) error {
			session = middleware.SessionFrom(ctx)
			return nil
		}))(ctx)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Sessions exposes the session store, e.g. for a route guard.
func (s *AuthService) Sessions() *auth.SessionStore {
	return s.sessions
}
