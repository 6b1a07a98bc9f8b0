package auth

import (
	"context"

	"github.com/mmynk/ticketapp/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping how credentials are held (plaintext for
// browser-compatible data, bcrypt hashes) without changing the service layer.
type Authenticator interface {
	// Register adds a new account with the given email and credential.
	// Returns a duplicate error if the email is already registered.
	Register(ctx context.Context, email, credential string) error

	// Authenticate returns a session if the exact (email, credential) pair is
	// registered. It does not start the session.
	Authenticate(ctx context.Context, email, credential string) (*models.Session, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
