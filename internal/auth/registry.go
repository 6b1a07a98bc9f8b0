package auth

import (
	"context"
	"fmt"

	"github.com/mmynk/ticketapp/internal/models"
	"github.com/mmynk/ticketapp/internal/storage"
)

var _ Authenticator = (*Registry)(nil)

// Registry is the user registry kept under storage.UsersKey.
// Every mutation reads the whole list and writes it back.
type Registry struct {
	store             storage.Store
	hasher            PasswordHasher
	minPasswordLength int
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithMinPasswordLength rejects shorter passwords on registration.
func WithMinPasswordLength(n int) RegistryOption {
	return func(r *Registry) {
		r.minPasswordLength = n
	}
}

// NewRegistry creates a registry over store.
func NewRegistry(store storage.Store, hasher PasswordHasher, opts ...RegistryOption) *Registry {
	r := &Registry{
		store:             store,
		hasher:            hasher,
		minPasswordLength: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxPasswordBytes is the longest password accepted. bcrypt reads no more
// than 72 bytes, and both modes share the limit so switching keeps working.
const MaxPasswordBytes = 72

// ValidateCredential checks the password length bounds.
func (r *Registry) ValidateCredential(credential string) error {
	if len(credential) < r.minPasswordLength {
		return models.NewWeakPasswordError(r.minPasswordLength)
	}
	if len(credential) > MaxPasswordBytes {
		return models.NewPasswordTooLongError(MaxPasswordBytes)
	}
	return nil
}

// SignUp applies the signup form rules (every field filled, confirmation
// matches) and then registers the account.
func (r *Registry) SignUp(ctx context.Context, email, password, confirm string) error {
	if email == "" || password == "" || confirm == "" {
		return models.NewSignupFieldsError()
	}
	if password != confirm {
		return models.NewPasswordMismatchError()
	}
	return r.Register(ctx, email, password)
}

// Register appends a credential unless the email is already registered.
func (r *Registry) Register(ctx context.Context, email, credential string) error {
	if email == "" || credential == "" {
		return models.NewSignupFieldsError()
	}
	if err := r.ValidateCredential(credential); err != nil {
		return err
	}

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, found := find(users, email); found {
		return models.NewUserExistsError()
	}

	stored, err := r.hasher.Hash(credential)
	if err != nil {
		return err
	}

	users = append(users, models.Credential{Email: email, Password: stored})
	return storage.SaveJSON(ctx, r.store, storage.UsersKey, users)
}

// Authenticate returns a session for an exact (email, password) match.
func (r *Registry) Authenticate(ctx context.Context, email, credential string) (*models.Session, error) {
	if email == "" || credential == "" {
		return nil, models.NewMissingFieldsError()
	}

	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	user, found := find(users, email)
	if !found || !r.hasher.Verify(user.Password, credential) {
		return nil, models.NewInvalidCredentialsError()
	}
	return &models.Session{Email: user.Email}, nil
}

func (r *Registry) load(ctx context.Context) ([]models.Credential, error) {
	var users []models.Credential
	if _, err := storage.LoadJSON(ctx, r.store, storage.UsersKey, &users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

func find(users []models.Credential, email string) (models.Credential, bool) {
	for _, u := range users {
		if u.Email == email {
			return u, true
		}
	}
	return models.Credential{}, false
}
