package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/ticketapp/internal/models"
	"github.com/mmynk/ticketapp/internal/storage"
	"github.com/mmynk/ticketapp/internal/storage/memory"
)

func newTestRegistry(t *testing.T, hasher PasswordHasher, opts ...RegistryOption) (*Registry, storage.Store) {
	t.Helper()
	store := memory.New()
	return NewRegistry(store, hasher, opts...), store
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("same email twice fails the second time", func(t *testing.T) {
		reg, _ := newTestRegistry(t, PlainHasher{})

		if err := reg.Register(ctx, "a@x.com", "p1"); err != nil {
			t.Fatalf("first Register failed: %v", err)
		}
		err := reg.Register(ctx, "a@x.com", "p2")
		if !errors.Is(err, models.ErrDuplicate) {
			t.Fatalf("expected duplicate error, got %v", err)
		}

		users, _ := reg.load(ctx)
		if len(users) != 1 {
			t.Errorf("expected 1 user, got %d", len(users))
		}
	})

	t.Run("plain mode keeps browser layout", func(t *testing.T) {
		reg, store := newTestRegistry(t, PlainHasher{})
		reg.Register(ctx, "a@x.com", "p1")
		reg.Register(ctx, "b@x.com", "p2")

		raw, _, _ := store.GetItem(ctx, storage.UsersKey)
		want := `[{"email":"a@x.com","password":"p1"},{"email":"b@x.com","password":"p2"}]`
		if raw != want {
			t.Errorf("stored users = %s, want %s", raw, want)
		}
	})

	t.Run("bcrypt mode stores a hash", func(t *testing.T) {
		reg, _ := newTestRegistry(t, NewBcryptHasher(bcrypt.MinCost))
		reg.Register(ctx, "a@x.com", "p1")

		users, err := reg.load(ctx)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if users[0].Password == "p1" || !strings.HasPrefix(users[0].Password, "$2") {
			t.Errorf("expected bcrypt hash, got %q", users[0].Password)
		}
	})

	t.Run("empty fields are rejected", func(t *testing.T) {
		reg, _ := newTestRegistry(t, PlainHasher{})
		if err := reg.Register(ctx, "", "p1"); !errors.Is(err, models.ErrValidation) {
			t.Errorf("expected validation error for empty email, got %v", err)
		}
		if err := reg.Register(ctx, "a@x.com", ""); !errors.Is(err, models.ErrValidation) {
			t.Errorf("expected validation error for empty password, got %v", err)
		}
	})

	t.Run("minimum password length", func(t *testing.T) {
		reg, _ := newTestRegistry(t, PlainHasher{}, WithMinPasswordLength(8))
		err := reg.Register(ctx, "a@x.com", "short")
		if !errors.Is(err, models.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if models.UserMessage(err) != "Password must be at least 8 characters." {
			t.Errorf("unexpected message %q", models.UserMessage(err))
		}
	})
	t.Run("password over the byte limit", func(t *testing.T) {
		reg, _ := newTestRegistry(t, mustHasher(t, ""))

		err := reg.Register(ctx, "a@x.com", strings.Repeat("p", MaxPasswordBytes+1))
		if !errors.Is(err, models.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if models.UserMessage(err) != "Password must be at most 72 bytes." {
			t.Errorf("unexpected message %q", models.UserMessage(err))
		}
		if users, _ := reg.load(ctx); len(users) != 0 {
			t.Errorf("expected no users, got %d", len(users))
		}

		if err := reg.Register(ctx, "a@x.com", strings.Repeat("p", MaxPasswordBytes)); err != nil {
			t.Errorf("password at the limit rejected: %v", err)
		}
	})
}

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t, PlainHasher{})

	tests := []struct {
		name     string
		email    string
		password string
		confirm  string
		wantKind error
		wantMsg  string
	}{
		{"missing confirm", "a@x.com", "p1", "", models.ErrValidation, "All fields are required."},
		{"mismatch", "a@x.com", "p1", "p2", models.ErrValidation, "Passwords do not match."},
		{"ok", "a@x.com", "p1", "p1", nil, ""},
		{"already exists", "a@x.com", "p1", "p1", models.ErrDuplicate, "User already exists."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.SignUp(ctx, tt.email, tt.password, tt.confirm)
			if tt.wantKind == nil {
				if err != nil {
					t.Fatalf("SignUp failed: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("SignUp error = %v, want kind %v", err, tt.wantKind)
			}
			if got := models.UserMessage(err); got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	hashers := map[string]PasswordHasher{
		"plain":  PlainHasher{},
		"bcrypt": NewBcryptHasher(bcrypt.MinCost),
	}

	for name, hasher := range hashers {
		t.Run(name, func(t *testing.T) {
			reg, _ := newTestRegistry(t, hasher)
			if err := reg.Register(ctx, "a@x.com", "p1"); err != nil {
				t.Fatalf("Register failed: %v", err)
			}

			session, err := reg.Authenticate(ctx, "a@x.com", "p1")
			if err != nil {
				t.Fatalf("Authenticate failed: %v", err)
			}
			if session == nil || session.Email != "a@x.com" {
				t.Errorf("expected session for a@x.com, got %+v", session)
			}

			for _, attempt := range []struct{ email, password string }{
				{"a@x.com", "wrong"},
				{"a@x.com", "P1"},
				{"b@x.com", "p1"},
				{"A@x.com", "p1"},
				{"a@x.com", ""},
			} {
				session, err := reg.Authenticate(ctx, attempt.email, attempt.password)
				if session != nil {
					t.Errorf("Authenticate(%q, %q) returned a session", attempt.email, attempt.password)
				}
				if err == nil {
					t.Errorf("Authenticate(%q, %q) returned no error", attempt.email, attempt.password)
				}
			}
		})
	}
}

func TestAuthenticateLegacyPlaintextWithBcrypt(t *testing.T) {
	ctx := context.Background()
	reg, store := newTestRegistry(t, NewBcryptHasher(bcrypt.MinCost))

	// Data imported from the browser app holds plaintext passwords.
	store.SetItem(ctx, storage.UsersKey, `[{"email":"old@x.com","password":"legacy"}]`)

	if _, err := reg.Authenticate(ctx, "old@x.com", "legacy"); err != nil {
		t.Fatalf("expected legacy plaintext entry to authenticate, got %v", err)
	}
	if _, err := reg.Authenticate(ctx, "old@x.com", "nope"); !errors.Is(err, models.ErrAuth) {
		t.Errorf("expected auth error, got %v", err)
	}
}

func TestNewHasher(t *testing.T) {
	if _, ok := mustHasher(t, "plain").(PlainHasher); !ok {
		t.Error("expected PlainHasher for plain mode")
	}
	if _, ok := mustHasher(t, "BCRYPT").(BcryptHasher); !ok {
		t.Error("expected BcryptHasher for bcrypt mode")
	}
	if _, err := NewHasher("md5"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func mustHasher(t *testing.T, mode string) PasswordHasher {
	t.Helper()
	h, err := NewHasher(mode)
	if err != nil {
		t.Fatalf("NewHasher(%q) failed: %v", mode, err)
	}
	return h
}
