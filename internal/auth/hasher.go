package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns a password into the value kept in the registry and
// checks a login attempt against it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

// Hasher modes accepted by NewHasher.
const (
	ModePlain  = "plain"
	ModeBcrypt = "bcrypt"
)

// NewHasher returns the hasher for mode ("plain" or "bcrypt").
func NewHasher(mode string) (PasswordHasher, error) {
	switch strings.ToLower(mode) {
	case ModePlain:
		return PlainHasher{}, nil
	case ModeBcrypt, "":
		return NewBcryptHasher(bcrypt.DefaultCost), nil
	default:
		return nil, fmt.Errorf("unknown password mode %q", mode)
	}
}

// PlainHasher stores passwords as-is, which is the layout the browser app
// wrote. Verification is an exact comparison.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainHasher) Verify(stored, password string) bool {
	return verify(stored, password)
}

// BcryptHasher stores bcrypt hashes in the password field.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher with the given cost.
func NewBcryptHasher(cost int) BcryptHasher {
	return BcryptHasher{cost: cost}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (BcryptHasher) Verify(stored, password string) bool {
	return verify(stored, password)
}

// verify accepts both bcrypt hashes and plaintext entries, so switching mode
// or importing browser data never locks anyone out.
func verify(stored, password string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func isBcryptHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
