package models

// Credential is a registered account in the user registry.
// Credentials are created on signup and never mutated or deleted.
type Credential struct {
	// Email is the unique key of the registry.
	Email string `json:"email"`

	// Password is either the plaintext password (legacy browser data and
	// plain mode) or a bcrypt hash, depending on the configured hasher.
	Password string `json:"password"`
}

// Session marks the currently logged-in identity.
// At most one session exists at a time and it has no expiry.
type Session struct {
	Email string `json:"email"`
}
