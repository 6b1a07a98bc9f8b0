package models

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is(err, ErrNotFound) and friends.
var (
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("already exists")
	ErrNotFound   = errors.New("not found")
	ErrAuth       = errors.New("authentication failed")
)

// AppError is a user-caused failure. It is never fatal: the UI boundary
// shows Message and carries on.
type AppError struct {
	// Kind is one of ErrValidation, ErrDuplicate, ErrNotFound, ErrAuth.
	Kind error

	// Field names the offending input, if any ("title", "email").
	Field string

	// Message is the text shown to the user.
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

// Unwrap exposes the kind so errors.Is works.
func (e *AppError) Unwrap() error {
	return e.Kind
}

// UserMessage returns the text to show for err. Unknown errors get a
// generic message; their details belong in the log.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}

// KindName returns a short label for the error kind, used in logs and metrics.
func KindName(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAuth):
		return "auth"
	default:
		return "internal"
	}
}

// NewTitleRequiredError is returned when a ticket title is blank.
func NewTitleRequiredError() *AppError {
	return &AppError{Kind: ErrValidation, Field: "title", Message: "Title is required."}
}

// NewInvalidStatusError is returned for a status outside the enumeration.
func NewInvalidStatusError(status string) *AppError {
	return &AppError{
		Kind:    ErrValidation,
		Field:   "status",
		Message: fmt.Sprintf("Invalid status selected: %q.", status),
	}
}

// NewMissingFieldsError is returned by the login form when a field is empty.
func NewMissingFieldsError() *AppError {
	return &AppError{Kind: ErrValidation, Message: "Please fill in all fields."}
}

// NewSignupFieldsError is returned by the signup form when a field is empty.
func NewSignupFieldsError() *AppError {
	return &AppError{Kind: ErrValidation, Message: "All fields are required."}
}

// NewPasswordMismatchError is returned when the confirmation differs.
func NewPasswordMismatchError() *AppError {
	return &AppError{Kind: ErrValidation, Field: "confirm_password", Message: "Passwords do not match."}
}

// NewWeakPasswordError is returned when a password is shorter than the
// configured minimum.
func NewWeakPasswordError(minLength int) *AppError {
	return &AppError{
		Kind:    ErrValidation,
		Field:   "password",
		Message: fmt.Sprintf("Password must be at least %d characters.", minLength),
	}
}

// NewUserExistsError is returned when registering a taken email.
func NewUserExistsError() *AppError {
	return &AppError{Kind: ErrDuplicate, Field: "email", Message: "User already exists."}
}

// NewInvalidCredentialsError is returned for any failed login.
func NewInvalidCredentialsError() *AppError {
	return &AppError{Kind: ErrAuth, Message: "Invalid email or password."}
}

// NewLoginRequiredError is returned by the route guard without a session.
func NewLoginRequiredError() *AppError {
	return &AppError{Kind: ErrAuth, Message: "Please log in to continue."}
}

// NewTicketNotFoundError is returned for update/delete of an absent id.
func NewTicketNotFoundError(id int64) *AppError {
	return &AppError{
		Kind:    ErrNotFound,
		Field:   "id",
		Message: fmt.Sprintf("Ticket %d not found.", id),
	}
}

// NewPasswordTooLongError is returned when a password exceeds maxBytes.
func NewPasswordTooLongError(maxBytes int) *AppError {
	return &AppError{
		Kind:    ErrValidation,
		Field:   "password",
		Message: fmt.Sprintf("Password must be at most %d bytes.", maxBytes),
	}
}

// NewInvalidImportError is returned when a dump would break the stored
// collections, e.g. a ticket id used twice.
func NewInvalidImportError(key, reason string) *AppError {
	return &AppError{
		Kind:    ErrValidation,
		Field:   key,
		Message: fmt.Sprintf("Cannot import %s: %s.", key, reason),
	}
}
