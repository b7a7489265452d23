// Package user implements the tracker's user directory: registration,
// credential verification and lookups.
package user

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/tasktrack/internal/platform/errors"
)

// MinPasswordLength is the shortest accepted raw password.
const MinPasswordLength = 6

var (
	// ErrNotFound indicates a missing user.
	ErrNotFound = apperrors.EK(apperrors.KindNotFound, "user.not_found", "user not found")
	// ErrUsernameTaken indicates the username already belongs to another user.
	ErrUsernameTaken = apperrors.EK(apperrors.KindConflict, "auth.username_taken", "username already exists")
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = apperrors.EK(apperrors.KindUnauthorized, "auth.invalid_credentials", "invalid username or password")
	// ErrFieldsRequired indicates a missing username, email or password.
	ErrFieldsRequired = apperrors.EK(apperrors.KindInvalidInput, "auth.fields_required", "username, email and password are required")
	// ErrPasswordTooShort indicates a password under MinPasswordLength.
	ErrPasswordTooShort = apperrors.EK(apperrors.KindInvalidInput, "auth.password_too_short", "password is too short")
)

// User is the stored user record, including the password hash.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the user view handed to handlers and templates. It has no
// password field.
type PublicUser struct {
	ID        string
	Username  string
	Email     string
	CreatedAt time.Time
}

// Public strips credential material from u.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Registration is the raw input for creating a user.
type Registration struct {
	Username string
	Email    string
	Password string
}

func (r Registration) normalize() (Registration, error) {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	if r.Username == "" || r.Email == "" || r.Password == "" {
		return Registration{}, ErrFieldsRequired
	}
	if len(r.Password) < MinPasswordLength {
		return Registration{}, ErrPasswordTooShort
	}
	return r, nil
}
